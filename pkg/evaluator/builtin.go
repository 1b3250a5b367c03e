package evaluator

import "github.com/utsavratan/gestureflow/pkg/domain"

// Built-in evaluators, one per achievement type. Each returns raw progress;
// the registry clamps to [0,100]. A zero criteria divisor means the stat can
// never be satisfied here, so progress is 0 (the validator rejects such
// configs for built-in types, but retired or hand-edited catalogs must not
// panic the engine).

// EvaluateAlphabetMaster measures completed lessons against the required
// count.
func EvaluateAlphabetMaster(def *domain.AchievementDefinition, stats *domain.UserStatsSnapshot) float64 {
	required := def.Criteria.RequiredCount
	if required <= 0 {
		return 0
	}
	return float64(stats.LessonsCompleted) / float64(required) * 100
}

// EvaluatePracticeStreak measures the current daily streak against the
// required streak length.
func EvaluatePracticeStreak(def *domain.AchievementDefinition, stats *domain.UserStatsSnapshot) float64 {
	required := def.Criteria.RequiredStreak
	if required <= 0 {
		return 0
	}
	return float64(stats.CurrentStreak) / float64(required) * 100
}

// EvaluateAccuracyExpert measures average accuracy against the required
// accuracy. With no recorded samples there is nothing to average, so
// progress is 0. Meeting the bar is exactly 100; below the bar, progress
// scales with how close the average is.
func EvaluateAccuracyExpert(def *domain.AchievementDefinition, stats *domain.UserStatsSnapshot) float64 {
	required := def.Criteria.RequiredAccuracy
	if required <= 0 {
		return 0
	}
	if stats.AccuracySamples == 0 {
		return 0
	}
	if stats.AverageAccuracy >= required {
		return 100
	}
	return stats.AverageAccuracy / required * 100
}

// EvaluateSocialButterfly measures accepted friendships against the
// required friend count.
func EvaluateSocialButterfly(def *domain.AchievementDefinition, stats *domain.UserStatsSnapshot) float64 {
	required := def.Criteria.RequiredFriends
	if required <= 0 {
		return 0
	}
	return float64(stats.FriendCount) / float64(required) * 100
}
