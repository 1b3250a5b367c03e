// Package engine orchestrates the progression pipeline: one completed
// practice activity flows through stats aggregation, XP crediting,
// achievement evaluation, and grant recording, with notifications emitted
// for every level-up and award.
package engine

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/utsavratan/gestureflow/pkg/award"
	"github.com/utsavratan/gestureflow/pkg/catalog"
	"github.com/utsavratan/gestureflow/pkg/common"
	"github.com/utsavratan/gestureflow/pkg/domain"
	"github.com/utsavratan/gestureflow/pkg/errors"
	"github.com/utsavratan/gestureflow/pkg/evaluator"
	"github.com/utsavratan/gestureflow/pkg/ledger"
	"github.com/utsavratan/gestureflow/pkg/notify"
	"github.com/utsavratan/gestureflow/pkg/stats"
)

const (
	baseSessionXP  = 10
	maxStreakBonus = 20
)

// ActivitySummary reports what one activity event changed.
type ActivitySummary struct {
	UserID          string                          `json:"user_id"`
	XPGained        int                             `json:"xp_gained"`
	Level           int                             `json:"level"`
	LeveledUp       bool                            `json:"leveled_up"`
	ReachedLevels   []int                           `json:"reached_levels,omitempty"`
	NewAchievements []*domain.AchievementDefinition `json:"new_achievements,omitempty"`
}

// Engine wires the progression pipeline together. All dependencies are
// interfaces, so every backend (Postgres or in-memory) and every sink
// composes the same way.
type Engine struct {
	catalog    catalog.Catalog
	stats      stats.Provider
	evaluators *evaluator.Registry
	levels     ledger.LevelLedger
	awards     award.Repository
	dispatcher *notify.Dispatcher
	retryCfg   common.RetryConfig
	logger     *slog.Logger
}

// New creates an Engine. dispatcher may be nil, in which case level-up and
// award notifications are skipped.
func New(
	cat catalog.Catalog,
	provider stats.Provider,
	evaluators *evaluator.Registry,
	levels ledger.LevelLedger,
	awards award.Repository,
	dispatcher *notify.Dispatcher,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		catalog:    cat,
		stats:      provider,
		evaluators: evaluators,
		levels:     levels,
		awards:     awards,
		dispatcher: dispatcher,
		retryCfg:   common.DefaultRetryConfig(),
		logger:     logger,
	}
}

// SessionXP computes the XP earned by one completed session:
// a base amount, an accuracy bonus of one point per 10% accuracy, and a
// streak bonus of two points per consecutive day, capped.
func SessionXP(accuracy float64, streak int, continuedStreak bool) int {
	xp := baseSessionXP + int(math.Floor(accuracy/10))
	if continuedStreak {
		bonus := streak * 2
		if bonus > maxStreakBonus {
			bonus = maxStreakBonus
		}
		xp += bonus
	}
	return xp
}

// ProcessActivity runs the full pipeline for one activity event:
// validate, fold into stats, credit XP, evaluate achievements, record
// grants, and emit notifications for whatever changed. Achievement
// evaluation failures are logged but never fail the activity, because
// stats and XP have already been committed.
func (e *Engine) ProcessActivity(ctx context.Context, event *domain.ActivityEvent) (*ActivitySummary, error) {
	if event == nil {
		return nil, errors.ErrInvalidEvent(nil)
	}
	if err := event.Validate(); err != nil {
		return nil, errors.ErrInvalidEvent(err)
	}

	// Fold the session into the user's aggregates.
	var (
		snapshot  *domain.UserStatsSnapshot
		continued bool
	)
	err := common.Retry(ctx, e.retryCfg, func(ctx context.Context) error {
		var opErr error
		snapshot, continued, opErr = e.stats.RecordCompletion(ctx, event.UserID, event.SessionType, event.AccuracyScore, event.Correct)
		return opErr
	})
	if err != nil {
		return nil, err
	}

	// Credit XP for the session.
	xp := SessionXP(event.AccuracyScore, snapshot.CurrentStreak, continued)

	var applied *ledger.ApplyResult
	err = common.Retry(ctx, e.retryCfg, func(ctx context.Context) error {
		var opErr error
		applied, opErr = e.levels.ApplyExperience(ctx, event.UserID, xp)
		return opErr
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for _, level := range applied.ReachedLevels {
		e.logger.Info("level up",
			"user_id", event.UserID,
			"new_level", level,
		)
		if e.dispatcher != nil {
			e.dispatcher.EnqueueLevelUp(&notify.LevelUpPayload{
				UserID:   event.UserID,
				NewLevel: level,
				At:       now,
			})
		}
	}

	// Evaluate achievements against the post-update snapshot.
	newAchievements := e.evaluateAndAward(ctx, event.UserID, snapshot)

	return &ActivitySummary{
		UserID:          event.UserID,
		XPGained:        xp,
		Level:           applied.State.CurrentLevel,
		LeveledUp:       len(applied.ReachedLevels) > 0,
		ReachedLevels:   applied.ReachedLevels,
		NewAchievements: newAchievements,
	}, nil
}

// RecordFriendCount updates the user's friendship aggregate and evaluates
// social achievements against the result.
func (e *Engine) RecordFriendCount(ctx context.Context, userID string, count int) ([]*domain.AchievementDefinition, error) {
	if userID == "" {
		return nil, errors.ErrValidationFailed("user_id", "is required")
	}
	if count < 0 {
		return nil, errors.ErrValidationFailed("count", "must be non-negative")
	}

	err := common.Retry(ctx, e.retryCfg, func(ctx context.Context) error {
		return e.stats.SetFriendCount(ctx, userID, count)
	})
	if err != nil {
		return nil, err
	}

	snapshot, err := e.stats.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return e.evaluateAndAward(ctx, userID, snapshot), nil
}

// evaluateAndAward checks every active achievement against the snapshot
// and records grants for the ones newly completed. Per-achievement failures
// are logged and skipped so one bad definition cannot block the rest.
func (e *Engine) evaluateAndAward(ctx context.Context, userID string, snapshot *domain.UserStatsSnapshot) []*domain.AchievementDefinition {
	var earned []*domain.AchievementDefinition

	for _, def := range e.catalog.GetActive() {
		progress := e.evaluators.Evaluate(def, snapshot)
		if progress < 100 {
			continue
		}

		grant := &domain.Grant{
			ID:            uuid.NewString(),
			UserID:        userID,
			AchievementID: def.ID,
			EarnedAt:      time.Now().UTC(),
		}

		recorded, created, err := e.awards.TryInsert(ctx, grant)
		if err != nil {
			e.logger.Error("failed to record achievement grant",
				"user_id", userID,
				"achievement_id", def.ID,
				"error", err,
			)
			continue
		}
		if !created {
			// Already earned (or lost a concurrent race): no re-award.
			continue
		}

		e.logger.Info("achievement earned",
			"user_id", userID,
			"achievement_id", def.ID,
			"rarity", string(def.Rarity),
			"points", def.Points,
		)

		earned = append(earned, def)

		if e.dispatcher != nil {
			e.dispatcher.EnqueueAchievement(&notify.AchievementPayload{
				UserID:        userID,
				AchievementID: def.ID,
				Name:          def.Name,
				Description:   def.Description,
				Points:        def.Points,
				Rarity:        def.Rarity,
				EarnedAt:      recorded.EarnedAt,
			})
			e.dispatcher.EnqueueSocialPost(&notify.PostDraft{
				ID:        uuid.NewString(),
				UserID:    userID,
				Content:   notify.ShareMessage(def.Name, def.Description),
				CreatedAt: recorded.EarnedAt,
			})
		}
	}

	return earned
}

// GetAchievements returns the status of every configured achievement for a
// user: earned ones carry their grant time and 100% progress, unearned ones
// carry live progress from the current stats. Ordered rarest first.
func (e *Engine) GetAchievements(ctx context.Context, userID string) ([]*domain.AchievementStatus, error) {
	if userID == "" {
		return nil, errors.ErrValidationFailed("user_id", "is required")
	}

	snapshot, err := e.stats.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	grants, err := e.awards.ListGrants(ctx, userID)
	if err != nil {
		return nil, err
	}

	earnedAt := make(map[string]time.Time, len(grants))
	for _, grant := range grants {
		earnedAt[grant.AchievementID] = grant.EarnedAt
	}

	definitions := e.catalog.All()
	statuses := make([]*domain.AchievementStatus, 0, len(definitions))
	for _, def := range definitions {
		status := &domain.AchievementStatus{
			Definition: def,
		}
		if at, ok := earnedAt[def.ID]; ok {
			status.Earned = true
			status.Progress = 100
			t := at
			status.EarnedAt = &t
		} else {
			status.Progress = e.evaluators.Evaluate(def, snapshot)
		}
		statuses = append(statuses, status)
	}

	sort.SliceStable(statuses, func(i, j int) bool {
		wi := statuses[i].Definition.Rarity.SortWeight()
		wj := statuses[j].Definition.Rarity.SortWeight()
		if wi != wj {
			return wi > wj
		}
		return statuses[i].Definition.ID < statuses[j].Definition.ID
	})

	return statuses, nil
}

// GetAchievement returns a single achievement definition by ID.
func (e *Engine) GetAchievement(achievementID string) (*domain.AchievementDefinition, error) {
	if achievementID == "" {
		return nil, errors.ErrValidationFailed("achievement_id", "is required")
	}

	def := e.catalog.GetByID(achievementID)
	if def == nil {
		return nil, errors.ErrAchievementNotFound(achievementID)
	}

	return def, nil
}

// GetLevelState returns a user's XP/level record, implicit level 1 for
// users with no activity yet.
func (e *Engine) GetLevelState(ctx context.Context, userID string) (*domain.LevelState, error) {
	if userID == "" {
		return nil, errors.ErrValidationFailed("user_id", "is required")
	}
	return e.levels.GetState(ctx, userID)
}

// Close flushes pending notifications. Call during shutdown.
func (e *Engine) Close() {
	if e.dispatcher != nil {
		e.dispatcher.Close()
	}
}
