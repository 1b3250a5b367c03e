package stats

import (
	"context"
	"database/sql"

	"github.com/utsavratan/gestureflow/pkg/domain"
	"github.com/utsavratan/gestureflow/pkg/errors"
)

// PostgresProvider implements Provider against a user_stats table.
// All streak arithmetic happens inside the upsert so concurrent sessions
// for the same user cannot lose updates, and date comparisons run in UTC
// to match the engine's client-side day math.
type PostgresProvider struct {
	db *sql.DB
}

// NewPostgresProvider creates a new PostgreSQL-backed stats provider.
func NewPostgresProvider(db *sql.DB) *PostgresProvider {
	return &PostgresProvider{
		db: db,
	}
}

// GetStats retrieves the current aggregate snapshot for a user.
func (p *PostgresProvider) GetStats(ctx context.Context, userID string) (*domain.UserStatsSnapshot, error) {
	query := `
		SELECT user_id, lessons_completed, current_streak,
		       accuracy_sum, accuracy_count, friend_count, last_practiced_at
		FROM user_stats
		WHERE user_id = $1
	`

	var (
		snapshot    domain.UserStatsSnapshot
		accuracySum float64
		lastAt      sql.NullTime
	)
	err := p.db.QueryRowContext(ctx, query, userID).Scan(
		&snapshot.UserID,
		&snapshot.LessonsCompleted,
		&snapshot.CurrentStreak,
		&accuracySum,
		&snapshot.AccuracySamples,
		&snapshot.FriendCount,
		&lastAt,
	)

	if err == sql.ErrNoRows {
		// No activity recorded yet (lazy initialization).
		return &domain.UserStatsSnapshot{UserID: userID}, nil
	}

	if err != nil {
		return nil, errors.ErrDatabaseError("get stats", err)
	}

	if snapshot.AccuracySamples > 0 {
		snapshot.AverageAccuracy = accuracySum / float64(snapshot.AccuracySamples)
	}
	if lastAt.Valid {
		snapshot.LastPracticedAt = lastAt.Time
	}

	return &snapshot, nil
}

// RecordCompletion folds one completed session into the user's aggregates.
// The whole update is a single upsert: streak transitions are decided from
// last_practiced_at inside the statement, so two concurrent sessions for
// the same user serialize on the row instead of double-counting a day.
func (p *PostgresProvider) RecordCompletion(ctx context.Context, userID string, sessionType domain.SessionType, accuracy float64, correct bool) (*domain.UserStatsSnapshot, bool, error) {
	query := `
		INSERT INTO user_stats (
			user_id, lessons_completed, current_streak,
			accuracy_sum, accuracy_count, friend_count,
			last_practiced_at, created_at, updated_at
		) VALUES (
			$1,
			CASE WHEN $2 THEN 1 ELSE 0 END,
			1,
			$3, 1, 0,
			NOW(), NOW(), NOW()
		)
		ON CONFLICT (user_id) DO UPDATE SET
			lessons_completed = user_stats.lessons_completed + CASE WHEN $2 THEN 1 ELSE 0 END,
			current_streak = CASE
				WHEN user_stats.last_practiced_at IS NULL
					THEN 1
				WHEN DATE(user_stats.last_practiced_at AT TIME ZONE 'UTC') = DATE(NOW() AT TIME ZONE 'UTC')
					THEN user_stats.current_streak
				WHEN DATE(user_stats.last_practiced_at AT TIME ZONE 'UTC') = DATE(NOW() AT TIME ZONE 'UTC') - 1
					THEN user_stats.current_streak + 1
				ELSE 1
			END,
			accuracy_sum = user_stats.accuracy_sum + $3,
			accuracy_count = user_stats.accuracy_count + 1,
			last_practiced_at = NOW(),
			updated_at = NOW()
		RETURNING user_id, lessons_completed, current_streak,
		          accuracy_sum, accuracy_count, friend_count, last_practiced_at
	`

	var (
		snapshot    domain.UserStatsSnapshot
		accuracySum float64
		lastAt      sql.NullTime
	)
	err := p.db.QueryRowContext(ctx, query, userID, correct, accuracy).Scan(
		&snapshot.UserID,
		&snapshot.LessonsCompleted,
		&snapshot.CurrentStreak,
		&accuracySum,
		&snapshot.AccuracySamples,
		&snapshot.FriendCount,
		&lastAt,
	)
	if err != nil {
		return nil, false, errors.ErrStatsUpdateFailed(userID, err)
	}

	if snapshot.AccuracySamples > 0 {
		snapshot.AverageAccuracy = accuracySum / float64(snapshot.AccuracySamples)
	}
	if lastAt.Valid {
		snapshot.LastPracticedAt = lastAt.Time
	}

	continued := correct && snapshot.CurrentStreak > 1

	return &snapshot, continued, nil
}

// SetFriendCount records the user's accepted-friendship count.
func (p *PostgresProvider) SetFriendCount(ctx context.Context, userID string, count int) error {
	if count < 0 {
		return errors.ErrValidationFailed("count", "must be non-negative")
	}

	query := `
		INSERT INTO user_stats (
			user_id, lessons_completed, current_streak,
			accuracy_sum, accuracy_count, friend_count,
			created_at, updated_at
		) VALUES (
			$1, 0, 0, 0, 0, $2, NOW(), NOW()
		)
		ON CONFLICT (user_id) DO UPDATE SET
			friend_count = EXCLUDED.friend_count,
			updated_at = NOW()
	`

	if _, err := p.db.ExecContext(ctx, query, userID, count); err != nil {
		return errors.ErrDatabaseError("set friend count", err)
	}

	return nil
}
