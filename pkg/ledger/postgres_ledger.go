package ledger

import (
	"context"
	"database/sql"

	"github.com/utsavratan/gestureflow/pkg/domain"
	"github.com/utsavratan/gestureflow/pkg/errors"
)

// PostgresLevelLedger implements LevelLedger using PostgreSQL.
// Concurrent credits for the same user serialize on a row lock, so level
// arithmetic never runs against a stale read.
type PostgresLevelLedger struct {
	db   *sql.DB
	opts options
}

// NewPostgresLevelLedger creates a new PostgreSQL-backed level ledger.
func NewPostgresLevelLedger(db *sql.DB, opts ...Option) *PostgresLevelLedger {
	return &PostgresLevelLedger{
		db:   db,
		opts: applyOptions(opts),
	}
}

// GetState retrieves a user's ledger record.
func (l *PostgresLevelLedger) GetState(ctx context.Context, userID string) (*domain.LevelState, error) {
	query := `
		SELECT user_id, current_level, experience_points, total_experience,
		       created_at, updated_at
		FROM user_levels
		WHERE user_id = $1
	`

	var state domain.LevelState
	err := l.db.QueryRowContext(ctx, query, userID).Scan(
		&state.UserID,
		&state.CurrentLevel,
		&state.ExperiencePoints,
		&state.TotalExperience,
		&state.CreatedAt,
		&state.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		// No record yet: report the implicit level-1 state without
		// persisting it.
		return domain.NewLevelState(userID), nil
	}

	if err != nil {
		return nil, errors.ErrDatabaseError("get level state", err)
	}

	return &state, nil
}

// ApplyExperience credits an XP delta inside a transaction: ensure the row
// exists, lock it, run the level arithmetic in Go, write the result back.
func (l *PostgresLevelLedger) ApplyExperience(ctx context.Context, userID string, delta int) (*ApplyResult, error) {
	if delta < 0 {
		return nil, errors.ErrValidationFailed("delta", "must be non-negative")
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.ErrDatabaseError("begin transaction for apply experience", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if !l.opts.requireExisting {
		// Create the level-1 record on first use. DO NOTHING keeps an
		// existing row untouched; the locked SELECT below reads whichever
		// row won.
		_, err = tx.ExecContext(ctx, `
			INSERT INTO user_levels (user_id, current_level, experience_points, total_experience, created_at, updated_at)
			VALUES ($1, 1, 0, 0, NOW(), NOW())
			ON CONFLICT (user_id) DO NOTHING
		`, userID)
		if err != nil {
			return nil, errors.ErrDatabaseError("init level state", err)
		}
	}

	var state domain.LevelState
	err = tx.QueryRowContext(ctx, `
		SELECT user_id, current_level, experience_points, total_experience,
		       created_at, updated_at
		FROM user_levels
		WHERE user_id = $1
		FOR UPDATE
	`, userID).Scan(
		&state.UserID,
		&state.CurrentLevel,
		&state.ExperiencePoints,
		&state.TotalExperience,
		&state.CreatedAt,
		&state.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		// requireExisting and no record: deferred rollback cleans up.
		return nil, errors.ErrLevelStateNotFound(userID)
	}
	if err != nil {
		return nil, errors.ErrDatabaseError("lock level state", err)
	}

	reached := state.Apply(delta)

	_, err = tx.ExecContext(ctx, `
		UPDATE user_levels
		SET current_level = $2, experience_points = $3, total_experience = $4, updated_at = NOW()
		WHERE user_id = $1
	`, userID, state.CurrentLevel, state.ExperiencePoints, state.TotalExperience)
	if err != nil {
		return nil, errors.ErrDatabaseError("update level state", err)
	}

	err = tx.Commit()
	if err != nil {
		return nil, errors.NewProgressionError(errors.ErrCodeTransactionFailed, "failed to commit experience credit", err)
	}

	return &ApplyResult{
		State:         &state,
		ReachedLevels: reached,
	}, nil
}
