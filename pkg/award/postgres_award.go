package award

import (
	"context"
	"database/sql"

	"github.com/utsavratan/gestureflow/pkg/domain"
	"github.com/utsavratan/gestureflow/pkg/errors"
)

// PostgresRepository implements Repository using PostgreSQL. The unique
// constraint on (user_id, achievement_id) is the at-most-once guarantee:
// races resolve in the database, not in application code.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL-backed award repository.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// TryInsert attempts to record a grant, losing gracefully to any earlier one.
func (r *PostgresRepository) TryInsert(ctx context.Context, grant *domain.Grant) (*domain.Grant, bool, error) {
	query := `
		INSERT INTO user_achievements (id, user_id, achievement_id, earned_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, grant.ID, grant.UserID, grant.AchievementID, grant.EarnedAt)
	if err != nil {
		return nil, false, errors.ErrDatabaseError("insert grant", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, false, errors.ErrDatabaseError("insert grant", err)
	}

	if rowsAffected > 0 {
		return grant, true, nil
	}

	// Lost the race or already granted: return the grant on record.
	existing, err := r.GetGrant(ctx, grant.UserID, grant.AchievementID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		// Conflict row vanished between statements; grants are never
		// deleted, so this indicates an operational problem.
		return nil, false, errors.ErrDatabaseError("insert grant", sql.ErrNoRows)
	}

	return existing, false, nil
}

// GetGrant returns the grant for a (user, achievement) pair.
func (r *PostgresRepository) GetGrant(ctx context.Context, userID, achievementID string) (*domain.Grant, error) {
	query := `
		SELECT id, user_id, achievement_id, earned_at
		FROM user_achievements
		WHERE user_id = $1 AND achievement_id = $2
	`

	var grant domain.Grant
	err := r.db.QueryRowContext(ctx, query, userID, achievementID).Scan(
		&grant.ID,
		&grant.UserID,
		&grant.AchievementID,
		&grant.EarnedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // Not earned
	}

	if err != nil {
		return nil, errors.ErrDatabaseError("get grant", err)
	}

	return &grant, nil
}

// ListGrants returns all grants for a user, oldest first.
func (r *PostgresRepository) ListGrants(ctx context.Context, userID string) ([]*domain.Grant, error) {
	query := `
		SELECT id, user_id, achievement_id, earned_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY earned_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.ErrDatabaseError("list grants", err)
	}
	defer func() { _ = rows.Close() }()

	var grants []*domain.Grant
	for rows.Next() {
		var grant domain.Grant
		if err := rows.Scan(&grant.ID, &grant.UserID, &grant.AchievementID, &grant.EarnedAt); err != nil {
			return nil, errors.ErrDatabaseError("scan grant", err)
		}
		grants = append(grants, &grant)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError("list grants", err)
	}

	return grants, nil
}
