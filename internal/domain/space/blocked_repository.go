package space

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// BlockedHourRepository defines blocked hour data access interface
type BlockedHourRepository interface {
	Create(ctx context.Context, blocked *BlockedHour) error
	GetByID(ctx context.Context, id uuid.UUID) (*BlockedHour, error)
	ListForDay(ctx context.Context, spaceID uuid.UUID, date time.Time) ([]*BlockedHour, error)
	ListForSpace(ctx context.Context, spaceID uuid.UUID, from time.Time) ([]*BlockedHour, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type blockedHourRepository struct {
	db *sqlx.DB
}

// NewBlockedHourRepository creates new blocked hour repository
func NewBlockedHourRepository(db *sqlx.DB) BlockedHourRepository {
	return &blockedHourRepository{db: db}
}

func (r *blockedHourRepository) Create(ctx context.Context, blocked *BlockedHour) error {
	query := `
		INSERT INTO blocked_hours (id, space_id, blocked_date, start_time, reason)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		blocked.ID, blocked.SpaceID, blocked.BlockedDate, blocked.StartTime, blocked.Reason,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrBlockedHourExists
		}
		return fmt.Errorf("blocked hour repository create: %w", err)
	}

	return nil
}

func (r *blockedHourRepository) GetByID(ctx context.Context, id uuid.UUID) (*BlockedHour, error) {
	query := `
		SELECT id, space_id, blocked_date, start_time, reason, created_at
		FROM blocked_hours
		WHERE id = $1
	`

	var b BlockedHour
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBlockedHourNotFound
		}
		return nil, fmt.Errorf("blocked hour repository get by id: %w", err)
	}

	return &b, nil
}

func (r *blockedHourRepository) ListForDay(ctx context.Context, spaceID uuid.UUID, date time.Time) ([]*BlockedHour, error) {
	query := `
		SELECT id, space_id, blocked_date, start_time, reason, created_at
		FROM blocked_hours
		WHERE space_id = $1 AND blocked_date = $2
		ORDER BY start_time
	`

	var blocked []*BlockedHour
	if err := r.db.SelectContext(ctx, &blocked, query, spaceID, date.Format("2006-01-02")); err != nil {
		return nil, fmt.Errorf("blocked hour repository list for day: %w", err)
	}

	return blocked, nil
}

func (r *blockedHourRepository) ListForSpace(ctx context.Context, spaceID uuid.UUID, from time.Time) ([]*BlockedHour, error) {
	query := `
		SELECT id, space_id, blocked_date, start_time, reason, created_at
		FROM blocked_hours
		WHERE space_id = $1 AND blocked_date >= $2
		ORDER BY blocked_date, start_time
	`

	var blocked []*BlockedHour
	if err := r.db.SelectContext(ctx, &blocked, query, spaceID, from.Format("2006-01-02")); err != nil {
		return nil, fmt.Errorf("blocked hour repository list for space: %w", err)
	}

	return blocked, nil
}

func (r *blockedHourRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blocked_hours WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("blocked hour repository delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBlockedHourNotFound
	}

	return nil
}
