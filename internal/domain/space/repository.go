package space

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/spacely/spacely-api/internal/middleware"
)

// Filter represents search filters for listing spaces
type Filter struct {
	Query       *string
	City        *string
	PriceMin    *float64
	PriceMax    *float64
	MinCapacity *int
	Status      *Status
	HostID      *uuid.UUID
}

// Pagination for listing
type Pagination struct {
	Page  int
	Limit int
}

// Repository defines space data access interface
type Repository interface {
	Create(ctx context.Context, space *Space) error
	GetByID(ctx context.Context, id uuid.UUID) (*Space, error)
	Update(ctx context.Context, space *Space) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	List(ctx context.Context, filter *Filter, pagination *Pagination) ([]*Space, int, error)
	ListByHost(ctx context.Context, hostID uuid.UUID, pagination *Pagination) ([]*Space, int, error)
}

type repository struct {
	db *sqlx.DB
}

const spaceSelectColumns = `
	id, host_id, title, description, category,
	street, city, country, latitude, longitude,
	capacity, price_per_hour, currency,
	amenities, photos, availability_hours, status,
	created_at, updated_at
`

// NewRepository creates new space repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, space *Space) error {
	query := `
		INSERT INTO spaces (
			id, host_id, title, description, category,
			street, city, country, latitude, longitude,
			capacity, price_per_hour, currency,
			amenities, photos, availability_hours, status
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12, $13,
			$14, $15, $16, $17
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		space.ID, space.HostID, space.Title, space.Description, space.Category,
		space.Street, space.City, space.Country, space.Latitude, space.Longitude,
		space.Capacity, space.PricePerHour, space.Currency,
		space.Amenities, space.Photos, space.AvailabilityHours, space.Status,
	)
	if err != nil {
		log.Error().
			Str("request_id", middleware.GetRequestID(ctx)).
			Str("query", "spaces.create").
			Str("space_id", space.ID.String()).
			Str("host_id", space.HostID.String()).
			Err(err).
			Msg("space insert failed")
		return fmt.Errorf("space repository create: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Space, error) {
	query := `SELECT ` + spaceSelectColumns + ` FROM spaces WHERE id = $1`

	var s Space
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSpaceNotFound
		}
		return nil, fmt.Errorf("space repository get by id: %w", err)
	}

	return &s, nil
}

func (r *repository) Update(ctx context.Context, space *Space) error {
	query := `
		UPDATE spaces SET
			title = $2, description = $3, category = $4,
			street = $5, city = $6, country = $7, latitude = $8, longitude = $9,
			capacity = $10, price_per_hour = $11, currency = $12,
			amenities = $13, photos = $14, availability_hours = $15,
			updated_at = now()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		space.ID, space.Title, space.Description, space.Category,
		space.Street, space.City, space.Country, space.Latitude, space.Longitude,
		space.Capacity, space.PricePerHour, space.Currency,
		space.Amenities, space.Photos, space.AvailabilityHours,
	)
	if err != nil {
		return fmt.Errorf("space repository update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSpaceNotFound
	}

	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE spaces SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("space repository update status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSpaceNotFound
	}

	return nil
}

func (r *repository) List(ctx context.Context, filter *Filter, pagination *Pagination) ([]*Space, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	idx := 1

	addArg := func(clause string, value interface{}) {
		where = append(where, fmt.Sprintf(clause, idx))
		args = append(args, value)
		idx++
	}

	if filter != nil {
		if filter.Status != nil {
			addArg("status = $%d", *filter.Status)
		}
		if filter.City != nil {
			addArg("lower(city) = lower($%d)", *filter.City)
		}
		if filter.PriceMin != nil {
			addArg("price_per_hour >= $%d", *filter.PriceMin)
		}
		if filter.PriceMax != nil {
			addArg("price_per_hour <= $%d", *filter.PriceMax)
		}
		if filter.MinCapacity != nil {
			addArg("capacity >= $%d", *filter.MinCapacity)
		}
		if filter.HostID != nil {
			addArg("host_id = $%d", *filter.HostID)
		}
		if filter.Query != nil && strings.TrimSpace(*filter.Query) != "" {
			where = append(where, fmt.Sprintf(
				"(title ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')", idx, idx))
			args = append(args, strings.TrimSpace(*filter.Query))
			idx++
		}
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM spaces WHERE " + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("space repository count: %w", err)
	}

	page, limit := normalizePagination(pagination)
	query := fmt.Sprintf(
		"SELECT %s FROM spaces WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		spaceSelectColumns, whereClause, idx, idx+1,
	)
	args = append(args, limit, (page-1)*limit)

	var spaces []*Space
	if err := r.db.SelectContext(ctx, &spaces, query, args...); err != nil {
		return nil, 0, fmt.Errorf("space repository list: %w", err)
	}

	return spaces, total, nil
}

func (r *repository) ListByHost(ctx context.Context, hostID uuid.UUID, pagination *Pagination) ([]*Space, int, error) {
	return r.List(ctx, &Filter{HostID: &hostID}, pagination)
}

func normalizePagination(p *Pagination) (page, limit int) {
	page, limit = 1, 20
	if p != nil {
		if p.Page > 0 {
			page = p.Page
		}
		if p.Limit > 0 && p.Limit <= 100 {
			limit = p.Limit
		}
	}
	return page, limit
}
