package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	apperr "github.com/clinicore/clinic-api/pkg/errors"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

type locationRepository struct {
	db *sqlx.DB
}

func NewLocationRepository(db *sqlx.DB) repository.LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, location *model.Location) error {
	query := `
		INSERT INTO locations (id, state, district, area, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	location.ID = uuid.New()
	location.CreatedAt = time.Now()
	location.UpdatedAt = location.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		location.ID,
		location.State,
		location.District,
		location.Area,
		location.CreatedAt,
		location.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.NewDuplicate("location already exists")
		}
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

func (r *locationRepository) List(ctx context.Context) ([]*model.Location, error) {
	query := `SELECT * FROM locations ORDER BY state, district, area`

	locations := []*model.Location{}
	if err := r.db.SelectContext(ctx, &locations, query); err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

func (r *locationRepository) TripleExists(ctx context.Context, state, district, area string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM locations
			WHERE state = $1 AND district = $2 AND area = $3
		)
	`
	if err := r.db.GetContext(ctx, &exists, query, state, district, area); err != nil {
		return false, fmt.Errorf("failed to check location: %w", err)
	}
	return exists, nil
}
