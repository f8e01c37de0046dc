package repositories

import (
	"context"
	"fmt"

	"carwash-backend/internal/apperr"
	"carwash-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LocationRepository struct {
	DB *pgxpool.Pool
}

func NewLocationRepository(db *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{DB: db}
}

func (r *LocationRepository) Create(ctx context.Context, l *models.Location) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO locations(name, address, city, country, is_active)
		 VALUES($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		l.Name, l.Address, l.City, l.Country, l.IsActive,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

func (r *LocationRepository) Get(ctx context.Context, id int) (*models.Location, error) {
	var l models.Location
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, address, city, country, is_active, created_at
		 FROM locations WHERE id = $1`, id,
	).Scan(&l.ID, &l.Name, &l.Address, &l.City, &l.Country, &l.IsActive, &l.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("Ubicación no encontrada")
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

func (r *LocationRepository) List(ctx context.Context) ([]*models.Location, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, address, city, country, is_active, created_at
		 FROM locations ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	locations := []*models.Location{}
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.City, &l.Country, &l.IsActive, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, &l)
	}
	return locations, rows.Err()
}

func (r *LocationRepository) Update(ctx context.Context, l *models.Location) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE locations SET name = $1, address = $2, city = $3, country = $4, is_active = $5
		 WHERE id = $6`,
		l.Name, l.Address, l.City, l.Country, l.IsActive, l.ID,
	)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Ubicación no encontrada")
	}
	return nil
}

func (r *LocationRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Ubicación no encontrada")
	}
	return nil
}
