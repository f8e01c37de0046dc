package repositories

import (
	"context"
	"fmt"

	"carwash-backend/internal/apperr"
	"carwash-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CarModelRepository struct {
	DB *pgxpool.Pool
}

func NewCarModelRepository(db *pgxpool.Pool) *CarModelRepository {
	return &CarModelRepository{DB: db}
}

func (r *CarModelRepository) Create(ctx context.Context, m *models.CarModel) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO car_models(brand_id, name, is_active) VALUES($1, $2, $3) RETURNING id, created_at`,
		m.BrandID, m.Name, m.IsActive,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperr.Invalid("Marca inválida")
		}
		return fmt.Errorf("create car model: %w", err)
	}
	return nil
}

// List returns models, optionally restricted to one brand.
func (r *CarModelRepository) List(ctx context.Context, brandID *int) ([]*models.CarModel, error) {
	query := `SELECT id, brand_id, name, is_active, created_at FROM car_models`
	args := []interface{}{}
	if brandID != nil {
		query += ` WHERE brand_id = $1`
		args = append(args, *brandID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list car models: %w", err)
	}
	defer rows.Close()

	carModels := []*models.CarModel{}
	for rows.Next() {
		var m models.CarModel
		if err := rows.Scan(&m.ID, &m.BrandID, &m.Name, &m.IsActive, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan car model: %w", err)
		}
		carModels = append(carModels, &m)
	}
	return carModels, rows.Err()
}

func (r *CarModelRepository) Update(ctx context.Context, m *models.CarModel) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE car_models SET brand_id = $1, name = $2, is_active = $3 WHERE id = $4`,
		m.BrandID, m.Name, m.IsActive, m.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperr.Invalid("Marca inválida")
		}
		return fmt.Errorf("update car model: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Modelo no encontrado")
	}
	return nil
}

func (r *CarModelRepository) Get(ctx context.Context, id int) (*models.CarModel, error) {
	var m models.CarModel
	err := r.DB.QueryRow(ctx,
		`SELECT id, brand_id, name, is_active, created_at FROM car_models WHERE id = $1`, id,
	).Scan(&m.ID, &m.BrandID, &m.Name, &m.IsActive, &m.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("Modelo no encontrado")
		}
		return nil, fmt.Errorf("get car model: %w", err)
	}
	return &m, nil
}

func (r *CarModelRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM car_models WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete car model: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Modelo no encontrado")
	}
	return nil
}
