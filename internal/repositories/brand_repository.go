package repositories

import (
	"context"
	"fmt"

	"carwash-backend/internal/apperr"
	"carwash-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BrandRepository struct {
	DB *pgxpool.Pool
}

func NewBrandRepository(db *pgxpool.Pool) *BrandRepository {
	return &BrandRepository{DB: db}
}

func (r *BrandRepository) Create(ctx context.Context, b *models.Brand) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO brands(name, is_active) VALUES($1, $2) RETURNING id, created_at`,
		b.Name, b.IsActive,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("Marca ya existe")
		}
		return fmt.Errorf("create brand: %w", err)
	}
	return nil
}

func (r *BrandRepository) List(ctx context.Context) ([]*models.Brand, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, is_active, created_at FROM brands ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	brands := []*models.Brand{}
	for rows.Next() {
		var b models.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.IsActive, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, &b)
	}
	return brands, rows.Err()
}

func (r *BrandRepository) Update(ctx context.Context, b *models.Brand) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE brands SET name = $1, is_active = $2 WHERE id = $3`,
		b.Name, b.IsActive, b.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("Marca ya existe")
		}
		return fmt.Errorf("update brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Marca no encontrada")
	}
	return nil
}

func (r *BrandRepository) Get(ctx context.Context, id int) (*models.Brand, error) {
	var b models.Brand
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, is_active, created_at FROM brands WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.IsActive, &b.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("Marca no encontrada")
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

func (r *BrandRepository) GetByName(ctx context.Context, name string) (*models.Brand, error) {
	var b models.Brand
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, is_active, created_at FROM brands WHERE name = $1`, name,
	).Scan(&b.ID, &b.Name, &b.IsActive, &b.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("Marca no encontrada")
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

func (r *BrandRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Marca no encontrada")
	}
	return nil
}
