package repositories

import (
	"context"
	"fmt"

	"carwash-backend/internal/apperr"
	"carwash-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceRepository struct {
	DB *pgxpool.Pool
}

func NewServiceRepository(db *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{DB: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *models.Service) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO services(name, description, price, duration, is_active)
		 VALUES($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		s.Name, s.Description, s.Price, s.Duration, s.IsActive,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	return nil
}

func (r *ServiceRepository) Get(ctx context.Context, id int) (*models.Service, error) {
	var s models.Service
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, description, price, duration, is_active, created_at
		 FROM services WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.Duration, &s.IsActive, &s.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("Servicio no encontrado")
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &s, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]*models.Service, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, description, price, duration, is_active, created_at
		 FROM services ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	services := []*models.Service{}
	for rows.Next() {
		var s models.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.Duration, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, &s)
	}
	return services, rows.Err()
}

func (r *ServiceRepository) Update(ctx context.Context, s *models.Service) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE services SET name = $1, description = $2, price = $3, duration = $4, is_active = $5
		 WHERE id = $6`,
		s.Name, s.Description, s.Price, s.Duration, s.IsActive, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Servicio no encontrado")
	}
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Servicio no encontrado")
	}
	return nil
}

func (r *ServiceRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM services`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count services: %w", err)
	}
	return n, nil
}
