package repositories

import (
	"context"
	"fmt"

	"carwash-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SettingsRepository struct {
	DB *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

const settingsColumns = `id, company_name, ein, address, phone, email, hours, currency, logo`

// GetOrCreate returns the singleton settings row, inserting the default
// row on first access.
func (r *SettingsRepository) GetOrCreate(ctx context.Context) (*models.Settings, error) {
	s, err := r.get(ctx)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}

	s = &models.Settings{}
	err = r.DB.QueryRow(ctx,
		`INSERT INTO settings DEFAULT VALUES RETURNING `+settingsColumns,
	).Scan(&s.ID, &s.CompanyName, &s.EIN, &s.Address, &s.Phone, &s.Email, &s.Hours, &s.Currency, &s.Logo)
	if err != nil {
		return nil, fmt.Errorf("create settings: %w", err)
	}
	return s, nil
}

func (r *SettingsRepository) get(ctx context.Context) (*models.Settings, error) {
	var s models.Settings
	err := r.DB.QueryRow(ctx,
		`SELECT `+settingsColumns+` FROM settings ORDER BY id LIMIT 1`,
	).Scan(&s.ID, &s.CompanyName, &s.EIN, &s.Address, &s.Phone, &s.Email, &s.Hours, &s.Currency, &s.Logo)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

func (r *SettingsRepository) Update(ctx context.Context, s *models.Settings) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE settings SET company_name = $1, ein = $2, address = $3, phone = $4,
		        email = $5, hours = $6, currency = $7, logo = $8
		 WHERE id = $9`,
		s.CompanyName, s.EIN, s.Address, s.Phone, s.Email, s.Hours, s.Currency, s.Logo, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
