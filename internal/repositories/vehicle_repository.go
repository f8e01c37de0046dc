package repositories

import (
	"context"
	"fmt"

	"carwash-backend/internal/apperr"
	"carwash-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VehicleRepository struct {
	DB *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{DB: db}
}

func (r *VehicleRepository) Create(ctx context.Context, v *models.Vehicle) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO vehicles(vin, internal_code, brand, model, color, year)
		 VALUES($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		v.VIN, v.InternalCode, v.Brand, v.Model, v.Color, v.Year,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			if constraintName(err) == "vehicles_internal_code_key" {
				return apperr.Conflict("Código interno ya existe")
			}
			return apperr.Conflict("VIN ya existe")
		}
		return fmt.Errorf("create vehicle: %w", err)
	}
	return nil
}

func (r *VehicleRepository) Get(ctx context.Context, id int) (*models.Vehicle, error) {
	var v models.Vehicle
	err := r.DB.QueryRow(ctx,
		`SELECT id, vin, internal_code, brand, model, color, year, created_at
		 FROM vehicles WHERE id = $1`, id,
	).Scan(&v.ID, &v.VIN, &v.InternalCode, &v.Brand, &v.Model, &v.Color, &v.Year, &v.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("No encontrado")
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

// FindByVINOrCode matches either identifier against both columns, the way the
// scanner sends whichever value it managed to read.
func (r *VehicleRepository) FindByVINOrCode(ctx context.Context, vin, code string) (*models.Vehicle, error) {
	var v models.Vehicle
	err := r.DB.QueryRow(ctx,
		`SELECT id, vin, internal_code, brand, model, color, year, created_at
		 FROM vehicles
		 WHERE vin = ANY($1) OR internal_code = ANY($1)
		 LIMIT 1`, nonEmpty(vin, code),
	).Scan(&v.ID, &v.VIN, &v.InternalCode, &v.Brand, &v.Model, &v.Color, &v.Year, &v.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("No encontrado")
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	return &v, nil
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (r *VehicleRepository) List(ctx context.Context) ([]*models.Vehicle, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, vin, internal_code, brand, model, color, year, created_at
		 FROM vehicles ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []*models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.VIN, &v.InternalCode, &v.Brand, &v.Model, &v.Color, &v.Year, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, &v)
	}
	return vehicles, rows.Err()
}

func (r *VehicleRepository) Update(ctx context.Context, v *models.Vehicle) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE vehicles SET vin = $1, internal_code = $2, brand = $3, model = $4, color = $5, year = $6
		 WHERE id = $7`,
		v.VIN, v.InternalCode, v.Brand, v.Model, v.Color, v.Year, v.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if constraintName(err) == "vehicles_internal_code_key" {
				return apperr.Conflict("Código interno ya existe")
			}
			return apperr.Conflict("VIN ya existe")
		}
		return fmt.Errorf("update vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("No encontrado")
	}
	return nil
}

func (r *VehicleRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count vehicles: %w", err)
	}
	return n, nil
}

// MediaURLs collects every photo URL hanging off the vehicle's entries, so
// files can be cleaned up after the row cascade commits.
func (r *VehicleRepository) MediaURLs(ctx context.Context, vehicleID int) ([]string, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT p.url
		 FROM photos p
		 JOIN vehicle_entries e ON e.id = p.entry_id
		 WHERE e.vehicle_id = $1`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("collect media urls: %w", err)
	}
	defer rows.Close()

	urls := []string{}
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan media url: %w", err)
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

// DeleteCascade removes the vehicle and everything hanging off it in one
// transaction: photos, then updates, then entries, then the vehicle itself.
func (r *VehicleRepository) DeleteCascade(ctx context.Context, vehicleID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin cascade: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM photos WHERE entry_id IN (SELECT id FROM vehicle_entries WHERE vehicle_id = $1)`,
		vehicleID); err != nil {
		return fmt.Errorf("cascade photos: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM entry_updates WHERE entry_id IN (SELECT id FROM vehicle_entries WHERE vehicle_id = $1)`,
		vehicleID); err != nil {
		return fmt.Errorf("cascade updates: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM vehicle_entries WHERE vehicle_id = $1`, vehicleID); err != nil {
		return fmt.Errorf("cascade entries: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, vehicleID)
	if err != nil {
		return fmt.Errorf("cascade vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("No encontrado")
	}

	return tx.Commit(ctx)
}
