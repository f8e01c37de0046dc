package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carwash-backend/internal/apperr"
	"carwash-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EntryRepository struct {
	DB *pgxpool.Pool
}

func NewEntryRepository(db *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{DB: db}
}

// detailQuery joins the records every read endpoint returns alongside the
// entry row itself. Employees expose only the summary subset here.
const detailQuery = `
	SELECT e.id, e.vehicle_id, e.employee_id, e.service_id, e.status,
	       e.arrival_date, e.completion_date, e.notes, e.final_notes, e.created_at,
	       v.id, v.vin, v.internal_code, v.brand, v.model, v.color, v.year, v.created_at,
	       emp.id, emp.name, emp.email, emp.phone, emp.role, emp.is_active, emp.location_id,
	       s.id, s.name, s.description, s.price, s.duration, s.is_active, s.created_at
	FROM vehicle_entries e
	JOIN vehicles v ON v.id = e.vehicle_id
	JOIN employees emp ON emp.id = e.employee_id
	JOIN services s ON s.id = e.service_id`

func scanDetail(row pgx.Row) (*models.EntryDetail, error) {
	d := &models.EntryDetail{
		Vehicle:  &models.Vehicle{},
		Employee: &models.EmployeeSummary{},
		Service:  &models.Service{},
		Photos:   []models.Photo{},
		Updates:  []models.EntryUpdate{},
	}
	err := row.Scan(
		&d.ID, &d.VehicleID, &d.EmployeeID, &d.ServiceID, &d.Status,
		&d.ArrivalDate, &d.CompletionDate, &d.Notes, &d.FinalNotes, &d.CreatedAt,
		&d.Vehicle.ID, &d.Vehicle.VIN, &d.Vehicle.InternalCode, &d.Vehicle.Brand,
		&d.Vehicle.Model, &d.Vehicle.Color, &d.Vehicle.Year, &d.Vehicle.CreatedAt,
		&d.Employee.ID, &d.Employee.Name, &d.Employee.Email, &d.Employee.Phone,
		&d.Employee.Role, &d.Employee.IsActive, &d.Employee.LocationID,
		&d.Service.ID, &d.Service.Name, &d.Service.Description, &d.Service.Price,
		&d.Service.Duration, &d.Service.IsActive, &d.Service.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Create inserts the entry row. The partial unique index on pending entries
// turns a lost pre-check race into the same conflict the pre-check reports.
func (r *EntryRepository) Create(ctx context.Context, e *models.Entry) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO vehicle_entries(vehicle_id, employee_id, service_id, status, arrival_date, notes)
		 VALUES($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		e.VehicleID, e.EmployeeID, e.ServiceID, e.Status, e.ArrivalDate, e.Notes,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("Ya existe una orden pendiente para este vehículo")
		}
		if isForeignKeyViolation(err) {
			return apperr.Invalid("Datos inválidos")
		}
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

// HasPending reports whether the vehicle already has a pending entry. The
// friendly pre-check; the unique index is the backstop.
func (r *EntryRepository) HasPending(ctx context.Context, vehicleID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM vehicle_entries WHERE vehicle_id = $1 AND status = 'pending')`,
		vehicleID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check pending entry: %w", err)
	}
	return exists, nil
}

// GetRow returns the bare entry row without joins, for pre-update reads.
func (r *EntryRepository) GetRow(ctx context.Context, id int) (*models.Entry, error) {
	var e models.Entry
	err := r.DB.QueryRow(ctx,
		`SELECT id, vehicle_id, employee_id, service_id, status, arrival_date,
		        completion_date, notes, final_notes, created_at
		 FROM vehicle_entries WHERE id = $1`, id,
	).Scan(&e.ID, &e.VehicleID, &e.EmployeeID, &e.ServiceID, &e.Status,
		&e.ArrivalDate, &e.CompletionDate, &e.Notes, &e.FinalNotes, &e.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("Entrada no encontrada")
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return &e, nil
}

func (r *EntryRepository) Get(ctx context.Context, id int) (*models.EntryDetail, error) {
	d, err := scanDetail(r.DB.QueryRow(ctx, detailQuery+` WHERE e.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("No encontrado")
		}
		return nil, fmt.Errorf("get entry detail: %w", err)
	}
	if err := r.attach(ctx, []*models.EntryDetail{d}, true); err != nil {
		return nil, err
	}
	return d, nil
}

// List returns entries newest-arrival first. A non-nil employeeID restricts
// the result to that employee's entries (technician scoping).
func (r *EntryRepository) List(ctx context.Context, employeeID *int) ([]*models.EntryDetail, error) {
	q := detailQuery
	args := []any{}
	if employeeID != nil {
		q += ` WHERE e.employee_id = $1`
		args = append(args, *employeeID)
	}
	q += ` ORDER BY e.arrival_date DESC`
	return r.queryDetails(ctx, q, args, true)
}

// ListByVehicle returns the vehicle's full service history, newest first.
func (r *EntryRepository) ListByVehicle(ctx context.Context, vehicleID int) ([]*models.EntryDetail, error) {
	q := detailQuery + ` WHERE e.vehicle_id = $1 ORDER BY e.arrival_date DESC`
	return r.queryDetails(ctx, q, []any{vehicleID}, true)
}

// Recent returns the newest entries regardless of caller, without updates.
func (r *EntryRepository) Recent(ctx context.Context, limit int) ([]*models.EntryDetail, error) {
	q := detailQuery + ` ORDER BY e.arrival_date DESC LIMIT $1`
	return r.queryDetails(ctx, q, []any{limit}, false)
}

// ListWindow returns entries whose arrival falls in [from, to), optionally
// scoped to one employee. Used by the reporting rollups.
func (r *EntryRepository) ListWindow(ctx context.Context, from, to time.Time, employeeID *int) ([]*models.EntryDetail, error) {
	q := detailQuery + ` WHERE e.arrival_date >= $1 AND e.arrival_date < $2`
	args := []any{from, to}
	if employeeID != nil {
		q += ` AND e.employee_id = $3`
		args = append(args, *employeeID)
	}
	q += ` ORDER BY e.arrival_date DESC`
	return r.queryDetails(ctx, q, args, false)
}

// CountByStatus counts entries in one status, optionally scoped to an employee.
func (r *EntryRepository) CountByStatus(ctx context.Context, status string, employeeID *int) (int, error) {
	q := `SELECT COUNT(*) FROM vehicle_entries WHERE status = $1`
	args := []any{status}
	if employeeID != nil {
		q += ` AND employee_id = $2`
		args = append(args, *employeeID)
	}
	var n int
	if err := r.DB.QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

func (r *EntryRepository) queryDetails(ctx context.Context, q string, args []any, withUpdates bool) ([]*models.EntryDetail, error) {
	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	details := []*models.EntryDetail{}
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attach(ctx, details, withUpdates); err != nil {
		return nil, err
	}
	return details, nil
}

// attach batch-loads photos (and optionally updates) for the given entries.
// Every photo lands on its entry; update-attached photos also land on their
// update record.
func (r *EntryRepository) attach(ctx context.Context, details []*models.EntryDetail, withUpdates bool) error {
	if len(details) == 0 {
		return nil
	}
	byID := make(map[int]*models.EntryDetail, len(details))
	ids := make([]int, 0, len(details))
	for _, d := range details {
		byID[d.ID] = d
		ids = append(ids, d.ID)
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, entry_id, update_id, type, url FROM photos WHERE entry_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("load photos: %w", err)
	}
	photos := []models.Photo{}
	for rows.Next() {
		var p models.Photo
		if err := rows.Scan(&p.ID, &p.EntryID, &p.UpdateID, &p.Type, &p.URL); err != nil {
			rows.Close()
			return fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	for _, p := range photos {
		if d := byID[p.EntryID]; d != nil {
			d.Photos = append(d.Photos, p)
		}
	}

	if !withUpdates {
		return nil
	}

	rows, err = r.DB.Query(ctx,
		`SELECT id, entry_id, text, created_at FROM entry_updates WHERE entry_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("load updates: %w", err)
	}
	updateIndex := map[int]int{} // update id -> index within its entry's slice
	for rows.Next() {
		var u models.EntryUpdate
		if err := rows.Scan(&u.ID, &u.EntryID, &u.Text, &u.CreatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("scan update: %w", err)
		}
		if d := byID[u.EntryID]; d != nil {
			d.Updates = append(d.Updates, u)
			updateIndex[u.ID] = len(d.Updates) - 1
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	for _, p := range photos {
		if p.UpdateID == nil {
			continue
		}
		d := byID[p.EntryID]
		if d == nil {
			continue
		}
		if i, ok := updateIndex[*p.UpdateID]; ok {
			d.Updates[i].Photos = append(d.Updates[i].Photos, p)
		}
	}
	return nil
}

// AddPhotos inserts photo rows for an entry. Photos come pre-converted; a
// failed conversion never reaches this layer.
func (r *EntryRepository) AddPhotos(ctx context.Context, photos []models.Photo) error {
	for i := range photos {
		p := &photos[i]
		err := r.DB.QueryRow(ctx,
			`INSERT INTO photos(entry_id, update_id, type, url) VALUES($1, $2, $3, $4) RETURNING id`,
			p.EntryID, p.UpdateID, p.Type, p.URL,
		).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("add photo: %w", err)
		}
	}
	return nil
}

// Update applies the patch, persists any final photos, and bumps the
// employee's completed-service counter when asked, all in one transaction.
// incrementEmployeeID zero means no counter change.
func (r *EntryRepository) Update(ctx context.Context, id int, patch models.EntryPatch, photos []models.Photo, incrementEmployeeID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin entry update: %w", err)
	}
	defer tx.Rollback(ctx)

	sets := []string{}
	args := []any{}
	addSet := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Status != nil {
		addSet("status", *patch.Status)
	}
	if patch.ArrivalDate != nil {
		addSet("arrival_date", *patch.ArrivalDate)
	}
	if patch.CompletionDate != nil {
		addSet("completion_date", *patch.CompletionDate)
	}
	if patch.Notes != nil {
		addSet("notes", *patch.Notes)
	}
	if patch.FinalNotes != nil {
		addSet("final_notes", *patch.FinalNotes)
	}
	if len(sets) > 0 {
		args = append(args, id)
		q := fmt.Sprintf(`UPDATE vehicle_entries SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
		tag, err := tx.Exec(ctx, q, args...)
		if err != nil {
			if isUniqueViolation(err) {
				return apperr.Conflict("Ya existe una orden pendiente para este vehículo")
			}
			return fmt.Errorf("update entry: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("Entrada no encontrada")
		}
	}

	for i := range photos {
		p := &photos[i]
		err := tx.QueryRow(ctx,
			`INSERT INTO photos(entry_id, update_id, type, url) VALUES($1, $2, $3, $4) RETURNING id`,
			p.EntryID, p.UpdateID, p.Type, p.URL,
		).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("add final photo: %w", err)
		}
	}

	if incrementEmployeeID != 0 {
		if _, err := tx.Exec(ctx,
			`UPDATE employees SET completed_services = completed_services + 1 WHERE id = $1`,
			incrementEmployeeID); err != nil {
			return fmt.Errorf("increment completed services: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// CreateUpdate appends a free-text update to an entry.
func (r *EntryRepository) CreateUpdate(ctx context.Context, u *models.EntryUpdate) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO entry_updates(entry_id, text) VALUES($1, $2) RETURNING id, created_at`,
		u.EntryID, u.Text,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperr.NotFound("Entrada no encontrada")
		}
		return fmt.Errorf("create entry update: %w", err)
	}
	return nil
}

// GetUpdate returns one update with its photos.
func (r *EntryRepository) GetUpdate(ctx context.Context, id int) (*models.EntryUpdate, error) {
	var u models.EntryUpdate
	err := r.DB.QueryRow(ctx,
		`SELECT id, entry_id, text, created_at FROM entry_updates WHERE id = $1`, id,
	).Scan(&u.ID, &u.EntryID, &u.Text, &u.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("No encontrado")
		}
		return nil, fmt.Errorf("get entry update: %w", err)
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, entry_id, update_id, type, url FROM photos WHERE update_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("load update photos: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p models.Photo
		if err := rows.Scan(&p.ID, &p.EntryID, &p.UpdateID, &p.Type, &p.URL); err != nil {
			return nil, fmt.Errorf("scan update photo: %w", err)
		}
		u.Photos = append(u.Photos, p)
	}
	return &u, rows.Err()
}
