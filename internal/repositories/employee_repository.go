package repositories

import (
	"context"
	"fmt"

	"carwash-backend/internal/apperr"
	"carwash-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

const employeeColumns = `id, name, email, COALESCE(username, ''), COALESCE(password_hash, ''), phone, role, is_active, language, location_id, completed_services, created_at`

type EmployeeRepository struct {
	DB *pgxpool.Pool
}

func NewEmployeeRepository(db *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{DB: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *models.Employee) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO employees(name, email, username, password_hash, phone, role, is_active, language, location_id)
		 VALUES($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		e.Name, e.Email, e.Username, e.PasswordHash, e.Phone, e.Role, e.IsActive, e.Language, e.LocationID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("Email ya existe")
		}
		if isForeignKeyViolation(err) {
			return apperr.Invalid("Ubicación inválida")
		}
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) Get(ctx context.Context, id int) (*models.Employee, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *EmployeeRepository) GetByUsername(ctx context.Context, username string) (*models.Employee, error) {
	return r.getBy(ctx, "username = $1", username)
}

func (r *EmployeeRepository) getBy(ctx context.Context, where string, arg interface{}) (*models.Employee, error) {
	var e models.Employee
	err := r.DB.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE `+where, arg,
	).Scan(&e.ID, &e.Name, &e.Email, &e.Username, &e.PasswordHash, &e.Phone,
		&e.Role, &e.IsActive, &e.Language, &e.LocationID, &e.CompletedServices, &e.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("Empleado no encontrado")
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*models.Employee, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+employeeColumns+` FROM employees ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	employees := []*models.Employee{}
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Username, &e.PasswordHash, &e.Phone,
			&e.Role, &e.IsActive, &e.Language, &e.LocationID, &e.CompletedServices, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, &e)
	}
	return employees, rows.Err()
}

func (r *EmployeeRepository) Update(ctx context.Context, e *models.Employee) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE employees
		 SET name = $1, email = $2, username = NULLIF($3, ''), password_hash = NULLIF($4, ''),
		     phone = $5, role = $6, is_active = $7, language = $8, location_id = $9
		 WHERE id = $10`,
		e.Name, e.Email, e.Username, e.PasswordHash, e.Phone, e.Role, e.IsActive, e.Language, e.LocationID, e.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("Email ya existe")
		}
		if isForeignKeyViolation(err) {
			return apperr.Invalid("Ubicación inválida")
		}
		return fmt.Errorf("update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Empleado no encontrado")
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Empleado no encontrado")
	}
	return nil
}

func (r *EmployeeRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return n, nil
}
