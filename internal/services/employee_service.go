package services

import (
	"context"

	"carwash-backend/internal/apperr"
	"carwash-backend/internal/auth"
	"carwash-backend/internal/models"
	"carwash-backend/internal/repositories"
)

type EmployeeService struct {
	Repo *repositories.EmployeeRepository
}

func NewEmployeeService(repo *repositories.EmployeeRepository) *EmployeeService {
	return &EmployeeService{Repo: repo}
}

// CreateEmployee registers an employee with a freshly salted password hash.
// Role defaults to technician, isActive to true.
func (s *EmployeeService) CreateEmployee(ctx context.Context, req *models.CreateEmployeeRequest) (*models.Employee, error) {
	if req.Name == "" || req.Email == "" || req.Username == "" || req.Password == "" || req.Phone == "" {
		return nil, apperr.Invalid("Datos inválidos")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleTechnician
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	emp := &models.Employee{
		Name:         req.Name,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		Phone:        req.Phone,
		Role:         role,
		IsActive:     active,
		Language:     "es",
		LocationID:   req.LocationID,
	}
	if err := s.Repo.Create(ctx, emp); err != nil {
		return nil, err
	}
	// Username stays out of list/create responses.
	emp.Username = ""
	return emp, nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id int) (*models.Employee, error) {
	return s.Repo.Get(ctx, id)
}

func (s *EmployeeService) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	employees, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range employees {
		e.Username = ""
	}
	return employees, nil
}

// UpdateEmployee applies a partial update. A non-empty password triggers a
// rehash; a zero locationId clears the assignment.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id int, req *models.UpdateEmployeeRequest) (*models.Employee, error) {
	emp, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Email != nil {
		emp.Email = *req.Email
	}
	if req.Username != nil {
		emp.Username = *req.Username
	}
	if req.Phone != nil {
		emp.Phone = *req.Phone
	}
	if req.Role != nil {
		emp.Role = *req.Role
	}
	if req.Language != nil && (*req.Language == "es" || *req.Language == "en") {
		emp.Language = *req.Language
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}
	if req.LocationID != nil {
		if *req.LocationID == 0 {
			emp.LocationID = nil
		} else {
			emp.LocationID = req.LocationID
		}
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		emp.PasswordHash = hash
	}

	if err := s.Repo.Update(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}
