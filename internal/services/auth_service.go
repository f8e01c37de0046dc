package services

import (
	"context"

	"carwash-backend/internal/apperr"
	"carwash-backend/internal/auth"
	"carwash-backend/internal/models"
)

// EmployeeFinder is the lookup surface authentication needs.
type EmployeeFinder interface {
	Get(ctx context.Context, id int) (*models.Employee, error)
	GetByEmail(ctx context.Context, email string) (*models.Employee, error)
	GetByUsername(ctx context.Context, username string) (*models.Employee, error)
}

type AuthService struct {
	Employees EmployeeFinder
	Sessions  *auth.SessionManager
}

func NewAuthService(employees EmployeeFinder, sessions *auth.SessionManager) *AuthService {
	return &AuthService{Employees: employees, Sessions: sessions}
}

// Login authenticates by username or email and returns the signed session
// token alongside the public employee fields.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.SessionUser, string, error) {
	if req.Username == "" || req.Password == "" {
		return nil, "", apperr.Invalid("Credenciales requeridas")
	}

	emp, err := s.Employees.GetByUsername(ctx, req.Username)
	if err != nil {
		if apperr.KindOf(err) != apperr.KindNotFound {
			return nil, "", err
		}
		emp, err = s.Employees.GetByEmail(ctx, req.Username)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				return nil, "", apperr.Unauthorized("Usuario inválido")
			}
			return nil, "", err
		}
	}
	if !emp.IsActive {
		return nil, "", apperr.Unauthorized("Usuario inválido")
	}
	if emp.PasswordHash == "" {
		return nil, "", apperr.Unauthorized("Usuario sin contraseña")
	}
	if !auth.VerifyPassword(emp.PasswordHash, req.Password) {
		return nil, "", apperr.Unauthorized("Credenciales inválidas")
	}

	token, err := s.Sessions.Issue(emp.ID, emp.Role)
	if err != nil {
		return nil, "", err
	}
	return sessionUser(emp), token, nil
}

// Me resolves the session identity to its employee record. A missing or
// stale session yields (nil, nil): the endpoint answers null, never an error.
func (s *AuthService) Me(ctx context.Context, sess *auth.Session) (*models.SessionUser, error) {
	if sess == nil {
		return nil, nil
	}
	emp, err := s.Employees.Get(ctx, sess.EmployeeID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, nil
		}
		return nil, err
	}
	return sessionUser(emp), nil
}

func sessionUser(e *models.Employee) *models.SessionUser {
	lang := e.Language
	if lang == "" {
		lang = "es"
	}
	return &models.SessionUser{ID: e.ID, Name: e.Name, Role: e.Role, Language: lang}
}
