package services

import (
	"context"
	"testing"

	"carwash-backend/internal/apperr"
	"carwash-backend/internal/auth"
	"carwash-backend/internal/models"
)

type fakeEmployeeFinder struct {
	byID       map[int]*models.Employee
	byUsername map[string]*models.Employee
	byEmail    map[string]*models.Employee
}

func newFakeEmployeeFinder(emps ...*models.Employee) *fakeEmployeeFinder {
	f := &fakeEmployeeFinder{
		byID:       map[int]*models.Employee{},
		byUsername: map[string]*models.Employee{},
		byEmail:    map[string]*models.Employee{},
	}
	for _, e := range emps {
		f.byID[e.ID] = e
		if e.Username != "" {
			f.byUsername[e.Username] = e
		}
		if e.Email != "" {
			f.byEmail[e.Email] = e
		}
	}
	return f
}

func (f *fakeEmployeeFinder) Get(ctx context.Context, id int) (*models.Employee, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, apperr.NotFound("Empleado no encontrado")
}

func (f *fakeEmployeeFinder) GetByUsername(ctx context.Context, username string) (*models.Employee, error) {
	if e, ok := f.byUsername[username]; ok {
		return e, nil
	}
	return nil, apperr.NotFound("Empleado no encontrado")
}

func (f *fakeEmployeeFinder) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	if e, ok := f.byEmail[email]; ok {
		return e, nil
	}
	return nil, apperr.NotFound("Empleado no encontrado")
}

func testEmployee(t *testing.T, password string) *models.Employee {
	t.Helper()
	hash := ""
	if password != "" {
		var err error
		hash, err = auth.HashPassword(password)
		if err != nil {
			t.Fatalf("HashPassword: %v", err)
		}
	}
	return &models.Employee{
		ID:           1,
		Name:         "Ana Admin",
		Email:        "ana@carwash.local",
		Username:     "ana",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
}

func newTestAuthService(t *testing.T, emps ...*models.Employee) *AuthService {
	t.Helper()
	return NewAuthService(newFakeEmployeeFinder(emps...), auth.NewSessionManager("test-secret", "carwash", 1))
}

func TestLoginByUsername(t *testing.T) {
	svc := newTestAuthService(t, testEmployee(t, "admin123"))

	user, token, err := svc.Login(context.Background(), &models.LoginRequest{Username: "ana", Password: "admin123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected session token")
	}
	if user.ID != 1 || user.Role != models.RoleAdmin {
		t.Fatalf("user = %+v", user)
	}
	if user.Language != "es" {
		t.Fatalf("language = %q, want es default", user.Language)
	}
}

func TestLoginFallsBackToEmail(t *testing.T) {
	svc := newTestAuthService(t, testEmployee(t, "admin123"))

	user, _, err := svc.Login(context.Background(), &models.LoginRequest{Username: "ana@carwash.local", Password: "admin123"})
	if err != nil {
		t.Fatalf("Login by email: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("user = %+v", user)
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	svc := newTestAuthService(t)
	_, _, err := svc.Login(context.Background(), &models.LoginRequest{Username: "ana"})
	if apperr.Message(err) != "Credenciales requeridas" {
		t.Fatalf("message = %q", apperr.Message(err))
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestAuthService(t)
	_, _, err := svc.Login(context.Background(), &models.LoginRequest{Username: "nobody", Password: "x"})
	if apperr.KindOf(err) != apperr.KindUnauthorized || apperr.Message(err) != "Usuario inválido" {
		t.Fatalf("err = %v", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	emp := testEmployee(t, "admin123")
	emp.IsActive = false
	svc := newTestAuthService(t, emp)

	_, _, err := svc.Login(context.Background(), &models.LoginRequest{Username: "ana", Password: "admin123"})
	if apperr.Message(err) != "Usuario inválido" {
		t.Fatalf("message = %q", apperr.Message(err))
	}
}

func TestLoginUserWithoutPassword(t *testing.T) {
	svc := newTestAuthService(t, testEmployee(t, ""))

	_, _, err := svc.Login(context.Background(), &models.LoginRequest{Username: "ana", Password: "anything"})
	if apperr.Message(err) != "Usuario sin contraseña" {
		t.Fatalf("message = %q", apperr.Message(err))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(t, testEmployee(t, "admin123"))

	_, _, err := svc.Login(context.Background(), &models.LoginRequest{Username: "ana", Password: "wrong"})
	if apperr.KindOf(err) != apperr.KindUnauthorized || apperr.Message(err) != "Credenciales inválidas" {
		t.Fatalf("err = %v", err)
	}
}

func TestMeAnswersNilForAnonymous(t *testing.T) {
	svc := newTestAuthService(t)

	user, err := svc.Me(context.Background(), nil)
	if err != nil || user != nil {
		t.Fatalf("Me(nil) = %v, %v; want nil, nil", user, err)
	}

	// A session pointing at a deleted employee is equally anonymous.
	user, err = svc.Me(context.Background(), &auth.Session{EmployeeID: 99, Role: models.RoleAdmin})
	if err != nil || user != nil {
		t.Fatalf("Me(stale) = %v, %v; want nil, nil", user, err)
	}
}

func TestMeResolvesEmployee(t *testing.T) {
	svc := newTestAuthService(t, testEmployee(t, "admin123"))

	user, err := svc.Me(context.Background(), &auth.Session{EmployeeID: 1, Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user == nil || user.Name != "Ana Admin" {
		t.Fatalf("user = %+v", user)
	}
}
