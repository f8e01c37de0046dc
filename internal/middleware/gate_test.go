package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"carwash-backend/internal/auth"
	"carwash-backend/internal/models"
)

const testCookie = "carwash_session"

func gateStack(t *testing.T) (http.Handler, *auth.SessionManager) {
	t.Helper()
	mgr := auth.NewSessionManager("test-secret", "carwash", 1)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return WithSession(mgr, testCookie)(PageGate(next)), mgr
}

func gateRequest(t *testing.T, mgr *auth.SessionManager, path string, employeeID int, role string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if role != "" {
		token, err := mgr.Issue(employeeID, role)
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	}
	return req
}

func TestPageGateRedirectsAnonymous(t *testing.T) {
	handler, mgr := gateStack(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, gateRequest(t, mgr, "/orders", 0, ""))
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want redirect", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("location = %q, want /login", loc)
	}
}

func TestPageGatePassesPublicPaths(t *testing.T) {
	handler, mgr := gateStack(t)

	for _, path := range []string{"/login", "/api/entries", "/ws/entries", "/uploads/x.png", "/static/app.js", "/metrics", "/health"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, gateRequest(t, mgr, path, 0, ""))
		if rec.Code != http.StatusOK {
			t.Fatalf("path %q status = %d, want pass-through", path, rec.Code)
		}
	}
}

func TestPageGateConfinesTechnician(t *testing.T) {
	handler, mgr := gateStack(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, gateRequest(t, mgr, "/orders", 7, models.RoleTechnician))
	if rec.Code != http.StatusOK {
		t.Fatalf("/orders status = %d, want allowed", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, gateRequest(t, mgr, "/employees", 7, models.RoleTechnician))
	if rec.Code != http.StatusFound {
		t.Fatalf("/employees status = %d, want redirect", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/orders" {
		t.Fatalf("location = %q, want /orders", loc)
	}
}

func TestPageGateAdminUnrestricted(t *testing.T) {
	handler, mgr := gateStack(t)

	for _, path := range []string{"/", "/orders", "/employees", "/settings"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, gateRequest(t, mgr, path, 1, models.RoleAdmin))
		if rec.Code != http.StatusOK {
			t.Fatalf("path %q status = %d, want allowed", path, rec.Code)
		}
	}
}

func TestPageGateIgnoresTamperedCookie(t *testing.T) {
	handler, _ := gateStack(t)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "tampered"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want redirect for invalid cookie", rec.Code)
	}
}
