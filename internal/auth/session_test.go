package auth

import (
	"testing"
	"time"
)

func TestSessionIssueDecode(t *testing.T) {
	m := NewSessionManager("test-secret", "carwash", 8)

	token, err := m.Issue(42, "technician")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	sess, err := m.Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if sess.EmployeeID != 42 {
		t.Fatalf("EmployeeID = %d, want 42", sess.EmployeeID)
	}
	if sess.Role != "technician" {
		t.Fatalf("Role = %q, want technician", sess.Role)
	}
}

func TestSessionDecodeRejectsWrongSecret(t *testing.T) {
	token, err := NewSessionManager("secret-a", "carwash", 8).Issue(1, "admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewSessionManager("secret-b", "carwash", 8).Decode(token); err == nil {
		t.Fatalf("expected decode failure with other secret")
	}
}

func TestSessionDecodeRejectsGarbage(t *testing.T) {
	m := NewSessionManager("test-secret", "carwash", 8)
	if _, err := m.Decode("not.a.token"); err == nil {
		t.Fatalf("expected decode failure")
	}
}

func TestSessionManagerDefaultTTL(t *testing.T) {
	m := NewSessionManager("test-secret", "carwash", 0)
	if m.TTL() != 8*time.Hour {
		t.Fatalf("TTL = %v, want 8h default", m.TTL())
	}
}
