package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	stored, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.Contains(stored, ":") {
		t.Fatalf("expected salt:hash format, got %q", stored)
	}
	if !VerifyPassword(stored, "admin123") {
		t.Fatalf("expected verify ok")
	}
	if VerifyPassword(stored, "wrong") {
		t.Fatalf("expected verify fail for wrong password")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestVerifyPasswordMalformedStored(t *testing.T) {
	for _, stored := range []string{"", "nocolon", "zz:zz", "abcd:zz"} {
		if VerifyPassword(stored, "admin123") {
			t.Fatalf("expected verify fail for stored %q", stored)
		}
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	a, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	b, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct salts to produce distinct stored values")
	}
}
