package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Invalid("Datos inválidos"), http.StatusBadRequest},
		{Unauthorized("Credenciales inválidas"), http.StatusUnauthorized},
		{NotFound("No encontrado"), http.StatusNotFound},
		{Conflict("VIN ya existe"), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
		{Wrap(KindInternal, "Error de servidor", errors.New("boom")), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := Status(c.err); got != c.want {
			t.Fatalf("Status(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestMessageHidesUntypedErrors(t *testing.T) {
	if got := Message(errors.New("pq: syntax error")); got != "Error de servidor" {
		t.Fatalf("Message = %q, want generic server error", got)
	}
	if got := Message(NotFound("Entrada no encontrada")); got != "Entrada no encontrada" {
		t.Fatalf("Message = %q, want typed message", got)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindInternal, "Error de servidor", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be reachable via errors.Is")
	}
	if KindOf(err) != KindInternal {
		t.Fatalf("KindOf = %v, want KindInternal", KindOf(err))
	}
}

func TestKindOfUntyped(t *testing.T) {
	if KindOf(errors.New("boom")) != KindInternal {
		t.Fatalf("untyped errors must classify as internal")
	}
}
