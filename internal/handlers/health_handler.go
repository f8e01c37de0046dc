package handlers

import (
	"net/http"

	"carwash-backend/internal/health"
	"carwash-backend/pkg/utils"
)

type HealthHandler struct {
	Checker *health.Checker
}

func NewHealthHandler(checker *health.Checker) *HealthHandler {
	return &HealthHandler{Checker: checker}
}

// Liveness answers ok without touching dependencies.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness reports database reachability.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.Check(r.Context())
	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}
