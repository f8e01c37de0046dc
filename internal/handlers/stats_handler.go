package handlers

import (
	"net/http"

	"carwash-backend/internal/middleware"
	"carwash-backend/internal/services"
	"carwash-backend/pkg/utils"
)

type StatsHandler struct {
	Service *services.StatsService
}

func NewStatsHandler(s *services.StatsService) *StatsHandler {
	return &StatsHandler{Service: s}
}

func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	stats, err := h.Service.Compute(r.Context(), sess)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}
