package handlers

import (
	"net/http"

	"carwash-backend/internal/monitoring"
	"carwash-backend/pkg/utils"
)

type MonitoringHandler struct {
	Collector *monitoring.Collector
}

func NewMonitoringHandler(c *monitoring.Collector) *MonitoringHandler {
	return &MonitoringHandler{Collector: c}
}

// SystemStats returns one host/database metrics sample.
func (h *MonitoringHandler) SystemStats(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Collector.Snapshot(r.Context()))
}
