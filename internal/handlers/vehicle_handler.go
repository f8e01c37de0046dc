package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"carwash-backend/internal/apperr"
	"carwash-backend/internal/models"
	"carwash-backend/internal/services"
	"carwash-backend/pkg/utils"
)

type VehicleHandler struct {
	Service *services.VehicleService
}

func NewVehicleHandler(s *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{Service: s}
}

func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVehicleRequest
	json.NewDecoder(r.Body).Decode(&req)

	vehicle, err := h.Service.CreateVehicle(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Service.ListVehicles(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}
	vehicle, err := h.Service.GetVehicle(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, vehicle)
}

// FindByCode resolves a scanner read: ?vin= and/or ?code=. The response
// carries a found flag so the scanner can fall through to registration.
func (h *VehicleHandler) FindByCode(w http.ResponseWriter, r *http.Request) {
	vin := strings.TrimSpace(r.URL.Query().Get("vin"))
	code := strings.TrimSpace(r.URL.Query().Get("code"))

	vehicle, err := h.Service.FindByCode(r.Context(), vin, code)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			utils.JSON(w, http.StatusNotFound, map[string]bool{"found": false})
			return
		}
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"found": true, "vehicle": vehicle})
}

func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}
	var req models.UpdateVehicleRequest
	json.NewDecoder(r.Body).Decode(&req)

	vehicle, err := h.Service.UpdateVehicle(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if err := h.Service.DeleteVehicle(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
