package handlers

import (
	"encoding/json"
	"net/http"

	"carwash-backend/internal/models"
	"carwash-backend/internal/services"
	"carwash-backend/pkg/utils"
)

type LocationHandler struct {
	Service *services.LocationService
}

func NewLocationHandler(s *services.LocationService) *LocationHandler {
	return &LocationHandler{Service: s}
}

type createLocationRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
	IsActive *bool  `json:"isActive"`
}

func (h *LocationHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req createLocationRequest
	json.NewDecoder(r.Body).Decode(&req)

	loc := models.Location{
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
		IsActive: true,
	}
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}

	created, err := h.Service.CreateLocation(r.Context(), &loc)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, created)
}

func (h *LocationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Service.ListLocations(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, locations)
}

func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}
	var req models.UpdateLocationRequest
	json.NewDecoder(r.Body).Decode(&req)

	loc, err := h.Service.UpdateLocation(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, loc)
}

func (h *LocationHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if err := h.Service.DeleteLocation(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
