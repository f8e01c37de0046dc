package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"carwash-backend/internal/apperr"
	"carwash-backend/internal/middleware"
	"carwash-backend/internal/models"
	"carwash-backend/internal/services"
	"carwash-backend/pkg/utils"
)

type EntryHandler struct {
	Service *services.EntryService
}

func NewEntryHandler(s *services.EntryService) *EntryHandler {
	return &EntryHandler{Service: s}
}

func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEntryRequest
	json.NewDecoder(r.Body).Decode(&req)

	sess := middleware.SessionFromContext(r.Context())
	entry, err := h.Service.CreateEntry(r.Context(), &req, sess)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, entry)
}

func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	entries, err := h.Service.ListEntries(r.Context(), sess)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, entries)
}

func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}
	entry, err := h.Service.GetEntry(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, entry)
}

func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}
	var req models.UpdateEntryRequest
	json.NewDecoder(r.Body).Decode(&req)

	entry, err := h.Service.UpdateEntry(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, entry)
}

// AppendUpdate adds a "novedad" to an entry.
func (h *EntryHandler) AppendUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "ID de entrada requerido")
		return
	}
	var req models.CreateEntryUpdateRequest
	json.NewDecoder(r.Body).Decode(&req)

	update, err := h.Service.AppendUpdate(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, update)
}

// ListByVehicle returns a vehicle's full order history, ?id=<vehicleId>.
func (h *EntryHandler) ListByVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		utils.Error(w, apperr.Invalid("id requerido"))
		return
	}
	entries, err := h.Service.ListByVehicle(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, entries)
}

func (h *EntryHandler) RecentEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.RecentEntries(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, entries)
}
