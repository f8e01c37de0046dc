package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"carwash-backend/internal/models"
	"carwash-backend/internal/services"
	"carwash-backend/pkg/utils"
)

// CatalogHandler exposes the service menu and the brand/model lists.
type CatalogHandler struct {
	Service *services.CatalogService
}

func NewCatalogHandler(s *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: s}
}

func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRequest
	json.NewDecoder(r.Body).Decode(&req)

	svc, err := h.Service.CreateService(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, svc)
}

func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.Service.ListServices(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, services)
}

func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}
	var req models.UpdateServiceRequest
	json.NewDecoder(r.Body).Decode(&req)

	svc, err := h.Service.UpdateService(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, svc)
}

func (h *CatalogHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if err := h.Service.DeleteService(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type brandRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
}

func (h *CatalogHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req brandRequest
	json.NewDecoder(r.Body).Decode(&req)

	name := ""
	if req.Name != nil {
		name = *req.Name
	}
	brand, err := h.Service.CreateBrand(r.Context(), name, req.IsActive)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, brand)
}

func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.Service.ListBrands(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, brands)
}

func (h *CatalogHandler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}
	var req brandRequest
	json.NewDecoder(r.Body).Decode(&req)

	brand, err := h.Service.UpdateBrand(r.Context(), id, req.Name, req.IsActive)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, brand)
}

func (h *CatalogHandler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if err := h.Service.DeleteBrand(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type carModelRequest struct {
	Name     *string `json:"name"`
	BrandID  *int    `json:"brandId"`
	IsActive *bool   `json:"isActive"`
}

func (h *CatalogHandler) CreateModel(w http.ResponseWriter, r *http.Request) {
	var req carModelRequest
	json.NewDecoder(r.Body).Decode(&req)

	name := ""
	if req.Name != nil {
		name = *req.Name
	}
	brandID := 0
	if req.BrandID != nil {
		brandID = *req.BrandID
	}
	model, err := h.Service.CreateModel(r.Context(), name, brandID, req.IsActive)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, model)
}

// ListModels accepts an optional ?brandId= filter.
func (h *CatalogHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	var brandID *int
	if raw := r.URL.Query().Get("brandId"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			brandID = &id
		}
	}
	models, err := h.Service.ListModels(r.Context(), brandID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models)
}

func (h *CatalogHandler) UpdateModel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}
	var req carModelRequest
	json.NewDecoder(r.Body).Decode(&req)

	model, err := h.Service.UpdateModel(r.Context(), id, req.Name, req.BrandID, req.IsActive)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, model)
}

func (h *CatalogHandler) DeleteModel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if err := h.Service.DeleteModel(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
