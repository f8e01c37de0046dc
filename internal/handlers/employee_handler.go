package handlers

import (
	"encoding/json"
	"net/http"

	"carwash-backend/internal/models"
	"carwash-backend/internal/services"
	"carwash-backend/pkg/utils"
)

type EmployeeHandler struct {
	Service *services.EmployeeService
}

func NewEmployeeHandler(s *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{Service: s}
}

func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEmployeeRequest
	json.NewDecoder(r.Body).Decode(&req)

	emp, err := h.Service.CreateEmployee(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, emp)
}

func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListEmployees(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, employees)
}

func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}
	var req models.UpdateEmployeeRequest
	json.NewDecoder(r.Body).Decode(&req)

	emp, err := h.Service.UpdateEmployee(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, emp)
}

func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if err := h.Service.DeleteEmployee(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
