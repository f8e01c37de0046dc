package handlers

import (
	"fmt"
	"net/http"

	"carwash-backend/internal/services"
	"carwash-backend/pkg/utils"
)

type ReceiptHandler struct {
	Service *services.ReceiptService
}

func NewReceiptHandler(s *services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{Service: s}
}

// EntryReceipt streams the order receipt as a PDF download.
func (h *ReceiptHandler) EntryReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}
	pdf, err := h.Service.GenerateEntryReceipt(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=orden-%d.pdf", id))
	w.Write(pdf)
}
