package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"carwash-backend/internal/apperr"
)

// pathID extracts the numeric {id} route variable.
func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, apperr.Invalid("Identificador requerido")
	}
	return id, nil
}
