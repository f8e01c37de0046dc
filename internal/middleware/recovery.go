package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"carwash-backend/pkg/utils"
)

func PanicRecovery(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(logrus.Fields{
						"panic": err,
						"path":  r.URL.Path,
					}).Errorf("panic recovered\n%s", debug.Stack())

					utils.ErrorMessage(w, http.StatusInternalServerError, "Error de servidor")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
