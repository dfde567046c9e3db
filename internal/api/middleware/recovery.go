package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/ponto/internal/api/apierr"
	"github.com/mcoot/ponto/internal/middleware"
)

// Recovery answers a panicking request with the API's JSON 500 body
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
