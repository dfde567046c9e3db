package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/ponto/internal/api/handler"
	"github.com/mcoot/ponto/internal/api/middleware"
	httpmw "github.com/mcoot/ponto/internal/middleware"
	"github.com/mcoot/ponto/internal/services/employee"
	"github.com/mcoot/ponto/internal/services/token"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger    *slog.Logger
	Employees *employee.Service
	Tokens    *token.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	employeeHandler := handler.NewEmployeeHandler(cfg.Employees, cfg.Tokens, cfg.Logger)

	authMiddleware := middleware.Auth(cfg.Tokens)

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(httpmw.Logging(cfg.Logger))

	// Public routes
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/ponto/login", employeeHandler.Login).Methods(http.MethodPost)

	// Everything else under /ponto needs a bearer token
	ponto := r.PathPrefix("/ponto").Subrouter()
	ponto.Use(authMiddleware)

	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAdmin(h)
	}

	ponto.Handle("", admin(employeeHandler.List)).Methods(http.MethodGet)
	ponto.Handle("", admin(employeeHandler.Create)).Methods(http.MethodPost)
	ponto.HandleFunc("/{id:[0-9]+}", employeeHandler.Get).Methods(http.MethodGet)
	ponto.Handle("/{id:[0-9]+}", admin(employeeHandler.Update)).Methods(http.MethodPut)
	ponto.Handle("/{id:[0-9]+}", admin(employeeHandler.Delete)).Methods(http.MethodDelete)
	ponto.HandleFunc("/{id:[0-9]+}/bater", employeeHandler.Punch).Methods(http.MethodPost)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
