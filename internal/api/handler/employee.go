package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/ponto/internal/api/middleware"
	"github.com/mcoot/ponto/internal/api/request"
	"github.com/mcoot/ponto/internal/api/response"
	"github.com/mcoot/ponto/internal/services/employee"
	"github.com/mcoot/ponto/internal/services/token"
)

// EmployeeHandler handles the /ponto endpoints
type EmployeeHandler struct {
	employees *employee.Service
	tokens    *token.Service
	logger    *slog.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employees *employee.Service, tokens *token.Service, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employees: employees,
		tokens:    tokens,
		logger:    logger,
	}
}

// Login handles POST /ponto/login
func (h *EmployeeHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if req.Email == "" || req.Senha == "" {
		WriteError(w, NewInvalidRequestError("email and senha are required"))
		return
	}

	e, err := h.employees.Authenticate(r.Context(), req.Email, req.Senha)
	if err != nil {
		WriteError(w, err)
		return
	}

	signed, err := h.tokens.Issue(e.ID, e.Administrador)
	if err != nil {
		h.logger.Error("failed to issue token", slog.String("error", err.Error()))
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LoginResponse(signed, e))
}

// List handles GET /ponto
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.EmployeesFromModel(h.employees.List(r.Context())))
}

// Create handles POST /ponto
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateEmployeeRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	e, err := h.employees.Create(r.Context(), req)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.EmployeeFromModel(e))
}

// Get handles GET /ponto/{id}
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizedID(w, r)
	if !ok {
		return
	}

	e, err := h.employees.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.EmployeeFromModel(e))
}

// Update handles PUT /ponto/{id}
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := employeeID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.UpdateEmployeeRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	e, err := h.employees.Update(r.Context(), id, req)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.EmployeeFromModel(e))
}

// Delete handles DELETE /ponto/{id}
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := employeeID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.employees.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Punch handles POST /ponto/{id}/bater
func (h *EmployeeHandler) Punch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizedID(w, r)
	if !ok {
		return
	}

	at, err := h.employees.Punch(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Message(w, http.StatusOK, fmt.Sprintf("Punch recorded at %s", at.Format("15:04:05 02/01/2006")))
}

// authorizedID parses the path id and checks the caller is that employee or an admin
func (h *EmployeeHandler) authorizedID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := employeeID(r)
	if err != nil {
		WriteError(w, err)
		return 0, false
	}

	if !middleware.MustGetPrincipal(r.Context()).CanAccess(id) {
		WriteError(w, NewForbiddenError())
		return 0, false
	}
	return id, true
}

func employeeID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, NewInvalidRequestError("invalid employee id")
	}
	return id, nil
}
