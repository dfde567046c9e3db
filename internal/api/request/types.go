package request

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/ponto/internal/api/apierr"
	"github.com/mcoot/ponto/internal/model"
)

// LoginRequest is the request body for logging in
type LoginRequest = model.LoginRequest

// CreateEmployeeRequest is the request body for registering an employee
type CreateEmployeeRequest = model.NewEmployee

// UpdateEmployeeRequest is the request body for updating an employee
type UpdateEmployeeRequest = model.EmployeeUpdate

// Decode reads a JSON request body into v
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apierr.NewInvalidRequestError("invalid request body")
	}
	return nil
}
