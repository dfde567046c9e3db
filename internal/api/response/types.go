package response

import (
	"github.com/mcoot/ponto/internal/model"
)

// Employee represents an employee in API responses. The password never leaves the server.
type Employee struct {
	ID            int64         `json:"id"`
	Nome          string        `json:"nome"`
	Email         string        `json:"email"`
	Administrador bool          `json:"administrador"`
	Pontos        []model.Punch `json:"pontos"`
}

// EmployeeFromModel converts a model.Employee to a response Employee
func EmployeeFromModel(e *model.Employee) Employee {
	pontos := e.Pontos
	if pontos == nil {
		pontos = []model.Punch{}
	}
	return Employee{
		ID:            e.ID,
		Nome:          e.Nome,
		Email:         e.Email,
		Administrador: e.Administrador,
		Pontos:        pontos,
	}
}

// EmployeesFromModel converts a list of employees
func EmployeesFromModel(list []model.Employee) []Employee {
	result := make([]Employee, len(list))
	for i := range list {
		result[i] = EmployeeFromModel(&list[i])
	}
	return result
}

// LoginResponse is the response for a successful login
func LoginResponse(token string, e *model.Employee) model.LoginResponse {
	return model.LoginResponse{
		Token:         token,
		ID:            e.ID,
		Nome:          e.Nome,
		Email:         e.Email,
		Administrador: e.Administrador,
	}
}
