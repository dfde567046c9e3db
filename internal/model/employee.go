package model

// Employee is an employee record as exchanged with the backend.
// Senha is write-only: the backend never returns it.
type Employee struct {
	ID            int64   `json:"id"`
	Nome          string  `json:"nome"`
	Email         string  `json:"email"`
	Administrador bool    `json:"administrador"`
	Senha         string  `json:"senha,omitempty"`
	Pontos        []Punch `json:"pontos,omitempty"`
}

// NewEmployee is the body of POST /ponto
type NewEmployee struct {
	Nome          string `json:"nome"`
	Email         string `json:"email"`
	Senha         string `json:"senha"`
	Administrador bool   `json:"administrador"`
}

// EmployeeUpdate is the body of PUT /ponto/{id}. Nil fields are left unchanged.
type EmployeeUpdate struct {
	Nome          *string `json:"nome,omitempty"`
	Email         *string `json:"email,omitempty"`
	Administrador *bool   `json:"administrador,omitempty"`
	Senha         *string `json:"senha,omitempty"`
}
