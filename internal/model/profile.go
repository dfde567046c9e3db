package model

// Profile is the logged-in user's identity as cached on the client at login.
// It is only meaningful while a session token exists.
type Profile struct {
	ID            int64  `json:"id"`
	Nome          string `json:"nome"`
	Email         string `json:"email"`
	Administrador bool   `json:"administrador"`
}

// Complete reports whether the profile carries the fields screens depend on
func (p Profile) Complete() bool {
	return p.ID != 0 && p.Nome != ""
}

// LoginRequest is the body of POST /ponto/login
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// LoginResponse is the body returned by a successful login
type LoginResponse struct {
	Token         string `json:"token"`
	ID            int64  `json:"id"`
	Nome          string `json:"nome"`
	Email         string `json:"email"`
	Administrador bool   `json:"administrador"`
}

// Profile extracts the cacheable identity from a login response
func (r LoginResponse) Profile() Profile {
	return Profile{
		ID:            r.ID,
		Nome:          r.Nome,
		Email:         r.Email,
		Administrador: r.Administrador,
	}
}
