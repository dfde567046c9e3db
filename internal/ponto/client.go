package ponto

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mcoot/ponto/internal/gateway"
	"github.com/mcoot/ponto/internal/model"
)

// ErrUnexpectedFormat is returned when a response body does not have the
// expected shape
var ErrUnexpectedFormat = errors.New("unexpected response format")

// UnexpectedStatusError is returned when a call succeeds with a status other
// than the one the operation requires
type UnexpectedStatusError struct {
	Operation  string
	StatusCode int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Operation, e.StatusCode)
}

// SessionEstablisher stores a new session after login
type SessionEstablisher interface {
	Establish(ctx context.Context, resp model.LoginResponse, email string, remember bool) error
}

// Client is the typed API for the ponto backend
type Client struct {
	gw       *gateway.Gateway
	sessions SessionEstablisher
}

// NewClient creates a ponto API client
func NewClient(gw *gateway.Gateway, sessions SessionEstablisher) *Client {
	return &Client{gw: gw, sessions: sessions}
}

// Login authenticates and establishes a session. Rejected credentials yield
// model.ErrInvalidCredentials and leave any stored state alone.
func (c *Client) Login(ctx context.Context, email, senha string, remember bool) (model.Profile, error) {
	req := model.LoginRequest{Email: strings.TrimSpace(email), Senha: senha}

	resp, err := c.gw.Send(ctx, http.MethodPost, "/ponto/login", req, gateway.WithoutSession())
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthenticated) {
			return model.Profile{}, fmt.Errorf("%w: %w", model.ErrInvalidCredentials, err)
		}
		return model.Profile{}, err
	}

	var login model.LoginResponse
	if err := resp.Decode(&login); err != nil {
		return model.Profile{}, fmt.Errorf("%w: %w", ErrUnexpectedFormat, err)
	}

	if err := c.sessions.Establish(ctx, login, req.Email, remember); err != nil {
		return model.Profile{}, err
	}
	return login.Profile(), nil
}

// GetEmployee fetches an employee, including their punches
func (c *Client) GetEmployee(ctx context.Context, id int64) (*model.Employee, error) {
	resp, err := c.gw.Send(ctx, http.MethodGet, employeePath(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeEmployee(resp)
}

// Punch records a punch for the employee and returns the server's confirmation
func (c *Client) Punch(ctx context.Context, id int64) (string, error) {
	resp, err := c.gw.Send(ctx, http.MethodPost, employeePath(id)+"/bater", nil)
	if err != nil {
		return "", err
	}
	return confirmation(resp.Body), nil
}

// ListEmployees fetches every employee
func (c *Client) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	resp, err := c.gw.Send(ctx, http.MethodGet, "/ponto", nil)
	if err != nil {
		return nil, err
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 || body[0] != '[' {
		return nil, ErrUnexpectedFormat
	}

	var employees []model.Employee
	if err := json.Unmarshal(body, &employees); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedFormat, err)
	}
	return employees, nil
}

// CreateEmployee registers a new employee
func (c *Client) CreateEmployee(ctx context.Context, employee model.NewEmployee) (*model.Employee, error) {
	resp, err := c.gw.Send(ctx, http.MethodPost, "/ponto", employee)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &UnexpectedStatusError{Operation: "create employee", StatusCode: resp.StatusCode}
	}

	return decodeEmployee(resp)
}

// UpdateEmployee applies update to the employee. A blank password is not
// sent, so the stored one is kept.
func (c *Client) UpdateEmployee(ctx context.Context, id int64, update model.EmployeeUpdate) (*model.Employee, error) {
	if update.Senha != nil && strings.TrimSpace(*update.Senha) == "" {
		update.Senha = nil
	}

	resp, err := c.gw.Send(ctx, http.MethodPut, employeePath(id), update)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UnexpectedStatusError{Operation: "update employee", StatusCode: resp.StatusCode}
	}

	return decodeEmployee(resp)
}

// DeleteEmployee removes the employee. Only 204 counts as success.
func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	resp, err := c.gw.Delete(ctx, employeePath(id))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent {
		return &UnexpectedStatusError{Operation: "delete employee", StatusCode: resp.StatusCode}
	}
	return nil
}

func decodeEmployee(resp *gateway.Response) (*model.Employee, error) {
	var employee model.Employee
	if err := resp.Decode(&employee); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedFormat, err)
	}
	return &employee, nil
}

func employeePath(id int64) string {
	return fmt.Sprintf("/ponto/%d", id)
}

// confirmation extracts a human-readable message from a punch response,
// which may be plain text, a JSON string or {"message": ...}
func confirmation(body []byte) string {
	body = bytes.TrimSpace(body)

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}

	var m struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &m); err == nil && m.Message != "" {
		return m.Message
	}

	return string(body)
}
