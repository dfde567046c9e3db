package employee

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/ponto/internal/dependencies/clock"
	"github.com/mcoot/ponto/internal/model"
)

type record struct {
	employee     model.Employee
	passwordHash []byte
}

// Service manages employee records and their punches
type Service struct {
	clock  clock.Clock
	logger *slog.Logger

	mu        sync.RWMutex
	employees map[int64]*record
	nextID    int64
}

// New creates an employee service
func New(clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		clock:     clk,
		logger:    logger,
		employees: make(map[int64]*record),
		nextID:    1,
	}
}

// Create registers a new employee
func (s *Service) Create(ctx context.Context, req model.NewEmployee) (*model.Employee, error) {
	nome := strings.TrimSpace(req.Nome)
	email := normalizeEmail(req.Email)

	if nome == "" {
		return nil, fmt.Errorf("%w: nome is required", model.ErrInvalidEmployee)
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if req.Senha == "" {
		return nil, fmt.Errorf("%w: senha is required", model.ErrInvalidEmployee)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTakenLocked(email, 0) {
		return nil, model.ErrEmailTaken
	}

	id := s.nextID
	s.nextID++

	rec := &record{
		employee: model.Employee{
			ID:            id,
			Nome:          nome,
			Email:         email,
			Administrador: req.Administrador,
		},
		passwordHash: hash,
	}
	s.employees[id] = rec

	s.logger.Info("employee created", slog.Int64("employee_id", id))
	return rec.snapshot(), nil
}

// Get returns the employee with the given id
func (s *Service) Get(ctx context.Context, id int64) (*model.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.employees[id]
	if !ok {
		return nil, model.ErrEmployeeNotFound
	}
	return rec.snapshot(), nil
}

// List returns all employees ordered by id
func (s *Service) List(ctx context.Context) []model.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Employee, 0, len(s.employees))
	for _, rec := range s.employees {
		result = append(result, *rec.snapshot())
	}
	slices.SortFunc(result, func(a, b model.Employee) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

// Update applies the non-nil fields of req. A blank senha keeps the current password.
func (s *Service) Update(ctx context.Context, id int64, req model.EmployeeUpdate) (*model.Employee, error) {
	var (
		nome, email string
		hash        []byte
	)

	if req.Nome != nil {
		nome = strings.TrimSpace(*req.Nome)
		if nome == "" {
			return nil, fmt.Errorf("%w: nome cannot be blank", model.ErrInvalidEmployee)
		}
	}
	if req.Email != nil {
		email = normalizeEmail(*req.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
	}
	if req.Senha != nil && strings.TrimSpace(*req.Senha) != "" {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(*req.Senha), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.employees[id]
	if !ok {
		return nil, model.ErrEmployeeNotFound
	}
	if email != "" && s.emailTakenLocked(email, id) {
		return nil, model.ErrEmailTaken
	}

	if nome != "" {
		rec.employee.Nome = nome
	}
	if email != "" {
		rec.employee.Email = email
	}
	if req.Administrador != nil {
		rec.employee.Administrador = *req.Administrador
	}
	if hash != nil {
		rec.passwordHash = hash
	}

	s.logger.Info("employee updated", slog.Int64("employee_id", id))
	return rec.snapshot(), nil
}

// Delete removes the employee
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[id]; !ok {
		return model.ErrEmployeeNotFound
	}
	delete(s.employees, id)

	s.logger.Info("employee deleted", slog.Int64("employee_id", id))
	return nil
}

// Punch records a punch at the current time
func (s *Service) Punch(ctx context.Context, id int64) (time.Time, error) {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.employees[id]
	if !ok {
		return time.Time{}, model.ErrEmployeeNotFound
	}
	rec.employee.Pontos = append(rec.employee.Pontos, model.PunchAt(now))

	s.logger.Info("punch recorded", slog.Int64("employee_id", id))
	return now, nil
}

// Authenticate checks an email and password pair
func (s *Service) Authenticate(ctx context.Context, email, senha string) (*model.Employee, error) {
	email = normalizeEmail(email)

	s.mu.RLock()
	var found *record
	for _, rec := range s.employees {
		if rec.employee.Email == email {
			found = rec
			break
		}
	}
	var hash []byte
	if found != nil {
		hash = found.passwordHash
	}
	s.mu.RUnlock()

	if found == nil {
		return nil, model.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(senha)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.Get(ctx, found.employee.ID)
}

// EnsureAdmin creates an administrator with the given email unless one exists
func (s *Service) EnsureAdmin(ctx context.Context, nome, email, senha string) (*model.Employee, error) {
	email = normalizeEmail(email)

	s.mu.RLock()
	var existing *model.Employee
	for _, rec := range s.employees {
		if rec.employee.Email == email {
			existing = rec.snapshot()
			break
		}
	}
	s.mu.RUnlock()

	if existing != nil {
		return existing, nil
	}

	return s.Create(ctx, model.NewEmployee{
		Nome:          nome,
		Email:         email,
		Senha:         senha,
		Administrador: true,
	})
}

func (s *Service) emailTakenLocked(email string, except int64) bool {
	for id, rec := range s.employees {
		if id != except && rec.employee.Email == email {
			return true
		}
	}
	return false
}

func (r *record) snapshot() *model.Employee {
	e := r.employee
	e.Pontos = slices.Clone(r.employee.Pontos)
	return &e
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", model.ErrInvalidEmployee)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email", model.ErrInvalidEmployee)
	}
	return nil
}
