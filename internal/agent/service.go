package agent

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrAgentNotFound = errors.New("agent not found")
	ErrInvalidAmount = errors.New("credit amount must be positive")
)

// Service handles agent business logic
type Service struct {
	repo *Repository
}

// NewService creates a new agent service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new agent account
func (s *Service) Create(ctx context.Context, req *CreateAgentRequest) (*Agent, error) {
	return s.repo.Create(ctx, req)
}

// GetByID retrieves an agent by their ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Agent, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAgentNotFound
	}
	return a, nil
}

// List retrieves all agents with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Agent, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// Credit tops up an agent's balance. Deposit approval workflows live
// outside this service; this is the admin-side direct credit.
func (s *Service) Credit(ctx context.Context, id int64, amount int64) (*Agent, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	a, err := s.repo.Credit(ctx, id, amount)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAgentNotFound
	}
	return a, nil
}
