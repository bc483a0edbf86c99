package settlement

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrSettlementNotFound = errors.New("settlement not found")
)

// Service handles settlement read logic
type Service struct {
	repo *Repository
}

// NewService creates a new settlement service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// GetByID retrieves a settlement by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Settlement, error) {
	settlement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, ErrSettlementNotFound
	}
	return settlement, nil
}

// ListByCreator retrieves settlements created by one agent
func (s *Service) ListByCreator(ctx context.Context, agentID int64, page, perPage int) ([]*Settlement, int, error) {
	page, perPage = normalizePaging(page, perPage)
	offset := (page - 1) * perPage
	return s.repo.ListByCreator(ctx, agentID, perPage, offset)
}

// List retrieves all settlements (admin view)
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Settlement, int, error) {
	page, perPage = normalizePaging(page, perPage)
	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

func normalizePaging(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}
