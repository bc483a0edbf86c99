package profile

import (
	"context"
	"database/sql"
	"errors"
)

// Common errors
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidProfile  = errors.New("invalid profile fields")
)

// Service handles voucher profile business logic
type Service struct {
	repo  *Repository
	cache *Cache // nil disables caching
}

// NewService creates a new profile service. cache may be nil.
func NewService(repo *Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Create creates a new voucher profile
func (s *Service) Create(ctx context.Context, req *CreateProfileRequest) (*Profile, error) {
	if req.Name == "" || req.Duration == "" || req.RouterProfile == "" ||
		req.AgentPrice <= 0 || req.SellingPrice <= 0 {
		return nil, ErrInvalidProfile
	}

	p, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

// GetByID retrieves a profile by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Profile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// GetByName retrieves a profile by its unique name
func (s *Service) GetByName(ctx context.Context, name string) (*Profile, error) {
	p, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// ListActive lists active profiles ordered by agent price ascending
func (s *Service) ListActive(ctx context.Context) ([]*Profile, error) {
	if s.cache != nil {
		if profiles, ok := s.cache.GetActiveList(ctx); ok {
			return profiles, nil
		}
	}

	profiles, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetActiveList(ctx, profiles)
	}
	return profiles, nil
}

// ListActiveForAgent lists the profiles an agent may purchase from. The
// active flag is re-checked here even though the repository already
// filters on it: cached entries and legacy rows have carried stale or
// oddly-typed flags before.
func (s *Service) ListActiveForAgent(ctx context.Context) ([]*Profile, error) {
	profiles, err := s.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*Profile, 0, len(profiles))
	for _, p := range profiles {
		if p.Active {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Update modifies a profile. Edits never touch already-issued vouchers.
func (s *Service) Update(ctx context.Context, id int64, req *UpdateProfileRequest) (*Profile, error) {
	if req.AgentPrice != nil && *req.AgentPrice <= 0 {
		return nil, ErrInvalidProfile
	}
	if req.SellingPrice != nil && *req.SellingPrice <= 0 {
		return nil, ErrInvalidProfile
	}

	p, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	s.invalidate(ctx)
	return p, nil
}

// ToggleActive flips the active flag
func (s *Service) ToggleActive(ctx context.Context, id int64) (*Profile, error) {
	p, err := s.repo.ToggleActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	s.invalidate(ctx)
	return p, nil
}

// Delete removes a profile
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProfileNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
