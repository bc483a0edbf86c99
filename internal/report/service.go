package report

import (
	"context"
	"fmt"
	"time"
)

// ResolveWindow maps the query-level window selector onto a concrete
// range. kind is one of today, week, month, custom; from/to are only read
// for custom and accept YYYY-MM-DD dates (to is inclusive) or RFC3339.
func ResolveWindow(kind, fromStr, toStr string, now time.Time) (Window, error) {
	switch kind {
	case "", "today":
		return Today(now), nil
	case "week":
		return ThisISOWeek(now), nil
	case "month":
		return ThisMonth(now), nil
	case "custom":
		from, err := parseBound(fromStr, now.Location(), false)
		if err != nil {
			return Window{}, fmt.Errorf("%w: bad from: %v", ErrInvalidWindow, err)
		}
		to, err := parseBound(toStr, now.Location(), true)
		if err != nil {
			return Window{}, fmt.Errorf("%w: bad to: %v", ErrInvalidWindow, err)
		}
		return Custom(from, to)
	default:
		return Window{}, fmt.Errorf("%w: unknown window %q", ErrInvalidWindow, kind)
	}
}

func parseBound(s string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1) // inclusive date bound on a half-open window
	}
	return t, nil
}

// Service handles reporting reads
type Service struct {
	repo *Repository
}

// NewService creates a new report service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Summary rolls up the window
func (s *Service) Summary(ctx context.Context, w Window) (*Summary, error) {
	return s.repo.Summary(ctx, w)
}

// ByAgent rolls up the window grouped by agent
func (s *Service) ByAgent(ctx context.Context, w Window) ([]*AgentTotal, error) {
	return s.repo.ByAgent(ctx, w)
}

// ByDay rolls up the window grouped by day
func (s *Service) ByDay(ctx context.Context, w Window) ([]*DayTotal, error) {
	return s.repo.ByDay(ctx, w)
}
