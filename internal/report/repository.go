package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository runs read-only rollups over settlement and voucher history
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new report repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Summary rolls up the whole window
func (r *Repository) Summary(ctx context.Context, w Window) (*Summary, error) {
	query := `
		SELECT COUNT(DISTINCT s.id),
		       COUNT(v.id),
		       COALESCE(SUM(v.agent_price), 0)
		FROM settlements s
		LEFT JOIN vouchers v ON v.settlement_id = s.id
		WHERE s.created_at >= $1 AND s.created_at < $2
	`

	summary := &Summary{}
	err := r.db.QueryRowContext(ctx, query, w.From, w.To).Scan(
		&summary.SettlementCount,
		&summary.VoucherCount,
		&summary.GrossAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query summary: %w", err)
	}

	return summary, nil
}

// ByAgent rolls up the window grouped by the purchasing agent
func (r *Repository) ByAgent(ctx context.Context, w Window) ([]*AgentTotal, error) {
	query := `
		SELECT s.created_by,
		       a.name,
		       COUNT(DISTINCT s.id),
		       COUNT(v.id),
		       COALESCE(SUM(v.agent_price), 0)
		FROM settlements s
		JOIN agents a ON s.created_by = a.id
		LEFT JOIN vouchers v ON v.settlement_id = s.id
		WHERE s.created_at >= $1 AND s.created_at < $2
		GROUP BY s.created_by, a.name
		ORDER BY COALESCE(SUM(v.agent_price), 0) DESC
	`

	rows, err := r.db.QueryContext(ctx, query, w.From, w.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query agent totals: %w", err)
	}
	defer rows.Close()

	totals := []*AgentTotal{}
	for rows.Next() {
		t := &AgentTotal{}
		if err := rows.Scan(
			&t.AgentID,
			&t.AgentName,
			&t.SettlementCount,
			&t.VoucherCount,
			&t.GrossAmount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan agent total: %w", err)
		}
		totals = append(totals, t)
	}

	return totals, nil
}

// ByDay rolls up the window grouped by calendar day
func (r *Repository) ByDay(ctx context.Context, w Window) ([]*DayTotal, error) {
	query := `
		SELECT s.created_at::date,
		       COUNT(DISTINCT s.id),
		       COUNT(v.id),
		       COALESCE(SUM(v.agent_price), 0)
		FROM settlements s
		LEFT JOIN vouchers v ON v.settlement_id = s.id
		WHERE s.created_at >= $1 AND s.created_at < $2
		GROUP BY s.created_at::date
		ORDER BY s.created_at::date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, w.From, w.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query day totals: %w", err)
	}
	defer rows.Close()

	totals := []*DayTotal{}
	for rows.Next() {
		t := &DayTotal{}
		var day time.Time
		if err := rows.Scan(
			&day,
			&t.SettlementCount,
			&t.VoucherCount,
			&t.GrossAmount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan day total: %w", err)
		}
		t.Day = day.Format("2006-01-02")
		totals = append(totals, t)
	}

	return totals, nil
}
