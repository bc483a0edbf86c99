package settlement

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles settlement reads. Settlement rows are only ever
// written inside the issuance transaction (internal/voucher).
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a settlement by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Settlement, error) {
	query := `
		SELECT s.id, s.reference, s.customer_name, s.amount, s.method, s.status, s.created_by, s.created_at,
		       a.name AS creator_name
		FROM settlements s
		JOIN agents a ON s.created_by = a.id
		WHERE s.id = $1
	`

	s := &Settlement{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.Reference,
		&s.CustomerName,
		&s.Amount,
		&s.Method,
		&s.Status,
		&s.CreatedBy,
		&s.CreatedAt,
		&s.CreatorName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	return s, nil
}

// ListByCreator retrieves settlements created by one agent
func (r *Repository) ListByCreator(ctx context.Context, agentID int64, limit, offset int) ([]*Settlement, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM settlements WHERE created_by = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, agentID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count settlements: %w", err)
	}

	query := `
		SELECT s.id, s.reference, s.customer_name, s.amount, s.method, s.status, s.created_by, s.created_at,
		       a.name AS creator_name
		FROM settlements s
		JOIN agents a ON s.created_by = a.id
		WHERE s.created_by = $1
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, agentID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	settlements, err := scanRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return settlements, total, nil
}

// List retrieves all settlements with pagination (admin view)
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Settlement, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM settlements`
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count settlements: %w", err)
	}

	query := `
		SELECT s.id, s.reference, s.customer_name, s.amount, s.method, s.status, s.created_by, s.created_at,
		       a.name AS creator_name
		FROM settlements s
		JOIN agents a ON s.created_by = a.id
		ORDER BY s.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	settlements, err := scanRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return settlements, total, nil
}

func scanRows(rows *sql.Rows) ([]*Settlement, error) {
	var settlements []*Settlement
	for rows.Next() {
		s := &Settlement{}
		if err := rows.Scan(
			&s.ID,
			&s.Reference,
			&s.CustomerName,
			&s.Amount,
			&s.Method,
			&s.Status,
			&s.CreatedBy,
			&s.CreatedAt,
			&s.CreatorName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, s)
	}
	return settlements, nil
}
