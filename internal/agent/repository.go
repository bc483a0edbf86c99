package agent

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles agent data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new agent repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new agent with a zero balance
func (r *Repository) Create(ctx context.Context, req *CreateAgentRequest) (*Agent, error) {
	query := `
		INSERT INTO agents (name, username, balance, active)
		VALUES ($1, $2, 0, true)
		RETURNING id, name, username, balance, active, created_at
	`

	a := &Agent{}
	err := r.db.QueryRowContext(ctx, query, req.Name, req.Username).Scan(
		&a.ID,
		&a.Name,
		&a.Username,
		&a.Balance,
		&a.Active,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	return a, nil
}

// GetByID retrieves an agent by their ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Agent, error) {
	query := `
		SELECT id, name, username, balance, active, created_at
		FROM agents
		WHERE id = $1
	`

	a := &Agent{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.Username,
		&a.Balance,
		&a.Active,
		&a.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}

	return a, nil
}

// List retrieves all agents with pagination
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Agent, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM agents`
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count agents: %w", err)
	}

	query := `
		SELECT id, name, username, balance, active, created_at
		FROM agents
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list agents: %w", err)
	}
	defer rows.Close()

	var agents []*Agent
	for rows.Next() {
		a := &Agent{}
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Username,
			&a.Balance,
			&a.Active,
			&a.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan agent: %w", err)
		}
		agents = append(agents, a)
	}

	return agents, total, nil
}

// Credit adds funds to an agent's balance and returns the updated row
func (r *Repository) Credit(ctx context.Context, id int64, amount int64) (*Agent, error) {
	query := `
		UPDATE agents
		SET balance = balance + $2
		WHERE id = $1
		RETURNING id, name, username, balance, active, created_at
	`

	a := &Agent{}
	err := r.db.QueryRowContext(ctx, query, id, amount).Scan(
		&a.ID,
		&a.Name,
		&a.Username,
		&a.Balance,
		&a.Active,
		&a.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to credit agent: %w", err)
	}

	return a, nil
}

// ConditionalDebit atomically deducts amount from the agent's balance.
// The WHERE clause guards against concurrent over-spend: the update only
// applies when the balance still covers the amount. Returns false when the
// condition did not hold.
func (r *Repository) ConditionalDebit(ctx context.Context, id int64, amount int64) (bool, error) {
	query := `
		UPDATE agents
		SET balance = balance - $2
		WHERE id = $1 AND active AND balance >= $2
	`

	result, err := r.db.ExecContext(ctx, query, id, amount)
	if err != nil {
		return false, fmt.Errorf("failed to debit agent: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected == 1, nil
}
