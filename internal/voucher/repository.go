package voucher

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/wifidesa/voucher-api/internal/settlement"
)

// Repository handles voucher persistence and implements Ledger over postgres
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new voucher repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Begin opens one issuance transaction
func (r *Repository) Begin(ctx context.Context) (LedgerTx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &ledgerTx{tx: tx}, nil
}

// ListByAgent retrieves vouchers owned by one agent, newest first
func (r *Repository) ListByAgent(ctx context.Context, agentID int64, limit, offset int) ([]*Voucher, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM vouchers WHERE agent_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, agentID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count vouchers: %w", err)
	}

	query := `
		SELECT id, username, password, profile_name, agent_price, duration, agent_id, customer_name, settlement_id, created_at
		FROM vouchers
		WHERE agent_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, agentID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []*Voucher
	for rows.Next() {
		v := &Voucher{}
		var ownerID, settlementID sql.NullInt64
		if err := rows.Scan(
			&v.ID,
			&v.Username,
			&v.Password,
			&v.ProfileName,
			&v.AgentPrice,
			&v.Duration,
			&ownerID,
			&v.CustomerName,
			&settlementID,
			&v.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan voucher: %w", err)
		}
		if ownerID.Valid {
			v.AgentID = &ownerID.Int64
		}
		if settlementID.Valid {
			v.SettlementID = &settlementID.Int64
		}
		vouchers = append(vouchers, v)
	}

	return vouchers, total, nil
}

type ledgerTx struct {
	tx *sql.Tx
}

// InsertVoucher persists one voucher row. ON CONFLICT DO NOTHING keeps a
// username collision from poisoning the open transaction the way a raised
// unique violation would; zero returned rows means a collision.
func (t *ledgerTx) InsertVoucher(ctx context.Context, v *Voucher) (int64, error) {
	query := `
		INSERT INTO vouchers (username, password, profile_name, agent_price, duration, agent_id, customer_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (username) DO NOTHING
		RETURNING id
	`

	var id int64
	err := t.tx.QueryRowContext(ctx, query,
		v.Username, v.Password, v.ProfileName, v.AgentPrice, v.Duration, v.AgentID, v.CustomerName,
	).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrDuplicateCredential
		}
		return 0, fmt.Errorf("failed to insert voucher: %w", err)
	}

	return id, nil
}

// ConditionalDebit deducts amount from the agent's balance atomically
func (t *ledgerTx) ConditionalDebit(ctx context.Context, agentID, amount int64) (bool, error) {
	query := `
		UPDATE agents
		SET balance = balance - $2
		WHERE id = $1 AND active AND balance >= $2
	`

	result, err := t.tx.ExecContext(ctx, query, agentID, amount)
	if err != nil {
		return false, fmt.Errorf("failed to debit agent: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected == 1, nil
}

// InsertSettlement persists the batch settlement row
func (t *ledgerTx) InsertSettlement(ctx context.Context, s *settlement.Settlement) (int64, error) {
	query := `
		INSERT INTO settlements (reference, customer_name, amount, method, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := t.tx.QueryRowContext(ctx, query,
		s.Reference, s.CustomerName, s.Amount, s.Method, s.Status, s.CreatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert settlement: %w", err)
	}

	return id, nil
}

// LinkVouchers stamps the settlement id onto the batch's voucher rows
func (t *ledgerTx) LinkVouchers(ctx context.Context, voucherIDs []int64, settlementID int64) error {
	query := `UPDATE vouchers SET settlement_id = $1 WHERE id = ANY($2)`

	result, err := t.tx.ExecContext(ctx, query, settlementID, pq.Array(voucherIDs))
	if err != nil {
		return fmt.Errorf("failed to link vouchers: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected != int64(len(voucherIDs)) {
		return fmt.Errorf("linked %d of %d vouchers", affected, len(voucherIDs))
	}

	return nil
}

func (t *ledgerTx) Commit() error {
	return t.tx.Commit()
}

func (t *ledgerTx) Rollback() error {
	return t.tx.Rollback()
}
