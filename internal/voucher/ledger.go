package voucher

import (
	"context"

	"github.com/wifidesa/voucher-api/internal/agent"
	"github.com/wifidesa/voucher-api/internal/profile"
	"github.com/wifidesa/voucher-api/internal/settlement"
)

// AgentStore is the purchaser lookup the orchestrator needs
type AgentStore interface {
	GetByID(ctx context.Context, id int64) (*agent.Agent, error)
}

// ProfileStore is the pricing catalog lookup the orchestrator needs
type ProfileStore interface {
	GetByID(ctx context.Context, id int64) (*profile.Profile, error)
}

// Ledger opens transactional units of work over the voucher, settlement,
// and balance records. One transaction spans a whole issuance batch, so a
// mid-batch abort leaves no rows behind and the debit commits together
// with the settlement that justifies it.
type Ledger interface {
	Begin(ctx context.Context) (LedgerTx, error)
}

// LedgerTx is one open issuance transaction
type LedgerTx interface {
	// InsertVoucher persists one voucher row. Returns ErrDuplicateCredential
	// when the username collides with an existing voucher.
	InsertVoucher(ctx context.Context, v *Voucher) (int64, error)

	// ConditionalDebit deducts amount from the agent's balance only when
	// the balance still covers it. Returns false when it does not.
	ConditionalDebit(ctx context.Context, agentID, amount int64) (bool, error)

	// InsertSettlement persists the batch settlement row
	InsertSettlement(ctx context.Context, s *settlement.Settlement) (int64, error)

	// LinkVouchers stamps the settlement id onto the batch's voucher rows
	LinkVouchers(ctx context.Context, voucherIDs []int64, settlementID int64) error

	Commit() error
	Rollback() error
}

// Reader is the non-transactional voucher read surface
type Reader interface {
	ListByAgent(ctx context.Context, agentID int64, limit, offset int) ([]*Voucher, int, error)
}
