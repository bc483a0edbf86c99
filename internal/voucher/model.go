package voucher

import "time"

// Voucher is one issued hotspot credential. Profile name, price, and
// duration are value copies taken at issuance time, deliberately not
// foreign keys: later profile edits must never alter issued-voucher
// economics.
type Voucher struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Password     string    `json:"password"`
	ProfileName  string    `json:"profile_name"`
	AgentPrice   int64     `json:"agent_price"`
	Duration     string    `json:"duration"`
	AgentID      *int64    `json:"agent_id,omitempty"`
	CustomerName string    `json:"customer_name,omitempty"`
	SettlementID *int64    `json:"settlement_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
