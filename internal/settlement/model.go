package settlement

import "time"

const (
	// StatusCompleted is the only status agent self-service issuance
	// produces: the debit and the records commit together.
	StatusCompleted = "completed"

	// MethodBalance tags settlements paid from the agent's prepaid balance
	MethodBalance = "balance"
)

// Settlement is the billing record for one issuance batch. Every voucher
// created in the batch points at it via its settlement id.
type Settlement struct {
	ID           int64     `json:"id"`
	Reference    string    `json:"reference"`
	CustomerName string    `json:"customer_name"`
	Amount       int64     `json:"amount"`
	Method       string    `json:"method"`
	Status       string    `json:"status"`
	CreatedBy    int64     `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`

	// Populated via JOIN
	CreatorName string `json:"creator_name,omitempty"`
}
