package profile

import "time"

const (
	// Code length bounds for generated voucher credentials
	MinCodeLength     = 3
	MaxCodeLength     = 12
	DefaultCodeLength = 4
)

// Profile represents a voucher pricing tier. Issued vouchers copy the
// fields they need (name, price, duration) at issuance time, so editing a
// profile never changes historical vouchers.
type Profile struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Duration      string    `json:"duration"`
	AgentPrice    int64     `json:"agent_price"`
	SellingPrice  int64     `json:"selling_price"`
	RouterProfile string    `json:"router_profile"`
	Active        bool      `json:"active"`
	CodeLength    int       `json:"voucher_code_length"`
	CreatedAt     time.Time `json:"created_at"`
}

// ClampCodeLength normalizes a requested credential length into [3,12],
// defaulting to 4 when unset.
func ClampCodeLength(n int) int {
	if n == 0 {
		return DefaultCodeLength
	}
	if n < MinCodeLength {
		return MinCodeLength
	}
	if n > MaxCodeLength {
		return MaxCodeLength
	}
	return n
}
