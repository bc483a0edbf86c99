package agent

import "time"

// Agent represents a reseller account with a prepaid balance.
// Balance is an integer in the smallest currency unit and is never negative
// in any committed state.
type Agent struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Balance   int64     `json:"balance"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
