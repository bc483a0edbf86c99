package report

import (
	"errors"
	"time"
)

// ErrInvalidWindow is returned for a malformed or inverted custom range
var ErrInvalidWindow = errors.New("invalid report window")

// Window is a half-open time range [From, To)
type Window struct {
	From time.Time
	To   time.Time
}

// Summary is the rolled-up issuance activity for a window. Zero activity
// yields zeroed fields, never an error.
type Summary struct {
	SettlementCount int64 `json:"settlement_count"`
	VoucherCount    int64 `json:"voucher_count"`
	GrossAmount     int64 `json:"gross_amount"`
}

// AgentTotal is one agent's rollup inside a window
type AgentTotal struct {
	AgentID         int64  `json:"agent_id"`
	AgentName       string `json:"agent_name"`
	SettlementCount int64  `json:"settlement_count"`
	VoucherCount    int64  `json:"voucher_count"`
	GrossAmount     int64  `json:"gross_amount"`
}

// DayTotal is one day's rollup inside a window
type DayTotal struct {
	Day             string `json:"day"`
	SettlementCount int64  `json:"settlement_count"`
	VoucherCount    int64  `json:"voucher_count"`
	GrossAmount     int64  `json:"gross_amount"`
}

// Today returns the window covering the calendar day of now
func Today(now time.Time) Window {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return Window{From: from, To: from.AddDate(0, 0, 1)}
}

// ThisISOWeek returns the window covering the ISO week of now
// (Monday 00:00 through the following Monday)
func ThisISOWeek(now time.Time) Window {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the ISO week
	}
	monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(weekday - 1))
	return Window{From: monday, To: monday.AddDate(0, 0, 7)}
}

// ThisMonth returns the window covering the calendar month of now
func ThisMonth(now time.Time) Window {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Window{From: from, To: from.AddDate(0, 1, 0)}
}

// Custom builds an arbitrary window, rejecting inverted ranges
func Custom(from, to time.Time) (Window, error) {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return Window{}, ErrInvalidWindow
	}
	return Window{From: from, To: to}, nil
}
