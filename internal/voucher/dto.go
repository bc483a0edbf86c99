package voucher

// IssueRequest represents one issuance purchase
type IssueRequest struct {
	ProfileID     int64  `json:"profile_id" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,min=1,max=10"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

// IssueResult is the outcome of a successful issuance
type IssueResult struct {
	Vouchers           []*Voucher
	SettlementID       int64
	Reference          string
	TotalCost          int64
	BalanceAfter       int64
	NotificationStatus string
}

// VoucherResponse represents one issued voucher
type VoucherResponse struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	ProfileName  string `json:"profile_name"`
	AgentPrice   int64  `json:"agent_price"`
	Duration     string `json:"duration"`
	CustomerName string `json:"customer_name,omitempty"`
	SettlementID *int64 `json:"settlement_id,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// IssueResponse represents the issuance endpoint's payload
type IssueResponse struct {
	Vouchers           []*VoucherResponse `json:"vouchers"`
	SettlementID       int64              `json:"settlement_id"`
	Reference          string             `json:"reference"`
	TotalCost          int64              `json:"total_cost"`
	BalanceAfter       int64              `json:"balance_after"`
	NotificationStatus string             `json:"notification_status"`
}

// ToResponse converts a Voucher model to a VoucherResponse DTO
func (v *Voucher) ToResponse() *VoucherResponse {
	return &VoucherResponse{
		ID:           v.ID,
		Username:     v.Username,
		Password:     v.Password,
		ProfileName:  v.ProfileName,
		AgentPrice:   v.AgentPrice,
		Duration:     v.Duration,
		CustomerName: v.CustomerName,
		SettlementID: v.SettlementID,
		CreatedAt:    v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts an IssueResult to the endpoint payload
func (r *IssueResult) ToResponse() *IssueResponse {
	vouchers := make([]*VoucherResponse, len(r.Vouchers))
	for i, v := range r.Vouchers {
		vouchers[i] = v.ToResponse()
	}
	return &IssueResponse{
		Vouchers:           vouchers,
		SettlementID:       r.SettlementID,
		Reference:          r.Reference,
		TotalCost:          r.TotalCost,
		BalanceAfter:       r.BalanceAfter,
		NotificationStatus: r.NotificationStatus,
	}
}
