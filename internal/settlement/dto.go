package settlement

// SettlementResponse represents the response for a settlement
type SettlementResponse struct {
	ID           int64  `json:"id"`
	Reference    string `json:"reference"`
	CustomerName string `json:"customer_name"`
	Amount       int64  `json:"amount"`
	Method       string `json:"method"`
	Status       string `json:"status"`
	CreatedBy    int64  `json:"created_by"`
	CreatorName  string `json:"creator_name,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// ToResponse converts a Settlement model to a SettlementResponse DTO
func (s *Settlement) ToResponse() *SettlementResponse {
	return &SettlementResponse{
		ID:           s.ID,
		Reference:    s.Reference,
		CustomerName: s.CustomerName,
		Amount:       s.Amount,
		Method:       s.Method,
		Status:       s.Status,
		CreatedBy:    s.CreatedBy,
		CreatorName:  s.CreatorName,
		CreatedAt:    s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
