package profile

// CreateProfileRequest represents the request to create a voucher profile
type CreateProfileRequest struct {
	Name          string `json:"name" validate:"required"`
	Duration      string `json:"duration" validate:"required"`
	AgentPrice    int64  `json:"agent_price" validate:"required,gt=0"`
	SellingPrice  int64  `json:"selling_price" validate:"required,gt=0"`
	RouterProfile string `json:"router_profile" validate:"required"`
	CodeLength    int    `json:"voucher_code_length"`
}

// UpdateProfileRequest represents the request to update a voucher profile.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Duration      *string `json:"duration"`
	AgentPrice    *int64  `json:"agent_price"`
	SellingPrice  *int64  `json:"selling_price"`
	RouterProfile *string `json:"router_profile"`
	CodeLength    *int    `json:"voucher_code_length"`
}

// ProfileResponse represents the response for a voucher profile
type ProfileResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Duration      string `json:"duration"`
	AgentPrice    int64  `json:"agent_price"`
	SellingPrice  int64  `json:"selling_price"`
	RouterProfile string `json:"router_profile"`
	Active        bool   `json:"active"`
	CodeLength    int    `json:"voucher_code_length"`
	CreatedAt     string `json:"created_at"`
}

// ToResponse converts a Profile model to a ProfileResponse DTO
func (p *Profile) ToResponse() *ProfileResponse {
	return &ProfileResponse{
		ID:            p.ID,
		Name:          p.Name,
		Duration:      p.Duration,
		AgentPrice:    p.AgentPrice,
		SellingPrice:  p.SellingPrice,
		RouterProfile: p.RouterProfile,
		Active:        p.Active,
		CodeLength:    p.CodeLength,
		CreatedAt:     p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
