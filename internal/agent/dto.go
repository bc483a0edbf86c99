package agent

// CreateAgentRequest represents the request to create an agent account
type CreateAgentRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
}

// CreditRequest represents an admin balance top-up
type CreditRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// AgentResponse represents the response for an agent
type AgentResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Balance   int64  `json:"balance"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

// ToResponse converts an Agent model to an AgentResponse DTO
func (a *Agent) ToResponse() *AgentResponse {
	return &AgentResponse{
		ID:        a.ID,
		Name:      a.Name,
		Username:  a.Username,
		Balance:   a.Balance,
		Active:    a.Active,
		CreatedAt: a.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
