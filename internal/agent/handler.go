package agent

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	mw "github.com/wifidesa/voucher-api/pkg/middleware"
	"github.com/wifidesa/voucher-api/pkg/response"
)

// Handler handles HTTP requests for agent operations
type Handler struct {
	service *Service
}

// NewHandler creates a new agent handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for agent endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.Me)

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAdmin)
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Post("/{id}/credit", h.Credit)
	})

	return r
}

// Me handles GET /agents/me
// @Summary      Get own agent account
// @Description  Get the authenticated agent's account and balance
// @Tags         agents
// @Produce      json
// @Success      200 {object} response.APIResponse{data=AgentResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /agents/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	agentID, ok := mw.AgentIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing agent identity")
		return
	}

	a, err := h.service.GetByID(r.Context(), agentID)
	if err != nil {
		if errors.Is(err, ErrAgentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get agent")
		return
	}

	response.JSON(w, http.StatusOK, a.ToResponse())
}

// Create handles POST /agents
// @Summary      Create a new agent
// @Tags         agents
// @Accept       json
// @Produce      json
// @Param        request body CreateAgentRequest true "Agent creation request"
// @Success      201 {object} response.APIResponse{data=AgentResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /agents [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" || req.Username == "" {
		response.BadRequest(w, "Name and username are required")
		return
	}

	a, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.InternalError(w, "Failed to create agent")
		return
	}

	response.JSON(w, http.StatusCreated, a.ToResponse())
}

// GetByID handles GET /agents/{id}
// @Summary      Get agent by ID
// @Tags         agents
// @Produce      json
// @Param        id path int true "Agent ID"
// @Success      200 {object} response.APIResponse{data=AgentResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /agents/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid agent ID")
		return
	}

	a, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAgentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get agent")
		return
	}

	response.JSON(w, http.StatusOK, a.ToResponse())
}

// List handles GET /agents
// @Summary      List agents
// @Tags         agents
// @Produce      json
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]AgentResponse}
// @Router       /agents [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	agents, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list agents")
		return
	}

	responses := make([]*AgentResponse, len(agents))
	for i, a := range agents {
		responses[i] = a.ToResponse()
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	response.JSONWithMeta(w, http.StatusOK, responses, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
	})
}

// Credit handles POST /agents/{id}/credit
// @Summary      Credit an agent's balance
// @Description  Admin-side direct balance top-up
// @Tags         agents
// @Accept       json
// @Produce      json
// @Param        id path int true "Agent ID"
// @Param        request body CreditRequest true "Credit request"
// @Success      200 {object} response.APIResponse{data=AgentResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /agents/{id}/credit [post]
func (h *Handler) Credit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid agent ID")
		return
	}

	var req CreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	a, err := h.service.Credit(r.Context(), id, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrAgentNotFound):
			response.NotFound(w, err.Error())
		default:
			response.InternalError(w, "Failed to credit agent")
		}
		return
	}

	response.JSON(w, http.StatusOK, a.ToResponse())
}
