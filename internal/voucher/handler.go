package voucher

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	mw "github.com/wifidesa/voucher-api/pkg/middleware"
	"github.com/wifidesa/voucher-api/pkg/response"
)

// Handler handles HTTP requests for voucher operations
type Handler struct {
	service *Service
}

// NewHandler creates a new voucher handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for voucher endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/issue", h.Issue)
	r.Get("/", h.List)

	return r
}

// Issue handles POST /vouchers/issue
// @Summary      Issue vouchers against the agent's balance
// @Description  Provisions router accounts, persists vouchers, debits the balance once, and creates one settlement for the batch
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        request body IssueRequest true "Issuance request"
// @Success      201 {object} response.APIResponse{data=IssueResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      402 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      502 {object} response.APIResponse
// @Router       /vouchers/issue [post]
func (h *Handler) Issue(w http.ResponseWriter, r *http.Request) {
	agentID, ok := mw.AgentIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing agent identity")
		return
	}

	var req IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	result, err := h.service.IssueVouchers(r.Context(), agentID, &req)
	if err != nil {
		var balErr *InsufficientBalanceError
		switch {
		case errors.Is(err, ErrInvalidRequest):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrAgentNotFound), errors.Is(err, ErrProfileNotFound):
			response.NotFound(w, err.Error())
		case errors.As(err, &balErr):
			response.InsufficientBalance(w, balErr.Error())
		case errors.Is(err, ErrProvisioningFailed):
			response.ProvisioningFailed(w, "Router provisioning failed, no charge was made")
		case errors.Is(err, ErrPostIssuanceInconsistency):
			response.ReconciliationRequired(w, "Issuance failed during settlement; support has been alerted")
		default:
			response.InternalError(w, "Failed to issue vouchers")
		}
		return
	}

	response.JSON(w, http.StatusCreated, result.ToResponse())
}

// List handles GET /vouchers
// @Summary      List own vouchers
// @Tags         vouchers
// @Produce      json
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]VoucherResponse}
// @Router       /vouchers [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	agentID, ok := mw.AgentIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing agent identity")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	vouchers, total, err := h.service.ListByAgent(r.Context(), agentID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list vouchers")
		return
	}

	responses := make([]*VoucherResponse, len(vouchers))
	for i, v := range vouchers {
		responses[i] = v.ToResponse()
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
