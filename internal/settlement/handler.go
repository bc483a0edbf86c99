package settlement

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	mw "github.com/wifidesa/voucher-api/pkg/middleware"
	"github.com/wifidesa/voucher-api/pkg/response"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)

	return r
}

// List handles GET /settlements
// @Summary      List settlements
// @Description  Admins see every settlement; agents see their own
// @Tags         settlements
// @Produce      json
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]SettlementResponse}
// @Router       /settlements [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	agentID, ok := mw.AgentIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing agent identity")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	var (
		settlements []*Settlement
		total       int
		err         error
	)
	if mw.RoleFromContext(r.Context()) == mw.RoleAdmin {
		settlements, total, err = h.service.List(r.Context(), page, perPage)
	} else {
		settlements, total, err = h.service.ListByCreator(r.Context(), agentID, page, perPage)
	}
	if err != nil {
		response.InternalError(w, "Failed to list settlements")
		return
	}

	responses := make([]*SettlementResponse, len(settlements))
	for i, s := range settlements {
		responses[i] = s.ToResponse()
	}

	page, perPage = normalizePaging(page, perPage)
	response.JSONWithMeta(w, http.StatusOK, responses, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
	})
}

// GetByID handles GET /settlements/{id}
// @Summary      Get settlement by ID
// @Tags         settlements
// @Produce      json
// @Param        id path int true "Settlement ID"
// @Success      200 {object} response.APIResponse{data=SettlementResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid settlement ID")
		return
	}

	s, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSettlementNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get settlement")
		return
	}

	// Agents may only read their own settlements
	agentID, _ := mw.AgentIDFromContext(r.Context())
	if mw.RoleFromContext(r.Context()) != mw.RoleAdmin && s.CreatedBy != agentID {
		response.Forbidden(w, "Not your settlement")
		return
	}

	response.JSON(w, http.StatusOK, s.ToResponse())
}
