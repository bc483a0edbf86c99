package report

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wifidesa/voucher-api/pkg/response"
)

// Handler handles HTTP requests for reporting
type Handler struct {
	service *Service
}

// NewHandler creates a new report handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for report endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/summary", h.Summary)
	r.Get("/by-agent", h.ByAgent)
	r.Get("/by-day", h.ByDay)

	return r
}

func windowFromRequest(r *http.Request) (Window, error) {
	q := r.URL.Query()
	return ResolveWindow(q.Get("window"), q.Get("from"), q.Get("to"), time.Now())
}

// Summary handles GET /reports/summary
// @Summary      Issuance rollup for a window
// @Tags         reports
// @Produce      json
// @Param        window query string false "today, week, month, or custom"
// @Param        from query string false "Custom range start (YYYY-MM-DD)"
// @Param        to query string false "Custom range end (YYYY-MM-DD, inclusive)"
// @Success      200 {object} response.APIResponse{data=Summary}
// @Failure      400 {object} response.APIResponse
// @Router       /reports/summary [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	window, err := windowFromRequest(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	summary, err := h.service.Summary(r.Context(), window)
	if err != nil {
		response.InternalError(w, "Failed to build report")
		return
	}

	response.JSON(w, http.StatusOK, summary)
}

// ByAgent handles GET /reports/by-agent
// @Summary      Issuance rollup grouped by agent
// @Tags         reports
// @Produce      json
// @Param        window query string false "today, week, month, or custom"
// @Success      200 {object} response.APIResponse{data=[]AgentTotal}
// @Failure      400 {object} response.APIResponse
// @Router       /reports/by-agent [get]
func (h *Handler) ByAgent(w http.ResponseWriter, r *http.Request) {
	window, err := windowFromRequest(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	totals, err := h.service.ByAgent(r.Context(), window)
	if err != nil {
		if errors.Is(err, ErrInvalidWindow) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to build report")
		return
	}

	response.JSON(w, http.StatusOK, totals)
}

// ByDay handles GET /reports/by-day
// @Summary      Issuance rollup grouped by calendar day
// @Tags         reports
// @Produce      json
// @Param        window query string false "today, week, month, or custom"
// @Success      200 {object} response.APIResponse{data=[]DayTotal}
// @Failure      400 {object} response.APIResponse
// @Router       /reports/by-day [get]
func (h *Handler) ByDay(w http.ResponseWriter, r *http.Request) {
	window, err := windowFromRequest(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	totals, err := h.service.ByDay(r.Context(), window)
	if err != nil {
		response.InternalError(w, "Failed to build report")
		return
	}

	response.JSON(w, http.StatusOK, totals)
}
