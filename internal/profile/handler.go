package profile

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	mw "github.com/wifidesa/voucher-api/pkg/middleware"
	"github.com/wifidesa/voucher-api/pkg/response"
)

// Handler handles HTTP requests for profile operations
type Handler struct {
	service *Service
}

// NewHandler creates a new profile handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for profile endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListActive)
	r.Get("/{id}", h.GetByID)

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAdmin)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}/toggle", h.ToggleActive)
		r.Delete("/{id}", h.Delete)
	})

	return r
}

// ListActive handles GET /profiles
// @Summary      List purchasable profiles
// @Description  Active voucher profiles ordered by agent price
// @Tags         profiles
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]ProfileResponse}
// @Router       /profiles [get]
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.ListActiveForAgent(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to list profiles")
		return
	}

	responses := make([]*ProfileResponse, len(profiles))
	for i, p := range profiles {
		responses[i] = p.ToResponse()
	}

	response.JSON(w, http.StatusOK, responses)
}

// GetByID handles GET /profiles/{id}
// @Summary      Get profile by ID
// @Tags         profiles
// @Produce      json
// @Param        id path int true "Profile ID"
// @Success      200 {object} response.APIResponse{data=ProfileResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /profiles/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid profile ID")
		return
	}

	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get profile")
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// Create handles POST /profiles
// @Summary      Create a voucher profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        request body CreateProfileRequest true "Profile creation request"
// @Success      201 {object} response.APIResponse{data=ProfileResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /profiles [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	p, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidProfile) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create profile")
		return
	}

	response.JSON(w, http.StatusCreated, p.ToResponse())
}

// Update handles PUT /profiles/{id}
// @Summary      Update a voucher profile
// @Description  Price and metadata edits; issued vouchers are never altered
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        id path int true "Profile ID"
// @Param        request body UpdateProfileRequest true "Profile update request"
// @Success      200 {object} response.APIResponse{data=ProfileResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /profiles/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid profile ID")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	p, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidProfile):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrProfileNotFound):
			response.NotFound(w, err.Error())
		default:
			response.InternalError(w, "Failed to update profile")
		}
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// ToggleActive handles PATCH /profiles/{id}/toggle
// @Summary      Toggle a profile's active flag
// @Tags         profiles
// @Produce      json
// @Param        id path int true "Profile ID"
// @Success      200 {object} response.APIResponse{data=ProfileResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /profiles/{id}/toggle [patch]
func (h *Handler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid profile ID")
		return
	}

	p, err := h.service.ToggleActive(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to toggle profile")
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// Delete handles DELETE /profiles/{id}
// @Summary      Delete a voucher profile
// @Tags         profiles
// @Produce      json
// @Param        id path int true "Profile ID"
// @Success      204 "No Content"
// @Failure      404 {object} response.APIResponse
// @Router       /profiles/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid profile ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
