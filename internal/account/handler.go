// AngelaMos | 2026
// handler.go

package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/agritrack/backend/internal/core"
	"github.com/agritrack/backend/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/me", h.GetMe)
		r.Put("/me", h.UpdateMe)
	})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	account, err := h.service.GetProfile(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "User")
			return
		}
		if errors.Is(err, core.ErrUnauthorized) {
			core.Unauthorized(w, "")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, GetProfileResponse{Profile: ToProfileResponse(account)})
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	if accountID == "" {
		core.Unauthorized(w, "")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if req.FirstName == "" || req.LastName == "" {
		core.BadRequest(w, "First name and last name are required")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	account, err := h.service.UpdateProfile(r.Context(), accountID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "User")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, UpdateProfileResponse{
		Success: true,
		Message: "Profile updated successfully",
		Profile: ToProfileResponse(account),
	})
}
