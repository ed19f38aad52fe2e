// AngelaMos | 2026
// handler.go

package auth

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
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/register", h.Register)
		r.Post("/logout", h.Logout)
		r.Post("/refresh", h.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/me", h.GetMe)
		})
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		core.BadRequest(w, "Email and password are required")
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		// Unknown email and wrong password answer identically so the
		// endpoint cannot be used to probe registered addresses.
		if errors.Is(err, ErrInvalidCredentials) {
			core.BadRequest(w, "Email or password is incorrect")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			core.BadRequest(w, "User with this email already exists")
			return
		}
		var appErr *core.AppError
		if errors.As(err, &appErr) && appErr.Status == http.StatusBadRequest {
			core.BadRequest(w, appErr.Message)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.service.Logout(r.Context(), req.Email); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Message(w, http.StatusOK, "User logged out successfully.")
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if req.RefreshToken == "" {
		core.WriteJSON(w, http.StatusUnauthorized, core.ErrorResponse{
			Success: false,
			Message: "Refresh token is required",
		})
		return
	}

	resp, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrTokenExpired):
			core.JSONError(w, core.TokenExpiredError())
		case errors.Is(err, core.ErrTokenInvalid):
			core.JSONError(w, core.TokenInvalidError())
		case errors.Is(err, core.ErrNotFound):
			core.WriteJSON(w, http.StatusForbidden, core.ErrorResponse{
				Success: false,
				Message: "User not found",
			})
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, resp)
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	if accountID == "" {
		core.Unauthorized(w, "")
		return
	}

	account, err := h.service.CurrentUser(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, account)
}
