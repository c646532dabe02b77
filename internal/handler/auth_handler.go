package handler

import (
	"net/http"

	"go-social-api/internal/model"
	"go-social-api/internal/service"
	"go-social-api/internal/validation"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload model.RegisterRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		WriteError(w, r, err)
		return
	}

	user, err := h.service.Register(r.Context(), payload)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, user, nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload model.LoginRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		WriteError(w, r, err)
		return
	}

	result, err := h.service.Login(r.Context(), payload)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var payload model.RefreshRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		WriteError(w, r, err)
		return
	}
	if err := validation.Struct(payload); err != nil {
		WriteError(w, r, err)
		return
	}

	result, err := h.service.Refresh(r.Context(), payload.RefreshToken)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

// Logout sits behind RequireAuthAllowRevoked so repeating it with the same
// token pair succeeds. A missing refresh token is an authentication failure
// (MISSING_TOKEN), not a validation error.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var payload model.RefreshRequest
	if err := decodeOptionalJSON(w, r, &payload); err != nil {
		WriteError(w, r, err)
		return
	}

	if err := h.service.Logout(r.Context(), identity(r), payload.RefreshToken); err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "Successfully logged out"}, nil)
}
