package handler

import (
	"net/http"

	"go-social-api/internal/model"
	"go-social-api/internal/service"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Profile(r.Context(), identity(r).UserID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, user, nil)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var payload model.UpdateProfileRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		WriteError(w, r, err)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), identity(r).UserID, payload)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, user, nil)
}

func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAccount(r.Context(), identity(r).UserID); err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "Account deleted"}, nil)
}
