package handler

import (
	"net/http"

	"go-social-api/internal/model"
	"go-social-api/internal/service"
)

type LikeHandler struct {
	service *service.LikeService
}

func NewLikeHandler(service *service.LikeService) *LikeHandler {
	return &LikeHandler{service: service}
}

func (h *LikeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id", model.ErrPostNotFound)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	result, err := h.service.Toggle(r.Context(), identity(r).UserID, postID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *LikeHandler) Likes(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id", model.ErrPostNotFound)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	result, err := h.service.Likes(r.Context(), postID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *LikeHandler) IsLiked(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id", model.ErrPostNotFound)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	result, err := h.service.IsLiked(r.Context(), identity(r).UserID, postID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}
