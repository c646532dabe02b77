package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-social-api/internal/model"
	"go-social-api/internal/service"
)

type CommentHandler struct {
	service *service.CommentService
}

func NewCommentHandler(service *service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.CreateCommentRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		WriteError(w, r, err)
		return
	}

	comment, err := h.service.Create(r.Context(), identity(r).UserID, payload)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, comment, nil)
}

func (h *CommentHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id", model.ErrPostNotFound)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	page, limit := pageParams(r)
	items, meta, err := h.service.ListByPost(r.Context(), postID, page, limit)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.CommentListData{Items: items}, &meta)
}

func (h *CommentHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	items, meta, err := h.service.ListByUser(r.Context(), identity(r).UserID, chi.URLParam(r, "user_id"), page, limit)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.UserCommentListData{Items: items}, &meta)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathID(r, "comment_id", model.ErrCommentNotFound)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var payload model.UpdateCommentRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		WriteError(w, r, err)
		return
	}

	comment, err := h.service.Update(r.Context(), identity(r).UserID, commentID, payload)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, comment, nil)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathID(r, "comment_id", model.ErrCommentNotFound)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), identity(r).UserID, commentID); err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "Comment deleted"}, nil)
}
