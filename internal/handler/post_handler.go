package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"go-social-api/internal/model"
	"go-social-api/internal/service"
)

type PostHandler struct {
	service *service.PostService
}

func NewPostHandler(service *service.PostService) *PostHandler {
	return &PostHandler{service: service}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.CreatePostRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		WriteError(w, r, err)
		return
	}

	post, err := h.service.Create(r.Context(), identity(r).UserID, payload)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, post, nil)
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	query := r.URL.Query()

	userID := strings.TrimSpace(query.Get("user_id"))
	if userID != "" && uuid.Validate(userID) != nil {
		WriteError(w, r, fmt.Errorf("%w: user_id must be a UUID", model.ErrInvalidInput))
		return
	}

	posts, meta, err := h.service.List(r.Context(), model.PostQuery{
		Search: strings.TrimSpace(query.Get("q")),
		UserID: userID,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.PostListData{Items: posts}, &meta)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id", model.ErrPostNotFound)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	post, err := h.service.Get(r.Context(), postID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, post, nil)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id", model.ErrPostNotFound)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var payload model.UpdatePostRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		WriteError(w, r, err)
		return
	}

	post, err := h.service.Update(r.Context(), identity(r).UserID, postID, payload)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, post, nil)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id", model.ErrPostNotFound)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), identity(r).UserID, postID); err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "Post deleted"}, nil)
}
