package handler

import (
	"net/http"
	"strings"

	"go-social-api/internal/model"
	"go-social-api/internal/service"
)

type AuditHandler struct {
	service *service.AuditService
}

func NewAuditHandler(service *service.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// Activity lists the caller's own session events, newest first.
func (h *AuditHandler) Activity(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	items, meta, err := h.service.Query(r.Context(), model.AuditQuery{
		UserID: identity(r).UserID,
		Action: strings.TrimSpace(r.URL.Query().Get("action")),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.AuditListData{Items: items}, &meta)
}
