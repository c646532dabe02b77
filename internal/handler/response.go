package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"go-social-api/internal/middleware"
	"go-social-api/internal/model"
	"go-social-api/pkg/apierror"
)

const maxBodyBytes = 1 << 20

func writeSuccess(w http.ResponseWriter, status int, data any, meta *model.Meta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// WriteError maps the error taxonomy onto status codes and the response
// envelope. Unclassified errors become a fixed 500 body; the cause is only
// logged.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	} else if errors.Is(err, model.ErrMissingToken) {
		status = http.StatusUnauthorized
		body.Code = "MISSING_TOKEN"
		body.Message = "Authorization token is required"
	} else if errors.Is(err, model.ErrMalformedToken) {
		status = http.StatusUnauthorized
		body.Code = "MALFORMED_TOKEN"
		body.Message = "Token is invalid"
	} else if errors.Is(err, model.ErrExpiredToken) {
		status = http.StatusUnauthorized
		body.Code = "EXPIRED_TOKEN"
		body.Message = "Token has expired"
	} else if errors.Is(err, model.ErrWrongTokenKind) {
		status = http.StatusUnauthorized
		body.Code = "WRONG_TOKEN_KIND"
		body.Message = "Wrong token type"
	} else if errors.Is(err, model.ErrRevokedToken) {
		status = http.StatusUnauthorized
		body.Code = "REVOKED_TOKEN"
		body.Message = "Token has been revoked"
	} else if errors.Is(err, model.ErrInvalidCredentials) {
		status = http.StatusUnauthorized
		body.Code = "INVALID_CREDENTIALS"
		body.Message = "Invalid email or password"
	} else if errors.Is(err, model.ErrUserNotFound) {
		status = http.StatusNotFound
		body.Code = "USER_NOT_FOUND"
		body.Message = "User not found"
	} else if errors.Is(err, model.ErrPostNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Post not found"
	} else if errors.Is(err, model.ErrCommentNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Comment not found"
	} else if errors.Is(err, model.ErrForbidden) {
		status = http.StatusForbidden
		body.Code = "FORBIDDEN"
		body.Message = "Access denied"
	} else if errors.Is(err, model.ErrUserAlreadyExists) {
		status = http.StatusBadRequest
		body.Code = "ALREADY_EXISTS"
		body.Message = "Username or email already registered"
	} else if errors.Is(err, model.ErrInvalidInput) {
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Invalid input"
		body.Details = strings.TrimPrefix(err.Error(), model.ErrInvalidInput.Error()+": ")
	}

	if status >= http.StatusInternalServerError {
		attrs := []any{"error", err}
		if r != nil {
			attrs = append(attrs, "request_id", middleware.RequestIDFromContext(r.Context()), "path", r.URL.Path)
		}
		slog.Error("request failed", attrs...)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}

// decodeJSON reads a single JSON object from the body, rejecting unknown
// fields and bodies over maxBodyBytes.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return decode(w, r, dst, false)
}

// decodeOptionalJSON is decodeJSON that leaves dst untouched on an empty body.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return decode(w, r, dst, true)
}

func decode(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return apierror.BadRequest("invalid JSON body", err.Error())
	}
	return nil
}

func identity(r *http.Request) model.Identity {
	id, _ := middleware.IdentityFromContext(r.Context())
	return id
}

func parseIntOrDefault(raw string, fallback int) int {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func pageParams(r *http.Request) (int, int) {
	query := r.URL.Query()
	return parseIntOrDefault(query.Get("page"), 1), parseIntOrDefault(query.Get("limit"), model.DefaultPageLimit)
}

// pathID reads a UUID route parameter. Anything that is not a UUID cannot
// name a stored row, so it is reported as notFound.
func pathID(r *http.Request, name string, notFound error) (string, error) {
	id := chi.URLParam(r, name)
	if uuid.Validate(id) != nil {
		return "", notFound
	}
	return id, nil
}
