package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dangerclosesec/crmboard/internal/domain"
	"github.com/dangerclosesec/crmboard/internal/middleware"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

type ErrorResponse struct { // TypeGen: ErrorResponse
	BaseResponse
	Error   string    `json:"error"`
	Details *[]string `json:"details,omitempty"`
}

type BaseResponse struct { // TypeGen: DefaultResponse
	Ok bool `json:"ok"`
}

// respondWithError sends an error response with a message
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	// Sets content type header
	w.Header().Set("Content-Type", "application/json")

	// Sets the HTTP status code
	w.WriteHeader(code)

	// Encodes the response
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps service errors to HTTP statuses. Unexpected errors are
// logged and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		details := verr.Details()
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid input", Details: &details})
	case errors.Is(err, domain.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, publicMessage(err))
	case errors.Is(err, domain.ErrUnauthorized):
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, publicMessage(err))
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrReferenceConflict):
		respondWithError(w, http.StatusConflict, publicMessage(err))
	case errors.Is(err, domain.ErrUnavailable):
		slog.ErrorContext(r.Context(), "database unavailable", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusServiceUnavailable, "Service unavailable")
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
			"requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// publicMessage returns the innermost domain message, without the wrapping
// added on the way up.
func publicMessage(err error) string {
	for _, sentinel := range []error{
		domain.ErrStageMismatch, domain.ErrEmptyBatch, domain.ErrInvalidEventTime,
		domain.ErrPipelineNotFound, domain.ErrStageNotFound, domain.ErrCardNotFound,
		domain.ErrClientNotFound, domain.ErrEventNotFound, domain.ErrClientEmailExists,
		domain.ErrReferenceConflict,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "Not found"
	case errors.Is(err, domain.ErrConflict):
		return "Conflict"
	default:
		return "Invalid input"
	}
}

// decodeJSON reads a JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			respondWithError(w, http.StatusBadRequest, "Request body is empty")
			return false
		}
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

// organization returns the caller's organization. A request naming another
// organization with ?organizationId is refused.
func organization(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok || p.OrganizationID == uuid.Nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}

	if raw := r.URL.Query().Get("organizationId"); raw != "" {
		requested, err := uuid.Parse(raw)
		if err != nil || requested != p.OrganizationID {
			respondWithError(w, http.StatusForbidden, "Forbidden")
			return uuid.Nil, false
		}
	}
	return p.OrganizationID, true
}

// uuidParam parses a required id, answering 400 when it is malformed.
func uuidParam(w http.ResponseWriter, raw, name string) (uuid.UUID, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		respondWithError(w, http.StatusBadRequest, "Missing "+name)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUID parses an optional id filter.
func optionalUUID(w http.ResponseWriter, raw, name string) (uuid.UUID, bool) {
	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, true
	}
	return uuidParam(w, raw, name)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
