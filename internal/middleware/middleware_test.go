package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dangerclosesec/crmboard/internal/auth"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	tm := auth.NewTokenManager("secret", time.Hour)
	org := uuid.New()
	token, err := tm.Generate("user-1", "ann@acme.io", org)
	require.NoError(t, err)
	unscoped, err := tm.Generate("user-1", "ann@acme.io", uuid.Nil)
	require.NoError(t, err)

	var got Principal
	h := AuthMiddleware(tm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = PrincipalFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		method string
		header string
		query  string
		want   int
	}{
		{"bearer", http.MethodGet, "Bearer " + token, "", http.StatusNoContent},
		{"missing", http.MethodGet, "", "", http.StatusUnauthorized},
		{"wrong scheme", http.MethodGet, "Basic " + token, "", http.StatusUnauthorized},
		{"garbage", http.MethodGet, "Bearer nope", "", http.StatusUnauthorized},
		{"query token on get", http.MethodGet, "", "?access_token=" + token, http.StatusNoContent},
		{"query token on post", http.MethodPost, "", "?access_token=" + token, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = Principal{}
			req := httptest.NewRequest(tt.method, "/api/pipeline"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusNoContent {
				assert.Equal(t, org, got.OrganizationID)
				assert.Equal(t, "user-1", got.UserID)
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+unscoped)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := chimw.RequestID(Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
}

func TestRequestMetadata(t *testing.T) {
	var meta RequestMeta
	h := chimw.RequestID(RequestMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		meta = RequestMetaFrom(r.Context())
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", "board-ui/1.0")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.NotEmpty(t, meta.RequestID)
	assert.Equal(t, "board-ui/1.0", meta.UserAgent)
	assert.Equal(t, req.RemoteAddr, meta.ClientIP)
}
