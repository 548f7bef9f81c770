package middleware

import (
	"context"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const requestMetaKey contextKey = "crmboard_request_meta"

// RequestMeta is the request information recorded with activity entries.
type RequestMeta struct {
	RequestID string
	ClientIP  string
	UserAgent string
}

// RequestMetaFrom returns the metadata stored by RequestMetadata, or the
// zero value outside a request.
func RequestMetaFrom(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(requestMetaKey).(RequestMeta)
	return meta
}

// RequestMetadata stores the request id, client address and user agent in
// the context so services can record them without seeing the request. It
// must run after chimw.RequestID and chimw.RealIP.
func RequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), requestMetaKey, RequestMeta{
			RequestID: chimw.GetReqID(r.Context()),
			ClientIP:  r.RemoteAddr,
			UserAgent: r.UserAgent(),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
