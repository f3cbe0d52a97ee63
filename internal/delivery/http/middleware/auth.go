package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	h "roomsearch/internal/delivery/http/helpers"
	"roomsearch/internal/domain"
	"roomsearch/internal/validation"
)

type contextKey string

const identityKey contextKey = "identity"

// SetIdentity returns a context with the caller identity set. Used by RequireValidation.
func SetIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the authenticated identity from the context, if present.
func IdentityFromContext(ctx context.Context) (*domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*domain.Identity)
	return id, ok && id != nil
}

// RequestValidator is satisfied by *validation.Chain.
type RequestValidator interface {
	Validate(ctx context.Context, req *validation.Request) error
}

// RequireValidation returns a wrapper that runs the validator chain before next.
// A rejection responds with 401 or 403 and does not call next.
func RequireValidation(chain RequestValidator, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			req := &validation.Request{Authorization: r.Header.Get("Authorization")}
			if err := chain.Validate(r.Context(), req); err != nil {
				status, code := h.StatusForError(err)
				if status == http.StatusInternalServerError {
					logger.ErrorContext(r.Context(), "request validation failed", "path", r.URL.Path, "err", err)
					h.WriteJSONError(w, status, code, "request validation failed")
					return
				}
				message := err.Error()
				var rej *validation.Rejection
				if errors.As(err, &rej) {
					message = rej.Reason
				}
				logger.DebugContext(r.Context(), "request rejected", "path", r.URL.Path, "status", status, "reason", message)
				h.WriteJSONError(w, status, code, message)
				return
			}
			if req.Identity != nil {
				r = r.WithContext(SetIdentity(r.Context(), req.Identity))
			}
			next(w, r)
		}
	}
}
