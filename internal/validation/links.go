package validation

import (
	"context"
	"strings"

	"roomsearch/internal/domain"
)

// Identity aliases the domain identity so callers of this package need not import domain.
type Identity = domain.Identity

const bearerPrefix = "Bearer "

// Authentication verifies the bearer credentials and records the caller's identity.
type Authentication struct {
	Verifier domain.TokenVerifier
}

// NewAuthentication returns the authentication link.
func NewAuthentication(verifier domain.TokenVerifier) *Authentication {
	return &Authentication{Verifier: verifier}
}

func (a *Authentication) Validate(_ context.Context, req *Request) (Decision, error) {
	if req.Authorization == "" {
		return Next, reject(domain.ErrUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(req.Authorization, bearerPrefix) {
		return Next, reject(domain.ErrUnauthorized, "invalid authorization format")
	}
	token := strings.TrimSpace(req.Authorization[len(bearerPrefix):])
	if token == "" {
		return Next, reject(domain.ErrUnauthorized, "missing token")
	}
	identity, err := a.Verifier.Verify(token)
	if err != nil {
		return Next, reject(domain.ErrUnauthorized, "invalid or expired token")
	}
	req.Identity = identity
	return Next, nil
}

// Authorization requires the authenticated identity to hold one of AllowedRoles.
type Authorization struct {
	AllowedRoles []string
}

// NewAuthorization returns the authorization link.
func NewAuthorization(allowedRoles ...string) *Authorization {
	return &Authorization{AllowedRoles: allowedRoles}
}

func (a *Authorization) Validate(_ context.Context, req *Request) (Decision, error) {
	if req.Identity == nil {
		return Next, reject(domain.ErrUnauthorized, "request is not authenticated")
	}
	if !req.Identity.HasAnyRole(a.AllowedRoles...) {
		return Next, reject(domain.ErrForbidden, "insufficient permissions to search rooms")
	}
	return Next, nil
}
