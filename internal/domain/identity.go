package domain

import "time"

// Identity is the caller established by the authentication link.
type Identity struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
}

// HasAnyRole reports whether the identity holds at least one of roles.
func (i *Identity) HasAnyRole(roles ...string) bool {
	if i == nil {
		return false
	}
	for _, have := range i.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// TokenVerifier verifies a bearer token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// TokenIssuer issues bearer tokens for an identity.
type TokenIssuer interface {
	Issue(userID string, roles []string, expiry time.Duration) (string, error)
}
