package domain

// Identity is the authenticated caller supplied by the identity provider.
// The core never authenticates; it only trusts what the verifier hands it.
type Identity struct {
	UserID      string
	Email       string
	DisplayName string
}

// TokenVerifier verifies a bearer token and returns the caller's identity.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}
