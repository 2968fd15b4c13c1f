package domain

import "context"

// RegistrationService defines conference attendance and session wishlist mutations.
// Each call runs in a single transaction over the caller's profile and the
// target conference.
type RegistrationService interface {
	// RegisterForConference returns true once the caller holds a seat.
	RegisterForConference(ctx context.Context, id *Identity, conferenceID string) (bool, error)
	// UnregisterFromConference returns false without error when the caller was not registered.
	UnregisterFromConference(ctx context.Context, id *Identity, conferenceID string) (bool, error)
	AddSessionToWishlist(ctx context.Context, id *Identity, sessionID string) (*Profile, error)
	// RemoveSessionFromWishlist fails with ErrNotInWishlist when the session is absent.
	RemoveSessionFromWishlist(ctx context.Context, id *Identity, sessionID string) (*Profile, error)
}
