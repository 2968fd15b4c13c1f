package domain

import (
	"context"
	"slices"
	"time"
)

// TeeShirtSize is the closed set of t-shirt sizes a profile may carry.
type TeeShirtSize string

const (
	TeeShirtNotSpecified TeeShirtSize = "NOT_SPECIFIED"
	TeeShirtXSM          TeeShirtSize = "XS_M"
	TeeShirtXSW          TeeShirtSize = "XS_W"
	TeeShirtSM           TeeShirtSize = "S_M"
	TeeShirtSW           TeeShirtSize = "S_W"
	TeeShirtMM           TeeShirtSize = "M_M"
	TeeShirtMW           TeeShirtSize = "M_W"
	TeeShirtLM           TeeShirtSize = "L_M"
	TeeShirtLW           TeeShirtSize = "L_W"
	TeeShirtXLM          TeeShirtSize = "XL_M"
	TeeShirtXLW          TeeShirtSize = "XL_W"
	TeeShirtXXLM         TeeShirtSize = "XXL_M"
	TeeShirtXXLW         TeeShirtSize = "XXL_W"
	TeeShirtXXXLM        TeeShirtSize = "XXXL_M"
	TeeShirtXXXLW        TeeShirtSize = "XXXL_W"
)

var teeShirtSizes = map[TeeShirtSize]struct{}{
	TeeShirtNotSpecified: {}, TeeShirtXSM: {}, TeeShirtXSW: {}, TeeShirtSM: {}, TeeShirtSW: {},
	TeeShirtMM: {}, TeeShirtMW: {}, TeeShirtLM: {}, TeeShirtLW: {}, TeeShirtXLM: {}, TeeShirtXLW: {},
	TeeShirtXXLM: {}, TeeShirtXXLW: {}, TeeShirtXXXLM: {}, TeeShirtXXXLW: {},
}

// ParseTeeShirtSize returns the size named s, or ErrInvalidInput.
func ParseTeeShirtSize(s string) (TeeShirtSize, error) {
	size := TeeShirtSize(s)
	if _, ok := teeShirtSizes[size]; !ok {
		return "", Invalid("unknown tee shirt size " + s)
	}
	return size, nil
}

// Profile is the per-user record, keyed by the identity's user ID.
// swagger:model Profile
type Profile struct {
	UserID                 string       `json:"user_id"`
	DisplayName            string       `json:"display_name"`
	MainEmail              string       `json:"main_email"`
	TeeShirtSize           TeeShirtSize `json:"tee_shirt_size"`
	ConferenceKeysToAttend []string     `json:"conference_keys_to_attend"`
	SessionKeysWishlist    []string     `json:"session_keys_wishlist"`
	CreatedAt              time.Time    `json:"created_at"`
	UpdatedAt              time.Time    `json:"updated_at"`
}

// NewProfile returns the profile created on first access for id.
func NewProfile(id *Identity, now time.Time) *Profile {
	return &Profile{
		UserID:                 id.UserID,
		DisplayName:            id.DisplayName,
		MainEmail:              id.Email,
		TeeShirtSize:           TeeShirtNotSpecified,
		ConferenceKeysToAttend: []string{},
		SessionKeysWishlist:    []string{},
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

// IsAttending reports whether conferenceID is in the attendance list.
func (p *Profile) IsAttending(conferenceID string) bool {
	return slices.Contains(p.ConferenceKeysToAttend, conferenceID)
}

// HasWishlisted reports whether sessionID is in the wishlist.
func (p *Profile) HasWishlisted(sessionID string) bool {
	return slices.Contains(p.SessionKeysWishlist, sessionID)
}

// ProfileUpdate holds the user-editable profile fields. Empty values leave the field unchanged.
type ProfileUpdate struct {
	DisplayName  string
	TeeShirtSize TeeShirtSize
}

// ProfileRepository defines storage for profiles outside of a transaction.
type ProfileRepository interface {
	// GetOrCreate inserts p if no profile exists for p.UserID, then returns the stored profile.
	GetOrCreate(ctx context.Context, p *Profile) (*Profile, error)
	GetByID(ctx context.Context, userID string) (*Profile, error)
	// GetMulti returns the profiles found for userIDs keyed by user ID; missing IDs are skipped.
	GetMulti(ctx context.Context, userIDs []string) (map[string]*Profile, error)
	UpdateDetails(ctx context.Context, userID string, upd ProfileUpdate) (*Profile, error)
}

// ProfileService defines profile read/edit operations.
type ProfileService interface {
	GetProfile(ctx context.Context, id *Identity) (*Profile, error)
	SaveProfile(ctx context.Context, id *Identity, upd ProfileUpdate) (*Profile, error)
}
