package domain

import (
	"context"
	"time"
)

// Creation defaults for fields left empty on a new conference.
const (
	DefaultCity         = "Default City"
	DefaultMaxAttendees = 0
)

// DefaultTopics returns the topics assigned when none are supplied.
func DefaultTopics() []string { return []string{"Default", "Topic"} }

// NearlySoldOutSeats is the inclusive upper bound on remaining seats for a
// conference to count as nearly sold out.
const NearlySoldOutSeats = 5

// Conference is owned by its organizer's profile.
// swagger:model Conference
type Conference struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Description          string     `json:"description"`
	OrganizerUserID      string     `json:"organizer_user_id"`
	OrganizerDisplayName string     `json:"organizer_display_name,omitempty"`
	Topics               []string   `json:"topics"`
	City                 string     `json:"city"`
	StartDate            *time.Time `json:"start_date"`
	EndDate              *time.Time `json:"end_date"`
	Month                int        `json:"month"`
	MaxAttendees         int        `json:"max_attendees"`
	SeatsAvailable       int        `json:"seats_available"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// ConferenceDraft holds the organizer-supplied fields of a new conference.
type ConferenceDraft struct {
	Name         string
	Description  string
	Topics       []string
	City         string
	StartDate    *time.Time
	EndDate      *time.Time
	MaxAttendees *int
}

// NewConference builds a conference from d, filling every unset field from the
// defaults table. Month is derived from the start date and the seat counter
// starts full.
func NewConference(id, organizerUserID string, d ConferenceDraft, now time.Time) *Conference {
	c := &Conference{
		ID:              id,
		Name:            d.Name,
		Description:     d.Description,
		OrganizerUserID: organizerUserID,
		Topics:          d.Topics,
		City:            d.City,
		StartDate:       d.StartDate,
		EndDate:         d.EndDate,
		MaxAttendees:    DefaultMaxAttendees,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if len(c.Topics) == 0 {
		c.Topics = DefaultTopics()
	}
	if c.City == "" {
		c.City = DefaultCity
	}
	if d.MaxAttendees != nil {
		c.MaxAttendees = *d.MaxAttendees
	}
	if c.MaxAttendees > 0 {
		c.SeatsAvailable = c.MaxAttendees
	} else {
		c.MaxAttendees = 0
	}
	c.Month = monthOf(c.StartDate)
	return c
}

func monthOf(d *time.Time) int {
	if d == nil {
		return 0
	}
	return int(d.Month())
}

// ConferenceUpdate is a partial edit. Zero values (empty string, nil slice,
// nil pointer) leave the stored field unchanged.
type ConferenceUpdate struct {
	Name         string
	Description  string
	Topics       []string
	City         string
	StartDate    *time.Time
	EndDate      *time.Time
	MaxAttendees *int
}

// Apply copies the non-empty fields of u onto c. A capacity change shifts the
// seat counter by the same amount and fails if the new capacity is below the
// number of seats already taken.
func (u ConferenceUpdate) Apply(c *Conference, now time.Time) error {
	if u.MaxAttendees != nil {
		if *u.MaxAttendees < 0 {
			return Invalid("max_attendees must not be negative")
		}
		seats := c.SeatsAvailable + (*u.MaxAttendees - c.MaxAttendees)
		if seats < 0 {
			return Invalid("max_attendees is lower than the number of registered attendees")
		}
		c.MaxAttendees = *u.MaxAttendees
		c.SeatsAvailable = seats
	}
	if u.Name != "" {
		c.Name = u.Name
	}
	if u.Description != "" {
		c.Description = u.Description
	}
	if len(u.Topics) > 0 {
		c.Topics = u.Topics
	}
	if u.City != "" {
		c.City = u.City
	}
	if u.StartDate != nil {
		c.StartDate = u.StartDate
		c.Month = monthOf(u.StartDate)
	}
	if u.EndDate != nil {
		c.EndDate = u.EndDate
	}
	c.UpdatedAt = now
	return nil
}

// ConferenceRepository defines storage for conferences outside of a transaction.
type ConferenceRepository interface {
	Create(ctx context.Context, c *Conference) error
	GetByID(ctx context.Context, id string) (*Conference, error)
	// GetMulti returns the conferences found for ids in the order of ids; missing IDs are skipped.
	GetMulti(ctx context.Context, ids []string) ([]*Conference, error)
	ListByOrganizer(ctx context.Context, organizerUserID string) ([]*Conference, error)
	Query(ctx context.Context, plan *QueryPlan) ([]*Conference, error)
	// ListNearlySoldOut returns conferences with 0 < seats_available <= maxSeats ordered by name.
	ListNearlySoldOut(ctx context.Context, maxSeats int) ([]*Conference, error)
}

// ConferenceService defines conference creation, editing and lookup.
type ConferenceService interface {
	CreateConference(ctx context.Context, id *Identity, d ConferenceDraft) (*Conference, error)
	UpdateConference(ctx context.Context, id *Identity, conferenceID string, u ConferenceUpdate) (*Conference, error)
	GetConference(ctx context.Context, conferenceID string) (*Conference, error)
	ListCreated(ctx context.Context, id *Identity) ([]*Conference, error)
	ListAttending(ctx context.Context, id *Identity) ([]*Conference, error)
	QueryConferences(ctx context.Context, plan *QueryPlan) ([]*Conference, error)
}
