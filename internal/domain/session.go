package domain

import (
	"context"
	"strings"
	"time"
)

// Defaults for session fields left empty on creation.
const (
	DefaultSessionHighlights = "what?"
	DefaultSessionSpeaker    = "who?"
	DefaultSessionDuration   = "how long?"
	DefaultSessionType       = "what type?"
)

// Session types used by the canned session queries.
const (
	SessionTypeKeynote  = "keynote"
	SessionTypeLecture  = "lecture"
	SessionTypeWorkshop = "workshop"
	SessionTypeOthers   = "others"
)

// Layouts accepted for session dates and times.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	ClockLayout    = "15:04:05"
)

// Session is a talk inside a conference. Organizer and conference name are
// copied from the owning conference at creation time.
// swagger:model Session
type Session struct {
	ID              string     `json:"id"`
	ConferenceID    string     `json:"conference_id"`
	ConferenceName  string     `json:"conference_name"`
	OrganizerUserID string     `json:"organizer_user_id"`
	Name            string     `json:"name"`
	Highlights      string     `json:"highlights"`
	Speaker         string     `json:"speaker"`
	Duration        string     `json:"duration"`
	TypeOfSession   string     `json:"type_of_session"`
	Date            *time.Time `json:"date"`
	StartTime       *time.Time `json:"start_time"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// SessionDraft holds the organizer-supplied fields of a new session.
type SessionDraft struct {
	Name          string
	Highlights    string
	Speaker       string
	Duration      string
	TypeOfSession string
	Date          *time.Time
	StartTime     *time.Time
}

// NewSession builds a session under conf from d, filling empty fields with defaults.
func NewSession(id string, conf *Conference, d SessionDraft, now time.Time) *Session {
	s := &Session{
		ID:              id,
		ConferenceID:    conf.ID,
		ConferenceName:  conf.Name,
		OrganizerUserID: conf.OrganizerUserID,
		Name:            d.Name,
		Highlights:      orDefault(d.Highlights, DefaultSessionHighlights),
		Speaker:         orDefault(d.Speaker, DefaultSessionSpeaker),
		Duration:        orDefault(d.Duration, DefaultSessionDuration),
		TypeOfSession:   orDefault(d.TypeOfSession, DefaultSessionType),
		Date:            d.Date,
		StartTime:       d.StartTime,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return s
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// ParseSessionSchedule parses a session's date and optional start time.
// A combined "YYYY-MM-DD HH:MM:SS" value sets both date and start time from the
// same instant; a plain "YYYY-MM-DD" sets only the date, and startTime
// ("HH:MM" or "HH:MM:SS") may then supply the start time on its own.
func ParseSessionSchedule(date, startTime string) (d, start *time.Time, err error) {
	date = strings.TrimSpace(date)
	startTime = strings.TrimSpace(startTime)
	if date != "" {
		if len(date) > len(DateLayout) {
			ts, err := time.Parse(DateTimeLayout, date)
			if err != nil {
				return nil, nil, Invalid("date must be YYYY-MM-DD or YYYY-MM-DD HH:MM:SS")
			}
			day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
			clock := time.Date(0, 1, 1, ts.Hour(), ts.Minute(), ts.Second(), 0, time.UTC)
			return &day, &clock, nil
		}
		day, err := time.Parse(DateLayout, date)
		if err != nil {
			return nil, nil, Invalid("date must be YYYY-MM-DD or YYYY-MM-DD HH:MM:SS")
		}
		d = &day
	}
	if startTime != "" {
		clock, err := ParseClock(startTime)
		if err != nil {
			return nil, nil, err
		}
		start = &clock
	}
	return d, start, nil
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into a time on 0000-01-01 UTC.
func ParseClock(s string) (time.Time, error) {
	for _, layout := range []string{ClockLayout, "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
		}
	}
	return time.Time{}, Invalid("start_time must be HH:MM or HH:MM:SS")
}

// SessionQuery selects sessions. Zero-valued fields do not constrain the result.
type SessionQuery struct {
	ConferenceID  string
	Types         []string
	Speaker       string
	Date          *time.Time
	StartAfter    string // exclusive, HH:MM:SS
	StartNotAfter string // inclusive, HH:MM:SS
}

// SessionRepository defines storage for sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	// GetMulti returns the sessions found for ids in the order of ids; missing IDs are skipped.
	GetMulti(ctx context.Context, ids []string) ([]*Session, error)
	List(ctx context.Context, q SessionQuery) ([]*Session, error)
}

// SessionService defines session creation and the canned session queries.
type SessionService interface {
	CreateSession(ctx context.Context, id *Identity, conferenceID string, d SessionDraft) (*Session, error)
	ListConferenceSessions(ctx context.Context, conferenceID string) ([]*Session, error)
	ListConferenceSessionsByType(ctx context.Context, conferenceID, typeOfSession string) ([]*Session, error)
	ListSessionsBySpeaker(ctx context.Context, speaker string) ([]*Session, error)
	ListSessionsByDate(ctx context.Context, date time.Time) ([]*Session, error)
	ListMorningSessionsByDate(ctx context.Context, date time.Time) ([]*Session, error)
	ListNonWorkshopSessionsBeforeSevenPM(ctx context.Context) ([]*Session, error)
	ListWishlist(ctx context.Context, id *Identity) ([]*Session, error)
}
