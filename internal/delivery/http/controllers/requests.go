package controllers

import (
	"strings"
	"time"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

// BooleanMessage is the body of registration responses.
type BooleanMessage struct {
	Result bool `json:"result"`
}

// StringMessage is the body of announcement responses; an empty message means none is set.
type StringMessage struct {
	Message string `json:"message"`
}

// parseDate parses an optional "YYYY-MM-DD" field.
func parseDate(field string, s *string) (*time.Time, []string) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, []string{field + " must be YYYY-MM-DD"}
	}
	return &t, nil
}

// deref returns the value behind an optional string field, trimmed.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// ConferenceRequest is the body of POST /conferences and PATCH /conferences/{conferenceID}.
// On create, name is required and omitted fields take their defaults.
// On update, omitted or empty fields are unchanged.
type ConferenceRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Topics       []string `json:"topics"`
	City         *string  `json:"city"`
	StartDate    *string  `json:"start_date" example:"2026-06-01"`
	EndDate      *string  `json:"end_date" example:"2026-06-03"`
	MaxAttendees *int     `json:"max_attendees"`
}

// Validate implements Validator. Only formats are checked; required fields are
// enforced per operation by the service.
func (c ConferenceRequest) Validate() []string {
	var errs []string
	if _, e := parseDate("start_date", c.StartDate); e != nil {
		errs = append(errs, e...)
	}
	if _, e := parseDate("end_date", c.EndDate); e != nil {
		errs = append(errs, e...)
	}
	if c.MaxAttendees != nil && *c.MaxAttendees < 0 {
		errs = append(errs, "max_attendees must not be negative")
	}
	return errs
}

func (c ConferenceRequest) topics() []string {
	var out []string
	for _, t := range c.Topics {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Draft converts the request to a creation draft. Call after Validate.
func (c ConferenceRequest) Draft() domain.ConferenceDraft {
	start, _ := parseDate("start_date", c.StartDate)
	end, _ := parseDate("end_date", c.EndDate)
	return domain.ConferenceDraft{
		Name:         deref(c.Name),
		Description:  deref(c.Description),
		Topics:       c.topics(),
		City:         deref(c.City),
		StartDate:    start,
		EndDate:      end,
		MaxAttendees: c.MaxAttendees,
	}
}

// Update converts the request to a partial edit. Call after Validate.
func (c ConferenceRequest) Update() domain.ConferenceUpdate {
	d := c.Draft()
	return domain.ConferenceUpdate{
		Name:         d.Name,
		Description:  d.Description,
		Topics:       d.Topics,
		City:         d.City,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		MaxAttendees: d.MaxAttendees,
	}
}

// QueryConferencesRequest is the body of POST /conferences/query.
type QueryConferencesRequest struct {
	Filters []FilterRequest `json:"filters"`
}

// FilterRequest is one filter. Field is CITY, TOPIC, MONTH or MAX_ATTENDEES;
// operator is EQ, GT, GTEQ, LT, LTEQ or NE (or the matching symbol).
type FilterRequest struct {
	Field    string `json:"field" example:"CITY"`
	Operator string `json:"operator" example:"EQ"`
	Value    string `json:"value" example:"London"`
}

// ProfileRequest is the body of PATCH /profile. Omitted fields are unchanged.
type ProfileRequest struct {
	DisplayName  *string `json:"display_name"`
	TeeShirtSize *string `json:"tee_shirt_size" example:"M_W"`
}

// Validate implements Validator.
func (p ProfileRequest) Validate() []string {
	if s := deref(p.TeeShirtSize); s != "" {
		if _, err := domain.ParseTeeShirtSize(s); err != nil {
			return []string{"tee_shirt_size is not a known size"}
		}
	}
	return nil
}

// Update converts the request to a profile edit. Call after Validate.
func (p ProfileRequest) Update() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		DisplayName:  deref(p.DisplayName),
		TeeShirtSize: domain.TeeShirtSize(deref(p.TeeShirtSize)),
	}
}

// SessionRequest is the body of POST /conferences/{conferenceID}/sessions.
// date accepts YYYY-MM-DD or YYYY-MM-DD HH:MM:SS; start_time accepts HH:MM or HH:MM:SS.
type SessionRequest struct {
	Name          string `json:"name"`
	Highlights    string `json:"highlights"`
	Speaker       string `json:"speaker"`
	Duration      string `json:"duration"`
	TypeOfSession string `json:"type_of_session" example:"lecture"`
	Date          string `json:"date" example:"2026-06-01"`
	StartTime     string `json:"start_time" example:"09:30"`
}

// Validate implements Validator.
func (s SessionRequest) Validate() []string {
	if _, _, err := domain.ParseSessionSchedule(s.Date, s.StartTime); err != nil {
		return []string{strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")}
	}
	return nil
}

// Draft converts the request to a session draft. Call after Validate.
func (s SessionRequest) Draft() domain.SessionDraft {
	date, start, _ := domain.ParseSessionSchedule(s.Date, s.StartTime)
	return domain.SessionDraft{
		Name:          strings.TrimSpace(s.Name),
		Highlights:    strings.TrimSpace(s.Highlights),
		Speaker:       strings.TrimSpace(s.Speaker),
		Duration:      strings.TrimSpace(s.Duration),
		TypeOfSession: strings.TrimSpace(s.TypeOfSession),
		Date:          date,
		StartTime:     start,
	}
}

// envelope types for swagger.

// ConferenceSuccessResponse wraps a single conference.
type ConferenceSuccessResponse struct {
	Data  *domain.Conference `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ConferenceListSuccessResponse wraps a list of conferences.
type ConferenceListSuccessResponse struct {
	Data  []*domain.Conference `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// QueryConferencesResponse is the data of POST /conferences/query.
type QueryConferencesResponse struct {
	Items      []*domain.Conference   `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// QueryConferencesSuccessResponse wraps QueryConferencesResponse.
type QueryConferencesSuccessResponse struct {
	Data  QueryConferencesResponse `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// ProfileSuccessResponse wraps a profile.
type ProfileSuccessResponse struct {
	Data  *domain.Profile   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SessionSuccessResponse wraps a single session.
type SessionSuccessResponse struct {
	Data  *domain.Session   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SessionListSuccessResponse wraps a list of sessions.
type SessionListSuccessResponse struct {
	Data  []*domain.Session `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// BooleanSuccessResponse wraps a BooleanMessage.
type BooleanSuccessResponse struct {
	Data  BooleanMessage    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// StringSuccessResponse wraps a StringMessage.
type StringSuccessResponse struct {
	Data  StringMessage     `json:"data"`
	Error *helpers.APIError `json:"error"`
}
