package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var ada = &domain.Identity{UserID: "user-ada", Email: "ada@example.com", DisplayName: "Ada"}

// serve builds a request with an optional JSON body and, when id is set, an identity in context.
// pattern is registered on a mux so PathValue works.
func serve(t *testing.T, pattern string, h http.HandlerFunc, method, target, body string, id *domain.Identity) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader = http.NoBody
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")
	if id != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), id))
	}
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

// decode unpacks the envelope; data is decoded into dest when non-nil.
func decode(t *testing.T, rr *httptest.ResponseRecorder, dest any) *helpers.APIError {
	t.Helper()
	var env struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	if dest != nil && env.Error == nil {
		require.NoError(t, json.Unmarshal(env.Data, dest))
	}
	return env.Error
}

func date(s string) *time.Time {
	t, _ := time.Parse(domain.DateLayout, s)
	return &t
}

// fakeConferenceService implements domain.ConferenceService for handler tests.
type fakeConferenceService struct {
	err        error
	conference *domain.Conference
	list       []*domain.Conference

	lastIdentity *domain.Identity
	lastID       string
	lastDraft    domain.ConferenceDraft
	lastUpdate   domain.ConferenceUpdate
	lastPlan     *domain.QueryPlan
}

func (f *fakeConferenceService) CreateConference(_ context.Context, id *domain.Identity, d domain.ConferenceDraft) (*domain.Conference, error) {
	f.lastIdentity, f.lastDraft = id, d
	if f.err != nil {
		return nil, f.err
	}
	return domain.NewConference("conf-1", id.UserID, d, time.Now()), nil
}

func (f *fakeConferenceService) UpdateConference(_ context.Context, id *domain.Identity, conferenceID string, u domain.ConferenceUpdate) (*domain.Conference, error) {
	f.lastIdentity, f.lastID, f.lastUpdate = id, conferenceID, u
	return f.conference, f.err
}

func (f *fakeConferenceService) GetConference(_ context.Context, conferenceID string) (*domain.Conference, error) {
	f.lastID = conferenceID
	return f.conference, f.err
}

func (f *fakeConferenceService) ListCreated(_ context.Context, id *domain.Identity) ([]*domain.Conference, error) {
	f.lastIdentity = id
	return f.list, f.err
}

func (f *fakeConferenceService) ListAttending(_ context.Context, id *domain.Identity) ([]*domain.Conference, error) {
	f.lastIdentity = id
	return f.list, f.err
}

func (f *fakeConferenceService) QueryConferences(_ context.Context, plan *domain.QueryPlan) ([]*domain.Conference, error) {
	f.lastPlan = plan
	return f.list, f.err
}

// fakeSessionService implements domain.SessionService for handler tests.
type fakeSessionService struct {
	err  error
	list []*domain.Session

	lastCall     string
	lastIdentity *domain.Identity
	lastConfID   string
	lastArg      string
	lastDate     time.Time
	lastDraft    domain.SessionDraft
}

func (f *fakeSessionService) CreateSession(_ context.Context, id *domain.Identity, conferenceID string, d domain.SessionDraft) (*domain.Session, error) {
	f.lastCall, f.lastIdentity, f.lastConfID, f.lastDraft = "create", id, conferenceID, d
	if f.err != nil {
		return nil, f.err
	}
	return domain.NewSession("sess-1", &domain.Conference{ID: conferenceID, Name: "GopherCon", OrganizerUserID: id.UserID}, d, time.Now()), nil
}

func (f *fakeSessionService) ListConferenceSessions(_ context.Context, conferenceID string) ([]*domain.Session, error) {
	f.lastCall, f.lastConfID = "conference", conferenceID
	return f.list, f.err
}

func (f *fakeSessionService) ListConferenceSessionsByType(_ context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	f.lastCall, f.lastConfID, f.lastArg = "type", conferenceID, typeOfSession
	return f.list, f.err
}

func (f *fakeSessionService) ListSessionsBySpeaker(_ context.Context, speaker string) ([]*domain.Session, error) {
	f.lastCall, f.lastArg = "speaker", speaker
	return f.list, f.err
}

func (f *fakeSessionService) ListSessionsByDate(_ context.Context, d time.Time) ([]*domain.Session, error) {
	f.lastCall, f.lastDate = "date", d
	return f.list, f.err
}

func (f *fakeSessionService) ListMorningSessionsByDate(_ context.Context, d time.Time) ([]*domain.Session, error) {
	f.lastCall, f.lastDate = "morning", d
	return f.list, f.err
}

func (f *fakeSessionService) ListNonWorkshopSessionsBeforeSevenPM(_ context.Context) ([]*domain.Session, error) {
	f.lastCall = "non-workshop"
	return f.list, f.err
}

func (f *fakeSessionService) ListWishlist(_ context.Context, id *domain.Identity) ([]*domain.Session, error) {
	f.lastCall, f.lastIdentity = "wishlist", id
	if id == nil {
		return nil, domain.ErrUnauthorized
	}
	return f.list, f.err
}

// fakeProfileService implements domain.ProfileService for handler tests.
type fakeProfileService struct {
	err        error
	lastUpdate domain.ProfileUpdate
}

func (f *fakeProfileService) GetProfile(_ context.Context, id *domain.Identity) (*domain.Profile, error) {
	if id == nil {
		return nil, domain.ErrUnauthorized
	}
	if f.err != nil {
		return nil, f.err
	}
	return domain.NewProfile(id, time.Now()), nil
}

func (f *fakeProfileService) SaveProfile(_ context.Context, id *domain.Identity, upd domain.ProfileUpdate) (*domain.Profile, error) {
	f.lastUpdate = upd
	if id == nil {
		return nil, domain.ErrUnauthorized
	}
	if f.err != nil {
		return nil, f.err
	}
	p := domain.NewProfile(id, time.Now())
	if upd.DisplayName != "" {
		p.DisplayName = upd.DisplayName
	}
	if upd.TeeShirtSize != "" {
		p.TeeShirtSize = upd.TeeShirtSize
	}
	return p, nil
}

// fakeRegistrationService implements domain.RegistrationService for handler tests.
type fakeRegistrationService struct {
	result bool
	err    error

	lastCall string
	lastKey  string
}

func (f *fakeRegistrationService) RegisterForConference(_ context.Context, _ *domain.Identity, conferenceID string) (bool, error) {
	f.lastCall, f.lastKey = "register", conferenceID
	return f.result, f.err
}

func (f *fakeRegistrationService) UnregisterFromConference(_ context.Context, _ *domain.Identity, conferenceID string) (bool, error) {
	f.lastCall, f.lastKey = "unregister", conferenceID
	return f.result, f.err
}

func (f *fakeRegistrationService) AddSessionToWishlist(_ context.Context, id *domain.Identity, sessionID string) (*domain.Profile, error) {
	f.lastCall, f.lastKey = "add", sessionID
	if f.err != nil {
		return nil, f.err
	}
	p := domain.NewProfile(id, time.Now())
	p.SessionKeysWishlist = []string{sessionID}
	return p, nil
}

func (f *fakeRegistrationService) RemoveSessionFromWishlist(_ context.Context, id *domain.Identity, sessionID string) (*domain.Profile, error) {
	f.lastCall, f.lastKey = "remove", sessionID
	if f.err != nil {
		return nil, f.err
	}
	return domain.NewProfile(id, time.Now()), nil
}

// fakeAnnouncementService implements domain.AnnouncementService for handler tests.
type fakeAnnouncementService struct {
	announcement string
	speaker      string
}

func (f *fakeAnnouncementService) RefreshNearlySoldOut(context.Context) (string, error) {
	return f.announcement, nil
}

func (f *fakeAnnouncementService) RefreshFeaturedSpeaker(context.Context, string, string) (string, error) {
	return f.speaker, nil
}

func (f *fakeAnnouncementService) GetAnnouncement(context.Context) string { return f.announcement }

func (f *fakeAnnouncementService) GetFeaturedSpeaker(context.Context) string { return f.speaker }
