package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/domain"
)

type staticVerifier struct{}

func (staticVerifier) Verify(token string) (*domain.Identity, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &domain.Identity{UserID: "user-ada", Email: "ada@example.com"}, nil
}

type stubAnnouncements struct{ domain.AnnouncementService }

func (stubAnnouncements) GetAnnouncement(context.Context) string    { return "nearly sold out" }
func (stubAnnouncements) GetFeaturedSpeaker(context.Context) string { return "" }

type stubProfiles struct{}

func (stubProfiles) GetProfile(_ context.Context, id *domain.Identity) (*domain.Profile, error) {
	return &domain.Profile{UserID: id.UserID}, nil
}

func (stubProfiles) SaveProfile(context.Context, *domain.Identity, domain.ProfileUpdate) (*domain.Profile, error) {
	return nil, errors.New("not used")
}

func newTestRouter(rps float64) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(Controllers{
		Conference:   controllers.NewConferenceController(logger, nil),
		Profile:      controllers.NewProfileController(logger, stubProfiles{}),
		Registration: controllers.NewRegistrationController(logger, nil),
		Session:      controllers.NewSessionController(logger, nil),
		Announcement: controllers.NewAnnouncementController(stubAnnouncements{}),
	}, staticVerifier{}, RouterConfig{AllowedOrigins: []string{"https://app.example.com"}, RateLimitRPS: rps, RateLimitBurst: 1}, logger)
}

func TestRouter_AuthenticatedRoutesRejectAnonymous(t *testing.T) {
	router := newTestRouter(0)
	routes := []struct{ method, path string }{
		{http.MethodPost, "/conferences"},
		{http.MethodPatch, "/conferences/c1"},
		{http.MethodGet, "/conferences/created"},
		{http.MethodGet, "/conferences/attending"},
		{http.MethodPost, "/conferences/c1/registration"},
		{http.MethodDelete, "/conferences/c1/registration"},
		{http.MethodPost, "/conferences/c1/sessions"},
		{http.MethodGet, "/wishlist"},
		{http.MethodPost, "/wishlist/s1"},
		{http.MethodDelete, "/wishlist/s1"},
		{http.MethodGet, "/profile"},
		{http.MethodPatch, "/profile"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(rt.method, rt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestRouter_PublicAndAuthenticated(t *testing.T) {
	router := newTestRouter(0)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/announcements", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "nearly sold out")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("Origin", "https://app.example.com")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "user-ada")
	assert.Equal(t, "https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/profile", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouter_RateLimited(t *testing.T) {
	router := newTestRouter(0.001)
	codes := make([]int, 2)
	for i := range codes {
		req := httptest.NewRequest(http.MethodGet, "/announcements", nil)
		req.RemoteAddr = "192.0.2.1:4000"
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		codes[i] = rr.Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}
