package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Conference   *controllers.ConferenceController
	Profile      *controllers.ProfileController
	Registration *controllers.RegistrationController
	Session      *controllers.SessionController
	Announcement *controllers.AnnouncementController
}

// RouterConfig holds the cross-cutting settings applied around every route.
type RouterConfig struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter initializes the HTTP router with all application routes, wrapped in
// rate limiting, CORS and request logging (outermost).
func NewRouter(c Controllers, verifier domain.TokenVerifier, cfg RouterConfig, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Conferences
	mux.HandleFunc("POST /conferences", auth(c.Conference.CreateConference))
	mux.HandleFunc("POST /conferences/query", c.Conference.QueryConferences)
	mux.HandleFunc("GET /conferences/created", auth(c.Conference.ListCreated))
	mux.HandleFunc("GET /conferences/attending", auth(c.Conference.ListAttending))
	mux.HandleFunc("GET /conferences/{conferenceID}", c.Conference.GetConference)
	mux.HandleFunc("PATCH /conferences/{conferenceID}", auth(c.Conference.UpdateConference))

	// Registration
	mux.HandleFunc("POST /conferences/{conferenceID}/registration", auth(c.Registration.Register))
	mux.HandleFunc("DELETE /conferences/{conferenceID}/registration", auth(c.Registration.Unregister))

	// Sessions
	mux.HandleFunc("POST /conferences/{conferenceID}/sessions", auth(c.Session.CreateSession))
	mux.HandleFunc("GET /conferences/{conferenceID}/sessions", c.Session.ListConferenceSessions)
	mux.HandleFunc("GET /conferences/{conferenceID}/sessions/type/{type}", c.Session.ListConferenceSessionsByType)
	mux.HandleFunc("GET /sessions/speaker/{speaker}", c.Session.ListSessionsBySpeaker)
	mux.HandleFunc("GET /sessions/date/{date}", c.Session.ListSessionsByDate)
	mux.HandleFunc("GET /sessions/date/{date}/morning", c.Session.ListMorningSessionsByDate)
	mux.HandleFunc("GET /sessions/non-workshop-before-7pm", c.Session.ListNonWorkshopSessionsBeforeSevenPM)

	// Wishlist
	mux.HandleFunc("GET /wishlist", auth(c.Session.ListWishlist))
	mux.HandleFunc("POST /wishlist/{sessionID}", auth(c.Registration.AddToWishlist))
	mux.HandleFunc("DELETE /wishlist/{sessionID}", auth(c.Registration.RemoveFromWishlist))

	// Profile
	mux.HandleFunc("GET /profile", auth(c.Profile.GetProfile))
	mux.HandleFunc("PATCH /profile", auth(c.Profile.SaveProfile))

	// Announcements
	mux.HandleFunc("GET /announcements", c.Announcement.GetAnnouncement)
	mux.HandleFunc("GET /announcements/featured-speaker", c.Announcement.GetFeaturedSpeaker)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	limited := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware(mux)
	return middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, limited))
}
