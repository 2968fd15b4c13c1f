package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

type SessionController struct {
	Logger  *slog.Logger
	Service domain.SessionService
}

func NewSessionController(logger *slog.Logger, svc domain.SessionService) *SessionController {
	return &SessionController{Logger: logger, Service: svc}
}

func (c *SessionController) writeList(w http.ResponseWriter, r *http.Request, list []*domain.Session, err error) {
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if list == nil {
		list = []*domain.Session{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// pathDate reads the {date} path value as YYYY-MM-DD, writing a 400 on failure.
func pathDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	d, err := time.Parse(domain.DateLayout, r.PathValue("date"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return d, true
}

// CreateSession godoc
// @Summary Create a session in a conference
// @Description Only the conference organizer may add sessions. The speaker becomes a featured-speaker candidate.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID"
// @Param session body SessionRequest true "Session data; name is required"
// @Success 201 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID}/sessions [post]
func (c *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	s, err := c.Service.CreateSession(r.Context(), middleware.IdentityFromContext(r.Context()), r.PathValue("conferenceID"), req.Draft())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, s)
}

// ListConferenceSessions godoc
// @Summary List the sessions of a conference
// @Tags sessions
// @Produce json
// @Param conferenceID path string true "Conference ID"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID}/sessions [get]
func (c *SessionController) ListConferenceSessions(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListConferenceSessions(r.Context(), r.PathValue("conferenceID"))
	c.writeList(w, r, list, err)
}

// ListConferenceSessionsByType godoc
// @Summary List the sessions of a conference with a given type
// @Tags sessions
// @Produce json
// @Param conferenceID path string true "Conference ID"
// @Param type path string true "Session type, e.g. workshop"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID}/sessions/type/{type} [get]
func (c *SessionController) ListConferenceSessionsByType(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListConferenceSessionsByType(r.Context(), r.PathValue("conferenceID"), r.PathValue("type"))
	c.writeList(w, r, list, err)
}

// ListSessionsBySpeaker godoc
// @Summary List sessions given by a speaker, across all conferences
// @Tags sessions
// @Produce json
// @Param speaker path string true "Speaker name"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/speaker/{speaker} [get]
func (c *SessionController) ListSessionsBySpeaker(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListSessionsBySpeaker(r.Context(), r.PathValue("speaker"))
	c.writeList(w, r, list, err)
}

// ListSessionsByDate godoc
// @Summary List sessions on a date
// @Tags sessions
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/date/{date} [get]
func (c *SessionController) ListSessionsByDate(w http.ResponseWriter, r *http.Request) {
	d, ok := pathDate(w, r)
	if !ok {
		return
	}
	list, err := c.Service.ListSessionsByDate(r.Context(), d)
	c.writeList(w, r, list, err)
}

// ListMorningSessionsByDate godoc
// @Summary List morning sessions on a date
// @Description Sessions starting after 07:00 and no later than 12:00.
// @Tags sessions
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/date/{date}/morning [get]
func (c *SessionController) ListMorningSessionsByDate(w http.ResponseWriter, r *http.Request) {
	d, ok := pathDate(w, r)
	if !ok {
		return
	}
	list, err := c.Service.ListMorningSessionsByDate(r.Context(), d)
	c.writeList(w, r, list, err)
}

// ListNonWorkshopSessionsBeforeSevenPM godoc
// @Summary List non-workshop sessions starting no later than 19:00
// @Tags sessions
// @Produce json
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/non-workshop-before-7pm [get]
func (c *SessionController) ListNonWorkshopSessionsBeforeSevenPM(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListNonWorkshopSessionsBeforeSevenPM(r.Context())
	c.writeList(w, r, list, err)
}

// ListWishlist godoc
// @Summary List the sessions in the caller's wishlist
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /wishlist [get]
func (c *SessionController) ListWishlist(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListWishlist(r.Context(), middleware.IdentityFromContext(r.Context()))
	c.writeList(w, r, list, err)
}
