package controllers

import (
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

type AnnouncementController struct {
	Service domain.AnnouncementService
}

func NewAnnouncementController(svc domain.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{Service: svc}
}

// GetAnnouncement godoc
// @Summary Get the nearly-sold-out announcement
// @Description data.message is empty when no conference is nearly sold out.
// @Tags announcements
// @Produce json
// @Success 200 {object} controllers.StringSuccessResponse
// @Router /announcements [get]
func (c *AnnouncementController) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, StringMessage{Message: c.Service.GetAnnouncement(r.Context())})
}

// GetFeaturedSpeaker godoc
// @Summary Get the featured speaker announcement
// @Description data.message is empty when no speaker has more than one session in a conference.
// @Tags announcements
// @Produce json
// @Success 200 {object} controllers.StringSuccessResponse
// @Router /announcements/featured-speaker [get]
func (c *AnnouncementController) GetFeaturedSpeaker(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, StringMessage{Message: c.Service.GetFeaturedSpeaker(r.Context())})
}
