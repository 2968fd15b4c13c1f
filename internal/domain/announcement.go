package domain

import "context"

// Cache slots holding derived announcements.
const (
	AnnouncementKey    = "RECENT_ANNOUNCEMENTS"
	FeaturedSpeakerKey = "FEATURED_SPEAKER"
)

// AnnouncementCache stores derived announcement strings. Get never fails: a
// missing slot reads as "".
type AnnouncementCache interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) string
	Clear(ctx context.Context, key string) error
}

// AnnouncementService recomputes and serves the announcement slots.
type AnnouncementService interface {
	RefreshNearlySoldOut(ctx context.Context) (string, error)
	RefreshFeaturedSpeaker(ctx context.Context, conferenceID, speaker string) (string, error)
	GetAnnouncement(ctx context.Context) string
	GetFeaturedSpeaker(ctx context.Context) string
}
