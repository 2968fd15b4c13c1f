package services

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

const (
	nearlySoldOutPrefix   = "Last chance to attend! The following conferences are nearly sold out: "
	featuredSpeakerPrefix = "The featured speaker %s has the following Sessions: "
)

type announcementService struct {
	conferences    domain.ConferenceRepository
	sessions       domain.SessionRepository
	cache          domain.AnnouncementCache
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewAnnouncementService(
	conferences domain.ConferenceRepository,
	sessions domain.SessionRepository,
	cache domain.AnnouncementCache,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AnnouncementService {
	return &announcementService{
		conferences:    conferences,
		sessions:       sessions,
		cache:          cache,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// RefreshNearlySoldOut recomputes the announcement listing conferences with
// 1 to NearlySoldOutSeats seats left, clearing the slot when there are none.
func (s *announcementService) RefreshNearlySoldOut(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, err := s.conferences.ListNearlySoldOut(ctx, domain.NearlySoldOutSeats)
	if err != nil {
		return "", fmt.Errorf("list nearly sold out conferences: %w", err)
	}
	names := make([]string, 0, len(list))
	for _, c := range list {
		names = append(names, c.Name)
	}
	return s.store(ctx, domain.AnnouncementKey, nearlySoldOutPrefix, names)
}

// RefreshFeaturedSpeaker recomputes the featured-speaker slot from the
// speaker's sessions in the given conference.
func (s *announcementService) RefreshFeaturedSpeaker(ctx context.Context, conferenceID, speaker string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, err := s.sessions.List(ctx, domain.SessionQuery{ConferenceID: conferenceID, Speaker: speaker})
	if err != nil {
		return "", fmt.Errorf("list speaker sessions: %w", err)
	}
	slices.SortStableFunc(list, func(a, b *domain.Session) int { return cmp.Compare(a.Name, b.Name) })
	names := make([]string, 0, len(list))
	for _, sess := range list {
		names = append(names, sess.Name)
	}
	return s.store(ctx, domain.FeaturedSpeakerKey, fmt.Sprintf(featuredSpeakerPrefix, speaker), names)
}

func (s *announcementService) store(ctx context.Context, key, prefix string, names []string) (string, error) {
	if len(names) == 0 {
		if err := s.cache.Clear(ctx, key); err != nil {
			return "", fmt.Errorf("clear %s: %w", key, err)
		}
		return "", nil
	}
	msg := prefix + strings.Join(names, ", ")
	if err := s.cache.Set(ctx, key, msg); err != nil {
		return "", fmt.Errorf("set %s: %w", key, err)
	}
	s.logger.DebugContext(ctx, "announcement refreshed", "key", key, "items", len(names))
	return msg, nil
}

func (s *announcementService) GetAnnouncement(ctx context.Context) string {
	return s.cache.Get(ctx, domain.AnnouncementKey)
}

func (s *announcementService) GetFeaturedSpeaker(ctx context.Context) string {
	return s.cache.Get(ctx, domain.FeaturedSpeakerKey)
}
