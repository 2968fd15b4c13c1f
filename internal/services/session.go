package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"conferencecentral/internal/domain"

	"github.com/google/uuid"
)

// Time-of-day bounds for the canned session queries, as HH:MM:SS.
const (
	morningStartAfter  = "07:00:00"
	morningEndNotAfter = "12:00:00"
	eveningCutoff      = "19:00:00"
)

var nonWorkshopTypes = []string{domain.SessionTypeKeynote, domain.SessionTypeLecture, domain.SessionTypeOthers}

type sessionService struct {
	sessions       domain.SessionRepository
	conferences    domain.ConferenceRepository
	profiles       domain.ProfileRepository
	tasks          domain.TaskDispatcher
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewSessionService(
	sessions domain.SessionRepository,
	conferences domain.ConferenceRepository,
	profiles domain.ProfileRepository,
	tasks domain.TaskDispatcher,
	logger *slog.Logger,
	timeout time.Duration,
) domain.SessionService {
	return &sessionService{
		sessions:       sessions,
		conferences:    conferences,
		profiles:       profiles,
		tasks:          tasks,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// CreateSession adds a session to a conference owned by the caller and queues
// a featured-speaker refresh for its speaker.
func (s *sessionService) CreateSession(ctx context.Context, id *domain.Identity, conferenceID string, d domain.SessionDraft) (*domain.Session, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return nil, domain.Invalid("session 'name' field required")
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := s.conferences.GetByID(ctx, conferenceID)
	if err != nil {
		return nil, conferenceLookupError(conferenceID, err)
	}
	if conf.OrganizerUserID != id.UserID {
		return nil, fmt.Errorf("%w: only the owner of the conference can create sessions", domain.ErrForbidden)
	}
	sess := domain.NewSession(uuid.NewString(), conf, d, now())
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	dispatch(ctx, s.tasks, s.logger, domain.Task{
		Name: domain.TaskSetFeaturedSpeaker,
		Params: map[string]string{
			domain.ParamConferenceID: conf.ID,
			domain.ParamSpeaker:      sess.Speaker,
		},
	})
	return sess, nil
}

func (s *sessionService) ListConferenceSessions(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	return s.listInConference(ctx, domain.SessionQuery{ConferenceID: conferenceID})
}

func (s *sessionService) ListConferenceSessionsByType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	return s.listInConference(ctx, domain.SessionQuery{ConferenceID: conferenceID, Types: []string{typeOfSession}})
}

func (s *sessionService) listInConference(ctx context.Context, q domain.SessionQuery) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.conferences.GetByID(ctx, q.ConferenceID); err != nil {
		return nil, conferenceLookupError(q.ConferenceID, err)
	}
	return s.list(ctx, q)
}

func (s *sessionService) ListSessionsBySpeaker(ctx context.Context, speaker string) ([]*domain.Session, error) {
	if strings.TrimSpace(speaker) == "" {
		return nil, domain.Invalid("speaker is required")
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.list(ctx, domain.SessionQuery{Speaker: speaker})
}

func (s *sessionService) ListSessionsByDate(ctx context.Context, date time.Time) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.list(ctx, domain.SessionQuery{Date: &date})
}

// ListMorningSessionsByDate returns sessions on date starting after 07:00 and no later than 12:00.
func (s *sessionService) ListMorningSessionsByDate(ctx context.Context, date time.Time) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.list(ctx, domain.SessionQuery{Date: &date, StartAfter: morningStartAfter, StartNotAfter: morningEndNotAfter})
}

func (s *sessionService) ListNonWorkshopSessionsBeforeSevenPM(ctx context.Context) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.list(ctx, domain.SessionQuery{Types: nonWorkshopTypes, StartNotAfter: eveningCutoff})
}

func (s *sessionService) ListWishlist(ctx context.Context, id *domain.Identity) ([]*domain.Session, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.profiles.GetOrCreate(ctx, domain.NewProfile(id, now()))
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	list, err := s.sessions.GetMulti(ctx, p.SessionKeysWishlist)
	if err != nil {
		return nil, fmt.Errorf("get wishlist sessions: %w", err)
	}
	return list, nil
}

func (s *sessionService) list(ctx context.Context, q domain.SessionQuery) ([]*domain.Session, error) {
	list, err := s.sessions.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return list, nil
}
