package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"conferencecentral/internal/domain"

	"github.com/google/uuid"
)

type conferenceService struct {
	conferences    domain.ConferenceRepository
	profiles       domain.ProfileRepository
	transactor     domain.Transactor
	tasks          domain.TaskDispatcher
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewConferenceService(
	conferences domain.ConferenceRepository,
	profiles domain.ProfileRepository,
	transactor domain.Transactor,
	tasks domain.TaskDispatcher,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ConferenceService {
	return &conferenceService{
		conferences:    conferences,
		profiles:       profiles,
		transactor:     transactor,
		tasks:          tasks,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// CreateConference stores a new conference owned by the caller and queues the
// organizer's confirmation email.
func (s *conferenceService) CreateConference(ctx context.Context, id *domain.Identity, d domain.ConferenceDraft) (*domain.Conference, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return nil, domain.Invalid("conference 'name' field required")
	}
	if d.MaxAttendees != nil && *d.MaxAttendees < 0 {
		return nil, domain.Invalid("max_attendees must not be negative")
	}
	if d.StartDate != nil && d.EndDate != nil && d.EndDate.Before(*d.StartDate) {
		return nil, domain.Invalid("end_date is before start_date")
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	organizer, err := s.profiles.GetOrCreate(ctx, domain.NewProfile(id, now()))
	if err != nil {
		return nil, fmt.Errorf("get organizer profile: %w", err)
	}
	c := domain.NewConference(uuid.NewString(), id.UserID, d, now())
	if err := s.conferences.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create conference: %w", err)
	}
	c.OrganizerDisplayName = organizer.DisplayName

	email := organizer.MainEmail
	if email == "" {
		email = id.Email
	}
	if email != "" {
		dispatch(ctx, s.tasks, s.logger, domain.Task{
			Name: domain.TaskSendConfirmationEmail,
			Params: map[string]string{
				domain.ParamEmail:          email,
				domain.ParamConferenceInfo: conferenceInfo(c),
			},
		})
	}
	return c, nil
}

func conferenceInfo(c *domain.Conference) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s in %s", c.Name, c.City)
	if c.StartDate != nil {
		fmt.Fprintf(&b, ", starting %s", c.StartDate.Format(domain.DateLayout))
	}
	if c.EndDate != nil {
		fmt.Fprintf(&b, ", ending %s", c.EndDate.Format(domain.DateLayout))
	}
	fmt.Fprintf(&b, ". Topics: %s. Capacity: %d.", strings.Join(c.Topics, ", "), c.MaxAttendees)
	return b.String()
}

// UpdateConference applies u under a row lock so organizer edits never race
// with seat changes.
func (s *conferenceService) UpdateConference(ctx context.Context, id *domain.Identity, conferenceID string, u domain.ConferenceUpdate) (*domain.Conference, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var updated *domain.Conference
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		c, err := tx.LockConference(ctx, conferenceID)
		if err != nil {
			return conferenceLookupError(conferenceID, err)
		}
		if c.OrganizerUserID != id.UserID {
			return fmt.Errorf("%w: only the owner can update the conference", domain.ErrForbidden)
		}
		if err := u.Apply(c, now()); err != nil {
			return err
		}
		if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
			return domain.Invalid("end_date is before start_date")
		}
		if err := tx.SaveConference(ctx, c); err != nil {
			return fmt.Errorf("save conference: %w", err)
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.attachOrganizerNames(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *conferenceService) GetConference(ctx context.Context, conferenceID string) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := s.conferences.GetByID(ctx, conferenceID)
	if err != nil {
		return nil, conferenceLookupError(conferenceID, err)
	}
	if err := s.attachOrganizerNames(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *conferenceService) ListCreated(ctx context.Context, id *domain.Identity) ([]*domain.Conference, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, err := s.conferences.ListByOrganizer(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("list created conferences: %w", err)
	}
	if err := s.attachOrganizerNames(ctx, list...); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *conferenceService) ListAttending(ctx context.Context, id *domain.Identity) ([]*domain.Conference, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.profiles.GetOrCreate(ctx, domain.NewProfile(id, now()))
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	list, err := s.conferences.GetMulti(ctx, p.ConferenceKeysToAttend)
	if err != nil {
		return nil, fmt.Errorf("get attended conferences: %w", err)
	}
	if err := s.attachOrganizerNames(ctx, list...); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *conferenceService) QueryConferences(ctx context.Context, plan *domain.QueryPlan) ([]*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, err := s.conferences.Query(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("query conferences: %w", err)
	}
	if err := s.attachOrganizerNames(ctx, list...); err != nil {
		return nil, err
	}
	return list, nil
}

// attachOrganizerNames fills OrganizerDisplayName with one batched profile lookup.
func (s *conferenceService) attachOrganizerNames(ctx context.Context, list ...*domain.Conference) error {
	if len(list) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(list))
	ids := make([]string, 0, len(list))
	for _, c := range list {
		if _, ok := seen[c.OrganizerUserID]; !ok {
			seen[c.OrganizerUserID] = struct{}{}
			ids = append(ids, c.OrganizerUserID)
		}
	}
	profiles, err := s.profiles.GetMulti(ctx, ids)
	if err != nil {
		return fmt.Errorf("get organizer profiles: %w", err)
	}
	for _, c := range list {
		if p, ok := profiles[c.OrganizerUserID]; ok {
			c.OrganizerDisplayName = p.DisplayName
		}
	}
	return nil
}

func conferenceLookupError(conferenceID string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: no conference found with key %s", domain.ErrNotFound, conferenceID)
	}
	return fmt.Errorf("get conference: %w", err)
}
