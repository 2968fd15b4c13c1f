package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"conferencecentral/internal/domain"
)

type registrationService struct {
	transactor     domain.Transactor
	contextTimeout time.Duration
}

// NewRegistrationService returns the attendance and wishlist engine. Every
// operation locks the caller's profile and then the conference (if any) inside
// one transaction, so list membership and the seat counter change together.
func NewRegistrationService(transactor domain.Transactor, timeout time.Duration) domain.RegistrationService {
	return &registrationService{
		transactor:     transactor,
		contextTimeout: timeout,
	}
}

func (s *registrationService) RegisterForConference(ctx context.Context, id *domain.Identity, conferenceID string) (bool, error) {
	err := s.withProfileAndConference(ctx, id, conferenceID, func(p *domain.Profile, c *domain.Conference) (bool, error) {
		if p.IsAttending(c.ID) {
			return false, domain.ErrAlreadyRegistered
		}
		if c.SeatsAvailable <= 0 {
			return false, domain.ErrSoldOut
		}
		p.ConferenceKeysToAttend = append(p.ConferenceKeysToAttend, c.ID)
		c.SeatsAvailable--
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// UnregisterFromConference reports false, without error, when the caller was not registered.
func (s *registrationService) UnregisterFromConference(ctx context.Context, id *domain.Identity, conferenceID string) (bool, error) {
	removed := false
	err := s.withProfileAndConference(ctx, id, conferenceID, func(p *domain.Profile, c *domain.Conference) (bool, error) {
		i := slices.Index(p.ConferenceKeysToAttend, c.ID)
		if i < 0 {
			return false, nil
		}
		p.ConferenceKeysToAttend = slices.Delete(p.ConferenceKeysToAttend, i, i+1)
		if c.SeatsAvailable < c.MaxAttendees {
			c.SeatsAvailable++
		}
		removed = true
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// withProfileAndConference locks the caller's profile and the conference, runs
// mutate, and saves both when mutate reports a change.
func (s *registrationService) withProfileAndConference(
	ctx context.Context,
	id *domain.Identity,
	conferenceID string,
	mutate func(p *domain.Profile, c *domain.Conference) (bool, error),
) error {
	if err := requireIdentity(id); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.transactor.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		ts := now()
		p, err := tx.LockProfile(ctx, domain.NewProfile(id, ts))
		if err != nil {
			return fmt.Errorf("lock profile: %w", err)
		}
		c, err := tx.LockConference(ctx, conferenceID)
		if err != nil {
			return conferenceLookupError(conferenceID, err)
		}
		changed, err := mutate(p, c)
		if err != nil || !changed {
			return err
		}
		p.UpdatedAt = ts
		c.UpdatedAt = ts
		if err := tx.SaveProfileLists(ctx, p); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		if err := tx.SaveConference(ctx, c); err != nil {
			return fmt.Errorf("save conference: %w", err)
		}
		return nil
	})
}

func (s *registrationService) AddSessionToWishlist(ctx context.Context, id *domain.Identity, sessionID string) (*domain.Profile, error) {
	return s.withProfileAndSession(ctx, id, sessionID, func(p *domain.Profile, sess *domain.Session) error {
		if p.HasWishlisted(sess.ID) {
			return domain.ErrAlreadyInWishlist
		}
		p.SessionKeysWishlist = append(p.SessionKeysWishlist, sess.ID)
		return nil
	})
}

// RemoveSessionFromWishlist fails with ErrNotInWishlist when the session is absent,
// unlike UnregisterFromConference which reports false.
func (s *registrationService) RemoveSessionFromWishlist(ctx context.Context, id *domain.Identity, sessionID string) (*domain.Profile, error) {
	return s.withProfileAndSession(ctx, id, sessionID, func(p *domain.Profile, sess *domain.Session) error {
		i := slices.Index(p.SessionKeysWishlist, sess.ID)
		if i < 0 {
			return domain.ErrNotInWishlist
		}
		p.SessionKeysWishlist = slices.Delete(p.SessionKeysWishlist, i, i+1)
		return nil
	})
}

func (s *registrationService) withProfileAndSession(
	ctx context.Context,
	id *domain.Identity,
	sessionID string,
	mutate func(p *domain.Profile, sess *domain.Session) error,
) (*domain.Profile, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var out *domain.Profile
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		ts := now()
		p, err := tx.LockProfile(ctx, domain.NewProfile(id, ts))
		if err != nil {
			return fmt.Errorf("lock profile: %w", err)
		}
		sess, err := tx.GetSession(ctx, sessionID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: no session found with key %s", domain.ErrNotFound, sessionID)
			}
			return fmt.Errorf("get session: %w", err)
		}
		if err := mutate(p, sess); err != nil {
			return err
		}
		p.UpdatedAt = ts
		if err := tx.SaveProfileLists(ctx, p); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
