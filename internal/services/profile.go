package services

import (
	"context"
	"fmt"
	"time"

	"conferencecentral/internal/domain"
)

type profileService struct {
	profiles       domain.ProfileRepository
	contextTimeout time.Duration
}

func NewProfileService(profiles domain.ProfileRepository, timeout time.Duration) domain.ProfileService {
	return &profileService{
		profiles:       profiles,
		contextTimeout: timeout,
	}
}

// GetProfile returns the caller's profile, creating it from the identity on first access.
func (s *profileService) GetProfile(ctx context.Context, id *domain.Identity) (*domain.Profile, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.profiles.GetOrCreate(ctx, domain.NewProfile(id, now()))
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *profileService) SaveProfile(ctx context.Context, id *domain.Identity, upd domain.ProfileUpdate) (*domain.Profile, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	if upd.TeeShirtSize != "" {
		if _, err := domain.ParseTeeShirtSize(string(upd.TeeShirtSize)); err != nil {
			return nil, err
		}
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.profiles.GetOrCreate(ctx, domain.NewProfile(id, now())); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p, err := s.profiles.UpdateDetails(ctx, id.UserID, upd)
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return p, nil
}
