package postgres

import (
	"context"
	"database/sql"

	"conferencecentral/internal/domain"

	"github.com/lib/pq"
)

const profileColumns = `user_id, display_name, main_email, tee_shirt_size, conference_keys_to_attend, session_keys_wishlist, created_at, updated_at`

const insertProfileQuery = `
		INSERT INTO profiles (user_id, display_name, main_email, tee_shirt_size, conference_keys_to_attend, session_keys_wishlist, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO NOTHING
	`

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{
		DB: db,
	}
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	p := &domain.Profile{}
	var size string
	err := row.Scan(&p.UserID, &p.DisplayName, &p.MainEmail, &size,
		pq.Array(&p.ConferenceKeysToAttend), pq.Array(&p.SessionKeysWishlist), &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.TeeShirtSize = domain.TeeShirtSize(size)
	if p.ConferenceKeysToAttend == nil {
		p.ConferenceKeysToAttend = []string{}
	}
	if p.SessionKeysWishlist == nil {
		p.SessionKeysWishlist = []string{}
	}
	return p, nil
}

func insertProfileArgs(p *domain.Profile) []any {
	return []any{p.UserID, p.DisplayName, p.MainEmail, string(p.TeeShirtSize),
		pq.Array(p.ConferenceKeysToAttend), pq.Array(p.SessionKeysWishlist), p.CreatedAt, p.UpdatedAt}
}

func (r *profileRepository) GetOrCreate(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	if _, err := r.DB.ExecContext(ctx, insertProfileQuery, insertProfileArgs(p)...); err != nil {
		return nil, mapError(err)
	}
	return r.GetByID(ctx, p.UserID)
}

func (r *profileRepository) GetByID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	p, err := scanProfile(r.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

func (r *profileRepository) GetMulti(ctx context.Context, userIDs []string) (map[string]*domain.Profile, error) {
	out := make(map[string]*domain.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = ANY($1)`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(userIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out[p.UserID] = p
	}
	return out, rows.Err()
}

func (r *profileRepository) UpdateDetails(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.Profile, error) {
	query := `
		UPDATE profiles
		SET display_name = COALESCE(NULLIF($1, ''), display_name),
		    tee_shirt_size = COALESCE(NULLIF($2, ''), tee_shirt_size),
		    updated_at = NOW()
		WHERE user_id = $3
		RETURNING ` + profileColumns
	p, err := scanProfile(r.DB.QueryRowContext(ctx, query, upd.DisplayName, string(upd.TeeShirtSize), userID))
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}
