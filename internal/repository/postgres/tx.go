package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"conferencecentral/internal/domain"

	"github.com/lib/pq"
)

type transactor struct {
	DB *sql.DB
}

// NewTransactor returns a domain.Transactor backed by db. Transactions run at
// READ COMMITTED; rows touched by a mutation are taken with SELECT ... FOR
// UPDATE so concurrent writers queue on the row lock and then see the
// committed value.
func NewTransactor(db *sql.DB) domain.Transactor {
	return &transactor{
		DB: db,
	}
}

func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx domain.Tx) error) error {
	tx, err := t.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(ctx, &txStore{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", mapError(err))
	}
	return nil
}

type txStore struct {
	tx *sql.Tx
}

func (s *txStore) LockProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	if _, err := s.tx.ExecContext(ctx, insertProfileQuery, insertProfileArgs(p)...); err != nil {
		return nil, mapError(err)
	}
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1 FOR UPDATE`
	locked, err := scanProfile(s.tx.QueryRowContext(ctx, query, p.UserID))
	if err != nil {
		return nil, mapError(err)
	}
	return locked, nil
}

func (s *txStore) LockConference(ctx context.Context, conferenceID string) (*domain.Conference, error) {
	query := `SELECT ` + conferenceColumns + ` FROM conferences WHERE id = $1 FOR UPDATE`
	c, err := scanConference(s.tx.QueryRowContext(ctx, query, conferenceID))
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (s *txStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`
	sess, err := scanSession(s.tx.QueryRowContext(ctx, query, sessionID))
	if err != nil {
		return nil, mapError(err)
	}
	return sess, nil
}

func (s *txStore) SaveProfileLists(ctx context.Context, p *domain.Profile) error {
	query := `
		UPDATE profiles
		SET conference_keys_to_attend = $1, session_keys_wishlist = $2, updated_at = $3
		WHERE user_id = $4
	`
	res, err := s.tx.ExecContext(ctx, query, pq.Array(p.ConferenceKeysToAttend), pq.Array(p.SessionKeysWishlist), p.UpdatedAt, p.UserID)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *txStore) SaveConference(ctx context.Context, c *domain.Conference) error {
	query := `
		UPDATE conferences
		SET name = $1, description = $2, topics = $3, city = $4, start_date = $5, end_date = $6,
		    month = $7, max_attendees = $8, seats_available = $9, updated_at = $10
		WHERE id = $11
	`
	res, err := s.tx.ExecContext(ctx, query, c.Name, c.Description, pq.Array(c.Topics), c.City,
		nullDate(c.StartDate), nullDate(c.EndDate), c.Month, c.MaxAttendees, c.SeatsAvailable, c.UpdatedAt, c.ID)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
