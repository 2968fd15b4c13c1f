package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"conferencecentral/internal/domain"

	"github.com/lib/pq"
)

const sessionColumns = `id, conference_id, conference_name, organizer_user_id, name, highlights, speaker, duration, type_of_session, date, start_time, created_at, updated_at`

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{
		DB: db,
	}
}

func scanSession(row rowScanner) (*domain.Session, error) {
	s := &domain.Session{}
	var date, start sql.NullTime
	err := row.Scan(&s.ID, &s.ConferenceID, &s.ConferenceName, &s.OrganizerUserID, &s.Name, &s.Highlights,
		&s.Speaker, &s.Duration, &s.TypeOfSession, &date, &start, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Date = timePtr(date)
	s.StartTime = timePtr(start)
	return s, nil
}

func scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	defer rows.Close()
	out := make([]*domain.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *sessionRepository) Create(ctx context.Context, s *domain.Session) error {
	query := `
		INSERT INTO sessions (id, conference_id, conference_name, organizer_user_id, name, highlights, speaker, duration, type_of_session, date, start_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.DB.ExecContext(ctx, query, s.ID, s.ConferenceID, s.ConferenceName, s.OrganizerUserID, s.Name,
		s.Highlights, s.Speaker, s.Duration, s.TypeOfSession, nullDate(s.Date), nullClock(s.StartTime), s.CreatedAt, s.UpdatedAt)
	return mapError(err)
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`
	s, err := scanSession(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return s, nil
}

func (r *sessionRepository) GetMulti(ctx context.Context, ids []string) ([]*domain.Session, error) {
	if len(ids) == 0 {
		return []*domain.Session{}, nil
	}
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ANY($1)`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	found, err := scanSessions(rows)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Session, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}
	out := make([]*domain.Session, 0, len(found))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *sessionRepository) List(ctx context.Context, q domain.SessionQuery) ([]*domain.Session, error) {
	var clauses []string
	var args []any
	add := func(format string, v any) {
		args = append(args, v)
		clauses = append(clauses, fmt.Sprintf(format, len(args)))
	}
	if q.ConferenceID != "" {
		add("conference_id = $%d", q.ConferenceID)
	}
	if len(q.Types) > 0 {
		add("type_of_session = ANY($%d)", pq.Array(q.Types))
	}
	if q.Speaker != "" {
		add("speaker = $%d", q.Speaker)
	}
	if q.Date != nil {
		add("date = $%d", q.Date.Format(domain.DateLayout))
	}
	if q.StartAfter != "" {
		add("start_time > $%d::time", q.StartAfter)
	}
	if q.StartNotAfter != "" {
		add("start_time <= $%d::time", q.StartNotAfter)
	}
	query := `SELECT ` + sessionColumns + ` FROM sessions`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY date NULLS LAST, start_time NULLS LAST, name, id`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanSessions(rows)
}
