package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"conferencecentral/internal/domain"

	"github.com/lib/pq"
)

const conferenceColumns = `id, name, description, organizer_user_id, topics, city, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at`

type conferenceRepository struct {
	DB *sql.DB
}

func NewConferenceRepository(db *sql.DB) domain.ConferenceRepository {
	return &conferenceRepository{
		DB: db,
	}
}

func scanConference(row rowScanner) (*domain.Conference, error) {
	c := &domain.Conference{}
	var start, end sql.NullTime
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.OrganizerUserID, pq.Array(&c.Topics), &c.City,
		&start, &end, &c.Month, &c.MaxAttendees, &c.SeatsAvailable, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.StartDate = timePtr(start)
	c.EndDate = timePtr(end)
	if c.Topics == nil {
		c.Topics = []string{}
	}
	return c, nil
}

func scanConferences(rows *sql.Rows) ([]*domain.Conference, error) {
	defer rows.Close()
	out := make([]*domain.Conference, 0)
	for rows.Next() {
		c, err := scanConference(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *conferenceRepository) Create(ctx context.Context, c *domain.Conference) error {
	query := `
		INSERT INTO conferences (id, name, description, organizer_user_id, topics, city, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.DB.ExecContext(ctx, query, c.ID, c.Name, c.Description, c.OrganizerUserID, pq.Array(c.Topics), c.City,
		nullDate(c.StartDate), nullDate(c.EndDate), c.Month, c.MaxAttendees, c.SeatsAvailable, c.CreatedAt, c.UpdatedAt)
	return mapError(err)
}

func (r *conferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	query := `SELECT ` + conferenceColumns + ` FROM conferences WHERE id = $1`
	c, err := scanConference(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *conferenceRepository) GetMulti(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	if len(ids) == 0 {
		return []*domain.Conference{}, nil
	}
	query := `SELECT ` + conferenceColumns + ` FROM conferences WHERE id = ANY($1)`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	found, err := scanConferences(rows)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Conference, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	out := make([]*domain.Conference, 0, len(found))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *conferenceRepository) ListByOrganizer(ctx context.Context, organizerUserID string) ([]*domain.Conference, error) {
	query := `SELECT ` + conferenceColumns + ` FROM conferences WHERE organizer_user_id = $1 ORDER BY name`
	rows, err := r.DB.QueryContext(ctx, query, organizerUserID)
	if err != nil {
		return nil, err
	}
	return scanConferences(rows)
}

func (r *conferenceRepository) ListNearlySoldOut(ctx context.Context, maxSeats int) ([]*domain.Conference, error) {
	query := `SELECT ` + conferenceColumns + ` FROM conferences WHERE seats_available > 0 AND seats_available <= $1 ORDER BY name`
	rows, err := r.DB.QueryContext(ctx, query, maxSeats)
	if err != nil {
		return nil, err
	}
	return scanConferences(rows)
}

func (r *conferenceRepository) Query(ctx context.Context, plan *domain.QueryPlan) ([]*domain.Conference, error) {
	where, args, err := renderConditions(plan.Conditions)
	if err != nil {
		return nil, err
	}
	order, err := renderOrder(plan.OrderBy)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteString(`SELECT ` + conferenceColumns + ` FROM conferences`)
	if where != "" {
		b.WriteString(" WHERE " + where)
	}
	b.WriteString(" ORDER BY " + order)
	if limit, offset, ok := plan.Page.Window(); ok {
		args = append(args, limit, offset)
		fmt.Fprintf(&b, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	rows, err := r.DB.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	return scanConferences(rows)
}
