package services

import (
	"cmp"
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"conferencecentral/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	c := *p
	c.ConferenceKeysToAttend = slices.Clone(p.ConferenceKeysToAttend)
	c.SessionKeysWishlist = slices.Clone(p.SessionKeysWishlist)
	return &c
}

func cloneConference(c *domain.Conference) *domain.Conference {
	out := *c
	out.Topics = slices.Clone(c.Topics)
	return &out
}

func cloneSession(s *domain.Session) *domain.Session {
	out := *s
	return &out
}

// memStore is an in-memory entity store. Its mutex stands in for row locks:
// a transaction holds it from begin to commit, so transactions are serialized.
// Writes made inside a transaction are staged and only applied on commit.
type memStore struct {
	mu          sync.Mutex
	profiles    map[string]*domain.Profile
	conferences map[string]*domain.Conference
	sessions    map[string]*domain.Session

	saveErr error // if set, SaveConference fails with it
	txCount int
}

func newMemStore() *memStore {
	return &memStore{
		profiles:    make(map[string]*domain.Profile),
		conferences: make(map[string]*domain.Conference),
		sessions:    make(map[string]*domain.Session),
	}
}

func (m *memStore) putConference(c *domain.Conference) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conferences[c.ID] = cloneConference(c)
}

func (m *memStore) putSession(s *domain.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = cloneSession(s)
}

func (m *memStore) conference(id string) *domain.Conference {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.conferences[id]; ok {
		return cloneConference(c)
	}
	return nil
}

func (m *memStore) profile(id string) *domain.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[id]; ok {
		return cloneProfile(p)
	}
	return nil
}

// ProfileRepository

type memProfiles struct{ m *memStore }

func (r memProfiles) GetOrCreate(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.profiles[p.UserID]; !ok {
		r.m.profiles[p.UserID] = cloneProfile(p)
	}
	return cloneProfile(r.m.profiles[p.UserID]), nil
}

func (r memProfiles) GetByID(ctx context.Context, userID string) (*domain.Profile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if p, ok := r.m.profiles[userID]; ok {
		return cloneProfile(p), nil
	}
	return nil, domain.ErrNotFound
}

func (r memProfiles) GetMulti(ctx context.Context, userIDs []string) (map[string]*domain.Profile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make(map[string]*domain.Profile)
	for _, id := range userIDs {
		if p, ok := r.m.profiles[id]; ok {
			out[id] = cloneProfile(p)
		}
	}
	return out, nil
}

func (r memProfiles) UpdateDetails(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.Profile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.DisplayName != "" {
		p.DisplayName = upd.DisplayName
	}
	if upd.TeeShirtSize != "" {
		p.TeeShirtSize = upd.TeeShirtSize
	}
	return cloneProfile(p), nil
}

// ConferenceRepository

type memConferences struct{ m *memStore }

func (r memConferences) Create(ctx context.Context, c *domain.Conference) error {
	r.m.putConference(c)
	return nil
}

func (r memConferences) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	if c := r.m.conference(id); c != nil {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (r memConferences) GetMulti(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	out := make([]*domain.Conference, 0, len(ids))
	for _, id := range ids {
		if c := r.m.conference(id); c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r memConferences) all(keep func(c *domain.Conference) bool) []*domain.Conference {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*domain.Conference, 0)
	for _, c := range r.m.conferences {
		if keep(c) {
			out = append(out, cloneConference(c))
		}
	}
	slices.SortFunc(out, func(a, b *domain.Conference) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

func (r memConferences) ListByOrganizer(ctx context.Context, organizerUserID string) ([]*domain.Conference, error) {
	return r.all(func(c *domain.Conference) bool { return c.OrganizerUserID == organizerUserID }), nil
}

func (r memConferences) Query(ctx context.Context, plan *domain.QueryPlan) ([]*domain.Conference, error) {
	return r.all(func(*domain.Conference) bool { return true }), nil
}

func (r memConferences) ListNearlySoldOut(ctx context.Context, maxSeats int) ([]*domain.Conference, error) {
	return r.all(func(c *domain.Conference) bool { return c.SeatsAvailable > 0 && c.SeatsAvailable <= maxSeats }), nil
}

// SessionRepository

type memSessions struct{ m *memStore }

func (r memSessions) Create(ctx context.Context, s *domain.Session) error {
	r.m.putSession(s)
	return nil
}

func (r memSessions) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if s, ok := r.m.sessions[id]; ok {
		return cloneSession(s), nil
	}
	return nil, domain.ErrNotFound
}

func (r memSessions) GetMulti(ctx context.Context, ids []string) ([]*domain.Session, error) {
	out := make([]*domain.Session, 0, len(ids))
	for _, id := range ids {
		if s, err := r.GetByID(ctx, id); err == nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r memSessions) List(ctx context.Context, q domain.SessionQuery) ([]*domain.Session, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	clock := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format(domain.ClockLayout)
	}
	out := make([]*domain.Session, 0)
	for _, s := range r.m.sessions {
		switch {
		case q.ConferenceID != "" && s.ConferenceID != q.ConferenceID,
			len(q.Types) > 0 && !slices.Contains(q.Types, s.TypeOfSession),
			q.Speaker != "" && s.Speaker != q.Speaker,
			q.Date != nil && (s.Date == nil || !s.Date.Equal(*q.Date)),
			q.StartAfter != "" && (s.StartTime == nil || clock(s.StartTime) <= q.StartAfter),
			q.StartNotAfter != "" && (s.StartTime == nil || clock(s.StartTime) > q.StartNotAfter):
			continue
		}
		out = append(out, cloneSession(s))
	}
	slices.SortFunc(out, func(a, b *domain.Session) int {
		return cmp.Or(cmp.Compare(clock(a.StartTime), clock(b.StartTime)), cmp.Compare(a.Name, b.Name))
	})
	return out, nil
}

// Transactor

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx domain.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txCount++
	tx := &memTx{m: m, profiles: map[string]*domain.Profile{}, conferences: map[string]*domain.Conference{}}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for _, c := range tx.conferences {
		if c.SeatsAvailable < 0 || c.SeatsAvailable > c.MaxAttendees {
			return domain.ErrConflict
		}
	}
	for id, p := range tx.profiles {
		m.profiles[id] = p
	}
	for id, c := range tx.conferences {
		m.conferences[id] = c
	}
	return nil
}

type memTx struct {
	m           *memStore
	profiles    map[string]*domain.Profile
	conferences map[string]*domain.Conference
}

func (t *memTx) LockProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	if _, ok := t.m.profiles[p.UserID]; !ok {
		t.profiles[p.UserID] = cloneProfile(p)
		return cloneProfile(p), nil
	}
	return cloneProfile(t.m.profiles[p.UserID]), nil
}

func (t *memTx) LockConference(ctx context.Context, conferenceID string) (*domain.Conference, error) {
	c, ok := t.m.conferences[conferenceID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneConference(c), nil
}

func (t *memTx) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	s, ok := t.m.sessions[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneSession(s), nil
}

func (t *memTx) SaveProfileLists(ctx context.Context, p *domain.Profile) error {
	t.profiles[p.UserID] = cloneProfile(p)
	return nil
}

func (t *memTx) SaveConference(ctx context.Context, c *domain.Conference) error {
	if t.m.saveErr != nil {
		return t.m.saveErr
	}
	t.conferences[c.ID] = cloneConference(c)
	return nil
}

// TaskDispatcher

type recordingDispatcher struct {
	mu    sync.Mutex
	tasks []domain.Task
	err   error
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, t domain.Task) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.tasks = append(d.tasks, t)
	return nil
}

// AnnouncementCache

type mapCache struct {
	mu    sync.Mutex
	slots map[string]string
}

func newMapCache() *mapCache { return &mapCache{slots: map[string]string{}} }

func (c *mapCache) Set(ctx context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots[key] = value
	return nil
}

func (c *mapCache) Get(ctx context.Context, key string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slots[key]
}

func (c *mapCache) Clear(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.slots, key)
	return nil
}

func ada() *domain.Identity {
	return &domain.Identity{UserID: "user-ada", Email: "ada@example.com", DisplayName: "Ada"}
}

func grace() *domain.Identity {
	return &domain.Identity{UserID: "user-grace", Email: "grace@example.com", DisplayName: "Grace"}
}

func intPtr(n int) *int { return &n }

// seedConference stores a conference owned by organizer with the given capacity and free seats.
func seedConference(m *memStore, id, name string, organizer *domain.Identity, max, seats int) *domain.Conference {
	c := domain.NewConference(id, organizer.UserID, domain.ConferenceDraft{Name: name, MaxAttendees: intPtr(max)}, time.Now().UTC())
	c.SeatsAvailable = seats
	m.putConference(c)
	memProfiles{m}.GetOrCreate(context.Background(), domain.NewProfile(organizer, time.Now().UTC()))
	return c
}
