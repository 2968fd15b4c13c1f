package domain

import "context"

// Tx is the set of row operations available inside a scoped transaction.
// Rows read through LockProfile and LockConference stay locked until the
// transaction ends.
type Tx interface {
	// LockProfile locks the profile for p.UserID, inserting p first if it does not exist.
	LockProfile(ctx context.Context, p *Profile) (*Profile, error)
	LockConference(ctx context.Context, conferenceID string) (*Conference, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	SaveProfileLists(ctx context.Context, p *Profile) error
	SaveConference(ctx context.Context, c *Conference) error
}

// Transactor runs fn inside one transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
