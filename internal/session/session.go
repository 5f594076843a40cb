package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Credentials is an immutable snapshot of the logged-in user: the API token and the username it was issued for.
// The username doubles as the acting service company on record creation.
type Credentials struct {
	Token    string
	Username string
}

// Authenticated reports whether the snapshot carries a token.
func (c Credentials) Authenticated() bool {
	return c.Token != ""
}

// Store persists credentials between requests, keyed by an opaque session id held in a cookie.
type Store interface {
	Create(ctx context.Context, creds Credentials) (string, error)
	Get(ctx context.Context, id string) (Credentials, error)
	Delete(ctx context.Context, id string) error
}

// Sweeper is implemented by stores that need explicit purging of expired sessions.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (int64, error)
}

func newID() string {
	return uuid.NewString()
}
