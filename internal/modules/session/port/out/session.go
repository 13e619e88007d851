package out

import (
	"context"

	"teamboard/internal/modules/session/domain"
)

// LocalStorage is the durable key/value store behind the session.
type LocalStorage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetAll(ctx context.Context, entries map[string]string) error
	Clear(ctx context.Context) error
}

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (domain.Session, error)
}
