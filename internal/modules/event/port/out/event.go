package out

import (
	"context"
	"io"

	"teamboard/internal/modules/event/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Event, error)
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id string) error
}

// CredentialSource supplies the bearer token for each call; "" means none.
type CredentialSource interface {
	Credential(ctx context.Context) (string, error)
}

type Exporter interface {
	Export(ctx context.Context, events []domain.Event, w io.Writer) error
}
