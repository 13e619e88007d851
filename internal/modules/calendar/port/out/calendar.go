package out

import (
	"context"

	"teamboard/internal/modules/calendar/domain"
)

type EventSource interface {
	List(ctx context.Context) ([]domain.Entry, error)
}
