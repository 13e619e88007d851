package in

import (
	"context"

	"teamboard/internal/modules/session/dto"
)

type Usecase interface {
	Restore(ctx context.Context) (dto.SessionOutput, error)
	Login(ctx context.Context, input dto.LoginInput) (dto.SessionOutput, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (dto.SessionOutput, error)
	Credential(ctx context.Context) (string, error)
	Route(ctx context.Context, target string) string
}
