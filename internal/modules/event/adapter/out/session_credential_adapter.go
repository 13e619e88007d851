package out

import (
	"context"

	eventout "teamboard/internal/modules/event/port/out"
	sessionin "teamboard/internal/modules/session/port/in"
)

type SessionCredentialAdapter struct {
	session sessionin.Usecase
}

func NewSessionCredentialAdapter(session sessionin.Usecase) eventout.CredentialSource {
	return &SessionCredentialAdapter{session: session}
}

func (a *SessionCredentialAdapter) Credential(ctx context.Context) (string, error) {
	return a.session.Credential(ctx)
}
