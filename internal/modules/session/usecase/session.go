package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"teamboard/internal/modules/session/domain"
	sessiondto "teamboard/internal/modules/session/dto"
	sessionin "teamboard/internal/modules/session/port/in"
	"teamboard/internal/modules/session/service"
	apperrors "teamboard/internal/platform/errors"
)

type Interactor struct {
	svc *service.SessionService

	mu      sync.RWMutex
	current *domain.Session
}

func NewInteractor(svc *service.SessionService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Restore(ctx context.Context) (sessiondto.SessionOutput, error) {
	session, err := i.svc.Load(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNoSession) {
			slog.Warn("restore session failed", "error", err)
		} else {
			slog.Debug("no session restored", "reason", err)
		}
		i.set(nil)
		return sessiondto.SessionOutput{}, apperrors.ErrNoSession
	}
	i.set(&session)
	slog.Debug("session restored", "user_id", session.Identity.ID, "role", session.Identity.Role)
	return toOutput(session), nil
}

func (i *Interactor) Login(ctx context.Context, input sessiondto.LoginInput) (sessiondto.SessionOutput, error) {
	session, err := i.svc.Login(ctx, input.Email, input.Password)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	i.set(&session)
	slog.Info("signed in", "user_id", session.Identity.ID, "role", session.Identity.Role)
	return toOutput(session), nil
}

// Logout drops the in-memory session first so it is gone even if storage fails.
func (i *Interactor) Logout(ctx context.Context) error {
	i.set(nil)
	if err := i.svc.Clear(ctx); err != nil {
		slog.Error("logout could not clear storage", "error", err)
		return err
	}
	return nil
}

func (i *Interactor) Current(_ context.Context) (sessiondto.SessionOutput, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.current == nil {
		return sessiondto.SessionOutput{}, apperrors.ErrNoSession
	}
	return toOutput(*i.current), nil
}

func (i *Interactor) Credential(_ context.Context) (string, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.current == nil {
		return "", nil
	}
	return i.current.Token, nil
}

func (i *Interactor) Route(_ context.Context, target string) string {
	i.mu.RLock()
	authenticated := i.current != nil
	i.mu.RUnlock()
	return string(domain.Guard(domain.Route(target), authenticated))
}

func (i *Interactor) set(session *domain.Session) {
	i.mu.Lock()
	i.current = session
	i.mu.Unlock()
}

func toOutput(session domain.Session) sessiondto.SessionOutput {
	return sessiondto.SessionOutput{
		UserID:  session.Identity.ID,
		Name:    session.Identity.Name,
		Role:    string(session.Identity.Role),
		CanEdit: session.Identity.Role.CanMutate(),
	}
}
