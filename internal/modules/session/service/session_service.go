package service

import (
	"context"
	"fmt"
	"strings"

	"teamboard/internal/modules/session/domain"
	sessionout "teamboard/internal/modules/session/port/out"
	apperrors "teamboard/internal/platform/errors"
)

type SessionService struct {
	storage sessionout.LocalStorage
	auth    sessionout.Authenticator
}

func NewSessionService(storage sessionout.LocalStorage, auth sessionout.Authenticator) *SessionService {
	return &SessionService{storage: storage, auth: auth}
}

// Load reads the persisted session. Missing or malformed entries yield ErrNoSession;
// storage failures are returned as-is.
func (s *SessionService) Load(ctx context.Context) (domain.Session, error) {
	token, ok, err := s.storage.Get(ctx, domain.StorageKeyToken)
	if err != nil {
		return domain.Session{}, fmt.Errorf("read token: %w", err)
	}
	if !ok || token == "" {
		return domain.Session{}, apperrors.ErrNoSession
	}
	rawUser, ok, err := s.storage.Get(ctx, domain.StorageKeyUser)
	if err != nil {
		return domain.Session{}, fmt.Errorf("read user: %w", err)
	}
	if !ok {
		return domain.Session{}, apperrors.ErrNoSession
	}
	identity, err := domain.DecodeIdentity(rawUser)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", apperrors.ErrNoSession, err)
	}
	session := domain.Session{Identity: identity, Token: token}
	if err := session.Validate(); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", apperrors.ErrNoSession, err)
	}
	return session, nil
}

func (s *SessionService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.Session{}, fmt.Errorf("%w: email and password are required", apperrors.ErrInvalidInput)
	}
	session, err := s.auth.Authenticate(ctx, email, password)
	if err != nil {
		return domain.Session{}, err
	}
	if err := session.Validate(); err != nil {
		return domain.Session{}, fmt.Errorf("%w: malformed login response: %v", apperrors.ErrServer, err)
	}
	if err := s.Persist(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (s *SessionService) Persist(ctx context.Context, session domain.Session) error {
	rawUser, err := domain.EncodeIdentity(session.Identity)
	if err != nil {
		return err
	}
	if err := s.storage.SetAll(ctx, map[string]string{
		domain.StorageKeyToken: session.Token,
		domain.StorageKeyUser:  rawUser,
	}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *SessionService) Clear(ctx context.Context) error {
	if err := s.storage.Clear(ctx); err != nil {
		return fmt.Errorf("clear storage: %w", err)
	}
	return nil
}
