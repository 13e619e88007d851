package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"teamboard/internal/modules/session/domain"
	sessionout "teamboard/internal/modules/session/port/out"
	"teamboard/internal/platform/apiclient"
	apperrors "teamboard/internal/platform/errors"
)

type HTTPAuthenticator struct {
	api *apiclient.Client
}

func NewHTTPAuthenticator(api *apiclient.Client) sessionout.Authenticator {
	return &HTTPAuthenticator{api: api}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

func (a *HTTPAuthenticator) Authenticate(ctx context.Context, email, password string) (domain.Session, error) {
	resp, err := a.api.Request(ctx, "").
		SetHeader("Content-Type", "application/json").
		SetBody(loginRequest{Email: email, Password: password}).
		Post("/auth/login")
	if err := apiclient.Check(resp, err); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnreachable), errors.Is(err, apperrors.ErrServer):
			return domain.Session{}, fmt.Errorf("login: %w", err)
		default:
			// The server's rejection detail is never surfaced.
			return domain.Session{}, fmt.Errorf("login: %w", apperrors.ErrInvalidCredentials)
		}
	}
	payload := loginResponse{}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return domain.Session{}, fmt.Errorf("login: %w: decode response: %v", apperrors.ErrServer, err)
	}
	return domain.Session{Identity: payload.User, Token: payload.Token}, nil
}
