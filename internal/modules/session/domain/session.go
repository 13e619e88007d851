package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "teamboard/internal/platform/errors"
)

// Durable storage keys. They are written, read and cleared together.
const (
	StorageKeyToken = "token"
	StorageKeyUser  = "user"
)

type Role string

const (
	RoleManager Role = "manager"
	RolePlayer  Role = "player"
)

func (r Role) Validate() error {
	switch r {
	case RoleManager, RolePlayer:
		return nil
	default:
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrInvalidInput, string(r))
	}
}

// CanMutate reports whether mutation controls should be offered. The server re-checks.
func (r Role) CanMutate() bool {
	return r == RoleManager
}

type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

type Session struct {
	Identity Identity
	Token    string
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.Token) == "" {
		return fmt.Errorf("%w: token is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(s.Identity.ID) == "" {
		return fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	return s.Identity.Role.Validate()
}

func EncodeIdentity(identity Identity) (string, error) {
	payload, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("marshal identity: %w", err)
	}
	return string(payload), nil
}

func DecodeIdentity(raw string) (Identity, error) {
	identity := Identity{}
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		return Identity{}, fmt.Errorf("decode identity: %w", err)
	}
	return identity, nil
}
