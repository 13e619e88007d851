package domain_test

import (
	"errors"
	"testing"

	"teamboard/internal/modules/session/domain"
	apperrors "teamboard/internal/platform/errors"
)

func TestSessionValidate(t *testing.T) {
	t.Parallel()
	valid := domain.Session{Token: "t", Identity: domain.Identity{ID: "u1", Name: "Ana", Role: domain.RoleManager}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid session, got %v", err)
	}
	broken := []domain.Session{
		{Identity: valid.Identity},
		{Token: "t", Identity: domain.Identity{Name: "Ana", Role: domain.RolePlayer}},
		{Token: "t", Identity: domain.Identity{ID: "u1", Role: "coach"}},
	}
	for _, s := range broken {
		if err := s.Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %+v, got %v", s, err)
		}
	}
}

func TestRoleCanMutate(t *testing.T) {
	t.Parallel()
	if !domain.RoleManager.CanMutate() {
		t.Fatalf("manager must be able to mutate")
	}
	if domain.RolePlayer.CanMutate() {
		t.Fatalf("player must be read-only")
	}
}

func TestIdentityRoundTripKeepsWireNames(t *testing.T) {
	t.Parallel()
	raw, err := domain.EncodeIdentity(domain.Identity{ID: "u1", Name: "Ana", Role: domain.RolePlayer})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if raw != `{"id":"u1","name":"Ana","role":"player"}` {
		t.Fatalf("unexpected payload %s", raw)
	}
	if _, err := domain.DecodeIdentity("{not json"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestGuard(t *testing.T) {
	t.Parallel()
	cases := []struct {
		target        domain.Route
		authenticated bool
		want          domain.Route
	}{
		{domain.RouteCalendar, false, domain.RouteLogin},
		{domain.RouteCalendar, true, domain.RouteCalendar},
		{domain.RouteLogin, false, domain.RouteLogin},
		{domain.RouteLogin, true, domain.RouteCalendar},
	}
	for _, tc := range cases {
		if got := domain.Guard(tc.target, tc.authenticated); got != tc.want {
			t.Fatalf("Guard(%s, %v) = %s, want %s", tc.target, tc.authenticated, got, tc.want)
		}
	}
}
