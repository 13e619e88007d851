package out_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sessionout "teamboard/internal/modules/session/adapter/out"
	"teamboard/internal/modules/session/domain"
	"teamboard/internal/platform/apiclient"
	apperrors "teamboard/internal/platform/errors"
)

func TestHTTPAuthenticatorSuccess(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		body := map[string]string{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "ana@club.test" || body["password"] != "secret" {
			t.Errorf("unexpected body %v", body)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("login must not carry a credential")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok","user":{"id":"u1","name":"Ana","role":"manager"}}`))
	}))
	defer srv.Close()

	auth := sessionout.NewHTTPAuthenticator(apiclient.New(srv.URL, time.Second, nil))
	session, err := auth.Authenticate(context.Background(), "ana@club.test", "secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if session.Token != "tok" || session.Identity.Role != domain.RoleManager || session.Identity.Name != "Ana" {
		t.Fatalf("unexpected session %+v", session)
	}
}

func TestHTTPAuthenticatorErrorKinds(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"rejected", http.StatusUnauthorized, `{"message":"Credenciais inválidas"}`, apperrors.ErrInvalidCredentials},
		{"bad request", http.StatusBadRequest, `{}`, apperrors.ErrInvalidCredentials},
		{"server", http.StatusInternalServerError, `oops`, apperrors.ErrServer},
		{"malformed", http.StatusOK, `<html>`, apperrors.ErrServer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()
			auth := sessionout.NewHTTPAuthenticator(apiclient.New(srv.URL, time.Second, nil))
			_, err := auth.Authenticate(context.Background(), "a@b.c", "x")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if tc.want == apperrors.ErrInvalidCredentials && errors.Is(err, apperrors.ErrRejected) {
				t.Fatalf("server detail should not leak through: %v", err)
			}
		})
	}
}

func TestHTTPAuthenticatorUnreachable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()
	auth := sessionout.NewHTTPAuthenticator(apiclient.New(url, time.Second, nil))
	if _, err := auth.Authenticate(context.Background(), "a@b.c", "x"); !errors.Is(err, apperrors.ErrUnreachable) {
		t.Fatalf("expected unreachable, got %v", err)
	}
}
