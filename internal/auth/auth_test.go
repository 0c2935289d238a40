package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/jacobbria/AZ-webApp/internal/apperrors"
	"github.com/jacobbria/AZ-webApp/internal/config"
	"golang.org/x/oauth2"
)

func testConfig() *config.Config {
	return &config.Config{
		EntraClientID:     "client-id",
		EntraClientSecret: "secret",
		EntraTenant:       "common",
		EntraRedirectURI:  "http://localhost:8000/auth/callback",
		GraphMeURL:        "http://invalid.local/me",
	}
}

func TestSessionIsAuthenticated(t *testing.T) {
	if (Session{UserID: "u1"}).IsAuthenticated() {
		t.Error("session without access token must be unauthenticated")
	}
	if !(Session{AccessToken: "tok"}).IsAuthenticated() {
		t.Error("session with access token must be authenticated")
	}
}

func TestSessionStatus(t *testing.T) {
	st := Session{}.Status()
	if st.Authenticated || st.UserID != nil || st.UserName != nil {
		t.Errorf("empty status = %+v", st)
	}
	st = Session{AccessToken: "t", UserID: "u1", UserName: "Ada"}.Status()
	if !st.Authenticated || *st.UserID != "u1" || *st.UserName != "Ada" {
		t.Errorf("status = %+v", st)
	}
}

func TestAuthURL(t *testing.T) {
	p := NewProvider(testConfig())
	raw := p.AuthURL("state-123")

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	q := u.Query()
	if u.Host != "login.microsoftonline.com" {
		t.Errorf("host = %q", u.Host)
	}
	checks := map[string]string{
		"client_id":     "client-id",
		"state":         "state-123",
		"scope":         "User.Read",
		"prompt":        "select_account",
		"redirect_uri":  "http://localhost:8000/auth/callback",
		"response_type": "code",
	}
	for k, want := range checks {
		if got := q.Get(k); got != want {
			t.Errorf("%s = %q, want %q", k, got, want)
		}
	}
}

func TestExchangeLoadsProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.Form.Get("code") != "auth-code" {
			http.Error(w, "bad code", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"access_token": "abc", "token_type": "Bearer", "expires_in": 3600})
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer abc" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "u1", "displayName": "Ada Lovelace"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewProvider(testConfig())
	p.Config.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/authorize", TokenURL: srv.URL + "/token"}
	p.GraphMeURL = srv.URL + "/me"

	tok, user, err := p.Exchange(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}
	if tok.AccessToken != "abc" {
		t.Errorf("access token = %q", tok.AccessToken)
	}
	if user.ID != "u1" || user.DisplayName != "Ada Lovelace" {
		t.Errorf("user = %+v", user)
	}
}

func TestExchangeFailureIsExternal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	p := NewProvider(testConfig())
	p.Config.Endpoint = oauth2.Endpoint{TokenURL: srv.URL}

	_, _, err := p.Exchange(context.Background(), "bad")
	if !apperrors.IsKind(err, apperrors.KindExternalService) {
		t.Errorf("error = %v, want external service", err)
	}
	if apperrors.PublicMessage(err) != "Login failed" {
		t.Errorf("public message = %q", apperrors.PublicMessage(err))
	}
}
