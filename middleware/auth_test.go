package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"Cinelog/config"
	"Cinelog/models"
	"Cinelog/services"
)

func TestRequireAuthRedirectsWithoutSession(t *testing.T) {
	services.InitSessionStore(&config.Config{
		SessionSecret: "test-secret",
		Environment:   "test",
	})

	called := false
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	r := httptest.NewRequest("POST", "/movies/add", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if called {
		t.Error("protected handler ran without a session")
	}
	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect location = %q, want /login", loc)
	}
}

func TestPrincipalRoundtrip(t *testing.T) {
	r := httptest.NewRequest("GET", "/profile", nil)

	if p := Principal(r); p != nil {
		t.Errorf("expected nil principal on bare request, got %+v", p)
	}

	principal := &models.Principal{ID: 42, Username: "alice"}
	r = r.WithContext(WithPrincipal(r.Context(), principal))

	got := Principal(r)
	if got == nil || got.ID != 42 || got.Username != "alice" {
		t.Errorf("principal = %+v, want %+v", got, principal)
	}
}

func TestParseUserID(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    int64
		wantErr bool
	}{
		{"int64", int64(7), 7, false},
		{"int", 7, 7, false},
		{"numeric string", "7", 7, false},
		{"garbage string", "seven", 0, true},
		{"nil", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseUserID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseUserID = %d, want %d", got, tt.want)
			}
		})
	}
}
