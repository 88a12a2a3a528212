package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewSessionToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := newSessionToken()
		if len(token) != 64 {
			t.Fatalf("token length = %d, want 64", len(token))
		}
		if seen[token] {
			t.Fatal("duplicate session token generated")
		}
		seen[token] = true
	}
}

func TestPGStoreNewWithoutCookie(t *testing.T) {
	store := NewPGStore([]byte("test-secret"), false)

	r := httptest.NewRequest("GET", "/movies", nil)
	session, err := store.New(r, SessionName)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if !session.IsNew {
		t.Error("session without a cookie should be new")
	}
	if session.ID != "" {
		t.Errorf("fresh session should have no token, got %q", session.ID)
	}
	if _, ok := session.Values["user_id"]; ok {
		t.Error("fresh session should carry no principal")
	}
}

func TestPGStoreNewTamperedCookie(t *testing.T) {
	store := NewPGStore([]byte("test-secret"), false)

	r := httptest.NewRequest("GET", "/movies", nil)
	r.AddCookie(&http.Cookie{Name: SessionName, Value: "not-a-signed-token"})

	session, err := store.New(r, SessionName)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if !session.IsNew {
		t.Error("tampered cookie should yield a fresh session")
	}
}

func TestSessionTokenCodecRoundtrip(t *testing.T) {
	store := NewPGStore([]byte("test-secret"), false)

	token := newSessionToken()
	encoded, err := store.codec.Encode(SessionName, token)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var decoded string
	if err := store.codec.Decode(SessionName, encoded, &decoded); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded != token {
		t.Errorf("roundtrip = %q, want %q", decoded, token)
	}

	// A different secret must reject the cookie
	other := NewPGStore([]byte("other-secret"), false)
	if err := other.codec.Decode(SessionName, encoded, &decoded); err == nil {
		t.Error("cookie signed with another secret was accepted")
	}
}

func TestGetSessionWithoutStore(t *testing.T) {
	r := httptest.NewRequest("GET", "/movies", nil)
	if _, err := GetSession(r); err == nil {
		t.Error("GetSession should fail before InitSessionStore")
	}
}
