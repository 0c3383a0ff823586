package auth

import (
	"testing"
	"time"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, 42, AccessTokenTTL)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	id, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id != 42 {
		t.Errorf("got user id %d, want 42", id)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, 42, AccessTokenTTL)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken([]byte("other-secret"), token); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}

func TestParseTokenRejectsExpiredToken(t *testing.T) {
	token, err := GenerateToken(testSecret, 42, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken(testSecret, token); err == nil {
		t.Error("expired token was accepted")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken(testSecret, "not.a.token"); err == nil {
		t.Error("garbage token was accepted")
	}
}
