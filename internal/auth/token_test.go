package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	device := NewDeviceID()
	token, err := NewAccessToken("secret", "issuer", time.Minute, Claims{DeviceID: device, StudentID: "s1"})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	claims, err := ParseToken("secret", "issuer", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.DeviceID != device || claims.StudentID != "s1" || claims.Subject != "s1" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if _, err := uuid.Parse(claims.ID); err != nil {
		t.Fatalf("expected uuid jti, got %q", claims.ID)
	}
}

func TestParseTokenRejects(t *testing.T) {
	token, err := NewAccessToken("secret", "issuer", time.Minute, Claims{DeviceID: "d1"})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("other", "issuer", token); err == nil {
		t.Fatalf("expected signature error")
	}
	if _, err := ParseToken("secret", "someone-else", token); err == nil {
		t.Fatalf("expected issuer error")
	}
	expired, err := NewAccessToken("secret", "issuer", -time.Minute, Claims{DeviceID: "d1"})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("secret", "issuer", expired); err == nil {
		t.Fatalf("expected expiry error")
	}
	if _, err := NewAccessToken("secret", "issuer", time.Minute, Claims{}); err == nil {
		t.Fatalf("expected missing device error")
	}
}
