package token

import (
	"errors"
	"testing"
	"time"
)

func TestSignAndVerify(t *testing.T) {
	s := NewSigner("test-secret", "kritika", time.Hour)

	t.Run("roundtrip", func(t *testing.T) {
		signed, err := s.Sign(42)
		if err != nil {
			t.Fatal(err)
		}
		userID, err := s.Verify(signed)
		if err != nil {
			t.Fatal(err)
		}
		if userID != 42 {
			t.Errorf("expected user ID 42; got %d", userID)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		signed, err := s.Sign(42)
		if err != nil {
			t.Fatal(err)
		}
		other := NewSigner("other-secret", "kritika", time.Hour)
		_, err = other.Verify(signed)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken; got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewSigner("test-secret", "kritika", -time.Minute)
		signed, err := expired.Sign(42)
		if err != nil {
			t.Fatal(err)
		}
		_, err = s.Verify(signed)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken; got %v", err)
		}
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := s.Verify("not.a.token")
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken; got %v", err)
		}
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewSigner("test-secret", "someone-else", time.Hour)
		signed, err := other.Sign(42)
		if err != nil {
			t.Fatal(err)
		}
		_, err = s.Verify(signed)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken; got %v", err)
		}
	})
}
