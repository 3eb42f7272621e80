package crypto_test

import (
	"errors"
	"testing"

	"pufsim/internal/crypto"
	"pufsim/internal/domain"
)

func TestEnvelope_RoundTrip(t *testing.T) {
	blob, err := crypto.SealEnvelope("correct horse", []byte("secret payload"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	plaintext, err := crypto.OpenEnvelope("correct horse", blob)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if string(plaintext) != "secret payload" {
		t.Fatalf("mismatch after open: %q", plaintext)
	}
}

func TestEnvelope_WrongPassphraseFails(t *testing.T) {
	blob, err := crypto.SealEnvelope("correct", []byte("secret"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	_, err = crypto.OpenEnvelope("wrong", blob)
	if !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("want ErrAuthentication, got %v", err)
	}
}
