package secretbox

import (
	"bytes"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

const testPassphrase = "0123456789abcdef0123456789abcdef"

func TestSealOpen_RoundTrip(t *testing.T) {
	box, err := New(testPassphrase)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	plain := []byte(`{"subject":"Lab deadline moved"}`)
	sealed, err := box.Seal(plain)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	if bytes.Contains(sealed, []byte("deadline")) {
		t.Error("sealed payload leaks plaintext")
	}

	opened, err := box.Open(sealed)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !bytes.Equal(opened, plain) {
		t.Errorf("Open = %q, want %q", opened, plain)
	}
}

func TestOpen_RejectsTampering(t *testing.T) {
	box, err := New(testPassphrase)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	sealed, err := box.Seal([]byte("payload"))
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	sealed[len(sealed)-1] ^= 0xff
	if _, err := box.Open(sealed); err == nil {
		t.Error("Open accepted a tampered payload")
	}

	if _, err := box.Open([]byte("short")); err == nil {
		t.Error("Open accepted a truncated payload")
	}
}

func TestNew_RejectsShortPassphrase(t *testing.T) {
	if _, err := New("too-short"); err == nil {
		t.Error("New accepted a short passphrase")
	}
	if _, err := New(strings.Repeat("k", 32)); err != nil {
		t.Errorf("New rejected a 32-char passphrase: %v", err)
	}
}

func TestSealOpen_AnyPayload(t *testing.T) {
	box, err := New(testPassphrase)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	rapid.Check(t, func(rt *rapid.T) {
		plain := rapid.SliceOfN(rapid.Byte(), 0, 4096).Draw(rt, "plain")
		sealed, err := box.Seal(plain)
		if err != nil {
			rt.Fatalf("Seal failed: %v", err)
		}
		opened, err := box.Open(sealed)
		if err != nil {
			rt.Fatalf("Open failed: %v", err)
		}
		if !bytes.Equal(opened, plain) {
			rt.Fatalf("round trip mismatch: got %d bytes, want %d", len(opened), len(plain))
		}
	})
}
