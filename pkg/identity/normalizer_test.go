package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"lead-gateway/pkg/models"
)

func sha(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestHashPhone(t *testing.T) {
	got := HashPhone("5551234567")
	if want := sha("+905551234567"); got != want {
		t.Fatalf("HashPhone = %s, want %s", got, want)
	}
	if len(got) != 64 {
		t.Fatalf("len = %d, want 64", len(got))
	}
}

func TestHashPhoneDeterministic(t *testing.T) {
	a := HashPhone("5551234567")
	b := HashPhone("5551234567")
	if a != b {
		t.Fatalf("digests differ: %s != %s", a, b)
	}
	if c := HashPhone("5551234568"); c == a {
		t.Fatal("different phones produced the same digest")
	}
}

func TestHashNationalID(t *testing.T) {
	if got, want := HashNationalID("12345678901"), sha("12345678901"); got != want {
		t.Fatalf("HashNationalID = %s, want %s", got, want)
	}
}

func TestNormalize(t *testing.T) {
	req := models.SubmissionRequest{NationalID: "12345678901", Phone: "5551234567"}

	lead := Normalize(req, false)
	if lead.HashedPhone != sha("+905551234567") {
		t.Fatalf("HashedPhone = %s", lead.HashedPhone)
	}
	if lead.HashedNationalID != "" {
		t.Fatalf("HashedNationalID = %q, want empty", lead.HashedNationalID)
	}

	lead = Normalize(req, true)
	if lead.HashedNationalID != sha("12345678901") {
		t.Fatalf("HashedNationalID = %s", lead.HashedNationalID)
	}
}
