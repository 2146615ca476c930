package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	digest, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if digest == "s3cret" {
		t.Fatalf("digest equals plaintext")
	}
	if !h.Compare("s3cret", digest) {
		t.Fatalf("Compare rejected the original password")
	}
	if h.Compare("wrong", digest) {
		t.Fatalf("Compare accepted a different password")
	}
}

func TestHasher_DigestsAreSalted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	a, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	b, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password are identical; salt missing")
	}
	if !h.Compare("same-password", a) || !h.Compare("same-password", b) {
		t.Fatalf("salted digests should both verify")
	}
}

func TestHasher_CostSelfDescribes(t *testing.T) {
	// A digest produced at one cost must keep verifying after the
	// configured cost changes.
	old := NewHasher(bcrypt.MinCost)
	digest, err := old.Hash("migrate-me")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	upgraded := NewHasher(DefaultCost)
	if !upgraded.Compare("migrate-me", digest) {
		t.Fatalf("digest stopped verifying after cost change")
	}
}

func TestNewHasher_OutOfRangeCost(t *testing.T) {
	h := NewHasher(99)

	digest, err := h.Hash("p")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		t.Fatalf("Cost returned error: %v", err)
	}
	if cost != DefaultCost {
		t.Fatalf("expected fallback cost %d, got %d", DefaultCost, cost)
	}
	if !strings.HasPrefix(digest, "$2") {
		t.Fatalf("unexpected digest format: %s", digest)
	}
}
