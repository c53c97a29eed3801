package auth

import "testing"

func TestHasherRoundTrip(t *testing.T) {
	hasher := NewHasher()
	hash, err := hasher.Hash("correct horse battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("hash must not equal the plaintext")
	}

	ok, err := hasher.Verify("correct horse battery", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("expected matching password to verify")
	}
}

func TestHasherRejectsWrongPassword(t *testing.T) {
	hasher := NewHasher()
	hash, err := hasher.Hash("original")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, err := hasher.Verify("different", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatal("expected mismatch to report false")
	}
}

func TestHasherMalformedHashIsAnError(t *testing.T) {
	hasher := NewHasher()
	ok, err := hasher.Verify("anything", "not-a-bcrypt-hash")
	if err == nil {
		t.Fatal("expected error for malformed hash")
	}
	if ok {
		t.Fatal("malformed hash must never verify")
	}
}

func TestHasherSaltsEachHash(t *testing.T) {
	hasher := NewHasher()
	first, err := hasher.Hash("same input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := hasher.Hash("same input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same input must differ")
	}
}
