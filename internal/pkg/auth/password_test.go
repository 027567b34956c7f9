package auth

import "testing"

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("hash returned error: %v", err)
	}
	if hash == "secret" {
		t.Fatal("hash must not equal the plain password")
	}

	if err := hasher.Compare(hash, "secret"); err != nil {
		t.Fatalf("compare rejected matching password: %v", err)
	}
	if err := hasher.Compare(hash, "wrong"); err == nil {
		t.Fatal("compare accepted wrong password")
	}
}
