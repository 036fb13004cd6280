package auth

import (
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "" || hash == "correct horse battery staple" {
		t.Fatalf("hash is empty or equals the plaintext")
	}

	if !CheckPassword("correct horse battery staple", hash) {
		t.Fatal("CheckPassword returned false for the original plaintext")
	}
	if CheckPassword("wrong password", hash) {
		t.Fatal("CheckPassword returned true for a different plaintext")
	}
	if CheckPassword("", hash) {
		t.Fatal("CheckPassword returned true for an empty plaintext")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password are identical, salting is broken")
	}
}
