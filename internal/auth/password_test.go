package auth

import "testing"

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := BcryptHasher{Cost: 4} // low cost keeps the test fast

	digest, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if digest == "secret1" {
		t.Fatal("digest must not equal the plaintext")
	}

	if !hasher.Verify("secret1", digest) {
		t.Fatal("expected Verify to accept the original password")
	}
	if hasher.Verify("wrong-password", digest) {
		t.Fatal("expected Verify to reject a wrong password")
	}
}

func TestBcryptHasherDistinctDigests(t *testing.T) {
	hasher := BcryptHasher{Cost: 4}

	first, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if first == second {
		t.Fatal("expected salted digests to differ between calls")
	}
}
