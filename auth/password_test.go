package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", hash)
	}
	if !VerifyPassword("correct horse", hash) {
		t.Error("matching password rejected")
	}
	if VerifyPassword("battery staple", hash) {
		t.Error("wrong password accepted")
	}
	if VerifyPassword("correct horse", "not-a-hash") {
		t.Error("malformed hash accepted")
	}

	again, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if again == hash {
		t.Error("hashes of the same password should differ by salt")
	}
}
