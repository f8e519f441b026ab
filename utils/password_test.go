package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret!" {
		t.Fatal("password stored in clear text")
	}
	if !CheckPassword(hash, "s3cret!") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("expected wrong password to fail")
	}
}

func TestGenerateSecurePassword(t *testing.T) {
	if got := GenerateSecurePassword(4); len(got) != 8 {
		t.Errorf("expected minimum length 8, got %d", len(got))
	}
	a, b := GenerateSecurePassword(16), GenerateSecurePassword(16)
	if len(a) != 16 || a == b {
		t.Errorf("unexpected passwords %q %q", a, b)
	}
}
