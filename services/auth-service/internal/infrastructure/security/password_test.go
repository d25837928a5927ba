package security

import "testing"

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher()
	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if err := h.Compare(hash, "secret123"); err != nil {
		t.Fatalf("Compare right password: %v", err)
	}
	if err := h.Compare(hash, "secret124"); err == nil {
		t.Fatal("wrong password accepted")
	}
}
