package utils

import (
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Sup3r$ecret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Sup3r$ecret" {
		t.Fatal("password must never be stored in plaintext")
	}
	if err := CheckPassword("Sup3r$ecret", hash); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := CheckPassword("wrong", hash); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestCheckPasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{"all rules met", "Abcdef1!", true},
		{"longer valid", "Tr0ub4dor&Three", true},
		{"too short", "Ab1!", false},
		{"no digit", "Abcdefg!", false},
		{"no uppercase", "abcdefg1!", false},
		{"no lowercase", "ABCDEFG1!", false},
		{"no special", "Abcdefg1", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := CheckPasswordStrength(tt.password)
			if ok := len(problems) == 0; ok != tt.ok {
				t.Errorf("CheckPasswordStrength(%q) problems = %v, want ok=%v", tt.password, problems, tt.ok)
			}
		})
	}
}
