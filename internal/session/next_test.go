package session

import "testing"

func TestSafeNext(t *testing.T) {
	tests := []struct {
		next string
		want bool
	}{
		{"/", true},
		{"/project/3", true},
		{"/project/3?tab=documents", true},
		{"", false},
		{"projects", false},
		{"//evil.example.com", false},
		{"/\\evil.example.com", false},
		{"http://evil.example.com", false},
		{"https://evil.example.com/login", false},
		{"javascript:alert(1)", false},
		{"/ok\r\nSet-Cookie: x=1", false},
	}
	for _, tt := range tests {
		if got := SafeNext(tt.next); got != tt.want {
			t.Errorf("SafeNext(%q) = %v, want %v", tt.next, got, tt.want)
		}
	}
}
