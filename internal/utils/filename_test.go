package utils

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "report.pdf", "report.pdf"},
		{"spaces kept", "level design v2.txt", "level design v2.txt"},
		{"traversal stripped", "../../etc/passwd", "passwd"},
		{"windows separators", `..\..\boot.ini`, "boot.ini"},
		{"reserved chars replaced", "a<b>:c?.png", "a_b__c_.png"},
		{"absolute path", "/var/log/syslog", "syslog"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeFilename(tt.in)
			if err != nil {
				t.Fatalf("SanitizeFilename(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if strings.ContainsAny(got, `/\`) {
				t.Errorf("sanitized name %q still contains a path separator", got)
			}
		})
	}
}

func TestSanitizeFilenameRejectsEmpty(t *testing.T) {
	for _, in := range []string{"", ".", "..", "...", "///", "  ", "___"} {
		if got, err := SanitizeFilename(in); err == nil {
			t.Errorf("SanitizeFilename(%q) = %q, want error", in, got)
		}
	}
}
