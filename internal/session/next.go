package session

import "strings"

// SafeNext reports whether a post-login redirect target is an internal
// path. Anything with a scheme, authority or protocol-relative prefix is
// rejected so the login flow can never be used as an open redirect.
func SafeNext(next string) bool {
	if next == "" {
		return false
	}
	if !strings.HasPrefix(next, "/") {
		return false
	}
	if strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return false
	}
	if strings.ContainsAny(next, "\r\n") {
		return false
	}
	return true
}
