package auth

import (
	"net/url"
	"strings"
)

// DefaultNext is where post-login redirects land when the requested target
// is missing or unsafe.
const DefaultNext = "/"

// SafeNext validates a post-login redirect target. Only same-origin relative
// paths are honored; anything carrying a scheme or host (including
// protocol-relative "//host" forms) falls back to DefaultNext.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") {
		return DefaultNext
	}
	if strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return DefaultNext
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return DefaultNext
	}
	return next
}
