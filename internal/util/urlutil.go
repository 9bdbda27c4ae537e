package util

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidURL marks URL validation failures, which happen before any
// external call.
var ErrInvalidURL = errors.New("invalid URL")

// ValidateURL checks that raw is an absolute http(s) URL and returns the
// normalized form. A missing scheme is assumed to be https, matching what a
// user pastes from a browser address bar. Site support itself is delegated
// to the extraction tool, so there is no host allow-list here.
func ValidateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	u, err := url.Parse(raw)
	if err == nil && (u.Scheme == "" || u.Host == "") {
		if u2, e2 := url.Parse("https://" + raw); e2 == nil {
			u = u2
		}
	}
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	switch u.Scheme {
	case "http", "https":
		return u.String(), nil
	default:
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
}
