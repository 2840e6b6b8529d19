package urlutil

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrInvalidBase = errors.New("invalid base URL")

// NormalizeBase parses raw as the base of an HTTP service and reduces it
// to one spelling, so that joining a path onto it is a plain concatenation.
//
// The normalization follows these rules:
//   - Scheme must be http or https, host must be present
//   - Scheme and host are lowercased
//   - Default ports are omitted (e.g., :80 for http, :443 for https)
//   - Trailing slashes are removed, root included
//   - Query and fragment are removed
//
// NormalizeBase is idempotent.
func NormalizeBase(raw string) (url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return url.URL{}, fmt.Errorf("%w: %s", ErrInvalidBase, err.Error())
	}

	base := *parsed
	base.Scheme = lowerASCII(base.Scheme)
	if base.Scheme != "http" && base.Scheme != "https" {
		return url.URL{}, fmt.Errorf("%w: %q needs an http or https scheme", ErrInvalidBase, raw)
	}
	if base.Host == "" {
		return url.URL{}, fmt.Errorf("%w: %q has no host", ErrInvalidBase, raw)
	}
	base.Host = lowerASCII(base.Host)

	if host, port := base.Hostname(), base.Port(); port != "" {
		if (base.Scheme == "http" && port == "80") ||
			(base.Scheme == "https" && port == "443") {
			base.Host = host
		}
	}

	base.Path = strings.TrimRight(base.Path, "/")
	base.RawPath = ""
	base.RawQuery = ""
	base.ForceQuery = false
	base.Fragment = ""
	base.RawFragment = ""
	base.User = nil

	return base, nil
}

// Join appends path to a normalized base. path should start with "/".
func Join(base url.URL, path string) url.URL {
	joined := base
	joined.Path = base.Path + path
	return joined
}

// lowerASCII converts ASCII characters to lowercase without allocating
// when s is already lowercase.
func lowerASCII(s string) string {
	var needsLower bool
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			needsLower = true
			break
		}
	}
	if !needsLower {
		return s
	}
	b := make([]byte, len(s))
	copy(b, s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
