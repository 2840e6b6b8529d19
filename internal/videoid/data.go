package videoid

import (
	"net/url"

	"github.com/rohmanhakim/yt-summarizer/pkg/urlutil"
)

// ID is the canonical 11-character identifier of a video.
// It is the cache key for every artifact of that video and is never mutated.
type ID string

func (id ID) String() string {
	return string(id)
}

// WatchURL builds the watch page URL for id under base (e.g. https://www.youtube.com).
func (id ID) WatchURL(base string) url.URL {
	normalized, err := urlutil.NormalizeBase(base)
	if err != nil {
		normalized = url.URL{Scheme: "https", Host: "www.youtube.com"}
	}
	u := urlutil.Join(normalized, "/watch")
	q := url.Values{}
	q.Set("v", string(id))
	u.RawQuery = q.Encode()
	return u
}

// Length is the exact number of characters in a valid ID.
const Length = 11

// Valid reports whether s is exactly Length characters of [A-Za-z0-9_-].
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
