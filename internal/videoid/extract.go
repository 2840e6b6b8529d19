package videoid

import (
	"regexp"
	"strings"

	"github.com/rohmanhakim/yt-summarizer/pkg/failure"
)

/*
Extraction Strategy

An ordered list of rules. Each rule pairs a matcher with the capture group
holding the candidate identifier.

  - Rules are evaluated in declaration order.
  - The first rule whose capture is a valid ID wins; later rules are not consulted.
  - A capture that is not exactly 11 characters of [A-Za-z0-9_-] rejects the
    rule and evaluation moves on to the next one.
  - Overlapping rules are intentional. Their order is part of the contract.

Captures are deliberately wider than the ID alphabet so that an overlong
identifier is seen whole and rejected, instead of being silently cut to 11.
*/

type rule struct {
	name    string
	matcher *regexp.Regexp
	group   int
}

func (r rule) extract(input string) (ID, bool) {
	m := r.matcher.FindStringSubmatch(input)
	if len(m) <= r.group {
		return "", false
	}
	candidate := m[r.group]
	if !Valid(candidate) {
		return "", false
	}
	return ID(candidate), true
}

var rules = []rule{
	{
		name:    "direct",
		matcher: regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/|youtube\.com/e/|youtube\.com/shorts/)([^&?/#\s]+)`),
		group:   1,
	},
	{
		name:    "watch-any-param",
		matcher: regexp.MustCompile(`youtube\.com/watch.*[?&]v=([^&?/#\s]+)`),
		group:   1,
	},
	{
		name:    "shorts",
		matcher: regexp.MustCompile(`youtube\.com/shorts/([^&?/#\s]+)`),
		group:   1,
	},
}

// Extract returns the video identifier carried by rawURL.
// It is a pure function: no I/O, no side effects.
func Extract(rawURL string) (ID, failure.ClassifiedError) {
	input := strings.TrimSpace(rawURL)
	for _, r := range rules {
		if id, ok := r.extract(input); ok {
			return id, nil
		}
	}
	return "", &ExtractError{
		Message:   "no rule matched an 11-character identifier",
		Retryable: false,
		Cause:     ErrCauseInvalidURL,
		Input:     rawURL,
	}
}

// RuleNames lists the rule names in evaluation order.
func RuleNames() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}
