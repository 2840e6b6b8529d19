package transcript

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

/*
Watch Page Parsing

Each field is resolved through an ordered fallback chain; the first
non-empty candidate wins.

  title:       og:title, meta title, <title> without " - YouTube",
               videoDetails.title, DefaultTitle
  description: og:description, meta description,
               videoDetails.shortDescription, DefaultDescription
  captions:    best track of ytInitialPlayerResponse, then raw
               captionTracks patterns for pages whose player JSON
               does not decode

A page without any caption track is a parse failure; title and
description always resolve.
*/

const playerResponseMarker = "ytInitialPlayerResponse"

var captionURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"captionTracks":\[\{"baseUrl":"(.*?)",`),
	regexp.MustCompile(`"playerCaptionsTracklistRenderer".*?"captionTracks":\s*\[\s*\{\s*"baseUrl":\s*"(.*?)"`),
}

func parseWatchPage(body []byte, languages []string) (watchPage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return watchPage{}, err
	}

	player, _ := decodePlayerResponse(string(body))

	page := watchPage{
		title: firstNonEmpty(
			metaContent(doc, `meta[property="og:title"]`),
			metaContent(doc, `meta[name="title"]`),
			documentTitle(doc),
			player.VideoDetails.Title,
			DefaultTitle,
		),
		description: firstNonEmpty(
			metaContent(doc, `meta[property="og:description"]`),
			metaContent(doc, `meta[name="description"]`),
			player.VideoDetails.ShortDescription,
			DefaultDescription,
		),
	}

	if track, ok := pickBestTrack(player.Captions.Renderer.CaptionTracks, languages); ok {
		page.captionURL = track.BaseURL
	} else {
		page.captionURL = scanCaptionURL(string(body))
	}

	return page, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func documentTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	return strings.TrimSpace(strings.TrimSuffix(title, " - YouTube"))
}

func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}

// decodePlayerResponse finds the ytInitialPlayerResponse assignment in src
// and decodes the object literal that follows it.
func decodePlayerResponse(src string) (playerResponse, bool) {
	var player playerResponse
	object, ok := extractObjectAfter(src, playerResponseMarker)
	if !ok {
		return player, false
	}
	if err := json.Unmarshal([]byte(object), &player); err != nil {
		return playerResponse{}, false
	}
	return player, true
}

// extractObjectAfter returns the brace-balanced object literal assigned to
// the first occurrence of marker that is followed by `=` and `{`.
func extractObjectAfter(src string, marker string) (string, bool) {
	offset := 0
	for {
		idx := strings.Index(src[offset:], marker)
		if idx < 0 {
			return "", false
		}
		pos := offset + idx + len(marker)
		offset = pos

		rest := strings.TrimLeft(src[pos:], " \t\r\n\"']")
		if !strings.HasPrefix(rest, "=") {
			continue
		}
		rest = strings.TrimLeft(rest[1:], " \t\r\n")
		if !strings.HasPrefix(rest, "{") {
			continue
		}
		start := len(src) - len(rest)
		if end, ok := matchBrace(src, start); ok {
			return src[start : end+1], true
		}
		return "", false
	}
}

// matchBrace returns the index of the brace closing the one at start,
// skipping braces inside JSON strings.
func matchBrace(src string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(src); i++ {
		c := src[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// scanCaptionURL is the pattern fallback for pages whose player JSON is
// missing or does not decode.
func scanCaptionURL(src string) string {
	for _, pattern := range captionURLPatterns {
		m := pattern.FindStringSubmatch(src)
		if len(m) < 2 || m[1] == "" {
			continue
		}
		return unescapeJSONString(m[1])
	}
	return ""
}

func unescapeJSONString(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err == nil {
		return out
	}
	return strings.ReplaceAll(s, `\u0026`, "&")
}

// pickBestTrack selects the caption track for the given language preferences:
// a manual track in a preferred language, then an auto-generated one,
// then any English track, then the first track.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if t.BaseURL != "" {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	// 1. Manual track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	// 2. Auto-generated track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	// 3. Any English track
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}
