package transcript

import (
	"encoding/xml"
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// timedText covers both timedtext shapes served by the caption endpoint:
// <transcript><text>…</text></transcript> and format 3
// <timedtext><body><p>…</p></body></timedtext>.
type timedText struct {
	Texts      []timedLine      `xml:"text"`
	Paragraphs []timedParagraph `xml:"body>p"`
}

// timedLine is a srv1 caption line. Its text is escaped twice, so the
// inner XML still carries entity-encoded markup.
type timedLine struct {
	Inner string `xml:",innerxml"`
}

// timedParagraph is a format 3 caption line. Its text is escaped once:
// the XML decoder yields the final characters and <s> spans are unwrapped
// in document order.
type timedParagraph struct {
	Text string
}

func (p *timedParagraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		token, err := d.Token()
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if strings.EqualFold(t.Name.Local, "br") {
				b.WriteString("\n")
			}
		case xml.EndElement:
			depth--
		case xml.CharData:
			b.Write(t)
		}
	}
	p.Text = b.String()
	return nil
}

var (
	errEmptyTranscript = errors.New("caption track contains no text")
	lineBreakPattern   = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// parseTimedText flattens a caption document into plain text.
// Segments are joined with a single space; an empty result is an error.
func parseTimedText(body []byte) (string, error) {
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", err
	}

	segments := make([]string, 0, len(tt.Texts)+len(tt.Paragraphs))
	if len(tt.Texts) > 0 {
		for _, line := range tt.Texts {
			if text := cleanSegment(line.Inner); text != "" {
				segments = append(segments, text)
			}
		}
	} else {
		for _, paragraph := range tt.Paragraphs {
			if text := collapseWhitespace(paragraph.Text); text != "" {
				segments = append(segments, text)
			}
		}
	}
	if len(segments) == 0 {
		return "", errEmptyTranscript
	}
	return strings.Join(segments, " "), nil
}

// cleanSegment decodes the raw inner XML of one srv1 caption line.
// The text is entity-encoded twice and may carry inline markup.
func cleanSegment(raw string) string {
	decoded := html.UnescapeString(raw)
	decoded = lineBreakPattern.ReplaceAllString(decoded, "\n")
	return collapseWhitespace(stripMarkup(decoded))
}

// stripMarkup drops tags and decodes the remaining entities.
func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

// collapseWhitespace squeezes runs of spaces within a line and drops blank lines.
func collapseWhitespace(s string) string {
	rawLines := strings.Split(s, "\n")
	lines := make([]string, 0, len(rawLines))
	for _, l := range rawLines {
		if joined := strings.Join(strings.Fields(l), " "); joined != "" {
			lines = append(lines, joined)
		}
	}
	return strings.Join(lines, "\n")
}
