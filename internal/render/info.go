package render

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/rohmanhakim/yt-summarizer/internal/transcript"
	"golang.org/x/net/html"
)

/*
Info Layout

	# <title>

	## Description

	<description>

Title and description are platform text, not Markdown. They are placed in
an HTML fragment and converted, so Markdown control characters in them are
escaped instead of being interpreted. Blank lines in the description
separate paragraphs; single newlines become hard line breaks.
*/

// Info renders the info.md artifact for meta.
func Info(meta transcript.VideoMetadata) string {
	fragment := infoFragment(meta.Title(), meta.Description())

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)

	markdown, err := conv.ConvertString(fragment)
	if err != nil {
		return plainInfo(meta.Title(), meta.Description())
	}
	return strings.TrimSpace(markdown) + "\n"
}

func infoFragment(title string, description string) string {
	var b strings.Builder
	b.WriteString("<h1>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</h1><h2>Description</h2>")

	normalized := strings.ReplaceAll(description, "\r\n", "\n")
	for _, paragraph := range strings.Split(normalized, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		lines := strings.Split(paragraph, "\n")
		for i, line := range lines {
			lines[i] = html.EscapeString(strings.TrimSpace(line))
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(lines, "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}

func plainInfo(title string, description string) string {
	return fmt.Sprintf("# %s\n\n## Description\n\n%s\n", title, strings.TrimSpace(description))
}
