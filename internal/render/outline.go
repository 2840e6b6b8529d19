package render

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// Outline returns the heading texts of a Markdown document in document order.
// Inline formatting is dropped; only the literal text of each heading is kept.
func Outline(source string) []string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := markdown.Parse([]byte(source), p)

	var headings []string
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		heading, ok := node.(*ast.Heading)
		if !ok || !entering {
			return ast.GoToNext
		}
		if text := strings.Join(strings.Fields(headingText(heading)), " "); text != "" {
			headings = append(headings, text)
		}
		return ast.SkipChildren
	})
	return headings
}

func headingText(heading *ast.Heading) string {
	var b strings.Builder
	ast.WalkFunc(heading, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		if leaf := node.AsLeaf(); leaf != nil {
			b.Write(leaf.Literal)
		}
		return ast.GoToNext
	})
	return b.String()
}
