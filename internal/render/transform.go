package render

import (
	"strings"

	"github.com/liliang-cn/jogjachat/internal/sanitize"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// uriTransformer rewrites link and image destinations through
// sanitize.URI. Autolinks with a disallowed scheme are replaced by their
// label as plain text.
type uriTransformer struct{}

func (uriTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	var blocked []*ast.AutoLink

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			node.Destination = []byte(sanitize.URI(string(node.Destination)))
		case *ast.Image:
			node.Destination = []byte(sanitize.URI(string(node.Destination)))
		case *ast.AutoLink:
			target := string(node.URL(source))
			if node.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(target), "mailto:") {
				target = "mailto:" + target
			}
			if sanitize.URI(target) != strings.TrimSpace(target) {
				blocked = append(blocked, node)
			}
		}
		return ast.WalkContinue, nil
	})

	for _, node := range blocked {
		parent := node.Parent()
		if parent == nil {
			continue
		}
		parent.ReplaceChild(parent, node, ast.NewString(node.Label(source)))
	}
}
