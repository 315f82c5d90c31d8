// Package render turns transcript lines into HTML for embedding and into
// plain text for the terminal. Every link target and image source in a
// reply is routed through sanitize.URI before it reaches either output.
package render

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/liliang-cn/jogjachat/internal/domain"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// TypingIndicator is shown in place of a pending reply
const TypingIndicator = `<div class="typing"><div class="typing-dot"></div><div class="typing-dot"></div><div class="typing-dot"></div></div>`

// TerminalTypingIndicator is the terminal form of TypingIndicator
const TerminalTypingIndicator = "• • •"

var blankLines = regexp.MustCompile(`\n{3,}`)

// Renderer renders Markdown replies
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New creates a renderer
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough, extension.Table),
			goldmark.WithParserOptions(
				parser.WithASTTransformers(util.Prioritized(uriTransformer{}, 100)),
			),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// IsTyping reports whether msg should render as the typing indicator
func IsTyping(msg domain.Message) bool {
	return msg.IsPlaceholder()
}

// Markdown converts a reply to sanitized HTML
func (r *Renderer) Markdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return string(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// HTML renders one transcript line as a message row
func (r *Renderer) HTML(msg domain.Message) string {
	var body string
	switch {
	case IsTyping(msg):
		body = TypingIndicator
	case msg.Sender == domain.SenderUser:
		body = html.EscapeString(msg.Text)
	default:
		rendered, err := r.Markdown(msg.Text)
		if err != nil {
			rendered = html.EscapeString(msg.Text)
		}
		body = rendered
	}

	class := string(msg.Sender)
	if msg.IsError {
		class += " error"
	}
	return fmt.Sprintf(`<div class="message-row %s"><div class="message %s">%s</div></div>`, msg.Sender, class, body)
}

// Text renders one transcript line for a terminal
func (r *Renderer) Text(msg domain.Message) string {
	switch {
	case IsTyping(msg):
		return TerminalTypingIndicator
	case msg.Sender == domain.SenderUser:
		return msg.Text
	default:
		return r.plain(msg.Text)
	}
}

func (r *Renderer) plain(src string) string {
	source := []byte(src)
	doc := r.md.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if entering {
				b.Write(node.Segment.Value(source))
				if node.SoftLineBreak() || node.HardLineBreak() {
					b.WriteByte('\n')
				}
			}
		case *ast.String:
			if entering {
				b.Write(node.Value)
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if entering {
				lines := n.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					b.Write(seg.Value(source))
				}
				b.WriteString("\n")
			}
			return ast.WalkSkipChildren, nil
		case *ast.Image:
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			if entering {
				b.Write(node.Label(source))
			}
		case *ast.Link:
			if !entering {
				fmt.Fprintf(&b, " (%s)", node.Destination)
			}
		case *ast.ListItem:
			if entering {
				b.WriteString("- ")
			}
		case *ast.Paragraph, *ast.Heading:
			if !entering {
				b.WriteString("\n\n")
			}
		case *ast.TextBlock:
			if !entering {
				b.WriteString("\n")
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(blankLines.ReplaceAllString(b.String(), "\n\n"))
}
