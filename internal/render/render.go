// Package render converts markdown post sources to sanitized HTML. The
// output carries no scripts and no inline event handlers; heading ids are
// kept so in-page anchors keep working.
package render

import (
	"bytes"

	"github.com/adrg/frontmatter"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	return &Renderer{md: md, policy: policy}
}

// Render converts markdown to sanitized HTML.
func (r *Renderer) Render(markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(markdown, &buf); err != nil {
		return nil, err
	}
	return r.policy.SanitizeBytes(buf.Bytes()), nil
}

// RenderPost strips any leading YAML frontmatter before rendering, so post
// sources can be served directly.
func (r *Renderer) RenderPost(source []byte) ([]byte, error) {
	var head map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(source), &head)
	if err != nil {
		body = source
	}
	return r.Render(body)
}
