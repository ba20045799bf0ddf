// Package markdown renders blog content to HTML that is safe to embed.
package markdown

import (
	"bytes"
	stdhtml "html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	md := goldmark.New(
		// Raw HTML passes through goldmark and is cleaned by the policy below.
		goldmark.WithRendererOptions(html.WithUnsafe()),
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify, extension.Table),
	)

	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{md: md, policy: p}
}

// Render converts Markdown to sanitized HTML. On a conversion error the
// escaped source is returned so callers always get something displayable.
func (r *Renderer) Render(content string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return r.policy.Sanitize(stdhtml.EscapeString(content))
	}
	return strings.TrimSpace(r.policy.Sanitize(buf.String()))
}
