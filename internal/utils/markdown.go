package utils

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Post bodies are short single-block notes: GFM inline syntax plus hard line
// breaks, no heading anchors.
var (
	postMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	postPolicy = bluemonday.UGCPolicy()
)

func init() {
	postPolicy.AllowImages()
	postPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	postPolicy.RequireNoReferrerOnLinks(true)
}

// RenderMarkdown turns post content into the content_html of the post
// detail response. Raw HTML in the source never survives sanitizing.
func RenderMarkdown(source string) string {
	if source == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := postMarkdown.Convert([]byte(source), &buf); err != nil {
		return postPolicy.Sanitize(source)
	}

	sanitized := postPolicy.SanitizeBytes(buf.Bytes())
	return EnhanceHTMLContent(string(sanitized))
}
