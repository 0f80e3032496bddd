package ui

import (
	"bytes"
	stdhtml "html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var pageMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// RenderHTML converts message markdown into HTML for the web page.
// On render failure the content is returned escaped in a <pre> block
// rather than dropped.
func RenderHTML(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := pageMarkdown.Convert([]byte(content), &buf); err != nil {
		return "<pre>" + stdhtml.EscapeString(content) + "</pre>"
	}
	return buf.String()
}
