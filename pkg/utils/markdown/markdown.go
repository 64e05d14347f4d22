// Package markdown renders user-supplied markdown into sanitized HTML.
package markdown

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

// Markdown wraps markdown source and caches its rendered forms.
type Markdown struct {
	// Source is the markdown source code.
	Source string
	// renderedHTML caches the sanitized HTML rendered from Source.
	renderedHTML *template.HTML
	// renderedText caches the tag-free text rendered from Source.
	renderedText *template.HTML
}

var (
	bfRenderer = blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.Safelink | blackfriday.NofollowLinks | blackfriday.HrefTargetBlank | blackfriday.Smartypants | blackfriday.SmartypantsDashes,
	})
	// Comments are short bodies: no headings, tables or definition lists.
	bfExtensions = blackfriday.NoIntraEmphasis | blackfriday.FencedCode | blackfriday.Autolink | blackfriday.Strikethrough | blackfriday.HardLineBreak
	policy       = bluemonday.UGCPolicy()
)

func NewMarkdown(source string) *Markdown {
	return &Markdown{Source: source}
}

func (m *Markdown) run() []byte {
	return blackfriday.Run([]byte(m.Source),
		blackfriday.WithRenderer(bfRenderer),
		blackfriday.WithExtensions(bfExtensions),
	)
}

// Render converts the Markdown Source into sanitized HTML.
func (m *Markdown) Render() template.HTML {
	if m.renderedHTML != nil {
		return *m.renderedHTML
	}
	if m.Source == "" {
		empty := template.HTML("")
		m.renderedHTML = &empty
		return empty
	}

	safe := policy.SanitizeBytes(m.run())
	html := template.HTML(bytes.TrimSpace(safe))
	m.renderedHTML = &html
	return html
}

// PlainText renders Source and strips every tag from the result.
func (m *Markdown) PlainText() template.HTML {
	if m.renderedText != nil {
		return *m.renderedText
	}

	safe := bytes.TrimSpace(bluemonday.StrictPolicy().SanitizeBytes(m.run()))
	h := template.HTML(safe)
	m.renderedText = &h

	return *m.renderedText
}

// UnmarshalJSON implements json.Unmarshaler so Markdown can be decoded from JSON.
func (m *Markdown) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("Markdown.UnmarshalJSON: %w", err)
	}
	m.Source = s
	m.renderedHTML = nil
	m.renderedText = nil
	return nil
}
