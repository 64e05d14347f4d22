package render

import (
	"fmt"
	"strings"
)

// BodyMode selects how comment text is turned into HTML.
type BodyMode int

const (
	// BodyPlain escapes the text and keeps its line breaks.
	BodyPlain BodyMode = iota
	// BodyMarkdown renders the text as markdown and sanitizes the result.
	BodyMarkdown
)

func (m BodyMode) String() string {
	switch m {
	case BodyPlain:
		return "plain"
	case BodyMarkdown:
		return "markdown"
	default:
		return fmt.Sprintf("BodyMode(%d)", int(m))
	}
}

// ParseBodyMode accepts "plain" or "markdown".
func ParseBodyMode(s string) (BodyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain":
		return BodyPlain, nil
	case "markdown":
		return BodyMarkdown, nil
	default:
		return 0, fmt.Errorf("render: unknown body mode %q", s)
	}
}

// Meta identifies the video a document belongs to. Both fields are used
// verbatim: VideoID in deep links, Title in the page header.
type Meta struct {
	VideoID string
	Title   string
}

// Options controls how comment bodies are rendered.
type Options struct {
	Body BodyMode
}
