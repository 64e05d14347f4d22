package render

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"thirdcoast.systems/threadr/internal/videoid"
	"thirdcoast.systems/threadr/pkg/comments"
	"thirdcoast.systems/threadr/pkg/utils/markdown"
)

const stylesheet = `
body { font-family: Arial, sans-serif; background-color: #1c1c1c; color: #fff; margin: 0; padding: 20px; }
h1 { color: #fff; margin-top: 0; padding-bottom: 20px; border-bottom: 1px solid #666; }
.summary { font-size: 13px; color: #999; }
.comment { margin-bottom: 20px; padding: 10px; background-color: #333; border-radius: 5px; }
.comment h3 { font-size: 18px; margin-bottom: 5px; color: #fff; }
.comment .body { font-size: 14px; margin-bottom: 10px; color: #fff; white-space: pre-wrap; }
.comment div.body { white-space: normal; }
.comment .time, .comment .votes { font-size: 12px; color: #999999; }
.reply { margin-left: 20px; border-left: 2px solid #444; padding-left: 10px; margin-top: 10px; }
a { color: #1e90ff; text-decoration: none; }
a:hover { text-decoration: underline; }
`

// htmlWriter keeps the first write error so component bodies stay linear.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(parts ...string) {
	for _, p := range parts {
		if hw.err != nil {
			return
		}
		_, hw.err = io.WriteString(hw.w, p)
	}
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *htmlWriter) component(ctx context.Context, c templ.Component) {
	if hw.err != nil {
		return
	}
	hw.err = c.Render(ctx, hw.w)
}

// Document renders a complete HTML page: the title header followed by one
// section per root in forest order.
func Document(forest comments.Forest, meta Meta, opts Options) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>")
		hw.text(meta.Title)
		hw.raw(" - YouTube Comments</title>\n<style>", stylesheet, "</style>\n</head>\n<body>\n")
		hw.component(ctx, Header(forest, meta))
		for _, root := range forest.Roots {
			hw.component(ctx, Comment(root, meta.VideoID, opts))
		}
		hw.raw("</body>\n</html>\n")
		return hw.err
	})
}

// Header renders the page heading and a one-line summary.
func Header(forest comments.Forest, meta Meta) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw("<h1>")
		hw.text(meta.Title)
		hw.raw(" - YouTube Comments</h1>\n<p class=\"summary\">")
		hw.raw(humanize.Comma(int64(forest.Len())), " comments in ", humanize.Comma(int64(len(forest.Roots))), " threads")
		if meta.VideoID != "" {
			hw.raw(` &middot; <a href="`, videoid.WatchURL(meta.VideoID), `" target="_blank" rel="noopener">Watch on YouTube</a>`)
		}
		hw.raw("</p>\n")
		return hw.err
	})
}

// Comment renders one record and, nested beneath it, all of its replies at
// any depth.
func Comment(rec *comments.Record, videoID string, opts Options) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		hw := &htmlWriter{w: w}
		hw.raw(`<div class="comment" id="`)
		hw.text("c-" + rec.ID)
		hw.raw("\">\n<h3>")
		hw.text(rec.Author)
		hw.raw("</h3>\n")

		switch opts.Body {
		case BodyMarkdown:
			hw.raw(`<div class="body">`, string(markdown.NewMarkdown(rec.Text).Render()), "</div>\n")
		default:
			hw.raw(`<p class="body">`)
			hw.text(rec.Text)
			hw.raw("</p>\n")
		}

		hw.raw(`<p class="votes">Upvotes: `, humanize.Comma(rec.Votes), "</p>\n")
		hw.raw(`<p class="time">Posted `)
		hw.text(rec.PostedAt)
		hw.raw("</p>\n")
		// CommentLink query-escapes both ids, so it is attribute-safe.
		hw.raw(`<p><a href="`, videoid.CommentLink(videoID, rec.ID), "\" target=\"_blank\" rel=\"noopener\">View on YouTube</a></p>\n")

		if len(rec.Replies) > 0 {
			hw.raw("<div class=\"reply\">\n")
			for _, reply := range rec.Replies {
				hw.component(ctx, Comment(reply, videoID, opts))
			}
			hw.raw("</div>\n")
		}
		hw.raw("</div>\n")
		return hw.err
	})
}
