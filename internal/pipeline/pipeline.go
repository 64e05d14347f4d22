// Package pipeline glues decoding, tree building, ranking and rendering into
// the single pass that turns a comment export into an HTML document.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"thirdcoast.systems/threadr/internal/config"
	"thirdcoast.systems/threadr/pkg/comments"
	"thirdcoast.systems/threadr/pkg/render"
)

// Format is the layout of an input file.
type Format int

const (
	// FormatJSONL is one comment per line (youtube-comment-downloader).
	FormatJSONL Format = iota
	// FormatInfoJSON is a yt-dlp .info.json with an embedded comments array.
	FormatInfoJSON
)

// DetectFormat picks the input format from a file name.
func DetectFormat(path string) Format {
	if strings.HasSuffix(strings.ToLower(path), ".info.json") {
		return FormatInfoJSON
	}
	return FormatJSONL
}

// Options configures every stage of one pass. Format picks the decoder.
type Options struct {
	Format Format
	Decode comments.DecodeOptions
	Build  comments.BuildOptions
	Render render.Options
}

// OptionsFromConfig translates configuration strings into typed options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	var opts Options
	var err error

	if opts.Decode.Ancestry, err = comments.ParseAncestryPolicy(cfg.Ancestry); err != nil {
		return Options{}, err
	}
	if opts.Decode.MaxLineBytes, err = cfg.MaxLineBytes(); err != nil {
		return Options{}, err
	}
	if opts.Build.Orphans, err = comments.ParseOrphanPolicy(cfg.Orphans); err != nil {
		return Options{}, err
	}
	if opts.Build.Duplicates, err = comments.ParseDuplicatePolicy(cfg.Duplicates); err != nil {
		return Options{}, err
	}
	if opts.Render.Body, err = render.ParseBodyMode(cfg.Body); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Result is the outcome of one pass.
type Result struct {
	Meta   render.Meta
	Forest comments.Forest
	Decode comments.DecodeReport
	Build  comments.Report
	HTML   []byte
}

// Load decodes, builds and ranks a comment export. For info.json input the
// video id and title found in the file fill any empty field of meta.
func Load(r io.Reader, meta render.Meta, opts Options) (*Result, error) {
	res := &Result{Meta: meta}

	var recs []*comments.Record
	switch opts.Format {
	case FormatInfoJSON:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read info.json: %w", err)
		}
		info, rep, err := comments.DecodeInfoJSON(data, opts.Decode)
		if err != nil {
			return nil, err
		}
		recs, res.Decode = info.Records, rep
		if res.Meta.VideoID == "" {
			res.Meta.VideoID = info.VideoID
		}
		if res.Meta.Title == "" {
			res.Meta.Title = info.Title
		}
	default:
		var err error
		if recs, res.Decode, err = comments.DecodeJSONL(r, opts.Decode); err != nil {
			return nil, err
		}
	}

	forest, rep, err := comments.Build(recs, opts.Build)
	if err != nil {
		return nil, fmt.Errorf("build comment tree: %w", err)
	}
	comments.Rank(forest.Roots)
	res.Forest, res.Build = forest, rep

	if len(rep.Orphans) > 0 {
		slog.Warn("dropped orphaned replies", "count", len(rep.Orphans), "policy", "drop")
	}
	if len(rep.Duplicates) > 0 {
		slog.Warn("duplicate comment ids", "count", len(rep.Duplicates), "ids", rep.Duplicates)
	}
	slog.Info("comment tree built",
		"lines", res.Decode.Lines,
		"skipped", res.Decode.Skipped,
		"roots", rep.Roots,
		"replies", rep.Replies,
		"max_depth", rep.MaxDepth,
	)

	return res, nil
}

// Convert runs Load and renders the result.
func Convert(ctx context.Context, r io.Reader, meta render.Meta, opts Options) (*Result, error) {
	res, err := Load(r, meta, opts)
	if err != nil {
		return nil, err
	}

	html, err := render.Render(ctx, res.Forest, res.Meta, opts.Render)
	if err != nil {
		return nil, err
	}
	res.HTML = html
	return res, nil
}

// LoadFile is Load over a file on disk.
func LoadFile(path string, meta render.Meta, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open comments: %w", err)
	}
	defer f.Close()

	return Load(f, meta, opts)
}

// ConvertFile converts inPath and writes the document to outPath. The output
// is written to a temporary file in the same directory and renamed into place.
func ConvertFile(ctx context.Context, inPath, outPath string, meta render.Meta, opts Options) (*Result, error) {
	f, err := os.Open(inPath)
	if err != nil {
		return nil, fmt.Errorf("open comments: %w", err)
	}
	defer f.Close()

	res, err := Convert(ctx, f, meta, opts)
	if err != nil {
		return nil, err
	}

	if err := writeAtomic(outPath, res.HTML); err != nil {
		return nil, err
	}
	slog.Info("rendered document", "input", inPath, "output", outPath, "bytes", len(res.HTML))
	return res, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".threadr-*.html")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		tmp.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
