package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"thirdcoast.systems/threadr/internal/pipeline"
	"thirdcoast.systems/threadr/pkg/render"
)

type renderOptions struct {
	videoID string
	title   string
	out     string
}

func newRenderCommand(cc *commandContext) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <comments-file>",
		Short: "Render an existing comment export (JSONL or yt-dlp .info.json) to HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := cc.pipelineOptions()
			if err != nil {
				return err
			}

			in := args[0]
			popts.Format = pipeline.DetectFormat(in)
			if popts.Format == pipeline.FormatJSONL && opts.videoID == "" {
				return fmt.Errorf("--video-id is required for JSONL input")
			}

			out := opts.out
			if out == "" {
				out = defaultOutputPath(in)
			}
			meta := render.Meta{VideoID: opts.videoID, Title: opts.title}
			if meta.Title == "" && popts.Format == pipeline.FormatJSONL {
				meta.Title = strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
			}

			res, err := pipeline.ConvertFile(cmd.Context(), in, out, meta, popts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "HTML file: %s (%d comments, %d skipped lines, %d orphans)\n",
				out, res.Forest.Len(), res.Decode.Skipped, len(res.Build.Orphans))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.videoID, "video-id", "", "YouTube video id used in comment links")
	cmd.Flags().StringVar(&opts.title, "title", "", "video title for the page header")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default: input with .html extension)")

	return cmd
}

// defaultOutputPath swaps the input extension for .html, treating
// ".info.json" as one extension.
func defaultOutputPath(in string) string {
	base := in
	if lower := strings.ToLower(base); strings.HasSuffix(lower, ".info.json") {
		base = base[:len(base)-len(".info.json")]
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base + ".html"
}
