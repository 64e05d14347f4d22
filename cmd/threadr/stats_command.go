package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"thirdcoast.systems/threadr/internal/pipeline"
	"thirdcoast.systems/threadr/pkg/render"
	"thirdcoast.systems/threadr/pkg/utils/format"
)

type statsOptions struct {
	top  int
	json bool
}

func newStatsCommand(cc *commandContext) *cobra.Command {
	var opts statsOptions

	cmd := &cobra.Command{
		Use:   "stats <comments-file>",
		Short: "Summarize a comment export without rendering it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := cc.pipelineOptions()
			if err != nil {
				return err
			}
			popts.Format = pipeline.DetectFormat(args[0])

			res, err := pipeline.LoadFile(args[0], render.Meta{}, popts)
			if err != nil {
				return err
			}
			if opts.json {
				return writeStatsJSON(cmd.OutOrStdout(), res)
			}
			writeStatsTables(cmd.OutOrStdout(), res, opts.top)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.top, "top", 10, "number of top threads to list")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output as JSON")
	return cmd
}

func writeStatsJSON(w io.Writer, res *pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"decode": res.Decode,
		"build":  res.Build,
	})
}

func writeStatsTables(w io.Writer, res *pipeline.Result, top int) {
	summary := [][]string{
		{"Input lines", humanize.Comma(int64(res.Decode.Lines))},
		{"Skipped lines", humanize.Comma(int64(res.Decode.Skipped))},
		{"Comments", humanize.Comma(int64(res.Build.Records))},
		{"Threads", humanize.Comma(int64(res.Build.Roots))},
		{"Replies", humanize.Comma(int64(res.Build.Replies))},
		{"Orphans dropped", humanize.Comma(int64(len(res.Build.Orphans)))},
		{"Duplicate ids", humanize.Comma(int64(len(res.Build.Duplicates)))},
		{"Max depth", strconv.Itoa(res.Build.MaxDepth)},
	}
	fmt.Fprintln(w, statsTable{
		title:   "Summary",
		columns: []column{{header: "Metric"}, {header: "Value", align: text.AlignRight}},
		rows:    summary,
	}.render())

	all := len(res.Forest.Roots)
	roots := res.Forest.Roots
	if top >= 0 && top < len(roots) {
		roots = roots[:top]
	}
	if len(roots) == 0 {
		return
	}

	rows := make([][]string, 0, len(roots))
	for i, r := range roots {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.Author,
			humanize.Comma(r.Votes),
			strconv.Itoa(len(r.Replies)),
			format.Truncate(r.Text, 48),
		})
	}
	fmt.Fprintln(w, statsTable{
		title: "Top threads",
		columns: []column{
			{header: "#", align: text.AlignRight},
			{header: "Author", widthMax: 24},
			{header: "Votes", align: text.AlignRight},
			{header: "Replies", align: text.AlignRight},
			{header: "Text"},
		},
		rows:   rows,
		footer: fmt.Sprintf("%d of %d threads shown", len(rows), all),
	}.render())
}
