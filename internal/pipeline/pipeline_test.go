package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"thirdcoast.systems/threadr/internal/config"
	"thirdcoast.systems/threadr/pkg/comments"
	"thirdcoast.systems/threadr/pkg/render"
)

const scenario = `{"cid":"r1","author":"Al","text":"hi","votes":"10","time":"1d"}
{"cid":"r2","author":"Bo","text":"yo","votes":"1.2K","time":"2d"}
{"cid":"r2.a","author":"Cy","text":"re","votes":"3","time":"1h"}
`

func TestConvert_Scenario(t *testing.T) {
	res, err := Convert(context.Background(), strings.NewReader(scenario), render.Meta{VideoID: "VID", Title: "Title"}, Options{})
	require.NoError(t, err)

	require.Len(t, res.Forest.Roots, 2)
	require.Equal(t, "r2", res.Forest.Roots[0].ID)
	require.Equal(t, "r1", res.Forest.Roots[1].ID)
	require.Equal(t, 2, res.Build.Roots)
	require.Equal(t, 1, res.Build.Replies)

	doc := string(res.HTML)
	require.Contains(t, doc, "Al")
	require.Contains(t, doc, "Bo")
	require.Contains(t, doc, "https://www.youtube.com/watch?v=VID&lc=r1")
	require.Contains(t, doc, "https://www.youtube.com/watch?v=VID&lc=r2")
	require.Contains(t, doc, "<title>Title - YouTube Comments</title>")
}

func TestConvert_SkipsBadLinesAndOrphans(t *testing.T) {
	input := "garbage\n" +
		`{"cid":"x.1","author":"early","votes":"1"}` + "\n" +
		`{"cid":"x","author":"root","votes":"2"}` + "\n" +
		`{"cid":"y","author":"bad votes","votes":"many"}` + "\n"

	res, err := Convert(context.Background(), strings.NewReader(input), render.Meta{VideoID: "V", Title: "T"}, Options{})
	require.NoError(t, err)
	require.Equal(t, 2, res.Decode.Skipped)
	require.Equal(t, []string{"x.1"}, res.Build.Orphans)
	require.NotContains(t, string(res.HTML), "lc=x.1")
	require.NotContains(t, string(res.HTML), "early")
}

func TestConvert_OversizedLineDoesNotAbort(t *testing.T) {
	input := `{"cid":"r1","author":"Al","votes":"1"}` + "\n" +
		`{"cid":"big","text":"` + strings.Repeat("z", 200) + `"}` + "\n" +
		`{"cid":"r2","author":"Bo","votes":"2"}` + "\n"

	res, err := Convert(context.Background(), strings.NewReader(input), render.Meta{VideoID: "V", Title: "T"}, Options{
		Decode: comments.DecodeOptions{MaxLineBytes: 128},
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Decode.Skipped)
	require.Len(t, res.Forest.Roots, 2)
	require.Equal(t, "r2", res.Forest.Roots[0].ID)
	require.Contains(t, string(res.HTML), "lc=r1")
	require.NotContains(t, string(res.HTML), "lc=big")
}

func TestConvert_RejectPolicies(t *testing.T) {
	input := `{"cid":"a"}` + "\n" + `{"cid":"a"}` + "\n"
	_, err := Convert(context.Background(), strings.NewReader(input), render.Meta{}, Options{
		Build: comments.BuildOptions{Duplicates: comments.DuplicateReject},
	})
	require.ErrorIs(t, err, comments.ErrDuplicateID)
}

func TestLoad_InfoJSONFillsMeta(t *testing.T) {
	doc := `{"id":"XYZ","title":"From yt-dlp","comments":[
		{"id":"c1","parent":"root","author":"A","text":"t","like_count":1},
		{"id":"c2","parent":"root","author":"B","text":"t","like_count":5},
		{"id":"c1.r","parent":"c1","author":"C","text":"t","like_count":0}
	]}`

	opts := Options{Format: FormatInfoJSON, Decode: comments.DecodeOptions{Ancestry: comments.Explicit}}
	res, err := Load(strings.NewReader(doc), render.Meta{}, opts)
	require.NoError(t, err)
	require.Equal(t, render.Meta{VideoID: "XYZ", Title: "From yt-dlp"}, res.Meta)
	require.Equal(t, "c2", res.Forest.Roots[0].ID)
	require.Len(t, res.Forest.Roots[1].Replies, 1)

	res, err = Load(strings.NewReader(doc), render.Meta{VideoID: "override", Title: "Mine"}, opts)
	require.NoError(t, err)
	require.Equal(t, "override", res.Meta.VideoID)
	require.Equal(t, "Mine", res.Meta.Title)
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "comments.json")
	out := filepath.Join(dir, "out", "comments.html")
	require.NoError(t, os.WriteFile(in, []byte(scenario), 0o644))

	res, err := ConvertFile(context.Background(), in, out, render.Meta{VideoID: "VID", Title: "Title"}, Options{})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, res.HTML, data)

	entries, err := os.ReadDir(filepath.Dir(out))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestConvertFile_MissingInput(t *testing.T) {
	_, err := ConvertFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"), "out.html", render.Meta{}, Options{})
	require.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	require.Equal(t, FormatInfoJSON, DetectFormat("/tmp/youtube_abc.info.json"))
	require.Equal(t, FormatInfoJSON, DetectFormat("X.INFO.JSON"))
	require.Equal(t, FormatJSONL, DetectFormat("My-Video.json"))
}

func TestOptionsFromConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("THREADR_ANCESTRY", "last")
	t.Setenv("THREADR_ORPHANS", "reject")
	t.Setenv("THREADR_BODY", "markdown")
	t.Setenv("THREADR_MAX_LINE", "2KB")

	cfg, err := config.LoadConfig(context.Background())
	require.NoError(t, err)

	opts, err := OptionsFromConfig(cfg)
	require.NoError(t, err)
	require.Equal(t, comments.LastSegment, opts.Decode.Ancestry)
	require.Equal(t, 2000, opts.Decode.MaxLineBytes)
	require.Equal(t, comments.OrphanReject, opts.Build.Orphans)
	require.Equal(t, comments.DuplicateLastWins, opts.Build.Duplicates)
	require.Equal(t, render.BodyMarkdown, opts.Render.Body)
}
