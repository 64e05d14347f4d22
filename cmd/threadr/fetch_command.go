package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"thirdcoast.systems/threadr/internal/pipeline"
	"thirdcoast.systems/threadr/internal/videoid"
	"thirdcoast.systems/threadr/pkg/commentdl"
	"thirdcoast.systems/threadr/pkg/render"
	"thirdcoast.systems/threadr/pkg/utils/filename"
	"thirdcoast.systems/threadr/pkg/ytdlp"
)

const (
	sourceDownloader = "downloader"
	sourceYtdlp      = "ytdlp"
)

// fetcher is the set of external tools the fetch command drives.
type fetcher interface {
	Title(ctx context.Context, watchURL string) (string, error)
	DownloadJSONL(ctx context.Context, videoID, path string) error
	DownloadInfoJSON(ctx context.Context, watchURL, videoID, dir string) (string, error)
}

type toolFetcher struct {
	yt    *ytdlp.Client
	dl    *commentdl.Client
	opts  commentdl.Options
	limit int
}

func (f *toolFetcher) Title(ctx context.Context, watchURL string) (string, error) {
	return f.yt.Title(ctx, watchURL)
}

func (f *toolFetcher) DownloadJSONL(ctx context.Context, videoID, path string) error {
	return f.dl.Download(ctx, videoID, path, f.opts)
}

func (f *toolFetcher) DownloadInfoJSON(ctx context.Context, watchURL, videoID, dir string) (string, error) {
	return f.yt.WriteComments(ctx, watchURL, videoID, dir, f.limit)
}

type fetchOptions struct {
	source string
	recent bool
}

func newFetchCommand(cc *commandContext) *cobra.Command {
	var opts fetchOptions

	cmd := &cobra.Command{
		Use:   "fetch <youtube-url>",
		Short: "Download a video's comments and render them to HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yt := ytdlp.New()
			yt.Path = cc.cfg.YtdlpPath
			yt.LogCallback = func(stream, line string) {
				slog.Debug("yt-dlp", "stream", stream, "line", line)
			}
			dl := commentdl.New()
			dl.Path = cc.cfg.DownloaderPath

			sort := commentdl.SortPopular
			if opts.recent {
				sort = commentdl.SortRecent
			}
			f := &toolFetcher{
				yt:    yt,
				dl:    dl,
				opts:  commentdl.Options{Sort: sort, Limit: cc.cfg.CommentLimit},
				limit: cc.cfg.CommentLimit,
			}

			popts, err := cc.pipelineOptions()
			if err != nil {
				return err
			}
			jsonPath, htmlPath, err := runFetch(cmd.Context(), f, args[0], cc.cfg.OutputDir, opts.source, popts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "JSON file: %s\nHTML file: %s\n", jsonPath, htmlPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.source, "source", sourceDownloader, "comment source: downloader (youtube-comment-downloader) or ytdlp")
	cmd.Flags().BoolVar(&opts.recent, "recent", false, "fetch newest comments first instead of most popular")
	cmd.Flags().String("out-dir", ".", "directory for the downloaded comments and the HTML page")
	cmd.Flags().Int("limit", 0, "maximum number of comments to download (0 = all)")
	cmd.Flags().String("ytdlp", "yt-dlp", "path to the yt-dlp executable")
	cmd.Flags().String("downloader", "youtube-comment-downloader", "path to the youtube-comment-downloader executable")
	bindFlags(cmd.Flags(), map[string]string{
		"out-dir":    "THREADR_OUTPUT_DIR",
		"limit":      "THREADR_COMMENT_LIMIT",
		"ytdlp":      "THREADR_YTDLP_PATH",
		"downloader": "THREADR_DOWNLOADER_PATH",
	})

	return cmd
}

// runFetch resolves the video, downloads its comments next to the output and
// renders them. It returns the comment file and HTML file paths.
func runFetch(ctx context.Context, f fetcher, rawURL, outDir, source string, opts pipeline.Options) (string, string, error) {
	videoID, err := videoid.ExtractYouTubeVideoID(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid YouTube URL %q: %w", rawURL, err)
	}
	watchURL := videoid.WatchURL(videoID)

	title, err := f.Title(ctx, watchURL)
	if err != nil {
		return "", "", fmt.Errorf("retrieve video title: %w", err)
	}

	base := filename.Sanitize(title, 0)
	if base == "" {
		base = videoid.VideoUUID(videoID).String()
	}
	htmlPath := filepath.Join(outDir, base+".html")

	var jsonPath string
	switch source {
	case sourceDownloader:
		jsonPath = filepath.Join(outDir, base+".json")
		opts.Format = pipeline.FormatJSONL
		if err := f.DownloadJSONL(ctx, videoID, jsonPath); err != nil {
			return "", "", fmt.Errorf("download comments: %w", err)
		}
	case sourceYtdlp:
		opts.Format = pipeline.FormatInfoJSON
		if jsonPath, err = f.DownloadInfoJSON(ctx, watchURL, videoID, outDir); err != nil {
			return "", "", fmt.Errorf("download comments: %w", err)
		}
	default:
		return "", "", fmt.Errorf("unknown comment source %q", source)
	}

	slog.Info("converting comments", "video_id", videoID, "title", title, "input", jsonPath)
	if _, err := pipeline.ConvertFile(ctx, jsonPath, htmlPath, render.Meta{VideoID: videoID, Title: title}, opts); err != nil {
		return "", "", err
	}

	return jsonPath, htmlPath, nil
}
