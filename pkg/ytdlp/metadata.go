package ytdlp

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultMaxComments caps how many comments WriteComments asks for.
const DefaultMaxComments = 2500

// WriteComments asks yt-dlp to write an info.json with the comments embedded
// into destDir and returns its path:
//
//	<destDir>/<extractor>_<id>.info.json
//
// videoID must match the id yt-dlp reports for url.
func (c *Client) WriteComments(ctx context.Context, url, videoID, destDir string, maxComments int, extraArgs ...string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("ytdlp: url is required")
	}
	if strings.TrimSpace(destDir) == "" {
		return "", fmt.Errorf("ytdlp: destDir is required")
	}
	if maxComments <= 0 {
		maxComments = DefaultMaxComments
	}

	tmpl := filepath.Join(destDir, "%(extractor)s_%(id)s.%(ext)s")

	args := []string{
		"--skip-download",
		"--no-playlist",
		"--write-info-json",
		"--write-comments",
		"--extractor-args", "youtube:max_comments=" + strconv.Itoa(maxComments) + ",all,all,all",
		"-o", tmpl,
	}
	args = append(args, extraArgs...)
	args = append(args, url)

	stdout, stderr, err := c.exec(ctx, args...)
	if err != nil {
		return "", wrapExecError(c.PathOrDefault(), args, stdout, stderr, err)
	}
	return filepath.Join(destDir, "youtube_"+videoID+".info.json"), nil
}
