// Package commentdl wraps the youtube-comment-downloader executable, which
// writes one JSON comment per line.
package commentdl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const defaultPath = "youtube-comment-downloader"

// SortOrder selects which comments the downloader fetches first.
type SortOrder int

const (
	SortPopular SortOrder = 0
	SortRecent  SortOrder = 1
)

// ExecError reports a failed downloader run with its exit code and stderr.
type ExecError struct {
	Cmd      string
	Args     []string
	ExitCode int
	Stderr   string
	Cause    error
}

func (e *ExecError) Error() string {
	cmdline := strings.TrimSpace(e.Cmd + " " + strings.Join(e.Args, " "))
	if e.ExitCode != 0 {
		return fmt.Sprintf("commentdl: command failed (exit %d): %s", e.ExitCode, cmdline)
	}
	return fmt.Sprintf("commentdl: command failed: %s", cmdline)
}

func (e *ExecError) Unwrap() error { return e.Cause }

// Options are passed through to the downloader as flags.
type Options struct {
	Sort SortOrder
	// Limit caps the number of comments; 0 downloads all.
	Limit int
	// Language sets the interface language used for relative times.
	Language string
}

// Client runs youtube-comment-downloader.
type Client struct {
	// Path to the downloader executable. Defaults to PATH lookup.
	Path string

	execFn func(ctx context.Context, name string, args ...string) (stderr []byte, err error)
}

func New() *Client {
	return &Client{Path: defaultPath}
}

// PathOrDefault returns the configured path or the PATH default if unset.
func (c *Client) PathOrDefault() string {
	if strings.TrimSpace(c.Path) == "" {
		return defaultPath
	}
	return c.Path
}

// Download writes the comments of videoID to outputPath as JSONL, creating
// the parent directory if needed.
func (c *Client) Download(ctx context.Context, videoID, outputPath string, opts Options) error {
	if strings.TrimSpace(videoID) == "" {
		return errors.New("commentdl: video id is required")
	}
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("commentdl: output path is required")
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("commentdl: create output dir: %w", err)
		}
	}

	args := []string{
		"--youtubeid", videoID,
		"--output", outputPath,
		"--sort", strconv.Itoa(int(opts.Sort)),
	}
	if opts.Limit > 0 {
		args = append(args, "--limit", strconv.Itoa(opts.Limit))
	}
	if opts.Language != "" {
		args = append(args, "--language", opts.Language)
	}

	name := c.PathOrDefault()
	stderr, err := c.exec(ctx, name, args...)
	if err != nil {
		exitCode := 0
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			exitCode = ee.ExitCode()
		}
		return &ExecError{
			Cmd:      name,
			Args:     args,
			ExitCode: exitCode,
			Stderr:   strings.TrimSpace(string(stderr)),
			Cause:    err,
		}
	}
	return nil
}

func (c *Client) exec(ctx context.Context, name string, args ...string) ([]byte, error) {
	if c.execFn != nil {
		return c.execFn(ctx, name, args...)
	}

	slog.Info("commentdl: Executing command", "cmd", name, "args", args)
	cmd := exec.CommandContext(ctx, name, args...)
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf
	err := cmd.Run()
	return errBuf.Bytes(), err
}
