package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStreamWriter_SplitsOnCRAndLF(t *testing.T) {
	var buf bytes.Buffer
	var lines []string
	w := &streamWriter{
		stream: "stdout",
		callback: func(stream string, line string) {
			lines = append(lines, stream+":"+line)
		},
		buffer: &buf,
	}

	_, err := w.Write([]byte("a\rb\nc\r\nd"))
	require.NoError(t, err)

	// No delimiter after trailing "d" yet.
	require.Equal(t, []string{"stdout:a", "stdout:b", "stdout:c"}, lines)

	_, err = w.Write([]byte("\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"stdout:a", "stdout:b", "stdout:c", "stdout:d"}, lines)

	require.Equal(t, "a\rb\nc\r\nd\n", buf.String())
}

func TestWrapExecError_TrimsOutput(t *testing.T) {
	err := wrapExecError("yt-dlp", []string{"--version"}, []byte(" out \n"), []byte(" err \n"), errors.New("boom"))
	var ee *ExecError
	require.ErrorAs(t, err, &ee)
	require.Equal(t, "yt-dlp", ee.Cmd)
	require.Equal(t, []string{"--version"}, ee.Args)
	require.Equal(t, 0, ee.ExitCode)
	require.Equal(t, "out", ee.Stdout)
	require.Equal(t, "err", ee.Stderr)
	require.Equal(t, "boom", ee.Cause.Error())
	require.Contains(t, ee.Error(), "yt-dlp")
}

func TestClient_Title(t *testing.T) {
	c := New()
	c.execFn = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		require.Contains(t, args, "--skip-download")
		return []byte(`{"id":"abc","title":"Cats & Dogs"}`), nil, nil
	}

	title, err := c.Title(context.Background(), "https://youtu.be/abc")
	require.NoError(t, err)
	require.Equal(t, "Cats & Dogs", title)

	c.execFn = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return []byte(`{"id":"abc","title":" "}`), nil, nil
	}
	_, err = c.Title(context.Background(), "https://youtu.be/abc")
	require.Error(t, err)
}

func TestClient_WriteComments(t *testing.T) {
	c := New()
	c.ExtraArgs = []string{"--quiet"}

	var gotArgs []string
	c.execFn = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		require.Equal(t, "yt-dlp", name)
		gotArgs = args
		return nil, nil, nil
	}

	path, err := c.WriteComments(context.Background(), "https://youtu.be/abc", "abc", "/tmp/out", 0)
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/tmp/out", "youtube_abc.info.json"), path)

	joined := strings.Join(gotArgs, " ")
	require.Equal(t, "--quiet", gotArgs[0])
	require.Contains(t, joined, "--write-comments")
	require.Contains(t, joined, "max_comments=2500,")
	require.Equal(t, "https://youtu.be/abc", gotArgs[len(gotArgs)-1])
}

func TestClient_WriteComments_Validates(t *testing.T) {
	c := New()
	_, err := c.WriteComments(context.Background(), "", "abc", "/tmp", 10)
	require.Error(t, err)
	_, err = c.WriteComments(context.Background(), "https://youtu.be/abc", "abc", "", 10)
	require.Error(t, err)
}

func TestClient_PathOrDefault(t *testing.T) {
	c := &Client{Path: "   "}
	require.Equal(t, "yt-dlp", c.PathOrDefault())

	c.Path = "/usr/local/bin/yt-dlp"
	require.Equal(t, "/usr/local/bin/yt-dlp", c.PathOrDefault())
}
