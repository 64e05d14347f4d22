package comments

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// DefaultMaxLineBytes bounds a single JSONL line.
const DefaultMaxLineBytes = 1 << 20

var errMissingID = errors.New("missing comment id")

// DecodeOptions controls how input records are read.
type DecodeOptions struct {
	Ancestry AncestryPolicy
	// MaxLineBytes bounds a single input line. Zero means DefaultMaxLineBytes.
	MaxLineBytes int
}

// LineError describes one skipped input line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// DecodeReport summarizes a decode pass.
type DecodeReport struct {
	Lines    int          `json:"lines"`
	Decoded  int          `json:"decoded"`
	Skipped  int          `json:"skipped"`
	Problems []*LineError `json:"-"`
}

// rawRecord accepts both the youtube-comment-downloader field names
// (cid, time) and the plain ones (id, posted_at).
type rawRecord struct {
	CID      string          `json:"cid"`
	ID       string          `json:"id"`
	Parent   string          `json:"parent"`
	Author   string          `json:"author"`
	Text     string          `json:"text"`
	Votes    json.RawMessage `json:"votes"`
	Time     string          `json:"time"`
	PostedAt string          `json:"posted_at"`
}

// DecodeJSONL reads one comment per line. Lines that are not valid JSON,
// lack an id, carry an unparsable vote count or exceed MaxLineBytes are
// logged, counted and skipped. Only a read failure aborts.
func DecodeJSONL(r io.Reader, opts DecodeOptions) ([]*Record, DecodeReport, error) {
	maxLine := opts.MaxLineBytes
	if maxLine <= 0 {
		maxLine = DefaultMaxLineBytes
	}

	br := bufio.NewReaderSize(r, min(maxLine, 64*1024))

	var rep DecodeReport
	records := make([]*Record, 0)

	for {
		line, tooLong, readErr := readLine(br, maxLine)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return records, rep, fmt.Errorf("read comments at line %d: %w", rep.Lines+1, readErr)
		}
		if readErr != nil && len(line) == 0 && !tooLong {
			break
		}
		rep.Lines++

		var rec *Record
		var err error
		switch {
		case tooLong:
			err = fmt.Errorf("%w: longer than %d bytes", bufio.ErrTooLong, maxLine)
		default:
			line = bytes.TrimSpace(line)
			if len(line) == 0 {
				break
			}
			rec, err = decodeLine(line, opts.Ancestry)
		}

		switch {
		case err != nil:
			rep.Skipped++
			rep.Problems = append(rep.Problems, &LineError{Line: rep.Lines, Err: err})
			slog.Warn("skipping invalid comment line", "line", rep.Lines, "error", err)
		case rec != nil:
			records = append(records, rec)
			rep.Decoded++
		}

		if readErr != nil {
			break
		}
	}

	return records, rep, nil
}

// readLine returns the next line, terminator included. A line longer than
// max is consumed up to its newline and reported through tooLong with no
// content.
func readLine(br *bufio.Reader, max int) ([]byte, bool, error) {
	var line []byte
	tooLong := false
	for {
		frag, err := br.ReadSlice('\n')
		if !tooLong {
			line = append(line, frag...)
			if len(bytes.TrimRight(line, "\r\n")) > max {
				tooLong, line = true, nil
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return line, tooLong, err
	}
}

func decodeLine(line []byte, ancestry AncestryPolicy) (*Record, error) {
	var raw rawRecord
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	id := firstNonEmpty(raw.CID, raw.ID)
	if !validID(id) {
		if id == "" {
			return nil, errMissingID
		}
		return nil, fmt.Errorf("comment id %q has an empty parent segment", id)
	}

	votesRaw, err := votesString(raw.Votes)
	if err != nil {
		return nil, err
	}
	votes, err := NormalizeVotes(votesRaw)
	if err != nil {
		return nil, err
	}

	return &Record{
		ID:       id,
		ParentID: ancestry.Resolve(id, raw.Parent),
		Author:   raw.Author,
		Text:     raw.Text,
		VotesRaw: votesRaw,
		Votes:    votes,
		PostedAt: firstNonEmpty(raw.Time, raw.PostedAt),
	}, nil
}

// votesString accepts the count as a JSON string or a bare number.
func votesString(v json.RawMessage) (string, error) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || string(v) == "null" {
		return "", nil
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", fmt.Errorf("decode votes: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err != nil {
		return "", &FormatError{Raw: string(v), Err: err}
	}
	return n.String(), nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
