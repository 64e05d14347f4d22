package comments

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
)

// InfoJSON is the subset of a yt-dlp .info.json file written with
// --write-comments.
type InfoJSON struct {
	VideoID string
	Title   string
	Records []*Record
}

type infoComment struct {
	ID        string `json:"id"`
	Parent    string `json:"parent"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	LikeCount *int64 `json:"like_count"`
	TimeText  string `json:"_time_text"`
}

// DecodeInfoJSON reads the comments array of a yt-dlp info.json document.
// Comments without an id are skipped and counted.
func DecodeInfoJSON(data []byte, opts DecodeOptions) (*InfoJSON, DecodeReport, error) {
	var doc struct {
		ID       string            `json:"id"`
		Title    string            `json:"title"`
		Comments []json.RawMessage `json:"comments"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, DecodeReport{}, fmt.Errorf("decode info.json: %w", err)
	}

	out := &InfoJSON{VideoID: doc.ID, Title: doc.Title, Records: make([]*Record, 0, len(doc.Comments))}
	var rep DecodeReport

	for i, raw := range doc.Comments {
		rep.Lines++

		var c infoComment
		err := json.Unmarshal(raw, &c)
		if err == nil && !validID(c.ID) {
			err = fmt.Errorf("comment id %q is not usable", c.ID)
		}
		if err != nil {
			le := &LineError{Line: i + 1, Err: err}
			rep.Skipped++
			rep.Problems = append(rep.Problems, le)
			slog.Warn("skipping invalid info.json comment", "index", i, "error", err)
			continue
		}

		var votes int64
		if c.LikeCount != nil {
			votes = *c.LikeCount
		}
		out.Records = append(out.Records, &Record{
			ID:       c.ID,
			ParentID: opts.Ancestry.Resolve(c.ID, c.Parent),
			Author:   c.Author,
			Text:     c.Text,
			VotesRaw: strconv.FormatInt(votes, 10),
			Votes:    votes,
			PostedAt: c.TimeText,
		})
		rep.Decoded++
	}

	return out, rep, nil
}
