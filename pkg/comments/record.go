// Package comments reconstructs a threaded, vote-ranked comment forest from a
// flat export of comment records.
package comments

// Record is a single comment from an export batch.
//
// ParentID is resolved once at ingestion by an AncestryPolicy (or taken from
// the source when it carries an explicit parent). Replies is populated only by
// Build and keeps input order.
type Record struct {
	ID       string    `json:"id"`
	ParentID string    `json:"parent_id,omitempty"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	VotesRaw string    `json:"votes_raw"`
	Votes    int64     `json:"votes"`
	PostedAt string    `json:"posted_at"`
	Replies  []*Record `json:"replies"`
}

// IsRoot reports whether the record has no parent.
func (r *Record) IsRoot() bool {
	return r.ParentID == ""
}

// Forest is the set of root comments of one video.
type Forest struct {
	Roots []*Record `json:"roots"`
}

// Walk visits every record depth-first in forest order. Roots are at depth 0.
// Returning false from fn stops the walk.
func (f Forest) Walk(fn func(r *Record, depth int) bool) {
	type frame struct {
		rec   *Record
		depth int
	}

	stack := make([]frame, 0, len(f.Roots))
	for i := len(f.Roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{rec: f.Roots[i]})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(top.rec, top.depth) {
			return
		}
		for i := len(top.rec.Replies) - 1; i >= 0; i-- {
			stack = append(stack, frame{rec: top.rec.Replies[i], depth: top.depth + 1})
		}
	}
}

// Len returns the number of records reachable from the roots.
func (f Forest) Len() int {
	n := 0
	f.Walk(func(*Record, int) bool {
		n++
		return true
	})
	return n
}
