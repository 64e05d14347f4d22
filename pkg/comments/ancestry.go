package comments

import (
	"fmt"
	"strings"
)

// Delimiter separates ancestry segments in a comment id ("root.reply").
const Delimiter = "."

// AncestryPolicy decides which record a reply attaches to.
type AncestryPolicy int

const (
	// FirstSegment attaches every reply to the root named by the first id
	// segment, so "A.1.1" lands directly under "A". The resulting forest is
	// at most one level deep.
	FirstSegment AncestryPolicy = iota
	// LastSegment attaches a reply to the id with its last segment removed,
	// so "A.1.1" lands under "A.1".
	LastSegment
	// Explicit ignores the id structure and keeps the parent declared by the
	// source (yt-dlp info.json, or a "parent" field in JSONL).
	Explicit
)

func (p AncestryPolicy) String() string {
	switch p {
	case FirstSegment:
		return "first"
	case LastSegment:
		return "last"
	case Explicit:
		return "explicit"
	default:
		return fmt.Sprintf("AncestryPolicy(%d)", int(p))
	}
}

// ParseAncestryPolicy accepts "first", "last" or "explicit".
func ParseAncestryPolicy(s string) (AncestryPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return FirstSegment, nil
	case "last":
		return LastSegment, nil
	case "explicit":
		return Explicit, nil
	default:
		return 0, fmt.Errorf("comments: unknown ancestry policy %q", s)
	}
}

// Resolve returns the parent id for a record, or "" for a root. declared is
// the parent the source reported, if any; "root" is treated as none.
func (p AncestryPolicy) Resolve(id, declared string) string {
	switch p {
	case Explicit:
		d := strings.TrimSpace(declared)
		if d == "root" || d == id {
			return ""
		}
		return d
	case LastSegment:
		i := strings.LastIndex(id, Delimiter)
		if i < 0 {
			return ""
		}
		return id[:i]
	default:
		parent, _, found := strings.Cut(id, Delimiter)
		if !found {
			return ""
		}
		return parent
	}
}

// validID reports whether id can take part in ancestry resolution. An id that
// starts with the delimiter has an empty parent key and could never attach.
func validID(id string) bool {
	return id != "" && !strings.HasPrefix(id, Delimiter)
}
