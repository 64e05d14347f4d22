package comments

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID is returned by Build under DuplicateReject.
	ErrDuplicateID = errors.New("duplicate comment id")
	// ErrOrphan is returned by Build under OrphanReject.
	ErrOrphan = errors.New("orphaned reply")
)

// OrphanPolicy controls replies whose parent has not been seen earlier in
// the batch.
type OrphanPolicy int

const (
	// OrphanDrop leaves the reply out of the forest and reports it.
	OrphanDrop OrphanPolicy = iota
	// OrphanReject fails the whole batch.
	OrphanReject
)

// ParseOrphanPolicy accepts "drop" or "reject".
func ParseOrphanPolicy(s string) (OrphanPolicy, error) {
	switch s {
	case "", "drop":
		return OrphanDrop, nil
	case "reject":
		return OrphanReject, nil
	default:
		return 0, fmt.Errorf("comments: unknown orphan policy %q", s)
	}
}

// DuplicatePolicy controls records whose id was already registered.
type DuplicatePolicy int

const (
	// DuplicateLastWins points the id at the newer record and reports it.
	// Both records stay attached wherever they were placed.
	DuplicateLastWins DuplicatePolicy = iota
	// DuplicateReject fails the whole batch.
	DuplicateReject
)

// ParseDuplicatePolicy accepts "last-wins" or "reject".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "", "last-wins":
		return DuplicateLastWins, nil
	case "reject":
		return DuplicateReject, nil
	default:
		return 0, fmt.Errorf("comments: unknown duplicate policy %q", s)
	}
}

// BuildOptions selects the orphan and duplicate policies for Build.
type BuildOptions struct {
	Orphans    OrphanPolicy
	Duplicates DuplicatePolicy
}

// Report summarizes a Build pass.
type Report struct {
	Records    int      `json:"records"`
	Roots      int      `json:"roots"`
	Replies    int      `json:"replies"`
	Orphans    []string `json:"orphans,omitempty"`
	Duplicates []string `json:"duplicates,omitempty"`
	MaxDepth   int      `json:"max_depth"`
}

// Build assembles records into a forest in a single forward pass.
//
// A reply attaches to its parent only if the parent appeared earlier in
// records. Replies keep input order; roots keep input order until Rank.
func Build(records []*Record, opts BuildOptions) (Forest, Report, error) {
	rep := Report{Records: len(records)}
	byID := make(map[string]*Record, len(records))
	roots := make([]*Record, 0)

	for _, rec := range records {
		rec.Replies = []*Record{}

		if _, seen := byID[rec.ID]; seen {
			if opts.Duplicates == DuplicateReject {
				return Forest{}, rep, fmt.Errorf("%w: %q", ErrDuplicateID, rec.ID)
			}
			rep.Duplicates = append(rep.Duplicates, rec.ID)
		}
		byID[rec.ID] = rec

		if rec.IsRoot() {
			roots = append(roots, rec)
			continue
		}

		parent, ok := byID[rec.ParentID]
		if !ok || parent == rec {
			if opts.Orphans == OrphanReject {
				return Forest{}, rep, fmt.Errorf("%w: %q has no parent %q", ErrOrphan, rec.ID, rec.ParentID)
			}
			rep.Orphans = append(rep.Orphans, rec.ID)
			continue
		}
		parent.Replies = append(parent.Replies, rec)
		rep.Replies++
	}

	forest := Forest{Roots: roots}
	rep.Roots = len(roots)
	forest.Walk(func(_ *Record, depth int) bool {
		if depth > rep.MaxDepth {
			rep.MaxDepth = depth
		}
		return true
	})

	return forest, rep, nil
}
