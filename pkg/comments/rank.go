package comments

import (
	"cmp"
	"slices"
)

// Rank orders roots by votes, highest first. Equal counts keep their input
// order. Reply lists are not touched.
func Rank(roots []*Record) {
	slices.SortStableFunc(roots, func(a, b *Record) int {
		return cmp.Compare(b.Votes, a.Votes)
	})
}
