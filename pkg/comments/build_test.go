package comments

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func records(policy AncestryPolicy, ids ...string) []*Record {
	out := make([]*Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, &Record{ID: id, ParentID: policy.Resolve(id, ""), Author: "author " + id})
	}
	return out
}

func ids(recs []*Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}

func TestBuild_TwoRoots(t *testing.T) {
	forest, rep, err := Build(records(FirstSegment, "A", "B", "A.1", "A.2", "B.1"), BuildOptions{})
	require.NoError(t, err)

	require.Equal(t, []string{"A", "B"}, ids(forest.Roots))
	require.Equal(t, []string{"A.1", "A.2"}, ids(forest.Roots[0].Replies))
	require.Equal(t, []string{"B.1"}, ids(forest.Roots[1].Replies))

	require.Equal(t, 5, rep.Records)
	require.Equal(t, 2, rep.Roots)
	require.Equal(t, 3, rep.Replies)
	require.Empty(t, rep.Orphans)
	require.Empty(t, rep.Duplicates)
	require.Equal(t, 1, rep.MaxDepth)
	require.Equal(t, 5, forest.Len())
}

func TestBuild_FirstSegmentFlattens(t *testing.T) {
	forest, rep, err := Build(records(FirstSegment, "A", "A.1", "A.1.1", "A.1.1.1"), BuildOptions{})
	require.NoError(t, err)

	require.Len(t, forest.Roots, 1)
	require.Equal(t, []string{"A.1", "A.1.1", "A.1.1.1"}, ids(forest.Roots[0].Replies))
	for _, reply := range forest.Roots[0].Replies {
		require.Empty(t, reply.Replies)
	}
	require.Equal(t, 1, rep.MaxDepth)
}

func TestBuild_LastSegmentNests(t *testing.T) {
	forest, rep, err := Build(records(LastSegment, "A", "A.1", "A.1.1", "A.2"), BuildOptions{})
	require.NoError(t, err)

	require.Len(t, forest.Roots, 1)
	a := forest.Roots[0]
	require.Equal(t, []string{"A.1", "A.2"}, ids(a.Replies))
	require.Equal(t, []string{"A.1.1"}, ids(a.Replies[0].Replies))
	require.Equal(t, 2, rep.MaxDepth)
}

func TestBuild_OrphanDropped(t *testing.T) {
	forest, rep, err := Build(records(FirstSegment, "X.1", "X", "Y"), BuildOptions{})
	require.NoError(t, err)

	require.Equal(t, []string{"X", "Y"}, ids(forest.Roots))
	require.Empty(t, forest.Roots[0].Replies)
	require.Equal(t, []string{"X.1"}, rep.Orphans)

	found := false
	forest.Walk(func(r *Record, _ int) bool {
		if r.ID == "X.1" {
			found = true
		}
		return true
	})
	require.False(t, found)
}

func TestBuild_OrphanReject(t *testing.T) {
	_, _, err := Build(records(FirstSegment, "X.1", "X"), BuildOptions{Orphans: OrphanReject})
	require.ErrorIs(t, err, ErrOrphan)
}

func TestBuild_DuplicateLastWins(t *testing.T) {
	recs := records(FirstSegment, "A", "A", "A.1")
	forest, rep, err := Build(recs, BuildOptions{})
	require.NoError(t, err)

	require.Equal(t, []string{"A"}, rep.Duplicates)
	require.Len(t, forest.Roots, 2)
	require.Empty(t, forest.Roots[0].Replies)
	require.Equal(t, []string{"A.1"}, ids(forest.Roots[1].Replies))
}

func TestBuild_DuplicateReject(t *testing.T) {
	_, _, err := Build(records(FirstSegment, "A", "B", "A"), BuildOptions{Duplicates: DuplicateReject})
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestBuild_SelfParentIsOrphan(t *testing.T) {
	recs := []*Record{
		{ID: "A"},
		{ID: "A", ParentID: "A"},
	}
	forest, rep, err := Build(recs, BuildOptions{})
	require.NoError(t, err)
	require.Len(t, forest.Roots, 1)
	require.Empty(t, forest.Roots[0].Replies)
	require.Equal(t, []string{"A"}, rep.Orphans)
}

func TestBuild_ResetsReplies(t *testing.T) {
	recs := records(FirstSegment, "A", "A.1")
	_, _, err := Build(recs, BuildOptions{})
	require.NoError(t, err)

	forest, _, err := Build(recs, BuildOptions{})
	require.NoError(t, err)
	require.Len(t, forest.Roots[0].Replies, 1)
}

func TestBuild_Empty(t *testing.T) {
	forest, rep, err := Build(nil, BuildOptions{})
	require.NoError(t, err)
	require.NotNil(t, forest.Roots)
	require.Empty(t, forest.Roots)
	require.Equal(t, 0, rep.Records)
}

func TestForest_WalkStops(t *testing.T) {
	forest, _, err := Build(records(LastSegment, "A", "A.1", "B"), BuildOptions{})
	require.NoError(t, err)

	var seen []string
	forest.Walk(func(r *Record, _ int) bool {
		seen = append(seen, r.ID)
		return r.ID != "A.1"
	})
	require.Equal(t, []string{"A", "A.1"}, seen)
}
