package repobuild

import (
	"testing"

	"github.com/stretchr/testify/require"

	"depsolve/internal/model"
)

func TestToRangesContiguousRunBecomesInterval(t *testing.T) {
	versions := []string{"a", "b", "c", "d"}
	s := Predicate[string](func(v string) bool { return v == "b" || v == "c" })

	got := ToRanges[string](s, versions)
	want, ok := model.Interval(2, 3)
	require.True(t, ok)
	require.Equal(t, []model.Range{want}, got)
}

func TestToRangesDisjointRunsBecomeSeparatePoints(t *testing.T) {
	versions := []string{"a", "b", "c", "d"}
	s := Predicate[string](func(v string) bool { return v == "a" || v == "c" })

	got := ToRanges[string](s, versions)
	require.Equal(t, []model.Range{model.Pt(1), model.Pt(3)}, got)
}

func TestToRangesEmptyWhenNothingMatches(t *testing.T) {
	versions := []string{"a", "b"}
	s := Predicate[string](func(v string) bool { return false })

	require.Empty(t, ToRanges[string](s, versions))
}

func TestToRangesTrailingRunExtendsToEnd(t *testing.T) {
	versions := []string{"a", "b", "c"}
	s := Predicate[string](func(v string) bool { return v == "b" || v == "c" })

	got := ToRanges[string](s, versions)
	want, ok := model.Interval(2, 3)
	require.True(t, ok)
	require.Equal(t, []model.Range{want}, got)
}

func TestUnionContainsAnyMember(t *testing.T) {
	u := Union[string]{Exact[string]{Version: "a"}, Exact[string]{Version: "c"}}
	require.True(t, u.Contains("a"))
	require.True(t, u.Contains("c"))
	require.False(t, u.Contains("b"))
}

func TestIntersectionRequiresAllMembers(t *testing.T) {
	i := Intersection[string]{
		Predicate[string](func(v string) bool { return v != "a" }),
		Predicate[string](func(v string) bool { return v != "c" }),
	}
	require.True(t, i.Contains("b"))
	require.False(t, i.Contains("a"))
	require.False(t, i.Contains("c"))
}

func TestExactMatchesOnlyItsOwnVersion(t *testing.T) {
	e := Exact[string]{Version: "1.2.3"}
	require.True(t, e.Contains("1.2.3"))
	require.False(t, e.Contains("1.2.4"))
}
