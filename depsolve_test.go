package depsolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSolvePublicAPIEndToEnd(t *testing.T) {
	repo := &Repository{Packages: []Package{
		{ID: 0, Versions: make([]PackageVer, 2)},
	}}
	reqs := RequirementSet{Dependencies: []Requirement{NewRequirement(0, []Range{Pt(2)})}}

	res, err := Solve(context.Background(), repo, reqs)
	require.Nil(t, err)
	require.True(t, res.Sat)
	v, ok := res.Plan.VersionOf(0)
	require.True(t, ok)
	require.Equal(t, Version(2), v)
}

func TestSolveUnsatisfiableReportsCore(t *testing.T) {
	repo := &Repository{Packages: []Package{
		{ID: 0, Versions: make([]PackageVer, 2)},
	}}
	reqs := RequirementSet{Dependencies: []Requirement{
		NewRequirement(0, []Range{Pt(1)}),
		NewRequirement(0, []Range{Pt(2)}),
	}}

	res, err := Solve(context.Background(), repo, reqs)
	require.Nil(t, err)
	require.False(t, res.Sat)
	require.True(t, res.HasUnsatCore)
}

func TestOptimizeNewestPicksHighestVersion(t *testing.T) {
	repo := &Repository{Packages: []Package{
		{ID: 0, Versions: make([]PackageVer, 3)},
	}}
	reqs := RequirementSet{Dependencies: []Requirement{NewRequirement(0, []Range{All()})}}

	res, err := OptimizeNewest(context.Background(), repo, reqs)
	require.Nil(t, err)
	require.True(t, res.Sat)
	v, ok := res.Plan.VersionOf(0)
	require.True(t, ok)
	require.Equal(t, Version(3), v)
}
