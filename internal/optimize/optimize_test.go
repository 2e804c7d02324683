package optimize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"depsolve/internal/model"
	"depsolve/internal/satengine"
)

func TestSolveNewestPicksNewestVersionWhenInstallForced(t *testing.T) {
	eng := satengine.New()
	v := eng.NewIntVar(3)
	eng.Assert(v.Ge(1))

	vars := map[model.PackageID]*satengine.IntVar{0: v}
	m, ok := Solve(eng, vars, []model.PackageID{0}, Newest)
	require.True(t, ok)
	require.True(t, satengine.ModelValue(m, v.GeLit(3)))
}

func TestSolveMinimalLeavesOptionalPackageUninstalled(t *testing.T) {
	eng := satengine.New()
	v := eng.NewIntVar(3) // no constraint forces installation

	vars := map[model.PackageID]*satengine.IntVar{0: v}
	m, ok := Solve(eng, vars, []model.PackageID{0}, Minimal)
	require.True(t, ok)
	require.False(t, satengine.ModelValue(m, v.GeLit(1)))
}

func TestSolveNewestAlsoLeavesOptionalPackageUninstalled(t *testing.T) {
	// distance_from_newest is 0 whether the package is uninstalled or
	// installed at its newest version, so the tie-break (installed count)
	// must still favor not installing it.
	eng := satengine.New()
	v := eng.NewIntVar(3)

	vars := map[model.PackageID]*satengine.IntVar{0: v}
	m, ok := Solve(eng, vars, []model.PackageID{0}, Newest)
	require.True(t, ok)
	require.False(t, satengine.ModelValue(m, v.GeLit(1)))
}

func TestSolveReturnsFalseWhenUnsatisfiable(t *testing.T) {
	eng := satengine.New()
	v := eng.NewIntVar(2)
	eng.Assert(v.Eq(1))
	eng.Assert(v.Eq(2))

	vars := map[model.PackageID]*satengine.IntVar{0: v}
	_, ok := Solve(eng, vars, []model.PackageID{0}, Newest)
	require.False(t, ok)
}

func TestEnumerateCoOptimalOnlyReturnsOptimalModels(t *testing.T) {
	eng := satengine.New()
	v := eng.NewIntVar(2)
	eng.Assert(v.Ge(1)) // forced installed; optimum is version 2

	vars := map[model.PackageID]*satengine.IntVar{0: v}
	models, ok := EnumerateCoOptimal(context.Background(), eng, vars, []model.PackageID{0}, Newest)
	require.True(t, ok)
	require.NotEmpty(t, models)
	for _, m := range models {
		require.True(t, satengine.ModelValue(m, v.GeLit(2)), "every co-optimal model must pick the newest version")
	}
}

func TestEnumerateCoOptimalTwoIndependentForcedPackages(t *testing.T) {
	// Two independent packages, each with a single version and each forced
	// installed: every returned model must install both.
	eng := satengine.New()
	v0 := eng.NewIntVar(1)
	v1 := eng.NewIntVar(1)
	eng.Assert(v0.Ge(1))
	eng.Assert(v1.Ge(1))

	vars := map[model.PackageID]*satengine.IntVar{0: v0, 1: v1}
	models, ok := EnumerateCoOptimal(context.Background(), eng, vars, []model.PackageID{0, 1}, Newest)
	require.True(t, ok)
	for _, m := range models {
		require.True(t, satengine.ModelValue(m, v0.GeLit(1)))
		require.True(t, satengine.ModelValue(m, v1.GeLit(1)))
	}
}
