// Package depsolve resolves a set of top-level package requirements
// against a versioned repository into an installation plan, using a
// dual-encoded SAT formulation solved by gophersat: every requirement is
// compiled to a solver formula and, in lock-step, a symbolic mirror
// expression, so an unsatisfiable request can be explained back in terms
// of the requirements that caused it instead of raw solver internals.
//
// This package re-exports the module's public surface; the actual
// resolution machinery lives under internal/.
package depsolve

import (
	"context"

	"depsolve/internal/model"
	"depsolve/internal/resolvecore"
)

// Version is a 1-indexed ordinal into a package's known version list; 0
// means "not installed".
type Version = model.Version

// PackageID identifies a package by its position in a Repository.
type PackageID = model.PackageID

// Plan maps each reachable package to its chosen version.
type Plan = model.Plan

// PlanEntry is one (package, version) pair of a Plan.
type PlanEntry = model.PlanEntry

// ConstraintSet is a decoded, domain-vocabulary unsatisfiable core: the
// top-level requirements and per-(package,version) requirements that
// jointly made a resolution request unsatisfiable.
type ConstraintSet = model.ConstraintSet

// ResolutionResult is the outcome of a resolution call: either a
// satisfying Plan, or (for Solve only) a ConstraintSet explaining why no
// plan exists.
type ResolutionResult = resolvecore.ResolutionResult

// ResolutionError is returned when resolution cannot proceed at all — a
// malformed requirement or an engine timeout, as opposed to a legitimate
// unsatisfiable request (which is reported as an unsat ResolutionResult,
// not an error).
type ResolutionError = resolvecore.ResolutionError

// Solve checks whether requirements is satisfiable over repo, returning
// either a satisfying Plan or a decoded ConstraintSet naming a minimal
// unsat core.
func Solve(ctx context.Context, repo *Repository, requirements RequirementSet) (ResolutionResult, *ResolutionError) {
	return resolvecore.SimpleSolve(ctx, repo, requirements)
}

// OptimizeNewest finds the lexicographically best plan preferring the
// newest versions first, then the fewest installed packages.
func OptimizeNewest(ctx context.Context, repo *Repository, requirements RequirementSet) (ResolutionResult, *ResolutionError) {
	return resolvecore.OptimizeNewest(ctx, repo, requirements)
}

// OptimizeMinimal finds the lexicographically best plan preferring the
// fewest installed packages first, then the newest versions.
func OptimizeMinimal(ctx context.Context, repo *Repository, requirements RequirementSet) (ResolutionResult, *ResolutionError) {
	return resolvecore.OptimizeMinimal(ctx, repo, requirements)
}

// ParallelOptimizeNewest enumerates every plan tied for the best
// OptimizeNewest objective value.
func ParallelOptimizeNewest(ctx context.Context, repo *Repository, requirements RequirementSet) ([]Plan, *ResolutionError) {
	return resolvecore.ParallelOptimizeNewest(ctx, repo, requirements)
}

// ParallelOptimizeMinimal enumerates every plan tied for the best
// OptimizeMinimal objective value.
func ParallelOptimizeMinimal(ctx context.Context, repo *Repository, requirements RequirementSet) ([]Plan, *ResolutionError) {
	return resolvecore.ParallelOptimizeMinimal(ctx, repo, requirements)
}
