package resolvecore

import (
	"context"

	"github.com/rs/zerolog/log"

	"depsolve/internal/closure"
	"depsolve/internal/encode"
	"depsolve/internal/engine"
	"depsolve/internal/model"
	"depsolve/internal/optimize"
	"depsolve/internal/satengine"
	"depsolve/internal/symbolic"
	"depsolve/internal/unsatcore"
)

// buildProblem computes the closure, encodes every constraint it and the
// top-level requirements imply, and returns everything a caller needs to
// check/optimize/decode: the engine, the arena, the per-package IntVars,
// the tracked-assertion mirrors (by id), and the closure's package order.
func buildProblem(ctx context.Context, repo *model.Repository, requirements model.RequirementSet) (
	eng *satengine.Engine,
	arena *symbolic.Arena,
	enc *encode.Encoder,
	trackedMirrors []symbolic.Ref,
	closureIDs []model.PackageID,
	err *ResolutionError,
) {
	allReqs := append(append([]model.Requirement{}, requirements.Dependencies...), requirements.Conflicts...)
	c, cErr := closure.Find(repo, allReqs)
	if cErr != nil {
		if ie, ok := cErr.(*closure.IllegalIndexError); ok {
			return nil, nil, nil, nil, nil, illegalIndex(ie.Index)
		}
		return nil, nil, nil, nil, nil, resolutionFailure(cErr.Error())
	}
	closureIDs = c.Ordered()

	log.Ctx(ctx).Debug().Int("closure_size", len(closureIDs)).Msg("computed dependency closure")

	eng = satengine.New()
	arena = symbolic.NewArena()
	enc = encode.New(eng, arena)

	enc.AddAllConstraints(repo, closureIDs, requirements, func(f *engine.Formula, sym symbolic.Ref) {
		eng.AssertAndTrack(f)
		trackedMirrors = append(trackedMirrors, sym)
	})

	log.Ctx(ctx).Debug().Int("tracked_assertions", len(trackedMirrors)).Msg("encoded constraints")

	return eng, arena, enc, trackedMirrors, closureIDs, nil
}

// SimpleSolve checks whether requirements is satisfiable over repo,
// returning either a Plan or, when unsatisfiable, a decoded ConstraintSet
// naming a minimal unsat core.
func SimpleSolve(ctx context.Context, repo *model.Repository, requirements model.RequirementSet) (ResolutionResult, *ResolutionError) {
	eng, arena, enc, mirrors, closureIDs, err := buildProblem(ctx, repo, requirements)
	if err != nil {
		return ResolutionResult{}, err
	}

	res := eng.Check()
	if res.Satisfiable {
		plan := planFromModel(res.Model, enc.Vars(), closureIDs)
		log.Ctx(ctx).Debug().Int("resolved", len(plan)).Msg("resolution succeeded")
		return ResolutionResult{Sat: true, Plan: plan}, nil
	}

	core := eng.MinimalUnsatCore()
	if core == nil {
		// The engine disagreed with itself between Check and the core
		// search (both rebuild the problem fresh); treat as a timeout
		// rather than silently reporting a bogus empty core.
		return ResolutionResult{}, timeOut()
	}
	coreExprs := make([]symbolic.Ref, len(core))
	for i, id := range core {
		coreExprs[i] = mirrors[id]
	}
	cs := unsatcore.Decode(arena, repo, coreExprs)
	log.Ctx(ctx).Debug().Int("core_size", len(core)).Msg("resolution failed, decoded unsat core")
	return ResolutionResult{Sat: false, UnsatCore: cs, HasUnsatCore: true}, nil
}

// OptimizeNewest finds the lexicographically best plan preferring the
// newest versions first, then the fewest installed packages.
func OptimizeNewest(ctx context.Context, repo *model.Repository, requirements model.RequirementSet) (ResolutionResult, *ResolutionError) {
	return optimizeSingle(ctx, repo, requirements, optimize.Newest)
}

// OptimizeMinimal finds the lexicographically best plan preferring the
// fewest installed packages first, then the newest versions.
func OptimizeMinimal(ctx context.Context, repo *model.Repository, requirements model.RequirementSet) (ResolutionResult, *ResolutionError) {
	return optimizeSingle(ctx, repo, requirements, optimize.Minimal)
}

func optimizeSingle(ctx context.Context, repo *model.Repository, requirements model.RequirementSet, objective optimize.Objective) (ResolutionResult, *ResolutionError) {
	eng, _, enc, _, closureIDs, err := buildProblem(ctx, repo, requirements)
	if err != nil {
		return ResolutionResult{}, err
	}

	m, ok := optimize.Solve(eng, enc.Vars(), closureIDs, objective)
	if !ok {
		return ResolutionResult{Sat: false}, nil
	}
	plan := planFromModel(m, enc.Vars(), closureIDs)
	log.Ctx(ctx).Debug().Int("resolved", len(plan)).Msg("optimization succeeded")
	return ResolutionResult{Sat: true, Plan: plan}, nil
}

// ParallelOptimizeNewest enumerates every plan tied for the best Newest
// objective value, evaluating candidates concurrently.
func ParallelOptimizeNewest(ctx context.Context, repo *model.Repository, requirements model.RequirementSet) ([]model.Plan, *ResolutionError) {
	return optimizeAll(ctx, repo, requirements, optimize.Newest)
}

// ParallelOptimizeMinimal enumerates every plan tied for the best Minimal
// objective value, evaluating candidates concurrently.
func ParallelOptimizeMinimal(ctx context.Context, repo *model.Repository, requirements model.RequirementSet) ([]model.Plan, *ResolutionError) {
	return optimizeAll(ctx, repo, requirements, optimize.Minimal)
}

func optimizeAll(ctx context.Context, repo *model.Repository, requirements model.RequirementSet, objective optimize.Objective) ([]model.Plan, *ResolutionError) {
	eng, _, enc, _, closureIDs, err := buildProblem(ctx, repo, requirements)
	if err != nil {
		return nil, err
	}

	models, ok := optimize.EnumerateCoOptimal(ctx, eng, enc.Vars(), closureIDs, objective)
	if !ok {
		return nil, nil
	}
	plans := make([]model.Plan, len(models))
	for i, m := range models {
		plans[i] = planFromModel(m, enc.Vars(), closureIDs)
	}
	log.Ctx(ctx).Debug().Int("co_optimal_count", len(plans)).Msg("parallel optimization succeeded")
	return plans, nil
}
