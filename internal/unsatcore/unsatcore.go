// Package unsatcore decodes a minimal unsat core — a set of symbolic
// mirror expressions the solver reported as jointly unsatisfiable — back
// into domain vocabulary: a model.ConstraintSet naming exactly the
// top-level requirements and per-(package,version) requirements that
// contributed.
package unsatcore

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"depsolve/internal/model"
	"depsolve/internal/symbolic"
)

// Decode classifies every expression in core (mirrors of the solver's
// reported unsat-core assertions) and accumulates their contributions
// into a ConstraintSet.
func Decode(arena *symbolic.Arena, repo *model.Repository, core []symbolic.Ref) model.ConstraintSet {
	cs := model.NewConstraintSet()
	for _, ref := range core {
		classify(arena, repo, ref, &cs)
	}
	return cs
}

func classify(arena *symbolic.Arena, repo *model.Repository, ref symbolic.Ref, cs *model.ConstraintSet) {
	n := arena.Get(ref)
	switch n.Kind {
	case symbolic.KAtom:
		classifyGroundAtom(arena, repo, n.Atom, cs)
	case symbolic.KNot:
		pid, ranges := decodeVersionRange(arena, n.L)
		cs.AddConflict(pid, 0, model.NewRequirement(pid, ranges))
	case symbolic.KImplies:
		classifyImplies(arena, repo, n, cs)
	default:
		pid, ranges := decodeVersionRange(arena, ref)
		cs.AddDependency(pid, 0, model.NewRequirement(pid, ranges))
	}
}

// classifyGroundAtom handles a bare atom appearing in the core: VerEq is a
// genuine point dependency/conflict (version 0 means "must not be
// installed", decoded as a conflict against every installed version,
// model.RangeAll); VerLE/VerGE appearing bare
// can only be a package's ground bound (0 <= V <= N) and carries no
// decodable requirement information on its own — the original asserts
// these never show up with any value but the package's own bound, since
// any other VerLE/VerGE atom only ever appears inside an And pair handled
// by decodeVersionRange.
func classifyGroundAtom(arena *symbolic.Arena, repo *model.Repository, atom symbolic.AtomicExpr, cs *model.ConstraintSet) {
	pid := model.PackageID(atom.Package)
	switch atom.Kind {
	case symbolic.VerEq:
		if atom.Version == 0 {
			cs.AddConflict(pid, 0, model.NewRequirement(pid, []model.Range{model.All()}))
		} else {
			cs.AddDependency(pid, 0, model.NewRequirement(pid, []model.Range{model.Pt(model.Version(atom.Version))}))
		}
	case symbolic.VerLE:
		pkg, ok := repo.GetPackage(pid)
		if !ok || model.Version(atom.Version) != pkg.NewestVersionNumber() {
			panic(fmt.Sprintf("depsolve: unsat core assertion %q does not match the package's own upper bound", arena.String(arena.AtomExpr(atom))))
		}
	case symbolic.VerGE:
		if atom.Version != 0 {
			panic(fmt.Sprintf("depsolve: unsat core assertion %q does not match the package's own lower bound", arena.String(arena.AtomExpr(atom))))
		}
	}
}

// classifyImplies handles "V(pid) == version -> rhs": a per-version
// requirement, contributed either as a dependency (rhs is a plain version
// range) or, when rhs negates "installed at all" or is itself a Not, as a
// conflict.
func classifyImplies(arena *symbolic.Arena, repo *model.Repository, n symbolic.Expr, cs *model.ConstraintSet) {
	lhs := arena.Get(n.L)
	if lhs.Kind != symbolic.KAtom || lhs.Atom.Kind != symbolic.VerEq {
		panic(fmt.Sprintf("depsolve: unsat core assertion with antecedent %q is not a per-version selector", arena.String(n.L)))
	}

	pid := model.PackageID(lhs.Atom.Package)
	version := model.Version(lhs.Atom.Version)

	rhs := arena.Get(n.R)
	var req model.Requirement
	reverse := false

	switch {
	case rhs.Kind == symbolic.KAtom && rhs.Atom.Kind == symbolic.VerEq && rhs.Atom.Version == 0:
		req = model.NewRequirement(model.PackageID(rhs.Atom.Package), []model.Range{model.All()})
		reverse = true
	case rhs.Kind == symbolic.KNot:
		rpid, ranges := decodeVersionRange(arena, rhs.L)
		req = model.NewRequirement(rpid, ranges)
		reverse = true
	default:
		rpid, ranges := decodeVersionRange(arena, n.R)
		req = model.NewRequirement(rpid, ranges)
	}

	if reverse {
		cs.AddConflict(pid, version, req)
	} else {
		cs.AddDependency(pid, version, req)
	}
}

// decodeVersionRange reconstructs a (package, ranges) pair from a version-
// range mirror expression: a lone VerEq atom, an And of a VerGE/VerLE pair
// (an interval), an Or of two sub-ranges for the same package, or
// ¬(VerEq pid 0) meaning "installed at all".
func decodeVersionRange(arena *symbolic.Arena, ref symbolic.Ref) (model.PackageID, []model.Range) {
	n := arena.Get(ref)
	ctx := context.Background()

	switch n.Kind {
	case symbolic.KAtom:
		if n.Atom.Kind != symbolic.VerEq {
			panic(fmt.Sprintf("depsolve: unknown expression %q for a version range", arena.String(ref)))
		}
		return model.PackageID(n.Atom.Package), []model.Range{model.Pt(model.Version(n.Atom.Version))}

	case symbolic.KAnd:
		l := arena.Get(n.L)
		r := arena.Get(n.R)
		var pid model.PackageID
		var lower, upper model.Version
		switch {
		case l.Kind == symbolic.KAtom && l.Atom.Kind == symbolic.VerGE:
			pid = model.PackageID(l.Atom.Package)
			lower = model.Version(l.Atom.Version)
		case l.Kind == symbolic.KAtom && l.Atom.Kind == symbolic.VerLE:
			pid = model.PackageID(l.Atom.Package)
			upper = model.Version(l.Atom.Version)
		default:
			panic(fmt.Sprintf("depsolve: unknown lhs %q of expression %q", arena.String(n.L), arena.String(ref)))
		}
		switch {
		case r.Kind == symbolic.KAtom && r.Atom.Kind == symbolic.VerGE:
			assert.True(ctx, uint32(pid) == r.Atom.Package, "mismatched package id across an And range pair")
			lower = model.Version(r.Atom.Version)
		case r.Kind == symbolic.KAtom && r.Atom.Kind == symbolic.VerLE:
			assert.True(ctx, uint32(pid) == r.Atom.Package, "mismatched package id across an And range pair")
			upper = model.Version(r.Atom.Version)
		default:
			panic(fmt.Sprintf("depsolve: unknown rhs %q of expression %q", arena.String(n.R), arena.String(ref)))
		}
		rg, ok := model.Interval(lower, upper)
		if !ok {
			panic(fmt.Sprintf("depsolve: lower bound is bigger than upper bound in expression %q", arena.String(ref)))
		}
		return pid, []model.Range{rg}

	case symbolic.KOr:
		pid1, rs1 := decodeVersionRange(arena, n.L)
		pid2, rs2 := decodeVersionRange(arena, n.R)
		assert.True(ctx, pid1 == pid2, "mismatched package id across an Or range pair")
		return pid1, append(rs1, rs2...)

	case symbolic.KNot:
		inner := arena.Get(n.L)
		if inner.Kind == symbolic.KAtom && inner.Atom.Kind == symbolic.VerEq && inner.Atom.Version == 0 {
			return model.PackageID(inner.Atom.Package), []model.Range{model.All()}
		}
		panic(fmt.Sprintf("depsolve: unknown expression %q for a version range", arena.String(ref)))

	default:
		panic(fmt.Sprintf("depsolve: unknown expression %q for a version range", arena.String(ref)))
	}
}
