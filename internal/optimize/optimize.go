// Package optimize implements lexicographic plan optimization and
// co-optimal model enumeration on top of internal/satengine's order
// encoding. Two metrics drive every objective:
//
//   - installed_packages(p)  = Ge(1):      1 if p is installed at all, else 0
//   - distance_from_newest(p) = Σ_{k=2}^{N} [Ge(1) ∧ ¬Ge(k)]:
//     for the chosen version v (0 if uninstalled), this sum evaluates to
//     max_ver(p)-v when v>=1 and to 0 when v==0, matching spec's
//     ite(V==0, 0, max_ver(p)-V) exactly: each term k contributes 1 when
//     the package is installed (Ge(1)) and the chosen version is below k
//     (¬Ge(k)), i.e. for every k in (v, N].
//
// Neither metric needs a general integer-arithmetic engine: both reduce to
// small weighted sums of (possibly Tseitin-compiled) boolean literals fed
// directly to the solver's native weighted Minimize, the same
// cost-literal/cost-weight pattern apt_solver.go already uses for
// newest-version preference.
package optimize

import (
	"context"
	"sort"
	"sync"

	"depsolve/internal/engine"
	"depsolve/internal/model"
	"depsolve/internal/satengine"
)

// Objective selects which metric is minimized first.
type Objective int

const (
	// Newest minimizes distance-from-newest first, then installed-package count.
	Newest Objective = iota
	// Minimal minimizes installed-package count first, then distance-from-newest.
	Minimal
)

// metrics holds the weighted-literal sums for both metrics over a closure.
type metrics struct {
	distLits, instLits       []engine.Lit
	distWeights, instWeights []int
}

func buildMetrics(eng *satengine.Engine, vars map[model.PackageID]*satengine.IntVar, ids []model.PackageID) metrics {
	var m metrics
	for _, pid := range ids {
		v := vars[pid]
		n := v.N()
		m.instLits = append(m.instLits, v.GeLit(1))
		m.instWeights = append(m.instWeights, 1)
		for k := model.Version(2); k <= n; k++ {
			term := eng.Compile(engine.And(engine.FromLit(v.GeLit(1)), engine.Not(engine.FromLit(v.GeLit(k)))))
			m.distLits = append(m.distLits, term)
			m.distWeights = append(m.distWeights, 1)
		}
	}
	return m
}

func stagesFor(objective Objective, m metrics) (stage1Lits, stage2Lits []engine.Lit, stage1Weights, stage2Weights []int) {
	if objective == Newest {
		return m.distLits, m.instLits, m.distWeights, m.instWeights
	}
	return m.instLits, m.distLits, m.instWeights, m.distWeights
}

// Solve runs the two-stage lexicographic minimization and returns the
// resulting model (false if the problem has no solution at all).
func Solve(eng *satengine.Engine, vars map[model.PackageID]*satengine.IntVar, ids []model.PackageID, objective Objective) ([]bool, bool) {
	m := buildMetrics(eng, vars, ids)
	stage1Lits, stage2Lits, stage1Weights, stage2Weights := stagesFor(objective, m)

	cost1, _, ok := eng.Minimize(stage1Lits, stage1Weights)
	if !ok {
		return nil, false
	}
	eng.AssertAtMostK(stage1Lits, stage1Weights, cost1)

	cost2, model, ok := eng.Minimize(stage2Lits, stage2Weights)
	if !ok {
		// Impossible if the encoding is sound: stage 1 already proved
		// satisfiability under the pinned bound.
		panic("depsolve: impossible: second optimization stage found no solution after the first stage's bound was pinned")
	}
	// Pin stage 2's optimum too, so later checks against eng (co-optimal
	// enumeration) only see models tied on the whole metric tuple.
	eng.AssertAtMostK(stage2Lits, stage2Weights, cost2)
	return model, true
}

// maxCoOptimalModels bounds how many tied-for-best models
// EnumerateCoOptimal will return, guarding against a combinatorial blowup
// on a closure with many structurally-equivalent alternatives. Models found
// after the cap is reached are dropped without notice; EnumerateCoOptimal's
// bool result reports satisfiability only, not whether the cap was hit.
const maxCoOptimalModels = 4096

// EnumerateCoOptimal finds every plan tied for objective's optimal metric
// tuple. It first pins both stages' optimal costs (Solve), precomputes
// every (package, version) selector literal single-threaded (Tseitin
// compilation mutates shared state and cannot run concurrently), and then
// explores the closure's packages in order by recursively fixing one
// package's version at a time (as an assumption literal; no blocking
// clauses are added): at each package, every candidate version (0..N) is tried as
// an independent, concurrently-dispatched satisfiability check against
// the assumptions fixed so far; each satisfiable branch recurses into the
// next package. Every complete, fully-fixed branch is a model tied for
// the optimal tuple, since both stage bounds remain pinned as hard
// constraints throughout the search.
func EnumerateCoOptimal(ctx context.Context, eng *satengine.Engine, vars map[model.PackageID]*satengine.IntVar, ids []model.PackageID, objective Objective) ([][]bool, bool) {
	first, ok := Solve(eng, vars, ids, objective)
	if !ok {
		return nil, false
	}

	ordered := append([]model.PackageID{}, ids...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	eqLit := make(map[model.PackageID]map[model.Version]engine.Lit, len(ordered))
	for _, pid := range ordered {
		v := vars[pid]
		byVer := make(map[model.Version]engine.Lit, v.N()+1)
		for k := model.Version(0); k <= v.N(); k++ {
			byVer[k] = eng.Compile(v.Eq(k))
		}
		eqLit[pid] = byVer
	}

	search := &coOptimalSearch{
		ctx:   ctx,
		eng:   eng,
		vars:  vars,
		order: ordered,
		eqLit: eqLit,
	}
	search.explore(nil)
	if len(search.models) == 0 {
		// Nothing was explored (an empty closure, or ctx was already
		// done); Solve's optimal model is still a valid answer.
		search.models = [][]bool{first}
	}
	return search.models, true
}

type coOptimalSearch struct {
	ctx   context.Context
	eng   *satengine.Engine
	vars  map[model.PackageID]*satengine.IntVar
	order []model.PackageID
	eqLit map[model.PackageID]map[model.Version]engine.Lit

	mu     sync.Mutex
	models [][]bool
}

// explore fixes the next unfixed package in s.order (len(fixed) of them
// already chosen) across every candidate version concurrently, recursing
// into whichever branches are satisfiable.
func (s *coOptimalSearch) explore(fixed []engine.Lit) {
	depth := len(fixed)
	if depth == len(s.order) {
		return // every package already fixed; the model was recorded by the parent call that confirmed this branch
	}
	if s.ctx.Err() != nil {
		return
	}

	pid := s.order[depth]
	n := s.vars[pid].N()

	var wg sync.WaitGroup
	for k := model.Version(0); k <= n; k++ {
		k := k
		lit := s.eqLit[pid][k]
		wg.Add(1)
		go func() {
			defer wg.Done()
			branch := append(append([]engine.Lit{}, fixed...), lit)
			ok, m := s.eng.CheckAssuming(branch)
			if !ok {
				return
			}
			if depth+1 == len(s.order) {
				s.recordModel(m)
				return
			}
			s.explore(branch)
		}()
	}
	wg.Wait()
}

func (s *coOptimalSearch) recordModel(m []bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.models) >= maxCoOptimalModels {
		return
	}
	s.models = append(s.models, m)
}
