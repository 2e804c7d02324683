package resolvecore

import (
	"fmt"
	"strings"

	"depsolve/internal/model"
	"depsolve/internal/satengine"
)

// planFromModel reads each closure package's chosen version out of a
// satisfying model. It collects every closure package that has no
// order-encoded variable before panicking once with a combined message,
// instead of failing on the first bad package — an
// engine returning an incomplete model here is a programmer error in the
// engine adapter, not a condition callers can recover from.
func planFromModel(m []bool, vars map[model.PackageID]*satengine.IntVar, ids []model.PackageID) model.Plan {
	plan := make(model.Plan, 0, len(ids))
	var missing []model.PackageID

	for _, pid := range ids {
		v, ok := vars[pid]
		if !ok {
			missing = append(missing, pid)
			continue
		}
		chosen := model.Version(0)
		for k := model.Version(1); k <= v.N(); k++ {
			if satengine.ModelValue(m, v.GeLit(k)) {
				chosen = k
			} else {
				break
			}
		}
		plan = append(plan, model.PlanEntry{Package: pid, Version: chosen})
	}

	if len(missing) > 0 {
		names := make([]string, len(missing))
		for i, pid := range missing {
			names[i] = fmt.Sprintf("%d", pid)
		}
		panic(fmt.Sprintf(
			"depsolve: impossible: failed to generate a plan from a model, the following packages have no order-encoded variable: %s",
			strings.Join(names, ", "),
		))
	}

	return plan
}
