// Package rangeset canonicalizes unions of version ranges into sorted,
// disjoint, non-adjacent intervals.
package rangeset

import (
	"sort"

	"depsolve/internal/model"
)

type interval struct {
	lower model.Version
	upper model.Version
}

func lessNoOverlap(a, b interval) bool {
	return a.upper+1 < b.lower
}

func greaterNoOverlap(a, b interval) bool {
	return lessNoOverlap(b, a)
}

func overlaps(a, b interval) bool {
	return !(lessNoOverlap(a, b) || greaterNoOverlap(a, b))
}

func merge(a, b interval) interval {
	lower := a.lower
	if b.lower < lower {
		lower = b.lower
	}
	upper := a.upper
	if b.upper > upper {
		upper = b.upper
	}
	return interval{lower: lower, upper: upper}
}

// mergeInsert inserts iv into the already-sorted, disjoint, non-adjacent
// iset, returning the updated sorted set. Ported from the original's
// merge_insert: a prefix strictly below iv, a merged run overlapping iv,
// and a suffix strictly above.
func mergeInsert(iset []interval, iv interval) []interval {
	result := make([]interval, 0, len(iset)+1)
	merged := iv

	i := 0
	for i < len(iset) && lessNoOverlap(iset[i], iv) {
		result = append(result, iset[i])
		i++
	}
	for i < len(iset) && overlaps(iset[i], iv) {
		merged = merge(merged, iset[i])
		i++
	}
	result = append(result, merged)
	for ; i < len(iset); i++ {
		result = append(result, iset[i])
	}
	return result
}

// MergeAndSort canonicalizes a union of Ranges into sorted, disjoint,
// non-adjacent Ranges. If any input Range is RangeAll, the result is the
// single-element []model.Range{model.All()}, since RangeAll absorbs every
// other range in the union.
func MergeAndSort(ranges []model.Range) []model.Range {
	var iset []interval
	for _, r := range ranges {
		switch r.Kind {
		case model.RangeAll:
			return []model.Range{model.All()}
		case model.RangePoint:
			iset = mergeInsert(iset, interval{lower: r.Point, upper: r.Point})
		default:
			iset = mergeInsert(iset, interval{lower: r.Lower, upper: r.Upper})
		}
	}

	sort.Slice(iset, func(i, j int) bool { return iset[i].lower < iset[j].lower })

	out := make([]model.Range, 0, len(iset))
	for _, iv := range iset {
		out = append(out, model.IntervalUnchecked(iv.lower, iv.upper))
	}
	return out
}
