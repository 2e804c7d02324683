// Package resolvecore wires the closure, encoder, engine, plan extraction,
// unsat-core decoder, and optimizer into the module's public resolution
// operations: SimpleSolve, OptimizeNewest, OptimizeMinimal, and their
// parallel co-optimal-enumeration counterparts.
package resolvecore

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"depsolve/internal/model"
)

// ResolutionError is returned when resolution cannot proceed at all — a
// malformed input (IllegalIndex) or an engine timeout. It wraps an
// errbuilder-go error so callers get the same structured code/message
// surface the rest of the module uses.
type ResolutionError struct {
	err error
}

func (e *ResolutionError) Error() string { return e.err.Error() }
func (e *ResolutionError) Unwrap() error { return e.err }

func illegalIndex(pkg model.PackageID) *ResolutionError {
	return &ResolutionError{err: errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("requirement references unknown package id %d", pkg))}
}

func timeOut() *ResolutionError {
	return &ResolutionError{err: errbuilder.New().
		WithCode(errbuilder.CodeDeadlineExceeded).
		WithMsg("engine did not return a definite result in time")}
}

func resolutionFailure(msg string) *ResolutionError {
	return &ResolutionError{err: errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(msg)}
}

// ResolutionResult is the outcome of a successful resolution call: either
// a satisfying Plan, or (for SimpleSolve only) a ConstraintSet describing
// why no plan exists.
type ResolutionResult struct {
	Sat          bool
	Plan         model.Plan
	UnsatCore    model.ConstraintSet
	HasUnsatCore bool
}
