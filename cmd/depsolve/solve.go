package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"depsolve/internal/model"
	"depsolve/internal/resolvecore"
)

func newSolveCommand() *cobra.Command {
	var fixturePath string
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Check satisfiability of a repository + requirement-set fixture, printing a plan or unsat core",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, reqs, err := loadFixture(fixturePath)
			if err != nil {
				return err
			}
			result, rerr := resolvecore.SimpleSolve(cmd.Context(), repo, reqs)
			if rerr != nil {
				return rerr
			}
			printResult(cmd, result)
			return nil
		},
	}
	cmd.Flags().StringVar(&fixturePath, "fixture", "", "Repository + requirement-set fixture path (YAML)")
	_ = cmd.MarkFlagRequired("fixture")
	return cmd
}

func printResult(cmd *cobra.Command, result resolvecore.ResolutionResult) {
	out := cmd.OutOrStdout()
	if !result.Sat {
		fmt.Fprintln(out, "unsatisfiable")
		if result.HasUnsatCore {
			printConstraintSet(out, result.UnsatCore)
		}
		return
	}
	fmt.Fprintln(out, "satisfiable")
	printPlan(out, result.Plan)
}

func printPlan(out io.Writer, plan model.Plan) {
	for _, e := range plan {
		if e.Version == 0 {
			continue
		}
		fmt.Fprintf(out, "  package %d -> version %d\n", e.Package, e.Version)
	}
}

func printConstraintSet(out io.Writer, cs model.ConstraintSet) {
	for _, dep := range cs.ToplevelReqs.Dependencies {
		fmt.Fprintf(out, "  top-level depends on package %d %s\n", dep.Package, rangesString(dep.Versions))
	}
	for _, anti := range cs.ToplevelReqs.Conflicts {
		fmt.Fprintf(out, "  top-level conflicts with package %d %s\n", anti.Package, rangesString(anti.Versions))
	}
	for pid, byVersion := range cs.PackageReqs {
		for ver, rs := range byVersion {
			for _, dep := range rs.Dependencies {
				fmt.Fprintf(out, "  package %d version %d depends on package %d %s\n", pid, ver, dep.Package, rangesString(dep.Versions))
			}
			for _, anti := range rs.Conflicts {
				fmt.Fprintf(out, "  package %d version %d conflicts with package %d %s\n", pid, ver, anti.Package, rangesString(anti.Versions))
			}
		}
	}
}

func rangesString(ranges []model.Range) string {
	s := ""
	for i, r := range ranges {
		if i > 0 {
			s += " or "
		}
		s += r.String()
	}
	return s
}
