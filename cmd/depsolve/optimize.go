package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"depsolve/internal/model"
	"depsolve/internal/resolvecore"
)

func newOptimizeCommand() *cobra.Command {
	var fixturePath string
	var objective string
	var all bool
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Find the lexicographically best plan (or every co-optimal plan) for a fixture",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, reqs, err := loadFixture(fixturePath)
			if err != nil {
				return err
			}

			if all {
				return runOptimizeAll(cmd, repo, reqs, objective)
			}
			return runOptimizeOne(cmd, repo, reqs, objective)
		},
	}
	cmd.Flags().StringVar(&fixturePath, "fixture", "", "Repository + requirement-set fixture path (YAML)")
	cmd.Flags().StringVar(&objective, "objective", "newest", "Objective: newest or minimal")
	cmd.Flags().BoolVar(&all, "all", false, "Enumerate every co-optimal plan instead of just one")
	_ = cmd.MarkFlagRequired("fixture")
	return cmd
}

func runOptimizeOne(cmd *cobra.Command, repo *model.Repository, reqs model.RequirementSet, objective string) error {
	var result resolvecore.ResolutionResult
	var rerr *resolvecore.ResolutionError
	if objective == "minimal" {
		result, rerr = resolvecore.OptimizeMinimal(cmd.Context(), repo, reqs)
	} else {
		result, rerr = resolvecore.OptimizeNewest(cmd.Context(), repo, reqs)
	}
	if rerr != nil {
		return rerr
	}
	printResult(cmd, result)
	return nil
}

func runOptimizeAll(cmd *cobra.Command, repo *model.Repository, reqs model.RequirementSet, objective string) error {
	var plans []model.Plan
	var rerr *resolvecore.ResolutionError
	if objective == "minimal" {
		plans, rerr = resolvecore.ParallelOptimizeMinimal(cmd.Context(), repo, reqs)
	} else {
		plans, rerr = resolvecore.ParallelOptimizeNewest(cmd.Context(), repo, reqs)
	}
	if rerr != nil {
		return rerr
	}
	out := cmd.OutOrStdout()
	if len(plans) == 0 {
		fmt.Fprintln(out, "unsatisfiable")
		return nil
	}
	fmt.Fprintf(out, "%d co-optimal plan(s)\n", len(plans))
	for i, p := range plans {
		fmt.Fprintf(out, "plan %d:\n", i+1)
		printPlan(out, p)
	}
	return nil
}
