package main

import (
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"depsolve/internal/model"
	"depsolve/internal/repobuild"
)

// fixtureRequirement names a package by its on-disk name and the version
// tags acceptable for it. An empty Versions list with All set to true
// means "the package must be installed, at any version" (model.RangeAll).
type fixtureRequirement struct {
	Package  string   `yaml:"package"`
	Versions []string `yaml:"versions,omitempty"`
	All      bool     `yaml:"all,omitempty"`
}

type fixtureVersion struct {
	Tag          string               `yaml:"tag"`
	Dependencies []fixtureRequirement `yaml:"dependencies,omitempty"`
	Conflicts    []fixtureRequirement `yaml:"conflicts,omitempty"`
}

type fixturePackage struct {
	Name     string           `yaml:"name"`
	Versions []fixtureVersion `yaml:"versions"`
}

// fixture is the on-disk repository + top-level requirement-set snapshot
// the solve/optimize subcommands load, the CLI-level equivalent of the
// teacher's repo_snapshot_file.go YAML format.
type fixture struct {
	Packages     []fixturePackage     `yaml:"packages"`
	Dependencies []fixtureRequirement `yaml:"dependencies,omitempty"`
	Conflicts    []fixtureRequirement `yaml:"conflicts,omitempty"`
}

func loadFixture(path string) (*model.Repository, model.RequirementSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.RequirementSet{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("failed to read fixture %q", path)).
			WithCause(err)
	}

	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, model.RequirementSet{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("failed to parse fixture %q", path)).
			WithCause(err)
	}

	builder := repobuild.NewRepositoryBuilder[string, string]()
	for _, p := range f.Packages {
		pb := repobuild.NewEPackageBuilder[string, string](p.Name)
		for _, v := range p.Versions {
			ev := repobuild.EVersion[string, string]{Version: v.Tag}
			for _, dep := range v.Dependencies {
				ev.AddDependency(toERequirement(dep))
			}
			for _, anti := range v.Conflicts {
				ev.AddConflict(toERequirement(anti))
			}
			pb.AddVersion(ev)
		}
		builder.AddPackage(pb)
	}

	repo, idx, err := builder.Build(stringLess, stringEqual)
	if err != nil {
		return nil, model.RequirementSet{}, repobuild.WrapBuildError(err)
	}

	var top model.RequirementSet
	for _, dep := range f.Dependencies {
		req, rerr := idx.ResolveRequirement(toERequirement(dep))
		if rerr != nil {
			return nil, model.RequirementSet{}, repobuild.WrapBuildError(rerr)
		}
		top.AddDependency(req)
	}
	for _, anti := range f.Conflicts {
		req, rerr := idx.ResolveRequirement(toERequirement(anti))
		if rerr != nil {
			return nil, model.RequirementSet{}, repobuild.WrapBuildError(rerr)
		}
		top.AddConflict(req)
	}

	return repo, top, nil
}

func toERequirement(r fixtureRequirement) repobuild.ERequirement[string, string] {
	if r.All {
		return repobuild.ERequirement[string, string]{Package: r.Package, Versions: repobuild.Predicate[string](func(string) bool { return true })}
	}
	var set repobuild.Union[string]
	for _, tag := range r.Versions {
		set = append(set, repobuild.Exact[string]{Version: tag})
	}
	return repobuild.ERequirement[string, string]{Package: r.Package, Versions: set}
}

func stringLess(a, b string) bool  { return a < b }
func stringEqual(a, b string) bool { return a == b }
