package depsolve

import "depsolve/internal/model"

// PackageVer is one version of a package: the requirements that apply
// when this version is the one selected.
type PackageVer = model.PackageVer

// Package is a totally ordered set of versions, numbered 1..N by
// position.
type Package = model.Package

// Repository is a positionally indexed collection of packages.
type Repository = model.Repository
