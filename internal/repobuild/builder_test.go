package repobuild

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"depsolve/internal/model"
)

func stringLess(a, b string) bool  { return a < b }
func stringEqual(a, b string) bool { return a == b }

func TestRepositoryBuilderAssignsIdsAndTranslatesRanges(t *testing.T) {
	b := NewRepositoryBuilder[string, string]()

	p0 := NewEPackageBuilder[string, string]("p0")
	p0.AddVersion(EVersion[string, string]{Version: "1"})
	p0.AddVersion(EVersion[string, string]{Version: "2"})
	p0.AddVersion(EVersion[string, string]{Version: "3"})
	require.True(t, b.AddPackage(p0))

	p1 := NewEPackageBuilder[string, string]("p1")
	p1v1 := EVersion[string, string]{Version: "1"}
	p1v1.AddDependency(ERequirement[string, string]{
		Package:  "p0",
		Versions: Union[string]{Exact[string]{Version: "1"}, Exact[string]{Version: "2"}},
	})
	p1.AddVersion(p1v1)
	require.True(t, b.AddPackage(p1))

	repo, idx, err := b.Build(stringLess, stringEqual)
	require.NoError(t, err)
	require.Len(t, repo.Packages, 2)

	p0ID, ok := idx.PackageID("p0")
	require.True(t, ok)
	require.Equal(t, model.PackageID(0), p0ID)
	p1ID, ok := idx.PackageID("p1")
	require.True(t, ok)
	require.Equal(t, model.PackageID(1), p1ID)

	p1pkg := repo.Packages[p1ID]
	require.Len(t, p1pkg.Versions, 1)
	deps := p1pkg.Versions[0].Requirements.Dependencies
	require.Len(t, deps, 1)
	want, ok := model.Interval(1, 2)
	require.True(t, ok)
	require.Equal(t, model.NewRequirement(p0ID, []model.Range{want}), deps[0])
}

func TestRepositoryBuilderAddPackageRejectsDuplicateName(t *testing.T) {
	b := NewRepositoryBuilder[string, string]()
	first := NewEPackageBuilder[string, string]("p0")
	second := NewEPackageBuilder[string, string]("p0")

	require.True(t, b.AddPackage(first))
	require.False(t, b.AddPackage(second))
}

func TestRepositoryBuilderBuildFailsOnUnknownPackageReference(t *testing.T) {
	b := NewRepositoryBuilder[string, string]()
	p1 := NewEPackageBuilder[string, string]("p1")
	v1 := EVersion[string, string]{Version: "1"}
	v1.AddDependency(ERequirement[string, string]{Package: "ghost", Versions: Exact[string]{Version: "1"}})
	p1.AddVersion(v1)
	require.True(t, b.AddPackage(p1))

	_, _, err := b.Build(stringLess, stringEqual)
	require.Error(t, err)
	var unknown *UnknownPackageError[string]
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, "ghost", unknown.Unknown)
}

func TestRepositoryBuilderBuildFailsOnIllformedRequirement(t *testing.T) {
	b := NewRepositoryBuilder[string, string]()
	p0 := NewEPackageBuilder[string, string]("p0")
	p0.AddVersion(EVersion[string, string]{Version: "1"})
	p0.AddVersion(EVersion[string, string]{Version: "2"})
	require.True(t, b.AddPackage(p0))

	p1 := NewEPackageBuilder[string, string]("p1")
	v1 := EVersion[string, string]{Version: "1"}
	v1.AddDependency(ERequirement[string, string]{Package: "p0", Versions: Exact[string]{Version: "99"}})
	p1.AddVersion(v1)
	require.True(t, b.AddPackage(p1))

	_, _, err := b.Build(stringLess, stringEqual)
	require.Error(t, err)
	var illformed *IllformedRequirementError[string]
	require.True(t, errors.As(err, &illformed))
	require.Equal(t, "p0", illformed.Against)
}

func TestRepositoryBuilderDedupesEqualVersionTags(t *testing.T) {
	b := NewRepositoryBuilder[string, string]()
	p0 := NewEPackageBuilder[string, string]("p0")
	p0.AddVersion(EVersion[string, string]{Version: "2"})
	p0.AddVersion(EVersion[string, string]{Version: "1"})
	p0.AddVersion(EVersion[string, string]{Version: "1"}) // duplicate, dropped
	require.True(t, b.AddPackage(p0))

	repo, _, err := b.Build(stringLess, stringEqual)
	require.NoError(t, err)
	require.Len(t, repo.Packages[0].Versions, 2)
}

func TestIndexResolveRequirementMatchesBuildTranslation(t *testing.T) {
	b := NewRepositoryBuilder[string, string]()
	p0 := NewEPackageBuilder[string, string]("p0")
	p0.AddVersion(EVersion[string, string]{Version: "1"})
	p0.AddVersion(EVersion[string, string]{Version: "2"})
	require.True(t, b.AddPackage(p0))

	_, idx, err := b.Build(stringLess, stringEqual)
	require.NoError(t, err)

	req, err := idx.ResolveRequirement(ERequirement[string, string]{Package: "p0", Versions: Exact[string]{Version: "2"}})
	require.NoError(t, err)
	p0ID, _ := idx.PackageID("p0")
	require.Equal(t, model.NewRequirement(p0ID, []model.Range{model.Pt(2)}), req)
}

func TestIndexResolveRequirementUnknownPackage(t *testing.T) {
	b := NewRepositoryBuilder[string, string]()
	_, idx, err := b.Build(stringLess, stringEqual)
	require.NoError(t, err)

	_, err = idx.ResolveRequirement(ERequirement[string, string]{Package: "ghost", Versions: Exact[string]{Version: "1"}})
	require.Error(t, err)
	var unknown *UnknownPackageError[string]
	require.True(t, errors.As(err, &unknown))
}
