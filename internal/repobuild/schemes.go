package repobuild

import (
	debversion "github.com/knqyf263/go-deb-version"
	pep440 "github.com/aquasecurity/go-pep440-version"
)

// DebianLess orders two Debian version strings using their native epoch/
// upstream/revision comparison, for use as a RepositoryBuilder[K,string]
// comparator over apt-style metadata. Unparsable strings sort after every
// parsable one (matching the teacher's versionCache.compare, which treats
// a parse failure as "incomparable" rather than aborting the build).
func DebianLess(a, b string) bool {
	va, errA := debversion.NewVersion(a)
	vb, errB := debversion.NewVersion(b)
	switch {
	case errA != nil && errB != nil:
		return a < b
	case errA != nil:
		return false
	case errB != nil:
		return true
	default:
		return va.Compare(vb) < 0
	}
}

// DebianEqual reports whether two Debian version strings denote the same
// version.
func DebianEqual(a, b string) bool {
	va, errA := debversion.NewVersion(a)
	vb, errB := debversion.NewVersion(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return va.Compare(vb) == 0
}

// PEP440Less orders two PEP 440 version strings, for use as a
// RepositoryBuilder[K,string] comparator over pip-style metadata.
func PEP440Less(a, b string) bool {
	va, errA := pep440.Parse(a)
	vb, errB := pep440.Parse(b)
	switch {
	case errA != nil && errB != nil:
		return a < b
	case errA != nil:
		return false
	case errB != nil:
		return true
	default:
		return va.LessThan(vb)
	}
}

// PEP440Equal reports whether two PEP 440 version strings denote the same
// version.
func PEP440Equal(a, b string) bool {
	va, errA := pep440.Parse(a)
	vb, errB := pep440.Parse(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return va.Equal(vb)
}
