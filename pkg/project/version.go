package project

import (
	"github.com/Masterminds/semver/v3"

	"github.com/arthur-debert/dunc/pkg/errors"
)

// Check compares the manifest's name and version with the ones the build
// tool reports. Empty values on either side are not compared. Versions
// that parse as semver compare semantically ("1.0" equals "1.0.0").
func (m *Manifest) Check(name, version string) error {
	if m.Name != "" && name != "" && m.Name != name {
		return errors.Newf(errors.ErrProjectVersion, "manifest is for '%s' but the build is for '%s'", m.Name, name).
			WithDetail("manifest", m.Path)
	}

	if m.Version == "" || version == "" {
		return nil
	}
	if !sameVersion(m.Version, version) {
		return errors.Newf(errors.ErrProjectVersion, "manifest version %s does not match build version %s", m.Version, version).
			WithDetail("manifest", m.Path)
	}
	return nil
}

func sameVersion(a, b string) bool {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return va.Equal(vb)
}
