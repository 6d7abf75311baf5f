package validation

import (
	"fmt"
	"strings"
)

// PackageID is a "name@version" pair.
type PackageID struct {
	Name    string
	Version string
}

func (id PackageID) String() string {
	return id.Name + "@" + id.Version
}

// ParsePackageID splits "name@version". Exactly one '@' with non-empty sides
// is required. Neither side may contain a path separator or "..", since the
// id names report files.
func ParsePackageID(s string) (PackageID, error) {
	if strings.Count(s, "@") != 1 {
		return PackageID{}, fmt.Errorf("%w: %q must have the form name@version", ErrMalformedPackageID, s)
	}
	name, version, _ := strings.Cut(s, "@")
	name = strings.TrimSpace(name)
	version = strings.TrimSpace(version)
	if name == "" || version == "" {
		return PackageID{}, fmt.Errorf("%w: %q must have the form name@version", ErrMalformedPackageID, s)
	}
	for _, part := range []string{name, version} {
		if strings.ContainsAny(part, `/\`) || strings.Contains(part, "..") {
			return PackageID{}, fmt.Errorf("%w: %q must not contain path separators or \"..\"", ErrMalformedPackageID, s)
		}
	}
	return PackageID{Name: name, Version: version}, nil
}
