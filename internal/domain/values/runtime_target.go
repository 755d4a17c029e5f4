package values

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MinRuntimeVersion is the lowest runtime version the generated code targets.
const MinRuntimeVersion = ">= 3.0.0"

// RuntimeTarget is the UI runtime the generated artifact is pinned to, e.g. vue@3.
type RuntimeTarget struct {
	pkg     string
	raw     string
	version *semver.Version
}

// DefaultRuntimeTarget returns vue@3.
func DefaultRuntimeTarget() RuntimeTarget {
	rt, _ := NewRuntimeTarget("vue", "3")
	return rt
}

// NewRuntimeTarget validates the package name and version.
// The version may be partial ("3", "3.4") and must satisfy MinRuntimeVersion.
func NewRuntimeTarget(pkg, version string) (RuntimeTarget, error) {
	pkg = strings.TrimSpace(pkg)
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	if pkg == "" {
		return RuntimeTarget{}, fmt.Errorf("runtime package is required")
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return RuntimeTarget{}, fmt.Errorf("invalid runtime version %q: %w", version, err)
	}

	constraint, err := semver.NewConstraint(MinRuntimeVersion)
	if err != nil {
		return RuntimeTarget{}, err
	}
	if !constraint.Check(v) {
		return RuntimeTarget{}, fmt.Errorf("runtime version %s does not satisfy %s", version, MinRuntimeVersion)
	}

	return RuntimeTarget{pkg: pkg, raw: version, version: v}, nil
}

// Package returns the runtime package name.
func (r RuntimeTarget) Package() string {
	return r.pkg
}

// Major returns the major version.
func (r RuntimeTarget) Major() uint64 {
	if r.version == nil {
		return 0
	}
	return r.version.Major()
}

// Marker returns the version marker embedded in artifacts, e.g. "vue@3".
func (r RuntimeTarget) Marker() string {
	return r.pkg + "@" + r.raw
}

// String returns the string representation
func (r RuntimeTarget) String() string {
	return r.Marker()
}

// IsZero returns true if this is the zero value
func (r RuntimeTarget) IsZero() bool {
	return r.pkg == ""
}
