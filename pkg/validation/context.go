package validation

import (
	"context"

	"github.com/githubnext/pkgvet/pkg/manifest"
)

// URLStatus is the result of probing a URL.
type URLStatus int

const (
	// URLNone means there was no URL to probe.
	URLNone URLStatus = iota
	URLReachable
	URLUnreachable
	// URLUnknown means a URL is set but was not probed.
	URLUnknown
)

func (s URLStatus) String() string {
	switch s {
	case URLNone:
		return "none"
	case URLReachable:
		return "reachable"
	case URLUnreachable:
		return "unreachable"
	case URLUnknown:
		return "unknown"
	}
	return "invalid"
}

// URLProber checks whether a URL answers.
type URLProber interface {
	Probe(ctx context.Context, url string) URLStatus
}

// Context is the read-only input shared by every rule of a run.
type Context struct {
	// PackageID names the run's reports. Empty means the manifest's
	// name@version.
	PackageID string

	Manifest    *manifest.Manifest
	Mode        Mode
	PackageKind PackageKind

	// Path is the package root on disk.
	Path string

	// Ignore holds doublestar globs, relative to Path, excluded from scans.
	Ignore []string

	Prober URLProber
}

// NewContext builds a context for m. The package kind comes from the
// manifest type.
func NewContext(m *manifest.Manifest, mode Mode) *Context {
	return &Context{
		Manifest:    m,
		Mode:        mode,
		PackageKind: PackageKindFromManifestType(m.Type),
		Path:        m.Path,
	}
}

// WithMode returns a copy of the context running under mode.
func (c *Context) WithMode(mode Mode) *Context {
	cp := *c
	cp.Mode = mode
	return &cp
}
