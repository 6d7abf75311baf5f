// Package rules holds the compiled-in validation rules.
package rules

import (
	"github.com/githubnext/pkgvet/pkg/validation"
)

// All returns one instance of every rule, in discovery order.
func All() []validation.Rule {
	return []validation.Rule{
		MinimumPackageManifest{},
		PackageVersion{},
		AssembliesDefinition{},
		Changelog{},
	}
}

// NewRegistry returns the registry of every compiled-in rule.
func NewRegistry() (*validation.Registry, error) {
	return validation.NewRegistry(All()...)
}
