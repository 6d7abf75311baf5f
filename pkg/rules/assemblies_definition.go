package rules

import (
	"context"

	"github.com/githubnext/pkgvet/pkg/assembly"
	"github.com/githubnext/pkgvet/pkg/validation"
)

const KindAssembliesDefinition validation.Kind = "assemblies-definition"

// AssembliesDefinition checks that scripts are grouped into assemblies.
type AssembliesDefinition struct{}

func (AssembliesDefinition) Info() validation.Info {
	return validation.Info{
		Kind:        KindAssembliesDefinition,
		Name:        "Assemblies Definition Validation",
		Description: "Validates that the package assemblies definition meets certain criteria.",
		Category:    validation.CategoryDataValidation,
		Modes:       []validation.Mode{validation.ModeStructure, validation.ModeAssetStore},
	}
}

func (AssembliesDefinition) Run(_ context.Context, vc *validation.Context, out *validation.Outcome) error {
	return assembly.Check(vc.Path, vc.Ignore, out)
}
