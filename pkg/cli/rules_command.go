package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/githubnext/pkgvet/pkg/console"
	"github.com/githubnext/pkgvet/pkg/constants"
	"github.com/githubnext/pkgvet/pkg/logger"
	"github.com/githubnext/pkgvet/pkg/rules"
	"github.com/githubnext/pkgvet/pkg/validation"
	"github.com/spf13/cobra"
)

var rulesLog = logger.New("cli:rules_command")

// RuleListing describes one rule in the rules command output.
type RuleListing struct {
	Kind        string   `json:"kind"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	DependsOn   []string `json:"depends_on,omitempty"`
	Active      bool     `json:"active"`
}

// NewRulesCommand creates the rules command
func NewRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the validation rules and which of them a mode runs",
		Long: `List every compiled-in validation rule and whether it is active for a validation
mode and package kind. Inactive rules still run as prerequisites of active rules.

Examples:
  ` + constants.CLIName + ` rules                        # Rules of the structure mode
  ` + constants.CLIName + ` rules -m asset-store         # Rules of the Asset Store mode
  ` + constants.CLIName + ` rules -m ci --kind template  # Rules for template packages in CI
  ` + constants.CLIName + ` rules --json                 # Output the list in JSON format`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			modeFlag, _ := cmd.Flags().GetString("mode")
			kindFlag, _ := cmd.Flags().GetString("kind")
			jsonOutput, _ := cmd.Flags().GetBool("json")

			if modeFlag == "" {
				modeFlag = string(validation.ModeStructure)
			}
			mode, err := validation.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			kind, err := validation.ParsePackageKind(kindFlag)
			if err != nil {
				return err
			}
			return ListRules(cmd.OutOrStdout(), mode, kind, jsonOutput)
		},
	}

	cmd.Flags().StringP("mode", "m", "", "Validation mode (default: structure)")
	cmd.Flags().StringP("kind", "k", string(validation.PackageKindTooling), "Package kind: tooling, template or feature-set")
	cmd.Flags().BoolP("json", "j", false, "Output results in JSON format")

	return cmd
}

// ListRules writes the rule listing for mode and kind to w.
func ListRules(w io.Writer, mode validation.Mode, kind validation.PackageKind, jsonOutput bool) error {
	reg, err := rules.NewRegistry()
	if err != nil {
		return err
	}
	listings := BuildRuleListings(reg, mode, kind)
	rulesLog.Printf("Listing %d rules for mode=%s kind=%s", len(listings), mode, kind)

	if jsonOutput {
		data, err := json.MarshalIndent(listings, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	table := console.TableConfig{
		Title:   fmt.Sprintf("Rules for %s mode (%s packages)", mode, kind),
		Headers: []string{"Kind", "Name", "Category", "Depends On", "Active"},
	}
	for _, l := range listings {
		active := "no"
		if l.Active {
			active = "yes"
		}
		table.Rows = append(table.Rows, []string{l.Kind, l.Name, l.Category, strings.Join(l.DependsOn, ", "), active})
	}
	_, err = fmt.Fprint(w, console.RenderTable(table))
	return err
}

// BuildRuleListings describes every rule of reg in registration order.
func BuildRuleListings(reg *validation.Registry, mode validation.Mode, kind validation.PackageKind) []RuleListing {
	active := make(map[validation.Kind]bool)
	for _, r := range reg.SelectActive(mode, kind) {
		active[r.Info().Kind] = true
	}

	listings := make([]RuleListing, 0, len(reg.All()))
	for _, r := range reg.All() {
		info := r.Info()
		l := RuleListing{
			Kind:        string(info.Kind),
			Name:        info.Name,
			Description: info.Description,
			Category:    string(info.Category),
			Active:      active[info.Kind],
		}
		for _, dep := range info.DependsOn {
			l.DependsOn = append(l.DependsOn, string(dep))
		}
		listings = append(listings, l)
	}
	return listings
}
