package cli

import (
	"errors"

	"github.com/githubnext/pkgvet/pkg/constants"
	"github.com/githubnext/pkgvet/pkg/logger"
	"github.com/githubnext/pkgvet/pkg/metrics"
	"github.com/spf13/cobra"
)

var validateLog = logger.New("cli:validate_command")

// ErrValidationFailed is returned when at least one package did not pass.
var ErrValidationFailed = errors.New("validation failed")

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <package>...",
		Short: "Validate packages against the rules of a validation mode",
		Long: `Validate one or more packages, each given as name@version, and write a text and
JSON report per package to the results directory.

Packages are looked up under <project>/Packages/<name>. Use --path to validate a package
folder anywhere on disk, or --tarball to validate a packed .tgz archive.

Examples:
  ` + constants.CLIName + ` validate com.example.tool@1.0.0                    # Validate in structure mode
  ` + constants.CLIName + ` validate com.example.tool@1.0.0 -m asset-store     # Validate for the Asset Store
  ` + constants.CLIName + ` validate a@1.0.0 b@2.0.0 --jobs 2                  # Validate two packages in parallel
  ` + constants.CLIName + ` validate com.example.tool@1.0.0 --path ./tool      # Validate a folder
  ` + constants.CLIName + ` validate com.example.tool@1.0.0 --tarball tool.tgz # Validate a packed archive
  ` + constants.CLIName + ` validate com.example.tool@1.0.0 --skip changelog   # Skip a rule
  ` + constants.CLIName + ` validate com.example.tool@1.0.0 --json             # Print the JSON report
  ` + constants.CLIName + ` validate com.example.tool@1.0.0 -i                 # Pick the mode interactively`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			tarball, _ := cmd.Flags().GetString("tarball")
			jsonOutput, _ := cmd.Flags().GetBool("json")
			interactive, _ := cmd.Flags().GetBool("interactive")
			verbose, _ := cmd.Flags().GetBool("verbose")

			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if interactive {
				mode, err := promptMode(settings.Mode)
				if err != nil {
					return err
				}
				settings.Mode = mode
			}

			validateLog.Printf("Running validate command: packages=%v, mode=%s, jobs=%d", args, settings.Mode, settings.Jobs)

			config := ValidateConfig{
				Settings:   settings,
				Path:       path,
				Tarball:    tarball,
				JSONOutput: jsonOutput,
				Verbose:    verbose,
				Out:        cmd.OutOrStdout(),
			}
			if settings.MetricsFile != "" {
				config.Metrics = metrics.NewRecorder()
			}

			passed, err := ValidatePackages(cmd.Context(), config, args)
			if err != nil {
				return err
			}
			if !passed {
				return ErrValidationFailed
			}
			return nil
		},
	}

	addSettingsFlags(cmd)
	cmd.Flags().String("path", "", "Validate the package in this folder instead of <project>/Packages/<name>")
	cmd.Flags().String("tarball", "", "Validate a gzip-compressed package archive (.tgz)")
	cmd.Flags().StringP("results-dir", "r", "", "Directory for text and JSON reports (default: "+constants.DefaultResultsDir+")")
	cmd.Flags().StringSlice("skip", nil, "Rule kinds to skip (repeatable)")
	cmd.Flags().Int("jobs", 1, "Number of packages to validate in parallel")
	cmd.Flags().String("url-timeout", "", "Timeout for each changelog URL probe (default: 10s)")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics in textfile format to this path")
	cmd.Flags().BoolP("json", "j", false, "Output results in JSON format")
	cmd.Flags().BoolP("interactive", "i", false, "Pick the validation mode from a list")

	cmd.MarkFlagsMutuallyExclusive("path", "tarball")
	cmd.MarkFlagsMutuallyExclusive("mode", "interactive")

	return cmd
}
