package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/githubnext/pkgvet/pkg/cli"
	"github.com/githubnext/pkgvet/pkg/console"
	"github.com/githubnext/pkgvet/pkg/constants"
	"github.com/githubnext/pkgvet/pkg/logger"
	"github.com/spf13/cobra"
)

var mainLog = logger.New("main")

var rootCmd = &cobra.Command{
	Use:   constants.CLIName,
	Short: "Package Validation Suite for Unity packages",
	Long: `Package Validation Suite checks Unity packages before they are published.

Each validation mode selects the rules that run. Rules report errors and warnings,
and a package passes when no rule fails. Reports are written as text and JSON to
the results directory.

Common tasks:
  ` + constants.CLIName + ` validate com.example.tool@1.0.0   # Validate a package
  ` + constants.CLIName + ` rules -m asset-store             # See which rules a mode runs
  ` + constants.CLIName + ` watch com.example.tool@1.0.0      # Re-validate on every change`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", constants.CLIName, constants.Version)
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "validation", Title: "Validation Commands:"},
		&cobra.Group{ID: "utilities", Title: "Utilities:"},
	)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print each rule result as it completes")

	validateCmd := cli.NewValidateCommand()
	validateCmd.GroupID = "validation"
	watchCmd := cli.NewWatchCommand()
	watchCmd.GroupID = "validation"
	rulesCmd := cli.NewRulesCommand()
	rulesCmd.GroupID = "utilities"

	rootCmd.AddCommand(validateCmd, watchCmd, rulesCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		mainLog.Printf("Command failed: %v", err)
		if errors.Is(err, cli.ErrValidationFailed) {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage("Validation failed. See the reports for details."))
		} else {
			cli.PrintValidationError(err)
		}
		os.Exit(1)
	}
}
