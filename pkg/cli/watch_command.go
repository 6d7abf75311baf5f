package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/githubnext/pkgvet/pkg/console"
	"github.com/githubnext/pkgvet/pkg/constants"
	"github.com/githubnext/pkgvet/pkg/validation"
	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <package>",
		Short: "Re-validate a package every time one of its files changes",
		Long: `Validate a package once, then watch its folder and validate it again after every
change. Press Ctrl+C to stop.

Examples:
  ` + constants.CLIName + ` watch com.example.tool@1.0.0                 # Watch <project>/Packages/com.example.tool
  ` + constants.CLIName + ` watch com.example.tool@1.0.0 -m asset-store  # Watch in Asset Store mode
  ` + constants.CLIName + ` watch com.example.tool@1.0.0 --path ./tool   # Watch a folder`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			verbose, _ := cmd.Flags().GetBool("verbose")
			debounce, _ := cmd.Flags().GetDuration("debounce")

			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			id, err := validation.ParsePackageID(args[0])
			if err != nil {
				return err
			}

			config := ValidateConfig{
				Settings: settings,
				Path:     path,
				Verbose:  verbose,
				Out:      cmd.OutOrStdout(),
			}
			root, _, err := locatePackage(config, id)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watchPackage(ctx, config, args[0], root, debounce)
		},
	}

	addSettingsFlags(cmd)
	cmd.Flags().String("path", "", "Watch the package in this folder instead of <project>/Packages/<name>")
	cmd.Flags().Duration("debounce", DefaultWatchDebounce, "Quiet period after a change before validating again")

	return cmd
}

func watchPackage(ctx context.Context, config ValidateConfig, packageID, root string, debounce time.Duration) error {
	// Reports written below root must not trigger another run.
	pw, err := NewPackageWatcher(root, debounce, config.Settings.ResultsDir)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	defer pw.Close()

	runOnce := func() {
		if _, err := ValidatePackage(ctx, config, packageID); err != nil {
			PrintValidationError(err)
		}
	}

	runOnce()
	fmt.Fprintln(os.Stderr, console.FormatInfoMessage("Watching "+root+" for changes. Press Ctrl+C to stop."))
	return pw.Run(ctx, func(paths []string) {
		rel := make([]string, len(paths))
		for i, p := range paths {
			rel[i] = strings.TrimPrefix(strings.TrimPrefix(p, root), string(os.PathSeparator))
		}
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage("Changed: "+strings.Join(rel, ", ")))
		runOnce()
	})
}
