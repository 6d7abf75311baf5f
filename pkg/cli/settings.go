package cli

import (
	"github.com/githubnext/pkgvet/pkg/config"
	"github.com/spf13/cobra"
)

// addSettingsFlags registers the flags that override pkgvet.yaml.
func addSettingsFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("mode", "m", "", "Validation mode (default: structure, or the mode in pkgvet.yaml)")
	cmd.Flags().StringP("project-dir", "p", "", "Project directory holding the Packages folder (default: current directory)")
	cmd.Flags().StringP("config", "c", "", "Path to a pkgvet.yaml file (default: searched from the project directory upwards)")
}

// loadSettings resolves the configuration for cmd: defaults, then the
// project file, then any flag the user set explicitly.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	projectDir, _ := cmd.Flags().GetString("project-dir")

	cfg, err := config.NewLoader(nil).Load(projectDir, configPath)
	if err != nil {
		return nil, err
	}

	overrides := &config.Config{ProjectDir: projectDir}
	if cmd.Flags().Changed("mode") {
		overrides.Mode, _ = cmd.Flags().GetString("mode")
	}
	if f := cmd.Flags().Lookup("results-dir"); f != nil && f.Changed {
		overrides.ResultsDir = f.Value.String()
	}
	if f := cmd.Flags().Lookup("skip"); f != nil && f.Changed {
		overrides.Skip, _ = cmd.Flags().GetStringSlice("skip")
	}
	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		overrides.Jobs, _ = cmd.Flags().GetInt("jobs")
	}
	if f := cmd.Flags().Lookup("url-timeout"); f != nil && f.Changed {
		overrides.URLTimeout = f.Value.String()
	}
	if f := cmd.Flags().Lookup("metrics-file"); f != nil && f.Changed {
		overrides.MetricsFile = f.Value.String()
	}
	cfg.Merge(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
