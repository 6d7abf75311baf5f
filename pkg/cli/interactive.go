package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/githubnext/pkgvet/pkg/console"
	"github.com/githubnext/pkgvet/pkg/logger"
	"github.com/githubnext/pkgvet/pkg/tty"
	"github.com/githubnext/pkgvet/pkg/validation"
)

var interactiveLog = logger.New("cli:interactive")

// errNotInteractive is returned when --interactive is used without a terminal.
var errNotInteractive = errors.New("interactive mode requires a terminal on stdin; pass --mode instead")

// modeDescriptions labels the modes offered by the picker.
var modeDescriptions = map[validation.Mode]string{
	validation.ModeStructure:                "Structure checks only",
	validation.ModeAssetStore:               "Asset Store submission",
	validation.ModeAssetStorePublishAction:  "Asset Store publish action",
	validation.ModeLocalDevelopment:         "Local development",
	validation.ModeLocalDevelopmentInternal: "Local development (internal)",
	validation.ModeCI:                       "Continuous integration",
	validation.ModePromotion:                "Promotion",
	validation.ModeVerifiedSet:              "Verified set",
	validation.ModePublishing:               "Publishing",
	validation.ModeInternalTesting:          "Internal testing (no network)",
	validation.ModeDefault:                  "Default",
}

// modeOptions returns the picker options in AllModes order.
func modeOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(validation.AllModes))
	for _, m := range validation.AllModes {
		label := string(m)
		if desc, ok := modeDescriptions[m]; ok {
			label = fmt.Sprintf("%s - %s", m, desc)
		}
		opts = append(opts, huh.NewOption(label, string(m)))
	}
	return opts
}

// promptMode asks the user to pick a validation mode, starting at current.
func promptMode(current string) (string, error) {
	if !tty.IsStdinTerminal() {
		return "", errNotInteractive
	}
	interactiveLog.Printf("Prompting for validation mode (current=%s)", current)

	mode := current
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which validation mode should run?").
				Description("Modes decide which rules apply to the package.").
				Options(modeOptions()...).
				Value(&mode),
		),
	).WithAccessible(console.IsAccessibleMode())

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("failed to select a validation mode: %w", err)
	}
	interactiveLog.Printf("Selected validation mode: %s", mode)
	return mode, nil
}
