package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/githubnext/pkgvet/pkg/config"
	"github.com/githubnext/pkgvet/pkg/console"
	"github.com/githubnext/pkgvet/pkg/constants"
	"github.com/githubnext/pkgvet/pkg/fileutil"
	"github.com/githubnext/pkgvet/pkg/logger"
	"github.com/githubnext/pkgvet/pkg/manifest"
	"github.com/githubnext/pkgvet/pkg/metrics"
	"github.com/githubnext/pkgvet/pkg/report"
	"github.com/githubnext/pkgvet/pkg/rules"
	"github.com/githubnext/pkgvet/pkg/validation"
	"github.com/sourcegraph/conc/pool"
)

var validatePkgLog = logger.New("cli:validate")

// ValidateConfig holds everything one validate invocation needs.
type ValidateConfig struct {
	Settings *config.Config

	// Path validates the package rooted at this directory instead of
	// looking it up under the project's Packages folder.
	Path string

	// Tarball validates a gzip-compressed package archive.
	Tarball string

	JSONOutput bool
	Verbose    bool

	// Prober checks changelog URLs. Nil uses an HTTP prober bounded by the
	// configured URL timeout.
	Prober validation.URLProber

	// Metrics, when set, observes every rule and suite.
	Metrics *metrics.Recorder

	// Out receives the console summary. Nil means stdout.
	Out io.Writer
}

func (c ValidateConfig) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// ValidatePackage runs the validation suite for one "name@version" package
// and reports whether it passed. Reports are written to the results
// directory, including an error report when the run cannot start.
func ValidatePackage(ctx context.Context, cfg ValidateConfig, packageID string) (bool, error) {
	return validateOne(ctx, cfg, packageID, cfg.out())
}

// ValidatePackages validates several packages, at most Settings.Jobs at a
// time. Summaries are printed in argument order once every run is done. The
// result is true only if every package passed.
func ValidatePackages(ctx context.Context, cfg ValidateConfig, packageIDs []string) (bool, error) {
	if len(packageIDs) == 0 {
		return false, errors.New("at least one package id is required")
	}
	if len(packageIDs) > 1 && (cfg.Path != "" || cfg.Tarball != "") {
		return false, errors.New("--path and --tarball validate a single package")
	}

	jobs := cfg.Settings.Jobs
	if jobs < 1 {
		jobs = 1
	}
	validatePkgLog.Printf("Validating %d packages with %d jobs", len(packageIDs), jobs)

	type packageRun struct {
		index  int
		passed bool
		err    error
		output bytes.Buffer
	}

	p := pool.NewWithResults[*packageRun]().WithMaxGoroutines(jobs)
	for i, id := range packageIDs {
		p.Go(func() *packageRun {
			run := &packageRun{index: i}
			run.passed, run.err = validateOne(ctx, cfg, id, &run.output)
			return run
		})
	}
	runs := make([]*packageRun, len(packageIDs))
	for _, run := range p.Wait() {
		runs[run.index] = run
	}

	out := cfg.out()
	allPassed := true
	errs := validation.NewErrorCollector(false)
	for _, run := range runs {
		_, _ = out.Write(run.output.Bytes())
		if run.err != nil {
			_ = errs.Add(fmt.Errorf("%s: %w", packageIDs[run.index], run.err))
		}
		allPassed = allPassed && run.passed && run.err == nil
	}

	if cfg.Metrics != nil && cfg.Settings.MetricsFile != "" {
		if err := cfg.Metrics.WriteTextfile(cfg.Settings.MetricsFile); err != nil {
			_ = errs.Add(err)
		}
	}
	return allPassed, errs.FormattedError("package")
}

func validateOne(ctx context.Context, cfg ValidateConfig, packageID string, out io.Writer) (bool, error) {
	id, err := validation.ParsePackageID(packageID)
	if err != nil {
		return false, err
	}
	mode, err := cfg.Settings.ValidationMode()
	if err != nil {
		return false, err
	}

	writer := report.NewWriter(cfg.Settings.ResultsDir)
	if err := writer.Clear(id.String()); err != nil {
		return false, err
	}
	fail := func(m *manifest.Manifest, err error) (bool, error) {
		if cfg.Metrics != nil {
			cfg.Metrics.ObserveSetupFailure()
		}
		if werr := writer.WriteError(id.String(), m, mode, err); werr != nil {
			validatePkgLog.Printf("Could not write error report: %v", werr)
		}
		return false, err
	}

	dir, cleanup, err := locatePackage(cfg, id)
	if err != nil {
		return fail(nil, err)
	}
	defer cleanup()

	m, err := manifest.Load(dir)
	if err != nil {
		if errors.Is(err, manifest.ErrNotFound) {
			err = fmt.Errorf("%w: %w", validation.ErrPackageNotFound, err)
		}
		return fail(nil, err)
	}
	if err := checkIdentity(m, id); err != nil {
		return fail(m, err)
	}

	vc := validation.NewContext(m, mode)
	vc.PackageID = id.String()
	vc.Ignore = cfg.Settings.Ignore
	vc.Prober = cfg.Prober
	if vc.Prober == nil {
		timeout, err := cfg.Settings.Timeout()
		if err != nil {
			return fail(m, err)
		}
		vc.Prober = rules.NewHTTPProber(timeout)
	}

	reg, err := rules.NewRegistry()
	if err != nil {
		return false, err
	}
	suite := validation.NewSuite(reg)
	suite.Skip = cfg.Settings.SkipKinds()
	suite.OnRuleCompleted = func(o *validation.Outcome) {
		if cfg.Metrics != nil {
			cfg.Metrics.ObserveRule(o)
		}
		if cfg.Verbose {
			fmt.Fprintln(os.Stderr, console.FormatVerboseMessage(fmt.Sprintf("%s: %s (%s)", o.Name, o.State, o.Elapsed())))
		}
	}
	var reportErr error
	suite.OnSuiteCompleted = append(suite.OnSuiteCompleted, writer.Hook(m, func(err error) { reportErr = err }))
	if cfg.Metrics != nil {
		suite.OnSuiteCompleted = append(suite.OnSuiteCompleted, cfg.Metrics.ObserveSuite)
	}

	res, err := suite.Run(ctx, vc)
	if err != nil {
		return fail(m, err)
	}
	if reportErr != nil {
		return false, reportErr
	}

	if err := printResult(out, cfg, m, res, writer); err != nil {
		return false, err
	}
	return res.Succeeded(), nil
}

// locatePackage returns the package root and a cleanup func that removes
// any temporary extraction directory.
func locatePackage(cfg ValidateConfig, id validation.PackageID) (string, func(), error) {
	noop := func() {}

	if cfg.Tarball != "" {
		tmp, err := os.MkdirTemp("", "pkgvet-*")
		if err != nil {
			return "", noop, err
		}
		cleanup := func() { _ = os.RemoveAll(tmp) }
		root, err := fileutil.ExtractTarball(cfg.Tarball, tmp, constants.PackageManifestFilename)
		if err != nil {
			cleanup()
			return "", noop, fmt.Errorf("%w: %w", validation.ErrPackageNotFound, err)
		}
		validatePkgLog.Printf("Extracted %s to %s", cfg.Tarball, root)
		return root, cleanup, nil
	}

	dir := cfg.Path
	if dir == "" {
		dir = filepath.Join(cfg.Settings.ProjectDir, constants.PackagesDir, id.Name)
	}
	if !fileutil.FileExists(filepath.Join(dir, constants.PackageManifestFilename)) {
		return "", noop, fmt.Errorf("%w: no %s for %s in %s", validation.ErrPackageNotFound, constants.PackageManifestFilename, id, dir)
	}
	validatePkgLog.Printf("Located %s at %s", id, dir)
	return dir, noop, nil
}

// checkIdentity rejects a manifest that names a different package. Missing
// fields are left for the manifest rules to report.
func checkIdentity(m *manifest.Manifest, id validation.PackageID) error {
	if m.Name != "" && m.Name != id.Name {
		return fmt.Errorf("%w: %s contains package %q, not %q", validation.ErrPackageNotFound, m.Path, m.Name, id.Name)
	}
	if m.Version != "" && m.Version != id.Version {
		return fmt.Errorf("%w: %s is at version %s, not %s", validation.ErrPackageNotFound, id.Name, m.Version, id.Version)
	}
	return nil
}

func printResult(out io.Writer, cfg ValidateConfig, m *manifest.Manifest, res *validation.Result, writer *report.Writer) error {
	if cfg.JSONOutput {
		data, err := report.RenderJSON(res)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	fmt.Fprint(out, console.RenderTable(summaryTable(m, res)))
	for _, o := range res.Outcomes {
		for _, msg := range o.Errors() {
			// Stack traces stay in the report.
			msg, _, _ = strings.Cut(msg, "\n")
			fmt.Fprintln(out, console.FormatErrorMessage(o.Name+": "+msg))
		}
		for _, msg := range o.Warnings() {
			fmt.Fprintln(out, console.FormatWarningMessage(o.Name+": "+msg))
		}
	}

	line := fmt.Sprintf("%s %s in %s mode. Report: %s", res.PackageID, res.State, res.Mode, writer.TextPath(res.PackageID))
	if res.Succeeded() {
		fmt.Fprintln(out, console.FormatSuccessMessage(line))
	} else {
		fmt.Fprintln(out, console.FormatErrorMessage(line))
	}
	return nil
}

func summaryTable(m *manifest.Manifest, res *validation.Result) console.TableConfig {
	title := res.PackageID
	if m.DisplayName != "" {
		title = m.DisplayName + " (" + res.PackageID + ")"
	}
	cfg := console.TableConfig{
		Title:   title,
		Headers: []string{"Rule", "Result", "Errors", "Warnings"},
	}
	for _, o := range append(append([]*validation.Outcome{}, res.Prerequisites...), res.Outcomes...) {
		cfg.Rows = append(cfg.Rows, []string{
			o.Name,
			string(o.State),
			strconv.Itoa(len(o.Errors())),
			strconv.Itoa(len(o.Warnings())),
		})
	}
	return cfg
}
