// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"ownerparse/internal/classifier"
	"ownerparse/internal/config"
	"ownerparse/internal/formatters"
	_ "ownerparse/internal/formatters/csv"
	_ "ownerparse/internal/formatters/json"
	_ "ownerparse/internal/formatters/text"
	_ "ownerparse/internal/formatters/yaml"
	"ownerparse/internal/help"
	"ownerparse/internal/history"
	"ownerparse/internal/observability"
	"ownerparse/internal/parallel"
	"ownerparse/internal/paths"
	"ownerparse/internal/personname"
	"ownerparse/internal/source"
	"ownerparse/internal/version"
	"ownerparse/internal/vocabulary"

	"github.com/joho/godotenv"
	"golang.org/x/term"
)

// ObservabilityEnv selects the metrics level (off, metrics, debug) when --debug is not set
const ObservabilityEnv = "OWNERPARSE_OBSERVABILITY"

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitNoFiles = 2
)

// configFlags holds command line flag values
type configFlags struct {
	inputFile    string
	configFile   string
	profileName  string
	listProfiles bool
	outputFormat string
	outputFile   string
	nameOrder    string
	workers      int
	compact      bool
	verbose      bool
	debug        bool
	noColor      bool
	quiet        bool
	recursive    bool
	showHelp     bool
	showVersion  bool
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	format    string
	output    string
	workers   int
	compact   bool
	verbose   bool
	debug     bool
	noColor   bool
	quiet     bool
	recursive bool
	order     personname.OrderDetector
	vocab     *vocabulary.Vocabulary
	loader    *source.Loader
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// parseFlags defines and parses the command line. set records the flags given explicitly.
func parseFlags(args []string, stderr io.Writer) (*configFlags, map[string]bool, []string, error) {
	fs := flag.NewFlagSet("ownerparse", flag.ContinueOnError)
	fs.SetOutput(stderr)

	f := &configFlags{}
	fs.StringVar(&f.inputFile, "file", "", "Path to a property record file, directory, or glob pattern (e.g., records/*.json)")
	fs.StringVar(&f.configFile, "config", "", "Path to configuration file (YAML)")
	fs.StringVar(&f.profileName, "profile", "", "Profile name to use from config file")
	fs.BoolVar(&f.listProfiles, "list-profiles", false, "List available profiles in config file")
	fs.StringVar(&f.outputFormat, "format", "", "Output format: text, json, csv, yaml (default: text)")
	fs.StringVar(&f.outputFile, "output", "", "Path to output file (if not specified, output to stdout)")
	fs.StringVar(&f.nameOrder, "name-order", "", "Person name order: case, comma, first_last, last_first")
	fs.IntVar(&f.workers, "workers", 0, "Number of properties processed in parallel")
	fs.BoolVar(&f.compact, "compact", false, "Compact JSON output")
	fs.BoolVar(&f.verbose, "verbose", false, "Display name parts and the current-owner source")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging of each processing step")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&f.quiet, "quiet", false, "Suppress progress output (useful for scripts)")
	fs.BoolVar(&f.recursive, "recursive", false, "Recursively process directories")
	fs.BoolVar(&f.showHelp, "help", false, "Show help information")
	fs.BoolVar(&f.showVersion, "version", false, "Show version information")
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return f, set, fs.Args(), nil
}

// run executes the CLI and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	// Variables from .env only fill what the environment does not already set
	_ = godotenv.Load(".env")

	flags, set, rest, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			help.NewSystemTo(stdout, true).ShowGeneralHelp()
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	// Auto-detect non-interactive output
	if !isTerminal(stdout) || os.Getenv("NO_COLOR") != "" {
		flags.noColor = true
	}

	if flags.showVersion {
		fmt.Fprintln(stdout, version.Info())
		return exitOK
	}

	if flags.showHelp {
		return showHelp(rest, stdout, flags.noColor)
	}

	cfg, configPath, err := loadConfiguration(flags.configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	if flags.listProfiles {
		listProfiles(stdout, cfg, configPath)
		return exitOK
	}

	activeProfile, err := selectProfile(cfg, flags.profileName)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	final, err := resolveConfiguration(cfg, activeProfile, flags, set)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	if flags.inputFile == "" {
		if len(rest) == 0 {
			fmt.Fprintln(stderr, "Error: --file is required")
			fmt.Fprintln(stderr, "Use 'ownerparse --help' for usage information.")
			return exitFailure
		}
		flags.inputFile = rest[0]
	}

	return process(flags.inputFile, final, stdout, stderr)
}

// showHelp dispatches --help, --help rules, --help formats and --help <rule>
func showHelp(args []string, stdout io.Writer, noColor bool) int {
	h := help.NewSystemTo(stdout, noColor)
	for _, rule := range classifier.New(vocabulary.MustDefault()).Rules() {
		h.RegisterProvider(rule)
	}

	if len(args) == 0 {
		h.ShowGeneralHelp()
		return exitOK
	}
	switch strings.ToLower(args[0]) {
	case "rules":
		h.ShowRulesHelp()
	case "formats":
		formats := make(map[string]string)
		for _, info := range formatters.GetSupportedFormats() {
			formats[info.Name] = fmt.Sprintf("%s (%s)", info.Extension, info.MimeType)
		}
		h.ShowFormatsHelp(formats)
	default:
		if !h.ShowRuleHelp(args[0]) {
			return exitFailure
		}
	}
	return exitOK
}

// loadConfiguration loads the configuration file or returns default config.
// An explicitly named file that cannot be loaded is an error.
func loadConfiguration(configFile string) (*config.Config, string, error) {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		if configFile != "" {
			return nil, "", err
		}
		return config.LoadConfigOrDefault(""), "", nil
	}
	return cfg, configPath, nil
}

// listProfiles prints the configured profiles with their descriptions
func listProfiles(stdout io.Writer, cfg *config.Config, configPath string) {
	if configPath == "" {
		fmt.Fprintln(stdout, "No configuration file found. Built-in profiles:")
	} else {
		fmt.Fprintf(stdout, "Available profiles (%s):\n", configPath)
	}
	for _, name := range cfg.ListProfiles() {
		profile := cfg.GetProfile(name)
		if profile != nil && profile.Description != "" {
			fmt.Fprintf(stdout, "  - %s: %s\n", name, profile.Description)
		} else {
			fmt.Fprintf(stdout, "  - %s\n", name)
		}
	}
}

// selectProfile returns the named profile, falling back to defaults.profile
func selectProfile(cfg *config.Config, profileName string) (*config.Profile, error) {
	if profileName == "" {
		profileName = cfg.Defaults.Profile
	}
	if profileName == "" {
		return nil, nil
	}
	profile := cfg.GetProfile(profileName)
	if profile == nil {
		return nil, fmt.Errorf("profile '%s' not found in config file (use --list-profiles)", profileName)
	}
	return profile, nil
}

// resolveConfiguration resolves final configuration values from config file, profile, and command line flags
func resolveConfiguration(cfg *config.Config, activeProfile *config.Profile, flags *configFlags, set map[string]bool) (*finalConfiguration, error) {
	final := &finalConfiguration{
		format:    cfg.Defaults.Format,
		output:    cfg.Defaults.Output,
		workers:   cfg.Defaults.Workers,
		debug:     cfg.Defaults.Debug,
		noColor:   cfg.Defaults.NoColor,
		quiet:     cfg.Defaults.Quiet,
		recursive: cfg.Defaults.Recursive,
	}

	// Profile settings override defaults
	if activeProfile != nil {
		if activeProfile.Format != "" {
			final.format = activeProfile.Format
		}
		if activeProfile.NoColor {
			final.noColor = true
		}
		if activeProfile.Workers > 0 {
			final.workers = activeProfile.Workers
		}
	}

	// Command line flags override everything
	if set["format"] {
		final.format = flags.outputFormat
	}
	if set["output"] {
		final.output = flags.outputFile
	}
	if set["workers"] {
		if flags.workers <= 0 {
			return nil, fmt.Errorf("--workers must be positive, got %d", flags.workers)
		}
		final.workers = flags.workers
	}
	if set["debug"] {
		final.debug = flags.debug
	}
	if set["quiet"] {
		final.quiet = flags.quiet
	}
	if set["recursive"] {
		final.recursive = flags.recursive
	}
	final.noColor = final.noColor || flags.noColor
	final.compact = flags.compact
	final.verbose = flags.verbose

	final.format = strings.ToLower(final.format)
	if _, ok := formatters.Get(final.format); !ok {
		return nil, fmt.Errorf("unsupported format '%s'. Available formats: %s", final.format, strings.Join(formatters.List(), ", "))
	}
	if err := paths.ValidatePath(final.output); err != nil {
		return nil, fmt.Errorf("invalid output path: %w", err)
	}

	var err error
	if set["name-order"] {
		final.order, err = personname.ParseOrder(flags.nameOrder)
	} else {
		final.order, err = activeProfile.OrderDetector()
	}
	if err != nil {
		return nil, err
	}

	base, err := vocabulary.Default()
	if err != nil {
		return nil, fmt.Errorf("loading default vocabulary: %w", err)
	}
	if final.vocab, err = activeProfile.BuildVocabulary(base); err != nil {
		return nil, fmt.Errorf("building vocabulary: %w", err)
	}

	final.loader = &source.Loader{Selectors: activeProfile.HTMLSelectors()}
	return final, nil
}

// newObserver creates the observer for the run: debug output with --debug,
// otherwise the level named by ObservabilityEnv
func newObserver(final *finalConfiguration, stderr io.Writer) (*observability.StandardObserver, error) {
	if final.debug {
		return observability.NewDebugObserver(stderr).StandardObserver, nil
	}
	level, err := observability.ParseLevel(os.Getenv(ObservabilityEnv))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ObservabilityEnv, err)
	}
	if level == observability.ObservabilityOff {
		return nil, nil
	}
	if level == observability.ObservabilityDebug {
		return observability.NewDebugObserver(stderr).StandardObserver, nil
	}
	return observability.NewStandardObserver(level, stderr), nil
}

// process discovers, loads, builds and formats every property under input
func process(input string, final *finalConfiguration, stdout, stderr io.Writer) int {
	observer, err := newObserver(final, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	debug := observer.Debug()
	if debug != nil {
		debug.LogDetail("main", fmt.Sprintf("Input: %s (recursive: %v)", input, final.recursive))
		debug.LogDetail("main", fmt.Sprintf("Format: %s, workers: %d", final.format, final.workers))
	}

	discovery, err := source.Discover(input, final.recursive)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	if debug != nil {
		for _, skipped := range discovery.Skipped {
			debug.LogDetail("main", fmt.Sprintf("Skipping %s: %s", skipped.Path, skipped.Reason))
		}
	}
	if len(discovery.Files) == 0 {
		fmt.Fprintf(stderr, "Error: no supported property files found (supported: %s)\n", strings.Join(source.Extensions, ", "))
		return exitNoFiles
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	builder := history.NewBuilder(final.vocab, history.WithOrder(final.order), history.WithObserver(observer))
	processor := parallel.NewParallelProcessor(final.workers, observer)

	var progress parallel.ProgressCallback
	showProgress := !final.quiet && len(discovery.Files) > 1 && isTerminal(stderr)
	if showProgress {
		progress = func(completed, total int, currentFile string) {
			fmt.Fprintf(stderr, "\rProcessed %d/%d: %-40s", completed, total, filepath.Base(currentFile))
		}
	}

	results, fileErrors, stats := processor.ProcessFilesWithProgress(ctx, discovery.Files, final.loader, builder, progress)
	if showProgress {
		fmt.Fprintln(stderr)
	}

	for _, fe := range fileErrors {
		fmt.Fprintf(stderr, "Error: %v\n", fe)
	}

	rendered, err := formatters.Export(final.format, results, formatters.FormatterOptions{
		NoColor: final.noColor || final.output != "",
		Verbose: final.verbose,
		Compact: final.compact,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	if err := writeOutput(rendered, final.output, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	if !final.quiet && final.output != "" {
		fmt.Fprintf(stderr, "Wrote %d properties to %s\n", stats.ProcessedFiles, final.output)
	}

	if len(fileErrors) > 0 {
		return exitFailure
	}
	return exitOK
}

// writeOutput writes rendered output to path, or to stdout when path is empty
func writeOutput(rendered, path string, stdout io.Writer) error {
	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}
	if path == "" {
		_, err := io.WriteString(stdout, rendered)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
