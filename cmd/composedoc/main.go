// Package main provides the CLI entry point for composedoc, a tool that
// generates Markdown documentation for environment variables declared in
// Docker Compose files.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/composedoc/compose"
	"go.jacobcolvin.com/composedoc/log"
	"go.jacobcolvin.com/composedoc/markdown"
	"go.jacobcolvin.com/composedoc/profile"
	"go.jacobcolvin.com/composedoc/version"
)

// Environment variables consulted when no paths are given on the command
// line. Both hold semicolon-separated lists.
const (
	envPaths = "COMPOSEDOC_PATHS"
	envGlobs = "COMPOSEDOC_GLOBS"
)

// defaultSearchPaths are consulted when neither arguments nor environment
// variables supply inputs.
var defaultSearchPaths = []string{"/data", "/src", "."}

func main() {
	composeCfg := compose.NewConfig()
	logCfg := log.NewConfig()
	profileCfg := profile.NewConfig()
	profiler := profileCfg.NewProfiler()

	rootCmd := &cobra.Command{
		Use:   "composedoc [flags] [file-or-directory ...]",
		Short: "Generate Markdown documentation for Compose environment variables",
		Long: `composedoc extracts "# --" documentation comments for environment
variables from Docker Compose files and renders them as Markdown tables,
grouped by file, service, and property.

Inputs are resolved in precedence order: command-line paths, then the
COMPOSEDOC_PATHS / COMPOSEDOC_GLOBS environment variables
(semicolon-separated), then the default search paths (/data, /src, .).`,
		Args:          cobra.ArbitraryArgs,
		Version:       version.Info(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return profiler.Start()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := setupLogging(cmd, logCfg)
			if err != nil {
				return err
			}

			return run(composeCfg, args, cmd.OutOrStdout())
		},
	}

	composeCfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profileCfg.RegisterFlags(rootCmd.PersistentFlags())

	for _, register := range []func(*cobra.Command) error{
		composeCfg.RegisterCompletions,
		logCfg.RegisterCompletions,
		profileCfg.RegisterCompletions,
	} {
		completionErr := register(rootCmd)
		if completionErr != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
		}
	}

	err := rootCmd.Execute()

	stopErr := profiler.Stop()
	if stopErr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", stopErr)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// setupLogging installs the default slog logger. When the format flag is
// untouched and stderr is not a terminal, logfmt replaces the text format
// so redirected diagnostics stay machine-readable.
func setupLogging(cmd *cobra.Command, cfg *log.Config) error {
	format := cfg.Format
	if !cmd.Flags().Changed(cfg.Flags.Format) && !term.IsTerminal(int(os.Stderr.Fd())) {
		format = string(log.FormatLogfmt)
	}

	handler, err := log.NewHandlerFromStrings(os.Stderr, cfg.Level, format)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))

	return nil
}

func run(cfg *compose.Config, args []string, stdout io.Writer) error {
	files, err := resolveInputs(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return errors.New(
			"no compose files found; pass paths, set " + envPaths + " or " +
				envGlobs + ", or run near a compose file")
	}

	parser, err := cfg.NewParser()
	if err != nil {
		return err
	}

	var docs []*compose.ServicesDoc

	for _, file := range files {
		doc, parseErr := parser.ParseFile(file)
		if parseErr != nil {
			slog.Warn("skipping file",
				slog.String("file", file),
				slog.Any("error", parseErr),
			)

			continue
		}

		for _, warning := range doc.Warnings {
			slog.Warn(warning, slog.String("file", file))
		}

		// Files with nothing documented are excluded from the output.
		if len(doc.Services) == 0 {
			continue
		}

		docs = append(docs, doc)
	}

	return writeOutput(cfg.Output, markdown.NewGenerator().Generate(docs), stdout)
}

// resolveInputs applies the input precedence order and returns the compose
// files to process.
func resolveInputs(args []string) ([]string, error) {
	if len(args) > 0 {
		return compose.CollectComposeFiles(args), nil
	}

	pathsEnv, pathsSet := os.LookupEnv(envPaths)
	globsEnv, globsSet := os.LookupEnv(envGlobs)

	if !pathsSet && !globsSet {
		return compose.CollectComposeFiles(defaultSearchPaths), nil
	}

	var files []string

	if pathsSet {
		paths := compose.SplitPathList(pathsEnv)
		if len(paths) == 0 {
			return nil, fmt.Errorf("%s is set but empty", envPaths)
		}

		files = append(files, compose.CollectComposeFiles(paths)...)
	}

	if globsSet {
		globs := compose.SplitPathList(globsEnv)
		if len(globs) == 0 {
			return nil, fmt.Errorf("%s is set but empty", envGlobs)
		}

		files = append(files, compose.CollectComposeFilesFromGlobs(globs)...)
	}

	return compose.DedupePaths(files), nil
}

func writeOutput(path, content string, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(stdout, content)

		return err
	}

	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
