// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/cipherchart/internal/chartstyle"
	"github.com/jeranaias/cipherchart/internal/config"
	"github.com/jeranaias/cipherchart/internal/dom"
	"github.com/jeranaias/cipherchart/internal/themewatch"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// App is the state shared by every command once flags are parsed.
type App struct {
	Config *config.Config
	Logger zerolog.Logger

	// Detector decides "auto" themes. Nil means the terminal background.
	Detector themewatch.Detector

	configPath string
	theme      string
	logLevel   string
	jsonOutput bool
}

// Execute runs the command line with os.Args.
func Execute() error {
	return NewRootCmd(&App{}).Execute()
}

// NewRootCmd builds the command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "cipherchart",
		Short:         "Theme-aware charts for encryption audit results",
		Long:          "cipherchart renders encryption algorithm audit results as charts and reports that follow a light or dark theme.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			err := app.setup(cmd.ErrOrStderr())
			if err != nil && app.jsonOutput {
				return writeJSONError(cmd.OutOrStdout(), cmd.Name(), err)
			}
			return err
		},
	}
	root.SetVersionTemplate("cipherchart {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "config file (default ~/.cipherchart/config.toml)")
	flags.StringVar(&app.theme, "theme", "", "theme: light, dark or auto")
	flags.StringVar(&app.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.BoolVar(&app.jsonOutput, "json", false, "machine-readable JSON output")

	root.AddCommand(
		newPaletteCmd(app),
		newScoreCmd(app),
		newFormatCmd(app),
		newOptionsCmd(app),
		newRenderCmd(app),
		newReportCmd(app),
		newWatchCmd(app),
		newPreviewCmd(app),
		newConfigCmd(app),
		newVersionCmd(app),
	)
	wrapJSONErrors(root, app)
	return root
}

// wrapJSONErrors makes every command report RunE failures as a JSON
// envelope when --json is set.
func wrapJSONErrors(cmd *cobra.Command, app *App) {
	if run := cmd.RunE; run != nil {
		name := cmd.Name()
		cmd.RunE = func(c *cobra.Command, args []string) error {
			err := run(c, args)
			if err != nil && app.jsonOutput {
				return writeJSONError(c.OutOrStdout(), name, err)
			}
			return err
		}
	}
	for _, sub := range cmd.Commands() {
		wrapJSONErrors(sub, app)
	}
}

// setup loads the configuration, applies flag overrides and builds the
// logger. Tests may preset Config to skip loading.
func (a *App) setup(logOut io.Writer) error {
	if a.Config == nil {
		var (
			cfg *config.Config
			err error
		)
		if a.configPath != "" {
			cfg, err = config.LoadFromPath(a.configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}
		a.Config = cfg
	}

	if a.theme != "" {
		a.Config.Theme.Mode = strings.ToLower(a.theme)
	}
	if a.logLevel != "" {
		a.Config.Log.Level = strings.ToLower(a.logLevel)
	}
	if err := a.Config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	a.Logger = newLogger(logOut, a.Config.Log)
	return nil
}

// detector returns the configured detector or the terminal one.
func (a *App) detector() themewatch.Detector {
	if a.Detector != nil {
		return a.Detector
	}
	return themewatch.TerminalDetector{}
}

// newDocument creates a document whose root classes reflect the configured
// theme, with a styler observing it. The caller closes the document.
func (a *App) newDocument() (*dom.Document, *chartstyle.Styler, error) {
	doc := dom.NewDocument(dom.WithLogger(a.Logger))
	prefs := themewatch.Preferences{Theme: a.Config.Theme.Mode}
	themewatch.Apply(doc, themewatch.ClassesFor(prefs, a.detector()))

	styler := chartstyle.NewStyler(doc, a.Logger)
	if _, err := styler.Observe(doc); err != nil {
		doc.Close()
		return nil, nil, err
	}
	return doc, styler, nil
}

// themeDefaults resolves the configured theme once.
func (a *App) themeDefaults() chartstyle.Defaults {
	return chartstyle.DefaultsFor(themewatch.ResolveDark(a.Config.Theme.Mode, a.detector()))
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := map[string]string{
				"version":    Version,
				"git_commit": GitCommit,
				"build_date": BuildDate,
			}
			if app.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), "version", info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cipherchart %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
			return nil
		},
	}
}

// exitCode is used by main on error.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// Main runs Execute and reports the error on stderr.
func Main() int {
	err := Execute()
	if err != nil && !isReported(err) {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error:"), err)
	}
	return exitCode(err)
}
