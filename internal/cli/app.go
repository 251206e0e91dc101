// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cos-it/enrollhelper/internal/catalog"
	"github.com/cos-it/enrollhelper/internal/config"
	"github.com/cos-it/enrollhelper/internal/enroll"
	"github.com/cos-it/enrollhelper/internal/logging"
	"github.com/cos-it/enrollhelper/internal/privileged"
	"github.com/cos-it/enrollhelper/internal/textmode"
	"github.com/cos-it/enrollhelper/internal/ui/wizard"
)

// App holds the process-level collaborators. Tests replace the hooks.
type App struct {
	Version string
	Stdout  io.Writer
	Stderr  io.Writer

	// Interactive reports whether the full-screen interface can run.
	Interactive func() bool
	// NewPrompter opens the text-mode input.
	NewPrompter func() textmode.Prompter
	// RunTUI runs the full-screen model to completion.
	RunTUI func(ctx context.Context, m *wizard.Model, altScreen bool) error
	// Runner, when set, replaces the configured executor.
	Runner privileged.Runner
}

// NewApp returns an App bound to the real terminal.
func NewApp(version string, stdout, stderr io.Writer) *App {
	return &App{
		Version:     version,
		Stdout:      stdout,
		Stderr:      stderr,
		Interactive: interactive,
		NewPrompter: func() textmode.Prompter { return textmode.NewPrompter(os.Stdin, stdout) },
		RunTUI:      runProgram,
	}
}

// Run performs one enrollment.
func (a *App) Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return configError(err)
	}

	textMode := opts.Text || !a.Interactive()

	logger, closeLog, err := a.buildLogger(cfg, textMode)
	if err != nil {
		return configError(err)
	}
	defer closeLog()
	logger, _ = logging.WithRunID(logger)
	logger.Info("enrollhelper starting", "version", a.Version, "text_mode", textMode, "dry_run", opts.DryRun)

	cat, err := catalog.LoadOrDefault(cfg.Catalog.Path)
	if err != nil {
		logger.Warn("reference table unavailable, using fallback", "error", err)
	}

	wiz := enroll.New(enroll.Options{
		Runner:  a.runner(cfg, opts.DryRun),
		Command: commandSpec(cfg),
		Catalog: cat,
		Logger:  logger,
	})
	unsubscribe := wiz.Subscribe(func(ev enroll.Event) {
		if ev.From != ev.To {
			logger.Debug("wizard transition", "from", ev.From.String(), "to", ev.To.String())
		}
	})
	defer unsubscribe()

	if textMode {
		err = a.runText(ctx, wiz, cat, cfg)
	} else {
		err = a.runFullScreen(ctx, wiz, cat, cfg)
	}
	if err != nil {
		if !errors.Is(err, textmode.ErrCancelled) {
			logger.Error("front end failed", "error", err)
		}
		return &ExitError{Code: ExitEnrollmentFailed, Err: err}
	}

	if !wiz.Succeeded() {
		return &ExitError{Code: ExitEnrollmentFailed, Err: ErrEnrollmentFailed, Quiet: wiz.State() == enroll.StateDone}
	}
	logger.Info("enrollhelper finished")
	return nil
}

// loadConfig reads the configuration and applies flag overrides.
func loadConfig(opts Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.CatalogPath != "" {
		cfg.Catalog.Path = opts.CatalogPath
	}
	if opts.LogFile != "" {
		cfg.Log.File = opts.LogFile
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// buildLogger picks the log destination. Without a log file the full-screen
// interface discards records and text mode reports warnings on stderr.
func (a *App) buildLogger(cfg *config.Config, textMode bool) (*slog.Logger, func(), error) {
	if cfg.Log.File != "" {
		logger, closer, err := logging.OpenFile(cfg.Log.File, cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return nil, nil, err
		}
		return logger, func() { closer.Close() }, nil
	}
	if textMode {
		logger, err := logging.New(a.Stderr, "warn", cfg.Log.Format)
		if err != nil {
			return nil, nil, err
		}
		return logger, func() {}, nil
	}
	return logging.Discard(), func() {}, nil
}

func (a *App) runner(cfg *config.Config, dryRun bool) privileged.Runner {
	if a.Runner != nil {
		return a.Runner
	}
	exe := &privileged.SudoExecutor{
		Shell:         cfg.Command.Shell,
		Wrapper:       cfg.Command.Wrapper,
		MaxOutputSize: cfg.Command.MaxOutputBytes,
	}
	if exe.Shell == "" {
		exe.Shell = privileged.DefaultShell()
	}
	if dryRun {
		return privileged.DryRunExecutor{Executor: exe}
	}
	return exe
}

func commandSpec(cfg *config.Config) enroll.CommandSpec {
	return enroll.CommandSpec{
		Executable:      cfg.Command.Executable,
		Subcommand:      cfg.Command.Subcommand,
		BuildingPrefix:  cfg.Command.BuildingPrefix,
		GroupPrefix:     cfg.Command.GroupPrefix,
		OtherDepartment: catalog.OtherDepartment,
		OtherGroup:      cfg.Command.OtherGroup,
		Overrides:       cfg.Groups,
	}
}

// =============================================================================
// FRONT ENDS
// =============================================================================

func (a *App) runText(ctx context.Context, wiz *enroll.Wizard, cat *catalog.Catalog, cfg *config.Config) error {
	prompter := a.NewPrompter()
	defer prompter.Close()

	session := textmode.NewSession(wiz, cat, prompter, a.Stdout, textmode.Options{
		Title:              cfg.UI.Title,
		AcknowledgeMessage: cfg.UI.AcknowledgeMessage,
		SubmittingNotice:   cfg.UI.SubmittingNotice,
		Color:              IsStdoutTTY(),
	})
	return session.Run(ctx)
}

func (a *App) runFullScreen(ctx context.Context, wiz *enroll.Wizard, cat *catalog.Catalog, cfg *config.Config) error {
	m := wizard.New(wiz, cat, wizard.Options{
		Title:              cfg.UI.Title,
		AcknowledgeMessage: cfg.UI.AcknowledgeMessage,
		SubmittingNotice:   cfg.UI.SubmittingNotice,
		Context:            ctx,
	})
	err := a.RunTUI(ctx, m, cfg.UI.AltScreen)
	wiz.ClearCredential()
	if err != nil {
		return err
	}
	return m.Err()
}

// runProgram runs m as a Bubble Tea program. Mouse capture stays off so the
// operator can select and copy the diagnostic output.
func runProgram(ctx context.Context, m *wizard.Model, altScreen bool) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}
