package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-dashtyar/internal/calendar"
	"github.com/tartampluch/go-dashtyar/internal/config"
	"github.com/tartampluch/go-dashtyar/internal/notes"
	"github.com/tartampluch/go-dashtyar/internal/refresh"
	"github.com/tartampluch/go-dashtyar/internal/server"
	"github.com/tartampluch/go-dashtyar/internal/terminal"
	"github.com/tartampluch/go-dashtyar/internal/ui"
)

// cliState carries the persistent flags and the log file across commands.
type cliState struct {
	debug        bool
	settingsPath string
	closer       io.Closer
}

func (c *cliState) close() {
	if c.closer != nil {
		_ = c.closer.Close() // Best effort close
	}
}

// prepare starts logging on console and loads the settings file.
func (c *cliState) prepare(cmd *cobra.Command, console io.Writer) (*config.Settings, error) {
	c.closer = setupLogging(c.debug, console)
	logStartupInfo(cmd.Name())

	path := c.settingsPath
	if path == "" {
		p, err := config.DefaultSettingsPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	s, err := config.LoadSettings(path)
	if err != nil {
		if s == nil {
			return nil, err
		}
		// Defaults could not be written; they still work for this run.
		slog.Warn(config.ErrSettingsWrite,
			config.LogKeyComponent, config.CompSettings,
			config.LogKeyPath, path,
			config.LogKeyError, err,
		)
	}
	return s, nil
}

func newRootCmd(cli *cliState) *cobra.Command {
	root := &cobra.Command{
		Use:           config.CommandName,
		Short:         config.CmdShortRoot,
		Version:       config.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := cli.prepare(cmd, os.Stdout)
			if err != nil {
				return err
			}
			return runGUI(cmd.Context(), *s)
		},
	}
	root.SetVersionTemplate(config.MsgVersionTemplate)

	root.PersistentFlags().BoolVar(&cli.debug, config.FlagDebug, false, config.FlagDescDebug)
	root.PersistentFlags().StringVar(&cli.settingsPath, config.FlagSettings, "", config.FlagDescSettings)

	root.AddCommand(newMonthCmd(cli))
	root.AddCommand(newServeCmd(cli))
	return root
}

// runGUI wires the window, the server and the refresher, then blocks until
// the window closes.
func runGUI(ctx context.Context, s config.Settings) error {
	sys, err := calendar.ParseSystem(s.Calendar)
	if err != nil {
		return err
	}

	a := app.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	srv := server.NewDashboardServer(s.Port, sys)
	r := &refresh.Refresher{Source: notes.FileSource{Path: s.NotesPath}, Server: srv}

	ui.NewDashtyarApp(a, ctx, s, srv, r).Run()
	return nil
}

// monthOptions are the flags of the month command. Empty strings fall back
// to the settings file.
type monthOptions struct {
	calendar  string
	date      string
	delta     int
	notesPath string
	noColor   bool
	clock     calendar.Clock
}

func newMonthCmd(cli *cliState) *cobra.Command {
	opts := &monthOptions{}
	cmd := &cobra.Command{
		Use:   config.CmdUseMonth,
		Short: config.CmdShortMonth,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Logs go to stderr so stdout only carries the grid.
			s, err := cli.prepare(cmd, os.Stderr)
			if err != nil {
				return err
			}
			if opts.calendar == "" {
				opts.calendar = s.Calendar
			}
			if opts.notesPath == "" {
				opts.notesPath = s.NotesPath
			}
			return runMonth(cmd.OutOrStdout(), *opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.calendar, config.FlagCalendar, "", config.FlagDescCalendar)
	f.StringVar(&opts.date, config.FlagDate, "", config.FlagDescDate)
	f.IntVar(&opts.delta, config.FlagDelta, 0, config.FlagDescDelta)
	f.StringVar(&opts.notesPath, config.FlagNotes, "", config.FlagDescNotes)
	f.BoolVar(&opts.noColor, config.FlagNoColor, false, config.FlagDescNoColor)
	return cmd
}

// runMonth prints one month to w.
func runMonth(w io.Writer, opts monthOptions) error {
	sys, err := calendar.ParseSystem(opts.calendar)
	if err != nil {
		return err
	}

	clock := opts.clock
	if clock == nil {
		clock = calendar.RealClock{}
	}

	ref := calendar.Today(clock)
	if opts.date != "" {
		if ref, err = calendar.ParseDateKey(opts.date); err != nil {
			return err
		}
	}
	if opts.delta != 0 {
		if ref, err = calendar.Advance(ref, sys, opts.delta); err != nil {
			return fmt.Errorf("%s: %w", config.ErrMonthNavigate, err)
		}
	}

	var snap *notes.Snapshot
	if opts.notesPath != "" {
		if snap, err = (notes.FileSource{Path: opts.notesPath}).Load(); err != nil {
			return err
		}
	}

	view, err := calendar.Builder{Clock: clock}.Build(ref, sys, snap.HasNotes)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrMonthBuild, err)
	}

	if opts.noColor {
		color.NoColor = true
	}
	return terminal.Render(w, view)
}

func newServeCmd(cli *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdUseServe,
		Short: config.CmdShortServe,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := cli.prepare(cmd, os.Stdout)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), *s)
		},
	}
}

// runServe serves the month API and the feed until ctx is cancelled.
func runServe(ctx context.Context, s config.Settings) error {
	sys, err := calendar.ParseSystem(s.Calendar)
	if err != nil {
		return err
	}

	srv := server.NewDashboardServer(s.Port, sys)
	r := &refresh.Refresher{Source: notes.FileSource{Path: s.NotesPath}, Server: srv}

	if _, err := r.Run(); err != nil {
		slog.Error(config.ErrRefresh,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
	}

	go func() {
		if err := r.Schedule(ctx, s.Refresh); err != nil {
			slog.Error(config.ErrSchedulerAdd,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyError, err,
			)
		}
	}()

	return srv.Start(ctx)
}
