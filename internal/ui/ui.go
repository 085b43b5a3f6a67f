package ui

import (
	"context"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-dashtyar/internal/calendar"
	"github.com/tartampluch/go-dashtyar/internal/config"
	"github.com/tartampluch/go-dashtyar/internal/notes"
	"github.com/tartampluch/go-dashtyar/internal/refresh"
	"github.com/tartampluch/go-dashtyar/internal/server"
)

// DashtyarApp encapsulates the UI state, preferences, and background logic.
type DashtyarApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context
	Settings    config.Settings

	Server    *server.DashboardServer
	Refresher *refresh.Refresher
	Clock     calendar.Clock // Injected clock for testability (e.g. mocking time travel)

	SupportedLanguages []string
	lang               string

	// Calendar state, owned by the UI goroutine.
	selection calendar.Selection
	system    calendar.System
	view      calendar.MonthView

	// The snapshot is written by the refresh goroutine.
	snapMut  sync.RWMutex
	snapshot *notes.Snapshot

	widgets   calendarWidgets
	dayDialog *dialog.CustomDialog
}

// calendarWidgets holds references to the month window elements.
type calendarWidgets struct {
	title     *widget.Label
	status    *widget.Label
	prevBtn   *widget.Button
	nextBtn   *widget.Button
	todayBtn  *widget.Button
	toggleBtn *widget.Button
	langSel   *widget.Select
	yearEntry *NumericalEntry
	weekdays  *fyne.Container
	grid      *fyne.Container
}

// NewDashtyarApp constructs the application and wires dependencies.
// The refresher's callbacks are pointed at the window.
func NewDashtyarApp(a fyne.App, ctx context.Context, settings config.Settings, srv *server.DashboardServer, r *refresh.Refresher) *DashtyarApp {
	app := &DashtyarApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Settings:           settings,
		Server:             srv,
		Refresher:          r,
		Clock:              calendar.RealClock{}, // Default to real clock in production
		SupportedLanguages: config.SupportedLanguages,
	}

	if r != nil {
		r.OnSnapshot = func(s *notes.Snapshot) {
			fyne.Do(func() { app.applySnapshot(s) })
		}
		r.OnDayChange = func() {
			fyne.Do(app.renderMonth)
		}
	}
	return app
}

// Run launches the application services and the main UI loop.
func (app *DashtyarApp) Run() {
	app.SetupI18n()
	app.loadSystem()
	app.selection = calendar.GotoToday(app.Clock)
	app.BuildWindow()

	if app.Server != nil {
		go func() {
			if err := app.Server.Start(app.Ctx); err != nil {
				slog.Error(config.ErrServerStartup,
					config.LogKeyError, err,
					config.LogKeyComponent, config.CompUI)
			}
		}()
	}

	if app.Refresher != nil {
		go app.backgroundWorker()
	}

	go func() {
		<-app.Ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompUI)
		fyne.Do(app.App.Quit)
	}()

	app.Window.ShowAndRun()
}

// backgroundWorker loads the notes once, then follows the refresh schedule.
func (app *DashtyarApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	if _, err := app.Refresher.Run(); err != nil {
		log.Error(config.ErrRefresh, config.LogKeyError, err)
		fyne.Do(func() { app.showStatus(app.GetMsg(config.TKeyErrNotesLoad)) })
	}

	if err := app.Refresher.Schedule(app.Ctx, app.Settings.Refresh); err != nil {
		log.Error(config.ErrSchedulerAdd, config.LogKeyError, err)
	}
}

// loadSystem restores the calendar toggle, falling back to the settings file.
func (app *DashtyarApp) loadSystem() {
	pref := app.Preferences.StringWithFallback(config.PrefCalendarSystem, app.Settings.Calendar)
	sys, err := calendar.ParseSystem(pref)
	if err != nil {
		slog.Warn(config.MsgBadPreference,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyKey, config.PrefCalendarSystem,
			config.LogKeyValue, pref,
		)
		sys = calendar.Jalali
	}
	app.system = sys
}

// Snapshot returns the notes currently shown.
func (app *DashtyarApp) Snapshot() *notes.Snapshot {
	app.snapMut.RLock()
	defer app.snapMut.RUnlock()
	return app.snapshot
}

// applySnapshot swaps the notes and redraws. Must run on the UI goroutine.
func (app *DashtyarApp) applySnapshot(s *notes.Snapshot) {
	app.snapMut.Lock()
	app.snapshot = s
	app.snapMut.Unlock()
	app.renderMonth()
}
