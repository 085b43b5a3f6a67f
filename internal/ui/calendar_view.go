package ui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-dashtyar/internal/calendar"
	"github.com/tartampluch/go-dashtyar/internal/config"
)

// BuildWindow creates the main window and draws the reference month.
func (app *DashtyarApp) BuildWindow() {
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	app.Window = w

	w.SetContent(app.buildContent())
	app.renderMonth()
}

// buildContent lays out the toolbar, the weekday header and the day grid.
func (app *DashtyarApp) buildContent() fyne.CanvasObject {
	cw := &app.widgets

	cw.title = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	cw.status = widget.NewLabel("")
	cw.status.Wrapping = fyne.TextWrapWord

	cw.prevBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnPrev), theme.NavigateBackIcon(), func() {
		app.Navigate(-1)
	})
	cw.nextBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnNext), theme.NavigateNextIcon(), func() {
		app.Navigate(1)
	})
	cw.todayBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnToday), theme.HomeIcon(), app.GotoToday)
	cw.toggleBtn = widget.NewButton("", app.ToggleSystem)

	cw.langSel = app.languageSelect()

	cw.yearEntry = NewNumericalEntry()
	cw.yearEntry.SetPlaceHolder(app.GetMsg(config.TKeyHintYear))
	cw.yearEntry.OnSubmitted = func(string) { app.JumpToYear() }

	cw.weekdays = container.NewGridWithColumns(config.GridColumns)
	cw.grid = container.NewGridWithColumns(config.GridColumns)

	nav := container.NewHBox(cw.prevBtn, layout.NewSpacer(), cw.title, layout.NewSpacer(), cw.nextBtn)
	tools := container.NewBorder(nil, nil, cw.todayBtn, container.NewHBox(cw.langSel, cw.toggleBtn), cw.yearEntry)
	top := container.NewVBox(nav, tools, cw.weekdays)

	return container.NewBorder(top, cw.status, nil, nil, cw.grid)
}

// languageSelect lists the loaded languages by their own names.
func (app *DashtyarApp) languageSelect() *widget.Select {
	codes := make(map[string]string, len(app.SupportedLanguages))
	names := make([]string, 0, len(app.SupportedLanguages))
	for _, code := range app.SupportedLanguages {
		name := languageName(code)
		codes[name] = code
		names = append(names, name)
	}

	sel := widget.NewSelect(names, nil)
	sel.Selected = languageName(app.lang)
	sel.OnChanged = func(name string) { app.SetLanguage(codes[name]) }
	return sel
}

// renderMonth rebuilds the grid from the current reference, system and notes.
func (app *DashtyarApp) renderMonth() {
	cw := &app.widgets
	if cw.grid == nil {
		return
	}
	log := slog.With(config.LogKeyComponent, config.CompUI)

	snap := app.Snapshot()
	view, err := calendar.Builder{Clock: app.Clock}.Build(app.selection.Reference, app.system, snap.HasNotes)
	if err != nil {
		log.Error(config.ErrMonthBuild,
			config.LogKeyDate, app.selection.Reference.String(),
			config.LogKeyCalendar, app.system.String(),
			config.LogKeyError, err,
		)
		if app.Window != nil {
			dialog.ShowError(fmt.Errorf("%s: %w", app.GetMsg(config.TKeyErrRender), err), app.Window)
		}
		return
	}
	app.view = view

	cw.title.SetText(view.MonthName + " " + view.YearLabel)
	cw.toggleBtn.SetText(app.getMsgData(config.TKeyBtnToggle,
		map[string]any{"Name": app.system.Other().DisplayName()}, nil))

	labels := make([]fyne.CanvasObject, 0, len(view.WeekdayLabels))
	for _, l := range view.WeekdayLabels {
		labels = append(labels, widget.NewLabelWithStyle(l, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}))
	}
	cw.weekdays.Objects = labels
	cw.weekdays.Refresh()

	marked := 0
	cells := make([]fyne.CanvasObject, 0, len(view.Cells))
	for _, c := range view.Cells {
		if c.HasNotes {
			marked++
		}
		cells = append(cells, app.cellWidget(c))
	}
	cw.grid.Objects = cells
	cw.grid.Refresh()

	app.updateStatus(marked)

	log.Debug(config.MsgMonthRendered,
		config.LogKeyCalendar, view.System.String(),
		config.LogKeyYear, view.Year,
		config.LogKeyMonth, view.MonthIndex,
		config.LogKeyCount, marked,
	)
}

// cellWidget returns a blank label for padding or a tappable day button.
func (app *DashtyarApp) cellWidget(c calendar.Cell) fyne.CanvasObject {
	if c.Kind == calendar.CellEmpty {
		return widget.NewLabel(config.MarkerNone)
	}

	label := strconv.Itoa(c.Day)
	if c.HasNotes {
		label += config.MarkerHasNotes
	}

	key := c.Key
	btn := widget.NewButton(label, func() { app.OpenDay(key) })
	switch {
	case c.IsToday:
		btn.Importance = widget.HighImportance
	case app.selection.HasSelect && app.selection.Selected == key:
		btn.Importance = widget.WarningImportance
	}
	return btn
}

// updateStatus shows the selected day and how many days of the month have notes.
func (app *DashtyarApp) updateStatus(marked int) {
	var parts []string
	if app.selection.HasSelect {
		if s, err := calendar.FormatDisplay(app.selection.Selected, app.system); err == nil {
			parts = append(parts, app.getMsgData(config.TKeyLblSelected, map[string]any{"Date": s}, nil))
		}
	} else {
		parts = append(parts, app.GetMsg(config.TKeyLblNoSelected))
	}
	parts = append(parts, app.getMsgData(config.TKeyNotesCount, map[string]any{"Count": marked}, marked))

	app.showStatus(strings.Join(parts, config.StatusSeparator))
}

func (app *DashtyarApp) showStatus(msg string) {
	if app.widgets.status != nil {
		app.widgets.status.SetText(msg)
	}
}

// Navigate moves the reference by delta months of the active system.
func (app *DashtyarApp) Navigate(delta int) {
	ref, err := calendar.Advance(app.selection.Reference, app.system, delta)
	if err != nil {
		slog.Warn(config.ErrMonthNavigate,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyDelta, delta,
			config.LogKeyError, err,
		)
		app.showYearRange()
		return
	}

	slog.Debug(config.MsgNavigate,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyDelta, delta,
		config.LogKeyDate, ref.String(),
	)
	app.selection.Reference = ref
	app.renderMonth()
}

// GotoToday returns to the current month and clears the selection.
func (app *DashtyarApp) GotoToday() {
	app.selection = calendar.GotoToday(app.Clock)
	app.renderMonth()
}

// ToggleSystem flips between Gregorian and Jalali and remembers the choice.
func (app *DashtyarApp) ToggleSystem() {
	app.system = app.system.Other()
	app.Preferences.SetString(config.PrefCalendarSystem, app.system.String())

	slog.Info(config.MsgToggleSystem,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCalendar, app.system.String(),
	)
	app.renderMonth()
}

// JumpToYear moves to the first month of the year typed in the year entry.
func (app *DashtyarApp) JumpToYear() {
	year, ok := app.widgets.yearEntry.Value()
	if !ok {
		return
	}

	d := calendar.Date{System: app.system, Year: year, Month: 1, Day: 1}
	if app.system == calendar.Jalali {
		d.Month = 0
	}
	ref, err := d.Key()
	if err != nil {
		app.showYearRange()
		return
	}

	slog.Debug(config.MsgYearJump,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyYear, year,
	)
	app.widgets.yearEntry.SetText("")
	app.selection.Reference = ref
	app.renderMonth()
}

func (app *DashtyarApp) showYearRange() {
	lo, hi := calendar.MinGregorianYear, calendar.MaxGregorianYear
	if app.system == calendar.Jalali {
		lo, hi = calendar.MinJalaliYear, calendar.MaxJalaliYear
	}
	app.showStatus(app.getMsgData(config.TKeyErrYear, map[string]any{"Min": lo, "Max": hi}, nil))
}

// OpenDay selects k and shows its notes in a dialog.
func (app *DashtyarApp) OpenDay(k calendar.DateKey) {
	app.selection = app.selection.Select(k)
	app.renderMonth()

	title, err := calendar.FormatDisplay(k, app.system)
	if err != nil {
		title = k.String()
	}

	slog.Debug(config.MsgDayOpened,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyDate, k.String(),
	)

	if app.dayDialog != nil {
		app.dayDialog.Hide()
	}
	d := dialog.NewCustom(
		app.getMsgData(config.TKeyDayTitle, map[string]any{"Date": title}, nil),
		app.GetMsg(config.TKeyBtnClose),
		app.dayBody(k),
		app.Window,
	)
	d.Resize(fyne.NewSize(config.DayDialogWidth, config.DayDialogHeight))
	d.Show()
	app.dayDialog = d
}

// dayBody lists the notes of k, newest first, or a placeholder.
func (app *DashtyarApp) dayBody(k calendar.DateKey) fyne.CanvasObject {
	list := app.Snapshot().ForDate(k)
	if len(list) == 0 {
		return widget.NewLabel(app.GetMsg(config.TKeyDayEmpty))
	}

	items := container.NewVBox()
	for i, n := range list {
		if i > 0 {
			items.Add(widget.NewSeparator())
		}
		items.Add(widget.NewLabelWithStyle(n.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		if n.Content != "" {
			body := widget.NewLabel(n.Content)
			body.Wrapping = fyne.TextWrapWord
			items.Add(body)
		}
	}
	return container.NewVScroll(items)
}
