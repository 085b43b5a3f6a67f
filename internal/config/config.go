package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP server in responses and logs.
var UserAgent = "Dashtyar/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Dashtyar"
	AppID             = "com.github.tartampluch.go-dashtyar"
	CommandName       = "dashtyar"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	SettingsFileName  = "settings.yaml"
	NotesFileName     = "notes.json"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and the settings file.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Commands, Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	CmdShortRoot  = "Notes, bookmarks and a Gregorian/Jalali calendar dashboard"
	CmdShortMonth = "Print a month grid to the terminal"
	CmdShortServe = "Serve the month API and the notes calendar feed without a window"
	CmdUseMonth   = "month"
	CmdUseServe   = "serve"

	FlagDebug    = "debug"
	FlagSettings = "settings"
	FlagCalendar = "calendar"
	FlagDate     = "date"
	FlagDelta    = "delta"
	FlagNotes    = "notes"
	FlagNoColor  = "no-color"

	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescSettings = "Path to the settings file"
	FlagDescCalendar = "Calendar system: gregorian or jalali"
	FlagDescDate     = "Reference day as YYYY-MM-DD (default: today)"
	FlagDescDelta    = "Months to move from the reference day"
	FlagDescNotes    = "Path to the notes JSON file"
	FlagDescNoColor  = "Disable colored output"

	MsgVersionTemplate = "{{.Name}} version {{.Version}}\n"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth  = 460
	MainWindowHeight = 520
	DayDialogWidth   = 380
	DayDialogHeight  = 300
	GridColumns      = 7

	// Preference Keys
	PrefCalendarSystem = "calendar_system"
	PrefLanguage       = "language"
	PrefLastRun        = "last_run_version"

	// Markers appended to day labels in the grid.
	MarkerHasNotes = " •"
	MarkerNone     = ""

	// StatusSeparator joins the parts of the status line.
	StatusSeparator = " · "

	// MarkerTerminalNotes follows a day with notes in the terminal grid.
	MarkerTerminalNotes = "*"
	// FormatTerminalToday is the footer under the terminal grid.
	FormatTerminalToday = "Today: %s"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fa"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle      = "win_title"
	TKeyBtnToday      = "btn_today"
	TKeyBtnPrev       = "btn_prev"
	TKeyBtnNext       = "btn_next"
	TKeyBtnToggle     = "btn_toggle" // Requires Name (target system)
	TKeyBtnClose      = "btn_close"
	TKeyDayTitle      = "day_title" // Requires Date
	TKeyDayEmpty      = "day_empty"
	TKeyNotesCount    = "notes_count" // Requires Count
	TKeyErrRender     = "err_render"
	TKeyErrNotesLoad  = "err_notes_load"
	TKeyLblSelected   = "lbl_selected" // Requires Date
	TKeyLblNoSelected = "lbl_no_selection"
	TKeyHintYear      = "hint_year"
	TKeyErrYear       = "err_year" // Requires Min and Max
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	CalendarGregorian  = "gregorian"
	CalendarJalali     = "jalali"
	DefaultCalendar    = CalendarJalali
	DefaultPort        = "18081"
	DefaultLanguage    = "fa"
	DefaultRefreshCron = "*/5 * * * *"
	MidnightCron       = "@midnight"

	// WelcomeNoteTitle/Content seed the notes list when no file exists yet.
	WelcomeNoteID      = 1
	WelcomeNoteTitle   = "خوش آمدید"
	WelcomeNoteContent = "به دشتیار خوش آمدید! این یک یادداشت نمونه است."
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Dashtyar//Notes//EN"
	ICalCalName = "Dashtyar Notes"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "dashtyar"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	DefaultICalRefresh = 1 * time.Hour

	// FormatUID expects the note ID and the domain.
	FormatUID = "note-%d@%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	AddrSeparator      = ":"

	RouteFeed   = "/notes.ics"
	RouteMonth  = "/api/month"
	RouteHealth = "/health"

	QueryCalendar = "calendar"
	QueryDate     = "date"
	QueryDelta    = "delta"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderServer          = "Server"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"
	CacheControlNoStore = "no-store"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 0 and 65535"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrConfigDir        = "could not determine user config dir"
	ErrCreateDir        = "could not create app directory"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrTerminalWrite    = "failed to write month grid"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrSettingsPath     = "settings path is empty"
	ErrSettingsRead     = "failed to read settings"
	ErrSettingsParse    = "failed to parse settings"
	ErrSettingsWrite    = "failed to write settings"
	ErrSettingsCalendar = "unsupported calendar system"
	ErrSettingsLanguage = "unsupported language"
	ErrSettingsCron     = "invalid refresh schedule"
	ErrNotesRead        = "failed to read notes"
	ErrNotesParse       = "failed to parse notes"
	ErrMonthBuild       = "failed to build month view"
	ErrMonthNavigate    = "failed to navigate month"
	ErrBadQuery         = "invalid query parameter"
	ErrSchedulerAdd     = "failed to schedule refresh job"
	ErrRefresh          = "notes refresh failed"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgOK           = "ok"
)

// -----------------------------------------------------------------------------
// Messages
// -----------------------------------------------------------------------------

const (
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgAppStop         = "Application stopped gracefully"
	MsgAppStarting     = "Starting application"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgCacheUpdated    = "Notes snapshot updated"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgSettingsCreate  = "Settings file created with defaults"
	MsgSettingsLoaded  = "Settings loaded"
	MsgNotesLoaded     = "Notes loaded"
	MsgNotesMissing    = "Notes file not found, using welcome note"
	MsgNoteBadDate     = "Skipping note with malformed date"
	MsgRefreshRun      = "Refresh job running"
	MsgSchedulerStart  = "Refresh scheduler started"
	MsgSchedulerStop   = "Refresh scheduler stopped"
	MsgMonthRendered   = "Month view rendered"
	MsgNavigate        = "Month navigation"
	MsgToggleSystem    = "Calendar system toggled"
	MsgLanguageChanged = "UI language changed"
	MsgDayOpened       = "Day opened"
	MsgFeedGenerated   = "Notes feed generated"
	MsgBadPreference   = "Ignoring invalid preference"
	MsgYearJump        = "Year jump"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyPath      = "path"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyCalendar  = "calendar"
	LogKeyDate      = "date"
	LogKeyDelta     = "delta"
	LogKeyYear      = "year"
	LogKeyMonth     = "month"
	LogKeyCount     = "count"
	LogKeyDated     = "dated"
	LogKeyID        = "id"
	LogKeyValue     = "value"
	LogKeySpec      = "spec"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyCommand = "command"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompNotes    = "notes"
	CompFeed     = "feed"
	CompServer   = "server"
	CompWorker   = "worker"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompSettings = "settings"
	CompTerminal = "terminal"
)
