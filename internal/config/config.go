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

// UserAgent identifies the HTTP server in response headers.
var UserAgent = "Go-Kronometer/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName            = "Kronometer"
	AppID              = "com.github.tartampluch.go-kronometer"
	CmdName            = "kronometer"
	LogFileName        = "kronometer.log"
	SettingsFileName   = "kronometer.yaml"
	SettingsTempPrefix = ".kronometer-settings-*.tmp"
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
	// Used for the settings file and logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagConfig   = "config"
	FlagDebug    = "debug"
	FlagVersion  = "version"
	FlagStyle    = "style"
	FlagTime     = "time"
	FlagSeconds  = "seconds"
	FlagFormat   = "format"
	FlagDays     = "days"
	FlagYears    = "years"
	FlagValues   = "values"
	FlagExplicit = "explicit"
	FlagAbs      = "abs"
	FlagFrom     = "from"
	FlagOut      = "out"

	FlagDescConfig   = "Path to the settings file"
	FlagDescDebug    = "Enable debug logging"
	FlagDescVersion  = "Print version information and exit"
	FlagDescStyle    = "Date style: date, new or compact"
	FlagDescTime     = "Include the time of day"
	FlagDescSeconds  = "Include seconds"
	FlagDescFormat   = "Time format: long, stamp, stamp-compact, significant, compact, delta, delta-compact"
	FlagDescDays     = "Prefix stamps with the day count"
	FlagDescYears    = "Prefix stamps with the year count"
	FlagDescValues   = "Number of significant units to print"
	FlagDescExplicit = "Print an explicit '+' sign for positive values"
	FlagDescAbs      = "Use the absolute value of deltas"
	FlagDescFrom     = "First calendar year to export (default: the current year)"
	FlagDescOut      = "Output file (default: stdout)"

	FlagDescExportYears = "Number of years to export (default: from settings)"

	CmdShort       = "Custom calendar clock and date formatter"
	CmdDateShort   = "Render an elapsed-seconds timestamp as a calendar date"
	CmdTimeShort   = "Render a duration in calendar units"
	CmdUnitsShort  = "Print the configured unit lengths in seconds"
	CmdExportShort = "Export the calendar's month boundaries as iCalendar"
	CmdServeShort  = "Serve the iCalendar feed and the live game date over HTTP"

	CmdDateUse   = "date <seconds>"
	CmdTimeUse   = "time <seconds>"
	CmdUnitsUse  = "units"
	CmdExportUse = "export"
	CmdServeUse  = "serve"

	// Timestamps before the epoch follow "--" so they are not read as flags.
	CmdDateExample = "  kronometer date 18471700 --time\n  kronometer date --style compact -- -3600"
	CmdTimeExample = "  kronometer time 18471700 --format significant\n  kronometer time -- -3600"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
	MsgUnitsOutput   = "%-8s %d\n"
)

// Date styles accepted by the date command.
const (
	StyleDate    = "date"
	StyleNew     = "new"
	StyleCompact = "compact"
)

// Time formats accepted by the time command.
const (
	FormatLong         = "long"
	FormatStamp        = "stamp"
	FormatStampCompact = "stamp-compact"
	FormatSignificant  = "significant"
	FormatCompact      = "compact"
	FormatDelta        = "delta"
	FormatDeltaCompact = "delta-compact"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultLanguage     = "en"
	DefaultListen       = "127.0.0.1:18426"
	DefaultRefreshCron  = "*/15 * * * *"
	DefaultExportYears  = 1
	DefaultExportRate   = 1.0
	DefaultEpoch        = "2000-01-01T00:00:00Z"
	DefaultResetMonths  = 1
	DefaultSignificant  = 3
	DefaultOffsetYear   = 1
	DefaultOffsetDay    = 1
	DefaultOffsetTime   = 0.0
	DefaultUseLeapYears = false
	DefaultKerbinTime   = true
)

// Stock unit lengths in seconds.
const (
	SecondsPerSecond     = 1.0
	SecondsPerMinute     = 60.0
	SecondsPerHour       = 3600.0
	SecondsPerKerbinDay  = 6 * SecondsPerHour
	SecondsPerKerbinYear = 426 * SecondsPerKerbinDay
	SecondsPerEarthDay   = 24 * SecondsPerHour
	SecondsPerEarthYear  = 365 * SecondsPerEarthDay
)

// Stock unit names and symbols.
const (
	NameSecond  = "Second"
	NameSeconds = "Seconds"
	NameMinute  = "Minute"
	NameMinutes = "Minutes"
	NameHour    = "Hour"
	NameHours   = "Hours"
	NameDay     = "Day"
	NameDays    = "Days"
	NameYear    = "Year"
	NameYears   = "Years"

	SymbolSecond = "s"
	SymbolMinute = "m"
	SymbolHour   = "h"
	SymbolDay    = "d"
	SymbolYear   = "y"
)

// Stock display templates, one set per date style.
const (
	TmplDate        = "<Y1> <Y>, <D1> <D>"
	TmplTime        = " - <H><H0><M><M0>"
	TmplSeconds     = ", <S><S0>"
	TmplNewDate     = "<Y1> <Y>, <D1> <D>"
	TmplNewTime     = " - <H:D2>:<M:D2>:<S:D2>"
	TmplNewSeconds  = ""
	TmplCompactDate = "<Y0><Y>, <D0><D:00>"
	TmplCompactTime = ", <H>:<M:00>"
	TmplCompactSecs = ":<S:00>"
)

// -----------------------------------------------------------------------------
// Rendering Sentinels
// -----------------------------------------------------------------------------

const (
	SentinelNaN     = "NaN"
	SentinelPosInf  = "+Inf"
	SentinelNegInf  = "-Inf"
	SentinelNoMonth = "NaM"

	SignNegative        = "- "
	SignPositive        = "+ "
	SignCountdown       = "T- "
	SignCountup         = "T+ "
	Separator           = ", "
	StampDaySeparator   = " - "
	MaxYearsWithSeconds = 10
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Kronometer//Export//EN"
	ICalCalName = "Kronometer"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "kronometer"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDesc       = "DESCRIPTION"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	FormatMonthUID     = "month-%d-%d-%d@%s"
	FormatYearUID      = "year-%d@%s"
	FormatYearRRUID    = "new-year@%s"
	FormatMonthTitle   = "%s %d"
	FormatYearTitle    = "%s %d"
	FormatNewYearTitle = "New %s"

	// WallSecondsPerDay switches the recurrence rule from SECONDLY to DAILY.
	WallSecondsPerDay = 86400

	// StubVCalendar is the minimal valid iCalendar object served when nothing can be exported.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
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
	RouteRoot          = "/"
	RouteNow           = "/now"
	WatchDebounce      = 100 * time.Millisecond
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
	MimeTextPlain       = "text/plain; charset=utf-8"
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
	ErrUnitOrder       = "time units must satisfy year > day > hour > minute > second > 0"
	ErrUnitValue       = "time unit length must be positive and finite"
	ErrMonthDays       = "month length must not be negative"
	ErrSettingsPath    = "settings path is empty"
	ErrSettingsNil     = "settings are nil"
	ErrSettingsRead    = "failed to read settings file"
	ErrSettingsParse   = "failed to parse settings file"
	ErrSettingsWrite   = "failed to write settings file"
	ErrEpochParse      = "invalid export epoch"
	ErrRateValue       = "export rate must be positive and finite"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrRRule           = "failed to build recurrence rule"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrListenRequired  = "listen address is required"
	ErrWriteResp       = "failed to write response body"
	ErrCronSpec        = "invalid refresh schedule"
	ErrWatcherInit     = "failed to start settings watcher"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrExport          = "calendar export failed"
	ErrArgTimestamp    = "timestamp argument must be a number"
	ErrUnknownStyle    = "unknown date style"
	ErrUnknownFormat   = "unknown time format"
	ErrAppFailed       = "application failed unexpectedly"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrConfigDir       = "could not determine user config dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrFormatterFailed = "custom clock disabled, falling back to the default formatter"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgFormatterReady = "Formatter ready"
	MsgUnitRounded    = "Unit length rounded"
	MsgSettingsLoaded = "Settings loaded"
	MsgSettingsCreate = "Settings file not found, writing defaults"
	MsgNameDefaulted  = "Unit name taken from locale"
	MsgExportDone     = "Calendar export completed"
	MsgRRuleSkipped   = "Year period is not a whole number of wall seconds, skipping recurrence rule"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgFormatterSwap  = "Formatter replaced"
	MsgWorkerStart    = "Background worker started"
	MsgWorkerStop     = "Worker stopping due to context cancellation"
	MsgRefresh        = "Refreshing calendar feed"
	MsgReload         = "Settings changed, reloading"
	MsgReloadFailed   = "Reload failed, keeping previous settings"
	MsgWatchError     = "Settings watcher error"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeySecond       = "unit_second"
	TKeyMinute       = "unit_minute"
	TKeyHour         = "unit_hour"
	TKeyDay          = "unit_day"
	TKeyYear         = "unit_year"
	TKeySecondSymbol = "unit_second_symbol"
	TKeyMinuteSymbol = "unit_minute_symbol"
	TKeyHourSymbol   = "unit_hour_symbol"
	TKeyDaySymbol    = "unit_day_symbol"
	TKeyYearSymbol   = "unit_year_symbol"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyListen    = "listen"
	LogKeyUnit      = "unit"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyLeap      = "leap_years"
	LogKeyMonths    = "months"
	LogKeyYear      = "year_seconds"
	LogKeyDay       = "day_seconds"
	LogKeyEvents    = "events"
	LogKeyFrom      = "from_year"
	LogKeyYears     = "years"
	LogKeySchedule  = "schedule"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyDate    = "build_date"
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
	CompEngine   = "engine"
	CompSettings = "settings"
	CompExport   = "export"
	CompServer   = "server"
	CompWorker   = "worker"
	CompWatch    = "watch"
	CompMain     = "main"
	CompI18n     = "i18n"
)
