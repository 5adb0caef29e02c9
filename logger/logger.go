package logger

import (
	"log"
	"os"
	"path"
	"regexp"
	"runtime"
	"strconv"

	"github.com/fatih/color"
)

const knownFrames = 2

var modulePathRegex = regexp.MustCompile("switchback.*$")

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Fatal(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() LogLevel
}

// The SkipLogger interface defines a Logger that scrolls back
// the number of frames provided in order to ascertain the call site.
type SkipLogger interface {
	AddSkip(i int) SkipLogger
	Skip() int
	Logger
}

type LogLevel int

const (
	LogLevelUnk LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// NewLogLevel parses val, e.g. "WARN", into a LogLevel.
func NewLogLevel(val string) LogLevel {
	switch val {
	case "DEBUG":
		return LogLevelDebug
	case "INFO":
		return LogLevelInfo
	case "WARN":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	case "FATAL":
		return LogLevelFatal
	default:
		return LogLevelUnk
	}
}

func (ll LogLevel) String() string {
	switch ll {
	case LogLevelDebug:
		return "[DEBUG]"
	case LogLevelInfo:
		return "[INFO]"
	case LogLevelWarn:
		return "[WARN]"
	case LogLevelError:
		return "[ERROR]"
	case LogLevelFatal:
		return "[FATAL]"
	default:
		return "[UNK]"
	}
}

// ColorLogger implements Logger using log, colorizing each level.
type ColorLogger struct {
	dsn  string
	env  string
	l    *log.Logger
	ll   LogLevel
	skip int
}

// New constructs a Logger.
//
// Logs are printed to os.Stdout by default, using the std lib log pkg.
// The default environment is DEVELOPMENT.
// The default log level is INFO.
//
// If WithSentry supplied a DSN, the returned Logger also ships errors to Sentry.
func New(opts ...Option) Logger {
	l := &ColorLogger{
		env: "DEVELOPMENT",
		l:   log.New(os.Stdout, "", log.LstdFlags),
		ll:  LogLevelInfo,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.dsn != "" {
		l.Debug("Sentry DSN set, configuring SentryLogger", nil)
		return NewSentryLogger(l, l.dsn)
	}

	return l
}

// AddSkip replaces the current number of frames to scroll back
// when logging a message.
//
// Use Skip to get the current skip amount
// when needing to add to it with AddSkip.
func (l *ColorLogger) AddSkip(i int) SkipLogger {
	newl := *l
	newl.skip = i
	return &newl
}

// Debug writes a debug log.
func (l *ColorLogger) Debug(msg string, ctx *LogContext) {
	if l.ll > LogLevelDebug {
		return
	}

	l.log(color.WhiteString, LogLevelDebug, msg, ctx)
}

// Error writes an error log.
func (l *ColorLogger) Error(msg string, ctx *LogContext) {
	if l.ll > LogLevelError {
		return
	}

	l.log(color.RedString, LogLevelError, msg, ctx)
}

// Fatal writes a fatal log.
func (l *ColorLogger) Fatal(msg string, ctx *LogContext) {
	l.log(color.MagentaString, LogLevelFatal, msg, ctx)
}

// Info writes an info log.
func (l *ColorLogger) Info(msg string, ctx *LogContext) {
	if l.ll > LogLevelInfo {
		return
	}

	l.log(color.BlueString, LogLevelInfo, msg, ctx)
}

// Warn writes a warning log.
func (l *ColorLogger) Warn(msg string, ctx *LogContext) {
	if l.ll > LogLevelWarn {
		return
	}

	l.log(color.YellowString, LogLevelWarn, msg, ctx)
}

func (l *ColorLogger) LogLevel() LogLevel { return l.ll }
func (l *ColorLogger) Skip() int          { return l.skip }

// log prints the message prefixed with level and call site,
// followed by ctx when available.
func (l *ColorLogger) log(colorizer func(string, ...any) string, level LogLevel, msg string, ctx *LogContext) {
	caller := ""
	if ctx != nil && ctx.Caller != "" {
		caller = ctx.Caller
	} else {
		_, file, line, _ := runtime.Caller(knownFrames + l.skip)
		caller = callSite(file, line)
	}

	msg = colorizer("%s %s '%s'", level, caller, msg)
	if ctx == nil {
		l.l.Println(msg)
		return
	}

	l.l.Println(msg, "log_context:", ctx)
}

// callSite trims file down to the module path
// or, failing that, the file and the directory it is in.
//
// e.g.,:
// /home/dlk/my-project/main.go => my-project/main.go
func callSite(file string, line int) string {
	if match := modulePathRegex.FindString(file); match != "" {
		return match + ":" + strconv.Itoa(line)
	}

	dir, name := path.Split(file)
	return path.Base(dir) + "/" + name + ":" + strconv.Itoa(line)
}
