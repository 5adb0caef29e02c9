package logger

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

const flushTimeout = 2 * time.Second

// A SentryLogger writes logs through a SkipLogger
// and sends warnings and errors carrying a LogContext.Error to Sentry.
type SentryLogger struct {
	l SkipLogger
}

// NewSentryLogger constructs a SentryLogger based off the provided ColorLogger.
//
// If Sentry cannot be initialized, the error is logged and cl is returned.
func NewSentryLogger(cl *ColorLogger, dsn string) Logger {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:          dsn,
		Environment:  cl.env,
		IgnoreErrors: []string{"write: broken pipe"},
	})
	if err != nil {
		cl.Error(fmt.Sprintf("unable to init Sentry: %s", err), nil)
		return cl
	}

	return &SentryLogger{l: cl.AddSkip(1 + cl.Skip())}
}

func (sl *SentryLogger) AddSkip(i int) SkipLogger { return sl.l.AddSkip(i) }
func (sl *SentryLogger) Skip() int                { return sl.l.Skip() }
func (sl *SentryLogger) LogLevel() LogLevel       { return sl.l.LogLevel() }

func (sl *SentryLogger) Debug(msg string, ctx *LogContext) { sl.l.Debug(msg, ctx) }
func (sl *SentryLogger) Info(msg string, ctx *LogContext)  { sl.l.Info(msg, ctx) }

// Error writes an error log and sends it to Sentry.
func (sl *SentryLogger) Error(msg string, ctx *LogContext) {
	if sl.l.LogLevel() > LogLevelError {
		return
	}

	sl.l.Error(msg, ctx)
	sl.send(sentry.LevelError, ctx)
}

// Fatal writes a fatal log and sends it to Sentry,
// waiting for the event to be delivered.
func (sl *SentryLogger) Fatal(msg string, ctx *LogContext) {
	sl.l.Fatal(msg, ctx)
	sl.send(sentry.LevelFatal, ctx)
	sentry.Flush(flushTimeout)
}

// Warn writes a warning log and sends it to Sentry.
func (sl *SentryLogger) Warn(msg string, ctx *LogContext) {
	if sl.l.LogLevel() > LogLevelWarn {
		return
	}

	sl.l.Warn(msg, ctx)
	sl.send(sentry.LevelWarning, ctx)
}

// send ships the LogContext.Error to Sentry,
// including any additional data from LogContext.
func (sl *SentryLogger) send(level sentry.Level, ctx *LogContext) {
	if ctx == nil || ctx.Error == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		if ctx.Request != nil {
			scope.SetRequest(ctx.Request)
		}

		if ctx.Route != nil {
			scope.SetTag("route.pattern", ctx.Route.Pattern())
			if name := ctx.Route.Name(); name != "" {
				scope.SetTag("route.name", name)
			}
		}

		if ctx.Data != nil {
			scope.SetExtra("data", ctx.Data)
		}

		scope.SetLevel(level)
		sentry.CaptureException(ctx.Error)
	})
}
