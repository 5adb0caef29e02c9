package logger

import "log"

// An Option configures a ColorLogger when constructing a new one.
type Option func(*ColorLogger)

// WithEnv sets the environment ColorLogger is operating in.
func WithEnv(env string) Option {
	return func(l *ColorLogger) {
		l.env = env
	}
}

// WithLevel sets the log level ColorLogger uses.
func WithLevel(level LogLevel) Option {
	return func(l *ColorLogger) {
		if level == LogLevelUnk {
			return
		}

		l.ll = level
	}
}

// WithLogger sets the log.Logger ColorLogger uses.
func WithLogger(log *log.Logger) Option {
	return func(l *ColorLogger) {
		l.l = log
	}
}

// WithSentry ships errors logged at or above LogLevelWarn to the Sentry project at dsn.
func WithSentry(dsn string) Option {
	return func(l *ColorLogger) {
		l.dsn = dsn
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) Option {
	return func(l *ColorLogger) {
		l.skip = skip
	}
}
