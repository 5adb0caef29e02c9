/*
Package logger provides logging functionality to a switchback server by defining the required behavior in [Logger]
and providing an implementation of it with [ColorLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [ColorLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*ColorLogger.Warn], [*ColorLogger.Error], and [*ColorLogger.Fatal] produce messages.

# ColorLogger

Log messages emitted by [ColorLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2026/04/28 15:55:21 [ERROR] switchback/http/router/router.go:212 'dispatch failed' log_context: {"error":"stale route","request":{"method":"GET","url":"/users/1"}}

The log context is a JSON-encoded [LogContext].
It carries the request and the route it matched, when available.

# SentryLogger

Passing [WithSentry] to [New] wraps the [ColorLogger] in a [SentryLogger],
which also ships errors found in a [LogContext] to Sentry.
*/
package logger
