// Package logging provides structured logging for aio built on Zap.
//
// The Logger carries correlation data (run ID, ticket number) through
// context.Context so every log line from one engine invocation can be
// grouped. A TestLogger backed by zaptest/observer supports assertions
// on emitted entries.
package logging
