// Package logging provides concrete implementations of the tabsync.Logger
// interface, plus a bridge that surfaces validation and deployment messages
// through a Logger for hosts without a message UI of their own.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr with thread-safe output
//   - NullLogger: Discards all messages (useful for testing)
//   - MessageLogger: Adapts a Logger into a tabsync.MessageHandler
//
// All implementations are safe for concurrent use by multiple goroutines.
package logging
