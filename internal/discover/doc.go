// Package discover enumerates candidate input files for a run.
//
// Enumeration order follows the filesystem and is stable within a single
// pass. An unreadable root directory is fatal; unreadable entries below it
// are logged and skipped so one bad file cannot sink the whole batch.
package discover
