// Package runner orchestrates a full batch run: lock and clean the output
// directory, discover input files, plan collision-free output names, drive
// the worker pool, and aggregate outcomes into a report.
//
// Setup failures abort before anything is dispatched. Per-file failures are
// data, not errors: they land in the report and the run keeps going.
package runner
