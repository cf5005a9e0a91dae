// Command smudge applies a Gaussian blur to every image in a directory using
// a bounded worker pool.
//
// Exit status: 0 when every file transformed cleanly, 2 when the run
// completed but some files failed, 1 for fatal setup errors.
package main
