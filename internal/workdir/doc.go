// Package workdir manages the output directory lifecycle.
//
// Before any task is dispatched, the directory is created (with parents) and
// its immediate regular files are removed so a run never mixes its results
// with stale ones. Subdirectories are deliberately left alone. A flock-based
// run lock next to the directory keeps two smudge processes from clearing and
// writing the same output tree at once.
package workdir
