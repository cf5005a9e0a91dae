// Package naming derives output file paths for transformed images.
//
// Resolution is pure string manipulation so it can be tested without touching
// the filesystem. Recursive discovery can surface identical base names in
// different subdirectories; Plan resolves those collisions deterministically
// instead of letting concurrent workers race for the same output file.
package naming
