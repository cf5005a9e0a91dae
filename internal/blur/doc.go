// Package blur implements the Gaussian blur transform applied to each input
// image.
//
// The kernel is a normalized 2D Gaussian with clamp-to-edge sampling at the
// borders. Processor wraps decode, convolve, and encode into the single
// synchronous call the scheduler dispatches per task.
package blur
