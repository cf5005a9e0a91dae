package blur

import "math"

// Kernel returns a normalized size x size Gaussian kernel. Size must be odd
// and positive; sigma must be positive. The weights sum to 1 so convolution
// preserves overall brightness.
func Kernel(size int, sigma float64) [][]float64 {
	kernel := make([][]float64, size)
	center := size / 2
	sum := 0.0

	for y := 0; y < size; y++ {
		kernel[y] = make([]float64, size)
		for x := 0; x < size; x++ {
			dx := float64(x - center)
			dy := float64(y - center)
			w := math.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
			kernel[y][x] = w
			sum += w
		}
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			kernel[y][x] /= sum
		}
	}
	return kernel
}
