package blur

import "image"

// Apply convolves img with kernel and returns the blurred copy. Sampling
// outside the bounds clamps to the nearest edge pixel, matching the usual
// extend-edge convention so borders do not darken.
func Apply(img image.Image, kernel [][]float64) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	size := len(kernel)
	offset := size / 2

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var rSum, gSum, bSum, aSum float64

			for ky := 0; ky < size; ky++ {
				sy := clamp(y+ky-offset, bounds.Min.Y, bounds.Max.Y-1)
				row := kernel[ky]
				for kx := 0; kx < size; kx++ {
					sx := clamp(x+kx-offset, bounds.Min.X, bounds.Max.X-1)
					r, g, b, a := img.At(sx, sy).RGBA()
					w := row[kx]
					rSum += float64(r) * w
					gSum += float64(g) * w
					bSum += float64(b) * w
					aSum += float64(a) * w
				}
			}

			idx := out.PixOffset(x, y)
			out.Pix[idx+0] = to8(rSum)
			out.Pix[idx+1] = to8(gSum)
			out.Pix[idx+2] = to8(bSum)
			out.Pix[idx+3] = to8(aSum)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// to8 converts an accumulated 16-bit channel value to 8 bits with rounding.
func to8(v float64) uint8 {
	scaled := v/257.0 + 0.5
	if scaled <= 0 {
		return 0
	}
	if scaled >= 255 {
		return 255
	}
	return uint8(scaled)
}
