package blur

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	_ "image/gif" // registered so discovered GIFs decode; output format stays png/jpeg
)

const defaultJPEGQuality = 90

// Processor is the default transform applied to each task: decode the input,
// convolve with a Gaussian kernel, and encode to the output path.
type Processor struct {
	kernel [][]float64
	format string
}

// NewProcessor builds a Processor for the given odd kernel size, sigma, and
// output format ("png" or "jpeg"). The kernel is computed once and shared by
// all workers; it is read-only afterwards.
func NewProcessor(kernelSize int, sigma float64, format string) (*Processor, error) {
	if kernelSize < 3 || kernelSize%2 == 0 {
		return nil, fmt.Errorf("kernel size must be odd and at least 3, got %d", kernelSize)
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("sigma must be positive, got %v", sigma)
	}
	switch format {
	case "png", "jpeg":
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	return &Processor{kernel: Kernel(kernelSize, sigma), format: format}, nil
}

// Transform blurs inputPath into outputPath. Each call is independent; any
// failure is scoped to the one file. The context is consulted before the
// expensive convolution so canceled runs stop promptly between stages.
func (p *Processor) Transform(ctx context.Context, inputPath, outputPath string) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inputPath, err)
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("decode %s: %w", inputPath, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	blurred := Apply(img, p.kernel)

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outputPath, err)
	}
	defer out.Close()

	switch p.format {
	case "jpeg":
		err = jpeg.Encode(out, blurred, &jpeg.Options{Quality: defaultJPEGQuality})
	default:
		err = png.Encode(out, blurred)
	}
	if err != nil {
		_ = os.Remove(outputPath)
		return fmt.Errorf("encode %s: %w", outputPath, err)
	}
	return out.Close()
}
