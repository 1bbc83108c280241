// Package imageutil shrinks receipt photos before they are sent to the
// vision model. Phone cameras produce images far larger than the model
// needs, and smaller payloads cut both latency and token cost.
package imageutil

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// DefaultMaxDimension caps the longest side of a receipt photo.
const DefaultMaxDimension = 1024

// ResizeConfig holds configuration for receipt photo downscaling.
type ResizeConfig struct {
	MaxDimension int    // Maximum width or height (default 1024)
	Quality      int    // JPEG quality 1-100 (default 85)
	OutputFormat string // "jpeg" or "png" (default "jpeg")
}

// DefaultConfig returns the resize settings used for receipt scans.
// JPEG output keeps the payload compatible with the data URL the model
// request embeds.
func DefaultConfig() *ResizeConfig {
	return &ResizeConfig{
		MaxDimension: DefaultMaxDimension,
		Quality:      85,
		OutputFormat: "jpeg",
	}
}

// ShrinkReceiptImage downscales a receipt photo so its longest side fits
// the configured maximum, preserving aspect ratio. Images already within
// bounds are returned unchanged.
func ShrinkReceiptImage(imageData []byte, config *ResizeConfig) ([]byte, error) {
	if config == nil {
		config = DefaultConfig()
	}

	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= config.MaxDimension && height <= config.MaxDimension {
		return imageData, nil
	}

	var newWidth, newHeight int
	if width > height {
		newWidth = config.MaxDimension
		newHeight = int(float64(height) * float64(config.MaxDimension) / float64(width))
	} else {
		newHeight = config.MaxDimension
		newWidth = int(float64(width) * float64(config.MaxDimension) / float64(height))
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))

	// CatmullRom resampling keeps small receipt text legible after the
	// downscale.
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	outputFormat := config.OutputFormat
	if outputFormat == "" {
		outputFormat = format
	}

	switch outputFormat {
	case "jpeg", "jpg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: config.Quality})
	case "png":
		err = png.Encode(&buf, dst)
	default:
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: config.Quality})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}

	return buf.Bytes(), nil
}
