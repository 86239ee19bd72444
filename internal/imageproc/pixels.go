package imageproc

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for output extensions without an encoder.
var ErrUnsupportedFormat = errors.New("imageproc: unsupported image format")

// LoadPixels decodes the image at path and flattens it row-major into RGB
// samples scaled to [0, 1], the space the quantizer clusters in.
func LoadPixels(path string) ([][]float64, image.Rectangle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("error opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("error decoding image %s: %w", path, err)
	}

	bounds := img.Bounds()
	pixels := make([][]float64, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pixels = append(pixels, []float64{
				float64(r>>8) / 255.0,
				float64(g>>8) / 255.0,
				float64(b>>8) / 255.0,
			})
		}
	}

	return pixels, bounds, nil
}

// Reconstruct builds the quantized image by replacing every pixel with its
// assigned centroid, scaled back to native 8-bit channels.
func Reconstruct(centroids [][]float64, assignments []int, bounds image.Rectangle) (*image.RGBA, error) {
	if len(assignments) != bounds.Dx()*bounds.Dy() {
		return nil, fmt.Errorf("imageproc: %d assignments for %dx%d image",
			len(assignments), bounds.Dx(), bounds.Dy())
	}

	img := image.NewRGBA(bounds)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := centroids[assignments[i]]
			img.Set(x, y, color.RGBA{
				R: channelByte(c[0]),
				G: channelByte(c[1]),
				B: channelByte(c[2]),
				A: 255,
			})
			i++
		}
	}
	return img, nil
}

// WriteImage encodes img to path, picking the encoder from the extension.
func WriteImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case ".gif":
		err = gif.Encode(f, img, nil)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("error encoding image: %w", err)
	}
	return nil
}

// CompressedPath returns the sibling artifact path with "_compressed"
// inserted before the extension, e.g. photo.png -> photo_compressed.png.
func CompressedPath(src string) string {
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + "_compressed" + ext
}

// CompressionRate reports the fractional size reduction of dst relative to
// src. Negative values mean the artifact grew.
func CompressionRate(src, dst string) (float64, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("error reading source size: %w", err)
	}
	dstInfo, err := os.Stat(dst)
	if err != nil {
		return 0, fmt.Errorf("error reading output size: %w", err)
	}
	return float64(srcInfo.Size()-dstInfo.Size()) / float64(srcInfo.Size()), nil
}

// channelByte clamps a [0, 1] channel and rounds it to 8 bits.
func channelByte(v float64) uint8 {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return uint8(math.Round(v * 255.0))
}
