package imageproc

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// PaletteColor describes one centroid of the quantized palette.
type PaletteColor struct {
	Color      [3]uint8 `json:"color"`
	Proportion float64  `json:"proportion"`
	Hue        float64  `json:"hue"`
	Saturation float64  `json:"saturation"`
}

// PaletteStats summarizes the palette produced by a clustering run: each
// centroid's 8-bit color, the share of pixels assigned to it, and its HSL
// hue/saturation in OpenCV ranges. Entries come back sorted by descending
// proportion.
func PaletteStats(centroids [][]float64, assignments []int) []PaletteColor {
	counts := make([]int, len(centroids))
	for _, a := range assignments {
		counts[a]++
	}
	total := float64(len(assignments))

	palette := make([]PaletteColor, len(centroids))
	for i, c := range centroids {
		col := colorful.Color{R: c[0], G: c[1], B: c[2]}
		h, s, _ := col.Hsl()
		palette[i] = PaletteColor{
			Color:      [3]uint8{channelByte(c[0]), channelByte(c[1]), channelByte(c[2])},
			Proportion: float64(counts[i]) / total,
			Hue:        float64(transformH(h)),
			Saturation: float64(transformS(s)),
		}
	}

	sort.SliceStable(palette, func(i, j int) bool {
		return palette[i].Proportion > palette[j].Proportion
	})

	return palette
}

// transformH converts a standard HSL hue value (0-360 degrees) to OpenCV HSV hue range (0-179)
func transformH(hue float64) int {
	// Handle edge case of 360 degrees
	if hue >= 360.0 {
		hue = 0.0
	}

	// Map from 0-360 to 0-179 range
	return int(hue / 2.0)
}

// transformS converts a standard HSL saturation value (0-1) to OpenCV saturation range (0-255)
func transformS(saturation float64) int {
	// Clamp value between 0 and 1
	if saturation < 0.0 {
		saturation = 0.0
	} else if saturation > 1.0 {
		saturation = 1.0
	}

	// Map from 0-1 to 0-255 range
	return int(saturation * 255.0)
}
