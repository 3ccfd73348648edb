package pptx

import "math"

// Lengths in a package are EMU: 914400 per inch, 12700 per point and
// 9525 per 96 DPI pixel.
const (
	emuPerInch  = 914400
	emuPerPoint = 12700
	// EMUPerPixel is one 96 DPI pixel.
	EMUPerPixel = 9525
)

// emuLimit keeps sums of two lengths from overflowing.
const emuLimit = math.MaxInt64 / 2

// Inch converts inches to EMU.
func Inch(n float64) int64  { return toEMU(n * emuPerInch) }
// Point converts typographic points to EMU.
func Point(n float64) int64 { return toEMU(n * emuPerPoint) }
// Pixel converts 96 DPI pixels to EMU.
func Pixel(n float64) int64 { return toEMU(n * EMUPerPixel) }

// RoundEMU rounds half away from zero.
func RoundEMU(v float64) int64 { return toEMU(math.Round(v)) }

// EMUToInch converts EMU to inches.
func EMUToInch(emu int64) float64  { return float64(emu) / emuPerInch }
// EMUToPoint converts EMU to points.
func EMUToPoint(emu int64) float64 { return float64(emu) / emuPerPoint }
// EMUToPixel converts EMU to 96 DPI pixels.
func EMUToPixel(emu int64) float64 { return float64(emu) / EMUPerPixel }

// toEMU truncates v, saturating at ±emuLimit.
func toEMU(v float64) int64 {
	return int64(math.Max(-emuLimit, math.Min(v, emuLimit)))
}
