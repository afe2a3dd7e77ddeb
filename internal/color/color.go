// Package color converts between the wearable's compact colour encoding and
// the lighting service's native one.
//
// Hue is carried as a percentage of the colour wheel, saturation and
// brightness as percentages, kelvin is passed through untouched. Scaling to
// compact rounds half away from zero (math.Round).
package color

import (
	"math"

	"github.com/wheelibin/lumen/internal/constants"
	"github.com/wheelibin/lumen/internal/models"
)

// ToCompact converts a native colour to the wearable encoding
func ToCompact(c models.Color) models.CompactColor {
	return models.CompactColor{
		H: int(math.Round(c.Hue / 360 * 100)),
		S: int(math.Round(c.Saturation * 100)),
		B: int(math.Round(c.Brightness * 100)),
		K: c.Kelvin,
	}
}

// ToNative converts a wearable colour to the native encoding, h/s/b are clamped to [0,100]
func ToNative(c models.CompactColor) models.Color {
	return models.Color{
		Hue:        float64(clamp(c.H)) * 3.6,
		Saturation: float64(clamp(c.S)) / 100,
		Brightness: float64(clamp(c.B)) / 100,
		Kelvin:     c.K,
	}
}

// ForLight returns the compact colour of a light, or the defaults when it reports none
func ForLight(l models.Light) models.CompactColor {
	if l.Color == nil {
		return Default()
	}
	return ToCompact(*l.Color)
}

func Default() models.CompactColor {
	return models.CompactColor{
		H: constants.DefaultCompactHue,
		S: constants.DefaultCompactSaturation,
		B: constants.DefaultCompactBrightness,
		K: constants.DefaultKelvin,
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
