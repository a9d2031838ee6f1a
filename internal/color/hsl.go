package color

import (
	"fmt"
	"math"
)

// HSL is a hue/saturation/lightness color rounded for display.
// H is in degrees [0,360), S and L are percentages [0,100].
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// String returns the CSS form, e.g. "hsl(0, 100%, 50%)".
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.H, c.S, c.L)
}

// RGBToHSL converts c to HSL. Computation is done in floating point and only
// the result is rounded.
func RGBToHSL(c RGB) HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	h, s, l := 0.0, 0.0, (max+min)/2

	if max != min {
		d := max - min
		if l > 0.5 {
			s = d / (2 - max - min)
		} else {
			s = d / (max + min)
		}

		switch max {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h /= 6
	}

	hue := int(math.Round(h * 360))
	if hue >= 360 {
		hue -= 360
	}
	return HSL{
		H: hue,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

// HSLToRGB converts c to RGB using the k-mod-12 chroma formulation:
//
//	a = S*min(l, 1-l)/100
//	f(n) = l - a*max(-1, min(k-3, 9-k, 1)), k = (n + h/30) mod 12
//
// with n = 0, 8, 4 for R, G, B.
func HSLToRGB(c HSL) RGB {
	h := math.Mod(float64(c.H), 360)
	if h < 0 {
		h += 360
	}
	l := float64(c.L) / 100
	// Multiply before dividing by 100; the other order moves some .5 ties.
	a := float64(c.S) * math.Min(l, 1-l) / 100

	f := func(n float64) uint8 {
		k := math.Mod(n+h/30, 12)
		v := l - a*clamp(math.Min(math.Min(k-3, 9-k), 1), -1, 1)
		return uint8(math.Round(255 * clamp(v, 0, 1)))
	}
	return RGB{R: f(0), G: f(8), B: f(4)}
}

// HSLToHex is Encode(HSLToRGB(c)).
func HSLToHex(c HSL) string {
	return Encode(HSLToRGB(c))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
