package color

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultOffsets is the five-shade lightness scheme used when the caller
// does not supply one.
var DefaultOffsets = []int{-40, -20, 0, 20, 40}

const (
	// MaxOffsets bounds the number of shades in one palette.
	MaxOffsets = 32
	// MaxStep is the largest lightness shift that can still change a shade.
	MaxStep = 100
)

// ErrTooManyOffsets is returned for schemes longer than MaxOffsets.
var ErrTooManyOffsets = fmt.Errorf("at most %d palette offsets are allowed", MaxOffsets)

// Shade is one lightness variant of a base color.
type Shade struct {
	Step   int    `json:"step"`
	HSL    HSL    `json:"hsl"`
	Hex    string `json:"hex"`
	IsBase bool   `json:"base"`
}

// Label is the hover title shown for a palette swatch.
func (s Shade) Label() string {
	return fmt.Sprintf("%s • %d%% lightness", s.Hex, s.HSL.L)
}

// Generate derives one shade per offset, keeping hue and saturation and
// shifting lightness by the offset clamped to [0,100]. Output order matches
// offsets.
func Generate(base HSL, offsets []int) []Shade {
	shades := make([]Shade, 0, len(offsets))
	for _, step := range offsets {
		shift := min(max(step, -MaxStep), MaxStep)
		hsl := HSL{H: base.H, S: base.S, L: min(max(base.L+shift, 0), 100)}
		shades = append(shades, Shade{
			Step:   step,
			HSL:    hsl,
			Hex:    HSLToHex(hsl),
			IsBase: step == 0,
		})
	}
	return shades
}

// ParseOffsets parses a comma separated list of signed integers such as
// "-40,-20,0,20,40". Blank input yields DefaultOffsets. The list must pass
// ValidateOffsets.
func ParseOffsets(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return append([]int(nil), DefaultOffsets...), nil
	}
	if strings.Count(s, ",") >= MaxOffsets {
		return nil, ErrTooManyOffsets
	}
	parts := strings.Split(s, ",")
	offsets := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid palette offset %q: %w", p, err)
		}
		offsets = append(offsets, n)
	}
	if err := ValidateOffsets(offsets); err != nil {
		return nil, err
	}
	return offsets, nil
}

// ValidateOffsets checks that a scheme has 1..MaxOffsets steps, each within
// [-MaxStep, MaxStep].
func ValidateOffsets(offsets []int) error {
	switch {
	case len(offsets) == 0:
		return errors.New("at least one palette offset is required")
	case len(offsets) > MaxOffsets:
		return ErrTooManyOffsets
	}
	for _, n := range offsets {
		if n < -MaxStep || n > MaxStep {
			return fmt.Errorf("palette offset %d is outside [-%d, %d]", n, MaxStep, MaxStep)
		}
	}
	return nil
}

// FormatOffsets is the inverse of ParseOffsets.
func FormatOffsets(offsets []int) string {
	parts := make([]string, len(offsets))
	for i, n := range offsets {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
