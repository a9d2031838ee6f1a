package color

import (
	"fmt"
	"strings"
)

// Source identifies the input modality a color value came from.
type Source string

const (
	SourceText   Source = "text"
	SourcePicker Source = "picker"
	SourceRGB    Source = "rgb"
)

// Result is the bundle handed to a renderer: canonical hex, RGB, HSL and the
// palette derived from the HSL.
type Result struct {
	Hex     string  `json:"hex"`
	RGB     RGB     `json:"rgb"`
	HSL     HSL     `json:"hsl"`
	Palette []Shade `json:"palette"`

	offsets []int
}

// RGBString returns "rgb(R, G, B)".
func (r *Result) RGBString() string { return r.RGB.String() }

// HSLString returns "hsl(H, S%, L%)".
func (r *Result) HSLString() string { return r.HSL.String() }

// Base returns the palette entry marked as base, if the offsets included 0.
func (r *Result) Base() (Shade, bool) {
	for _, s := range r.Palette {
		if s.IsBase {
			return s, true
		}
	}
	return Shade{}, false
}

// Select converts the hex of the palette shade with the given step, as if
// the user had clicked it. The same offsets are reused.
func (r *Result) Select(step int) (*Result, error) {
	for _, s := range r.Palette {
		if s.Step == step {
			return FromHex(s.Hex, r.offsets)
		}
	}
	return nil, fmt.Errorf("no palette shade with step %d", step)
}

// FromHex converts typed text input. The value is trimmed and uppercased;
// the leading '#' is optional and 3-digit shorthand is accepted. Errors wrap
// ErrInvalidFormat.
func FromHex(raw string, offsets []int) (*Result, error) {
	rgb, err := Decode(strings.ToUpper(strings.TrimSpace(raw)))
	if err != nil {
		return nil, err
	}
	return FromRGB(rgb, offsets), nil
}

// FromPicker converts a native color picker value, which is always a
// "#rrggbb" string and is not trimmed.
func FromPicker(value string, offsets []int) (*Result, error) {
	rgb, err := Decode(strings.ToUpper(value))
	if err != nil {
		return nil, err
	}
	return FromRGB(rgb, offsets), nil
}

// FromRGB converts an RGB triple. It cannot fail.
func FromRGB(rgb RGB, offsets []int) *Result {
	hsl := RGBToHSL(rgb)
	return &Result{
		Hex:     Encode(rgb),
		RGB:     rgb,
		HSL:     hsl,
		Palette: Generate(hsl, offsets),
		offsets: append([]int(nil), offsets...),
	}
}
