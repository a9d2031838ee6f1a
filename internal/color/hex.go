package color

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormat is returned when a hex string cannot be parsed into
// exactly three byte values.
var ErrInvalidFormat = errors.New("invalid hex color")

// RGB is an 8-bit sRGB triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the CSS form, e.g. "rgb(255, 0, 0)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Decode parses a 3- or 6-digit hex color with an optional leading '#'.
// Shorthand digits are duplicated ("F0A" -> "FF00AA").
func Decode(input string) (RGB, error) {
	hex := strings.TrimPrefix(input, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("%w: %q: expected 3 or 6 hex digits", ErrInvalidFormat, input)
	}

	var ch [3]uint8
	for i := range ch {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q: bad channel %q", ErrInvalidFormat, input, hex[i*2:i*2+2])
		}
		ch[i] = uint8(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// Encode formats c as an uppercase "#RRGGBB" string.
func Encode(c RGB) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Normalize trims and uppercases raw input and returns the canonical
// "#RRGGBB" form.
func Normalize(raw string) (string, error) {
	rgb, err := Decode(strings.ToUpper(strings.TrimSpace(raw)))
	if err != nil {
		return "", err
	}
	return Encode(rgb), nil
}
