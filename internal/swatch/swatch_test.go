package swatch

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"color-converter/internal/color"
)

func TestRender(t *testing.T) {
	shades := color.Generate(color.HSL{H: 0, S: 100, L: 50}, []int{-40, 0, 40})

	img, err := Render(shades, Options{ShadeWidth: 80, Height: 60})
	require.NoError(t, err)
	assert.Equal(t, 240, img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())

	// Column centers, above the label area and below the marker bar.
	assert.Equal(t, [4]uint8{0x33, 0, 0, 255}, rgbaAt(img.RGBAAt(40, 20)))
	assert.Equal(t, [4]uint8{0xFF, 0, 0, 255}, rgbaAt(img.RGBAAt(120, 20)))
	assert.Equal(t, [4]uint8{0xFF, 0xCC, 0xCC, 255}, rgbaAt(img.RGBAAt(200, 20)))

	// Base marker uses the label color for red (white).
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, rgbaAt(img.RGBAAt(120, 1)))
	// Non-base columns have no marker.
	assert.Equal(t, [4]uint8{0x33, 0, 0, 255}, rgbaAt(img.RGBAAt(40, 1)))
}

func TestRenderEnforcesMinimumSize(t *testing.T) {
	shades := color.Generate(color.HSL{H: 200, S: 50, L: 50}, []int{0})
	img, err := Render(shades, Options{})
	require.NoError(t, err)
	assert.Equal(t, minShadeWidth, img.Bounds().Dx())
	assert.Equal(t, minHeight, img.Bounds().Dy())
}

func TestRenderEmpty(t *testing.T) {
	_, err := Render(nil, DefaultOptions)
	assert.ErrorIs(t, err, ErrNoShades)
}

func TestEncodePNG(t *testing.T) {
	shades := color.Generate(color.HSL{H: 120, S: 60, L: 40}, color.DefaultOffsets)

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, shades, DefaultOptions))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions.ShadeWidth*len(shades), img.Bounds().Dx())
}

func TestLabelColor(t *testing.T) {
	assert.Equal(t, black, LabelColor(color.RGB{R: 255, G: 255, B: 255}))
	assert.Equal(t, black, LabelColor(color.RGB{R: 255, G: 0xCC, B: 0xCC}))
	assert.Equal(t, white, LabelColor(color.RGB{}))
	assert.Equal(t, white, LabelColor(color.RGB{R: 0x33}))
}

func rgbaAt(c interface{ RGBA() (r, g, b, a uint32) }) [4]uint8 {
	r, g, b, a := c.RGBA()
	return [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}
