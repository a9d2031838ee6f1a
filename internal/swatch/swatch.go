// Package swatch draws palette strips as raster images.
//
// Each shade becomes one column filled with its color, labelled with its hex
// code and lightness. Label text is black or white depending on the
// perceptual lightness of the column so it stays readable on any shade.
package swatch

import (
	"errors"
	"fmt"
	"image"
	stdcolor "image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"color-converter/internal/color"
)

// ErrNoShades is returned when asked to render an empty palette.
var ErrNoShades = errors.New("swatch: no shades to render")

// Options controls the size of rendered strips.
type Options struct {
	ShadeWidth int // width of one shade column in pixels
	Height     int // strip height in pixels
}

// DefaultOptions fit the 7x13 label font with some margin.
var DefaultOptions = Options{ShadeWidth: 96, Height: 96}

const (
	minShadeWidth = 64
	minHeight     = 40
	markerHeight  = 4
	labelMargin   = 6
)

var (
	black = stdcolor.RGBA{0, 0, 0, 255}
	white = stdcolor.RGBA{255, 255, 255, 255}
)

// Render draws shades left to right in the order given. The base shade gets
// a marker bar along its top edge.
func Render(shades []color.Shade, opts Options) (*image.RGBA, error) {
	if len(shades) == 0 {
		return nil, ErrNoShades
	}
	opts.ShadeWidth = max(opts.ShadeWidth, minShadeWidth)
	opts.Height = max(opts.Height, minHeight)

	img := image.NewRGBA(image.Rect(0, 0, opts.ShadeWidth*len(shades), opts.Height))
	face := basicfont.Face7x13

	for i, s := range shades {
		rgb := color.HSLToRGB(s.HSL)
		fill := stdcolor.RGBA{rgb.R, rgb.G, rgb.B, 255}
		ink := LabelColor(rgb)

		col := image.Rect(i*opts.ShadeWidth, 0, (i+1)*opts.ShadeWidth, opts.Height)
		draw.Draw(img, col, &image.Uniform{fill}, image.Point{}, draw.Src)

		if s.IsBase {
			bar := image.Rect(col.Min.X, 0, col.Max.X, markerHeight)
			draw.Draw(img, bar, &image.Uniform{ink}, image.Point{}, draw.Src)
		}

		lines := []string{s.Hex, fmt.Sprintf("%d%%", s.HSL.L)}
		lineHeight := face.Metrics().Height.Ceil()
		y := opts.Height - labelMargin - lineHeight*(len(lines)-1)
		for _, line := range lines {
			drawCentered(img, face, line, col.Min.X, opts.ShadeWidth, y, ink)
			y += lineHeight
		}
	}

	return img, nil
}

// EncodePNG renders shades and writes them to w as PNG.
func EncodePNG(w io.Writer, shades []color.Shade, opts Options) error {
	img, err := Render(shades, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("swatch: encode png: %w", err)
	}
	return nil
}

// LabelColor picks black or white text for a background, using the CIE L*
// of the background.
func LabelColor(bg color.RGB) stdcolor.RGBA {
	c := colorful.Color{R: float64(bg.R) / 255, G: float64(bg.G) / 255, B: float64(bg.B) / 255}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return black
	}
	return white
}

func drawCentered(dst draw.Image, face font.Face, text string, x, width, baseline int, c stdcolor.Color) {
	adv := font.MeasureString(face, text).Ceil()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x+(width-adv)/2, baseline),
	}
	d.DrawString(text)
}
