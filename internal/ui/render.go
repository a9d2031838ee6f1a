package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"color-converter/internal/color"
	"color-converter/internal/swatch"
)

const swatchWidth = 30

// swatchStyle paints a block with bg as background and a readable label color.
func swatchStyle(bg color.RGB) lipgloss.Style {
	ink := swatch.LabelColor(bg)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color.Encode(bg))).
		Foreground(lipgloss.Color(color.Encode(color.RGB{R: ink.R, G: ink.G, B: ink.B})))
}

// RenderResult writes the preview for a converted color: a large swatch with
// the hex and hsl overlaid, the three text forms, and the palette table.
func RenderResult(w io.Writer, res *color.Result) {
	big := swatchStyle(res.RGB).
		Width(swatchWidth).
		Align(lipgloss.Center).
		Padding(1, 0).
		Bold(true).
		Render(res.Hex + "\n" + res.HSLString())
	fmt.Fprintln(w, big)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s  %s\n", Muted("HEX"), Bold(res.Hex))
	fmt.Fprintf(w, "  %s  %s\n", Muted("RGB"), Subtle(res.RGBString()))
	fmt.Fprintf(w, "  %s  %s\n", Muted("HSL"), Subtle(res.HSLString()))

	if len(res.Palette) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, RenderPalette(res.Palette))
}

// RenderPalette renders the palette as a table, one row per shade in input
// order. The base shade is marked with ◆.
func RenderPalette(shades []color.Shade) string {
	rows := make([]map[string]string, 0, len(shades))
	for _, s := range shades {
		marker := ""
		if s.IsBase {
			marker = Accent("◆")
		}
		rows = append(rows, map[string]string{
			"step":   formatStep(s.Step),
			"hex":    s.Hex,
			"light":  strconv.Itoa(s.HSL.L) + "%",
			"swatch": swatchStyle(color.HSLToRGB(s.HSL)).Render(spaces(8)),
			"base":   marker,
		})
	}

	return RenderTable(RenderTableOptions{
		Columns: []TableColumn{
			{Key: "step", Header: "Step", Align: AlignRight},
			{Key: "hex", Header: "Hex"},
			{Key: "light", Header: "Lightness", Align: AlignRight},
			{Key: "swatch", Header: "Swatch"},
			{Key: "base", Header: "Base"},
		},
		Rows: rows,
	})
}

// RenderInvalid writes the fallback view shown when input is not a valid hex
// color: a neutral swatch and the invalid text in place of rgb and hsl.
func RenderInvalid(w io.Writer, input, placeholderHex, text string) {
	bg, err := color.Decode(placeholderHex)
	if err != nil {
		bg = color.RGB{R: 0xD1, G: 0xD5, B: 0xDB}
	}
	block := swatchStyle(bg).Width(swatchWidth).Padding(1, 0).Render("")
	fmt.Fprintln(w, block)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s  %s\n", Muted("HEX"), Warn("%s", strconv.Quote(input)))
	fmt.Fprintf(w, "  %s  %s\n", Muted("RGB"), Error("%s", text))
	fmt.Fprintf(w, "  %s  %s\n", Muted("HSL"), Error("%s", text))
}

func formatStep(step int) string {
	if step > 0 {
		return "+" + strconv.Itoa(step)
	}
	return strconv.Itoa(step)
}
