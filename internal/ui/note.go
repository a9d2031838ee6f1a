package ui

import (
	"fmt"
	"io"
	"strings"
)

// Note writes a boxed message with an optional title
func Note(w io.Writer, message, title string) {
	lines := strings.Split(message, "\n")

	width := VisibleWidth(title) + 4
	for _, line := range lines {
		width = max(width, VisibleWidth(line)+2)
	}

	fmt.Fprintln(w)
	if title != "" {
		fmt.Fprintf(w, "%s%s %s %s%s\n",
			Muted(boxTopLeft),
			Muted(strings.Repeat(boxHorizontal, 1)),
			Heading(title),
			Muted(strings.Repeat(boxHorizontal, width-3-VisibleWidth(title))),
			Muted(boxTopRight))
	} else {
		fmt.Fprintln(w, Muted(boxTopLeft+strings.Repeat(boxHorizontal, width)+boxTopRight))
	}

	for _, line := range lines {
		fmt.Fprintf(w, "%s %s %s\n", Muted(boxVertical), PadRight(line, width-2), Muted(boxVertical))
	}

	fmt.Fprintln(w, Muted(boxBottomLeft+strings.Repeat(boxHorizontal, width)+boxBottomRight))
}

// ErrorNote writes an error-styled note
func ErrorNote(w io.Writer, message string) {
	Note(w, message, "✗ Error")
}
