package ui

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// SGR codes (ESC[...m) as emitted by fatih/color and lipgloss
var ansiSGRPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripAnsi removes SGR escape codes from a string
func StripAnsi(input string) string {
	return ansiSGRPattern.ReplaceAllString(input, "")
}

// VisibleWidth returns the display width of a string, ignoring ANSI codes.
// Runes are counted, not bytes.
func VisibleWidth(input string) int {
	return utf8.RuneCountInString(StripAnsi(input))
}

// PadRight pads a string with spaces to a minimum visible width
func PadRight(input string, width int) string {
	return input + spaces(width-VisibleWidth(input))
}

// PadLeft pads a string with leading spaces to a minimum visible width
func PadLeft(input string, width int) string {
	return spaces(width-VisibleWidth(input)) + input
}

// spaces returns a string of n spaces
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
