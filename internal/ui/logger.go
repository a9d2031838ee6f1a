package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
)

var (
	clrDim     = color.New(color.FgHiBlack)
	clrSubtle  = color.New(color.FgWhite)
	clrPrimary = color.New(color.FgMagenta, color.Bold)
	clrAccent  = color.New(color.FgCyan, color.Bold)

	clrSuccess = color.New(color.FgGreen)
	clrError   = color.New(color.FgRed)
	clrWarning = color.New(color.FgYellow)
	clrInfo    = color.New(color.FgBlue)

	badgePrimary = color.New(color.BgMagenta, color.FgWhite, color.Bold)
)

const (
	boxTopLeft     = "╭"
	boxTopRight    = "╮"
	boxBottomLeft  = "╰"
	boxBottomRight = "╯"
	boxHorizontal  = "─"
	boxVertical    = "│"
)

// Version is printed in the banner.
var Version = "v1.0.0"

// Log levels, lowest first.
const (
	LevelDebug = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	logOutput io.Writer = os.Stdout
	minLevel  atomic.Int32
)

func init() {
	minLevel.Store(LevelInfo)
}

// ParseLevel maps a level name to its value. ok is false for unknown names.
func ParseLevel(name string) (level int, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, true
	case "info", "":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelInfo, false
}

// SetLevel sets the lowest level LogStatus and LogRequest print.
// Unknown names select info.
func SetLevel(name string) {
	level, _ := ParseLevel(name)
	minLevel.Store(int32(level))
}

// Enabled reports whether messages at level are printed
func Enabled(level int) bool {
	return int32(level) >= minLevel.Load()
}

func categoryLevel(category string) int {
	switch category {
	case "debug":
		return LevelDebug
	case "warning", "warn":
		return LevelWarn
	case "error":
		return LevelError
	}
	return LevelInfo
}

// PrintBanner displays the boxed service header with a tagline
func PrintBanner(tagline string) {
	const inner = 60

	fmt.Println()
	fmt.Println(clrDim.Sprint(boxTopLeft + strings.Repeat(boxHorizontal, inner) + boxTopRight))

	badge := badgePrimary.Sprint(" ◆ COLORCONV ")
	title := fmt.Sprintf("  %s %s", badge, clrDim.Sprint(Version))
	fmt.Println(clrDim.Sprint(boxVertical) + PadRight(title, inner) + clrDim.Sprint(boxVertical))

	sub := "  " + FormatTagline(tagline)
	fmt.Println(clrDim.Sprint(boxVertical) + PadRight(sub, inner) + clrDim.Sprint(boxVertical))

	fmt.Println(clrDim.Sprint(boxBottomLeft + strings.Repeat(boxHorizontal, inner) + boxBottomRight))
	fmt.Println()
}

// LogStatus displays a status message with appropriate styling. Messages
// below the level set with SetLevel are dropped; success counts as info.
func LogStatus(category, message string) {
	if !Enabled(categoryLevel(category)) {
		return
	}
	ts := clrDim.Sprint(time.Now().Format("15:04:05"))

	var icon, styledMsg string
	switch category {
	case "success":
		icon = clrSuccess.Sprint("✔")
		styledMsg = clrSuccess.Sprint(message)
	case "error":
		icon = clrError.Sprint("✖")
		styledMsg = clrError.Sprint(message)
	case "warning", "warn":
		icon = clrWarning.Sprint("⚠")
		styledMsg = clrWarning.Sprint(message)
	case "info":
		icon = clrInfo.Sprint("ℹ")
		styledMsg = clrSubtle.Sprint(message)
	case "debug":
		icon = clrDim.Sprint("·")
		styledMsg = clrDim.Sprint(message)
	default:
		icon = clrDim.Sprint("●")
		styledMsg = clrSubtle.Sprint(message)
	}

	fmt.Fprintf(logOutput, "%s  %s  %s\n", ts, icon, styledMsg)
}

// LogRequest prints one line for a served API request. Requests are logged
// at info, failed ones at warn.
func LogRequest(method, path string, status int, d time.Duration) {
	level := LevelInfo
	if status >= 400 {
		level = LevelWarn
	}
	if !Enabled(level) {
		return
	}
	ts := clrDim.Sprint(time.Now().Format("15:04:05"))

	statusClr := clrSuccess
	switch {
	case status >= 500:
		statusClr = clrError
	case status >= 400:
		statusClr = clrWarning
	}

	fmt.Fprintf(logOutput, "%s  %s  %s %s  %s  %s\n",
		ts,
		clrPrimary.Sprint("→"),
		clrAccent.Sprintf("%-7s", method),
		clrSubtle.Sprintf("%-28s", path),
		statusClr.Sprintf("%d", status),
		clrDim.Sprint(formatDuration(d)))
}

// LogSection prints a section header
func LogSection(title string) {
	fmt.Fprintln(logOutput)
	fmt.Fprintf(logOutput, "%s %s %s\n",
		clrDim.Sprint("──"),
		clrAccent.Sprint(title),
		clrDim.Sprint(strings.Repeat("─", max(50-len(title), 2))))
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
}
