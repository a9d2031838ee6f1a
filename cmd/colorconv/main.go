package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"color-converter/internal/ui"
)

// errInvalidInput marks a command that rendered the invalid-input view; the
// process exits 1 without printing anything further.
var errInvalidInput = errors.New("invalid input")

func main() {
	// A missing .env is fine; production relies on real env vars
	_ = godotenv.Load()

	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	var err error
	switch args[0] {
	case "serve":
		err = runServe(args[1:])
	case "convert":
		err = runConvert(args[1:], stdout)
	case "rgb":
		err = runRGB(args[1:], stdout)
	case "palette":
		err = runPalette(args[1:], stdout)
	case "hash-key":
		err = runHashKey(args[1:], stdin, stdout)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errInvalidInput):
		return 1
	default:
		ui.ErrorNote(stderr, err.Error())
		return 1
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `%s - hex, RGB and HSL color conversion

Usage:
  colorconv serve    [--config FILE]
  colorconv convert  [--json] [--picker] [--offsets LIST] [--config FILE] <hex>
  colorconv rgb      [--json] [--offsets LIST] [--config FILE] <r> <g> <b>
  colorconv palette  [--offsets LIST] [--size PX] [--out FILE] <hex>
  colorconv hash-key [--cost N]

Offsets are comma separated lightness steps, e.g. -40,-20,0,20,40.
`, ui.Command("colorconv"))
}
