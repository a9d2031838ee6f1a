package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"color-converter/internal/api"
	"color-converter/internal/color"
	"color-converter/internal/config"
	"color-converter/internal/swatch"
	"color-converter/internal/ui"
)

// commonFlags are shared by the conversion commands.
type commonFlags struct {
	asJSON     bool
	offsets    string
	configPath string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.BoolVar(&c.asJSON, "json", false, "print the result as JSON")
	fs.StringVar(&c.offsets, "offsets", "", "palette lightness steps (default from config)")
	fs.StringVar(&c.configPath, "config", "config.json", "path to config file")
}

// load returns the config and the offsets to use, preferring --offsets.
func (c *commonFlags) load() (*config.Config, []int, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, nil, err
	}
	offsets := cfg.PaletteOffsets
	if c.offsets != "" {
		if offsets, err = color.ParseOffsets(c.offsets); err != nil {
			return nil, nil, err
		}
	}
	return cfg, offsets, nil
}

func runConvert(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	var common commonFlags
	common.register(fs)
	picker := fs.Bool("picker", false, "treat the value as a native color picker value")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("convert takes exactly one color value")
	}

	cfg, offsets, err := common.load()
	if err != nil {
		return err
	}

	raw := fs.Arg(0)
	source := color.SourceText
	var res *color.Result
	if *picker {
		source = color.SourcePicker
		res, err = color.FromPicker(raw, offsets)
	} else {
		res, err = color.FromHex(raw, offsets)
	}
	if errors.Is(err, color.ErrInvalidFormat) {
		if common.asJSON {
			if err := writeJSON(stdout, api.InvalidResponse(cfg, source)); err != nil {
				return err
			}
		} else {
			ui.RenderInvalid(stdout, raw, cfg.PlaceholderHex, cfg.InvalidText)
		}
		return errInvalidInput
	}
	if err != nil {
		return err
	}

	return output(stdout, res, source, common.asJSON)
}

func runRGB(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("rgb", flag.ContinueOnError)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return errors.New("rgb takes three channel values")
	}

	var ch [3]uint8
	for i := range ch {
		n, err := strconv.ParseUint(fs.Arg(i), 10, 8)
		if err != nil {
			return fmt.Errorf("channel %q is not an integer in 0..255", fs.Arg(i))
		}
		ch[i] = uint8(n)
	}

	_, offsets, err := common.load()
	if err != nil {
		return err
	}
	res := color.FromRGB(color.RGB{R: ch[0], G: ch[1], B: ch[2]}, offsets)
	return output(stdout, res, color.SourceRGB, common.asJSON)
}

func runPalette(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("palette", flag.ContinueOnError)
	var common commonFlags
	common.register(fs)
	out := fs.String("out", "palette.png", "output PNG file")
	size := fs.Int("size", swatch.DefaultOptions.ShadeWidth, "shade width and height in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("palette takes exactly one color value")
	}

	_, offsets, err := common.load()
	if err != nil {
		return err
	}
	res, err := color.FromHex(fs.Arg(0), offsets)
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", *out, err)
	}
	if err := swatch.EncodePNG(f, res.Palette, swatch.Options{ShadeWidth: *size, Height: *size}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", *out, err)
	}

	fmt.Fprintf(stdout, "%s %s palette (%d shades) -> %s\n", ui.Success("✔"), res.Hex, len(res.Palette), *out)
	return nil
}

func output(w io.Writer, res *color.Result, source color.Source, asJSON bool) error {
	if asJSON {
		return writeJSON(w, api.NewConvertResponse(res, source))
	}
	ui.RenderResult(w, res)
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
