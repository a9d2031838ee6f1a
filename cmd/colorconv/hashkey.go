package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"

	"golang.org/x/crypto/bcrypt"

	"color-converter/internal/api"
	"color-converter/internal/ui"
)

// runHashKey reads one API key from stdin and prints the bcrypt hash to put
// in API_KEY_HASH.
func runHashKey(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("hash-key", flag.ContinueOnError)
	cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Fprint(stdout, "Enter API key to hash: ")
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read key: %w", err)
	}

	hash, err := api.HashKey(line, *cost)
	if err != nil {
		return err
	}

	ui.Note(stdout, hash, "API_KEY_HASH")
	return nil
}
