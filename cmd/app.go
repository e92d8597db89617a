// Package cmd implements the CLI application to manage a cashbox.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/xanderman/quickcash"
)

// Commands is the list of subcommands a main package registers.
var Commands = []subcommands.Command{
	&addAccountCmd{},
	&accountsCmd{},
	&rmAccountCmd{},
	&addCategoryCmd{},
	&categoriesCmd{},
	&rmCategoryCmd{},
	&addTxCmd{},
	&splitCmd{},
	&txCmd{},
	&rmTxCmd{},
	&transferCmd{},
	&topicCmd{},
	&assistCmd{},
}

// As a CLI application it has a very short lived lifecycle, so it is ok
// to use global variables.
var cashboxFile = flag.String("cashbox-file", "cashbox.jsonl", "Path to the cashbox file (JSONL format)")

// DecodeCashbox loads the cashbox from the app default cashbox file.
// A missing file is an empty cashbox.
func DecodeCashbox() (*quickcash.Cashbox, error) {
	f, err := os.Open(*cashboxFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return quickcash.NewCashbox(), nil
		}
		return nil, fmt.Errorf("could not open cashbox file %q: %w", *cashboxFile, err)
	}
	defer f.Close()

	cb, err := quickcash.DecodeCashbox(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode cashbox file %q: %w", *cashboxFile, err)
	}
	return cb, nil
}

// SaveCashbox writes the cashbox back to the app default cashbox file.
// The snapshot is written to a temp file first and renamed over the
// target, so a failed write never truncates the ledger.
func SaveCashbox(cb *quickcash.Cashbox) error {
	tmp := *cashboxFile + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("could not create cashbox file %q: %w", tmp, err)
	}
	if err := quickcash.EncodeCashbox(f, cb); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("could not encode cashbox: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not close cashbox file %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, *cashboxFile); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not replace cashbox file %q: %w", *cashboxFile, err)
	}
	return nil
}

// printMarkdown renders markdown to the terminal. When rendering fails
// the raw markdown is still printed, the report matters more than the
// styling.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
