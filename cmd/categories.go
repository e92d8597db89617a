package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/xanderman/quickcash/renderer"
)

type categoriesCmd struct{}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "list all spending categories" }
func (*categoriesCmd) Usage() string {
	return `categories

  Lists every spending category in the cashbox.
`
}

func (*categoriesCmd) SetFlags(f *flag.FlagSet) {}

func (c *categoriesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cb, err := DecodeCashbox()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading cashbox:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Categories(cb))
	return subcommands.ExitSuccess
}
