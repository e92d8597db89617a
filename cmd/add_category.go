package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type addCategoryCmd struct {
	name        string
	description string
}

func (*addCategoryCmd) Name() string     { return "add-category" }
func (*addCategoryCmd) Synopsis() string { return "add a new spending category" }
func (*addCategoryCmd) Usage() string {
	return `add-category -name <name> [-description <description>]

  Adds a new spending category to the cashbox. The name must be unique.
`
}

func (c *addCategoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Category name (required)")
	f.StringVar(&c.description, "description", "", "Category description")
}

func (c *addCategoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name flag is required.")
		return subcommands.ExitUsageError
	}
	cb, err := DecodeCashbox()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading cashbox:", err)
		return subcommands.ExitFailure
	}
	cat, err := cb.NewCategory(c.name, c.description)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding category %q: %v\n", c.name, err)
		return subcommands.ExitFailure
	}
	if err := SaveCashbox(cb); err != nil {
		fmt.Fprintln(os.Stderr, "Error saving cashbox:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ Successfully added category %q.\n", cat.Name())
	return subcommands.ExitSuccess
}
