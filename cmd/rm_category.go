package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type rmCategoryCmd struct {
	name string
}

func (*rmCategoryCmd) Name() string     { return "rm-category" }
func (*rmCategoryCmd) Synopsis() string { return "delete a spending category" }
func (*rmCategoryCmd) Usage() string {
	return `rm-category -name <name>

  Deletes a spending category. A category still used by any line item
  cannot be deleted; re-tag or delete the referencing items first.
`
}

func (c *rmCategoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Category name (required)")
}

func (c *rmCategoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name flag is required.")
		return subcommands.ExitUsageError
	}
	cb, err := DecodeCashbox()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading cashbox:", err)
		return subcommands.ExitFailure
	}
	cat := cb.Category(c.name)
	if cat == nil {
		fmt.Fprintf(os.Stderr, "Error: no category named %q.\n", c.name)
		return subcommands.ExitFailure
	}
	if err := cat.Delete(); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting category %q: %v\n", c.name, err)
		return subcommands.ExitFailure
	}
	if err := SaveCashbox(cb); err != nil {
		fmt.Fprintln(os.Stderr, "Error saving cashbox:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ Successfully deleted category %q.\n", c.name)
	return subcommands.ExitSuccess
}
