package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type rmAccountCmd struct {
	name string
}

func (*rmAccountCmd) Name() string     { return "rm-account" }
func (*rmAccountCmd) Synopsis() string { return "delete an account and all its transactions" }
func (*rmAccountCmd) Usage() string {
	return `rm-account -name <name>

  Deletes an account from the cashbox. Every transaction in the account
  and every line item of those transactions is deleted with it.
`
}

func (c *rmAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account name (required)")
}

func (c *rmAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name flag is required.")
		return subcommands.ExitUsageError
	}
	cb, err := DecodeCashbox()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading cashbox:", err)
		return subcommands.ExitFailure
	}
	a := cb.Account(c.name)
	if a == nil {
		fmt.Fprintf(os.Stderr, "Error: no account named %q.\n", c.name)
		return subcommands.ExitFailure
	}
	if err := a.Delete(); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting account %q: %v\n", c.name, err)
		return subcommands.ExitFailure
	}
	if err := SaveCashbox(cb); err != nil {
		fmt.Fprintln(os.Stderr, "Error saving cashbox:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ Successfully deleted account %q.\n", c.name)
	return subcommands.ExitSuccess
}
