package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/xanderman/quickcash/renderer"
)

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list all accounts and their balances" }
func (*accountsCmd) Usage() string {
	return `accounts

  Lists every account in the cashbox with its type, institution and
  current balance.
`
}

func (*accountsCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cb, err := DecodeCashbox()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading cashbox:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Accounts(cb))
	return subcommands.ExitSuccess
}
