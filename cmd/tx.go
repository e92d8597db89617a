package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/xanderman/quickcash/renderer"
)

type txCmd struct {
	account string
	tx      int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "show an account's register or one transaction's items" }
func (*txCmd) Usage() string {
	return `tx -account <name> [-tx <id>]

  Without -tx, lists all transactions of the account as a check
  register. With -tx, lists the line items of that transaction.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account name (required)")
	f.IntVar(&c.tx, "tx", -1, "Transaction id to detail")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "Error: -account flag is required.")
		return subcommands.ExitUsageError
	}
	cb, err := DecodeCashbox()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading cashbox:", err)
		return subcommands.ExitFailure
	}
	a := cb.Account(c.account)
	if a == nil {
		fmt.Fprintf(os.Stderr, "Error: no account named %q.\n", c.account)
		return subcommands.ExitFailure
	}

	if c.tx < 0 {
		printMarkdown(renderer.Register(a))
		return subcommands.ExitSuccess
	}

	tx := a.Transaction(c.tx)
	if tx == nil {
		fmt.Fprintf(os.Stderr, "Error: no transaction %d in account %q.\n", c.tx, c.account)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Splits(tx))
	return subcommands.ExitSuccess
}
