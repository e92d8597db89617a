package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type rmTxCmd struct {
	account string
	tx      int
}

func (*rmTxCmd) Name() string     { return "rm-tx" }
func (*rmTxCmd) Synopsis() string { return "delete a transaction and its line items" }
func (*rmTxCmd) Usage() string {
	return `rm-tx -account <name> -tx <id>

  Deletes a transaction from its account, with all its line items.
  Deleting one leg of a transfer deletes the other leg too.
`
}

func (c *rmTxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account name (required)")
	f.IntVar(&c.tx, "tx", -1, "Transaction id (required)")
}

func (c *rmTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.tx < 0 {
		fmt.Fprintln(os.Stderr, "Error: -account and -tx flags are required.")
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
	tx := a.Transaction(c.tx)
	if tx == nil {
		fmt.Fprintf(os.Stderr, "Error: no transaction %d in account %q.\n", c.tx, c.account)
		return subcommands.ExitFailure
	}
	if err := tx.Delete(); err != nil {
		fmt.Fprintln(os.Stderr, "Error deleting transaction:", err)
		return subcommands.ExitFailure
	}
	if err := SaveCashbox(cb); err != nil {
		fmt.Fprintln(os.Stderr, "Error saving cashbox:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ Successfully deleted transaction %d from %q.\n", c.tx, c.account)
	return subcommands.ExitSuccess
}
