package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type splitCmd struct {
	account     string
	tx          int
	amount      string
	category    string
	description string
}

func (*splitCmd) Name() string     { return "split" }
func (*splitCmd) Synopsis() string { return "add a line item to an existing transaction" }
func (*splitCmd) Usage() string {
	return `split -account <name> -tx <id> -amount <amount> [-category <name>] [-description <text>]

  Adds another line item to an existing transaction, splitting the
  receipt across several categories. The transaction's amount becomes
  the sum of all its items.
`
}

func (c *splitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account name (required)")
	f.IntVar(&c.tx, "tx", -1, "Transaction id (required)")
	f.StringVar(&c.amount, "amount", "", "Amount of the new line item (required)")
	f.StringVar(&c.category, "category", "", "Category of the new line item")
	f.StringVar(&c.description, "description", "", "Description of the new line item")
}

func (c *splitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.tx < 0 || c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -account, -tx and -amount flags are required.")
		return subcommands.ExitUsageError
	}
	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", c.amount, err)
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
	cat, err := lookupCategory(cb, c.category)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if _, err := tx.NewLineItem(amount, cat, c.description); err != nil {
		fmt.Fprintln(os.Stderr, "Error adding line item:", err)
		return subcommands.ExitFailure
	}

	if err := SaveCashbox(cb); err != nil {
		fmt.Fprintln(os.Stderr, "Error saving cashbox:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ Successfully split transaction %d.\n", tx.ID())
	return subcommands.ExitSuccess
}
