package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/xanderman/quickcash"
	"github.com/xanderman/quickcash/date"
)

type addTxCmd struct {
	account     string
	date        string
	payee       string
	check       string
	amount      string
	category    string
	description string
}

func (*addTxCmd) Name() string     { return "add-tx" }
func (*addTxCmd) Synopsis() string { return "record a transaction against an account" }
func (*addTxCmd) Usage() string {
	return `add-tx -account <name> -date <date> -payee <payee> -amount <amount> [-check <nr>] [-category <name>] [-description <text>]

  Records a transaction with a single line item:
  - account: The account the transaction belongs to.
  - date: The day of the transaction (YYYY-MM-DD).
  - payee: Who was paid.
  - amount: The amount, negative for refunds.
  - check: The check number, if a check was involved.
  - category: The spending category of the line item. Defaults to None.
  - description: The line item description.

  To split the transaction across several categories, record it first
  and then use 'split' to add more line items.
`
}

func (c *addTxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account name (required)")
	f.StringVar(&c.date, "date", "", "Transaction date, YYYY-MM-DD (required)")
	f.StringVar(&c.payee, "payee", "", "Payee")
	f.StringVar(&c.check, "check", "", "Check number")
	f.StringVar(&c.amount, "amount", "", "Amount of the single line item (required)")
	f.StringVar(&c.category, "category", "", "Category of the single line item")
	f.StringVar(&c.description, "description", "", "Description of the single line item")
}

// lookupCategory resolves a -category flag value. Empty means the None
// sentinel.
func lookupCategory(cb *quickcash.Cashbox, name string) (*quickcash.Category, error) {
	if name == "" || name == quickcash.None.Name() {
		return quickcash.None, nil
	}
	cat := cb.Category(name)
	if cat == nil {
		return nil, fmt.Errorf("no category named %q, add it first with add-category", name)
	}
	return cat, nil
}

func (c *addTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.date == "" || c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -account, -date and -amount flags are required.")
		return subcommands.ExitUsageError
	}
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date %q: %v\n", c.date, err)
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
	cat, err := lookupCategory(cb, c.category)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	tx, err := a.NewTransaction(on, c.payee, c.check)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error adding transaction:", err)
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
	fmt.Printf("✅ Successfully recorded transaction %d in %q.\n", tx.ID(), a.Name())
	return subcommands.ExitSuccess
}
