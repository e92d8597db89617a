package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/xanderman/quickcash"
)

type addAccountCmd struct {
	name        string
	institution string
	number      string
	typ         string
	notes       string
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "add a new bank account to the cashbox" }
func (*addAccountCmd) Usage() string {
	return `add-account -name <name> [-institution <institution>] [-number <number>] [-type <type>] [-notes <notes>]

  Adds a new bank account to the cashbox:
  - name: The account name (e.g., "WF Checking"). Must be unique.
  - institution: The institution holding the account (e.g., "Wells Fargo").
  - number: The account number at the institution.
  - type: The account type, "checking" or "savings".
  - notes: Free-form notes.

  The (institution, number) pair must be unique among accounts that have one.
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account name (required)")
	f.StringVar(&c.institution, "institution", "", "Institution holding the account")
	f.StringVar(&c.number, "number", "", "Account number at the institution")
	f.StringVar(&c.typ, "type", "checking", "Account type: checking or savings")
	f.StringVar(&c.notes, "notes", "", "Free-form notes")
}

func (c *addAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name flag is required.")
		return subcommands.ExitUsageError
	}
	typ, err := quickcash.ParseAccountType(c.typ)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	cb, err := DecodeCashbox()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading cashbox:", err)
		return subcommands.ExitFailure
	}

	a, err := cb.NewAccount(c.name, c.institution, c.number, typ, c.notes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding account %q: %v\n", c.name, err)
		return subcommands.ExitFailure
	}

	if err := SaveCashbox(cb); err != nil {
		fmt.Fprintln(os.Stderr, "Error saving cashbox:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ Successfully added account %q (id %d).\n", a.Name(), a.ID())
	return subcommands.ExitSuccess
}
