package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/xanderman/quickcash/date"
)

type transferCmd struct {
	from  string
	to    string
	date  string
	payee string
	check string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "record a transfer between two accounts" }
func (*transferCmd) Usage() string {
	return `transfer -from <account> -to <account> -date <date> [-payee <payee>] [-check <nr>]

  Records a transfer between two accounts as a pair of linked
  transactions, one in each account. Each leg's description names the
  other account and cannot be edited. Deleting either leg deletes both.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Source account name (required)")
	f.StringVar(&c.to, "to", "", "Destination account name (required)")
	f.StringVar(&c.date, "date", "", "Transfer date, YYYY-MM-DD (required)")
	f.StringVar(&c.payee, "payee", "", "Payee")
	f.StringVar(&c.check, "check", "", "Check number")
}

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" || c.to == "" || c.date == "" {
		fmt.Fprintln(os.Stderr, "Error: -from, -to and -date flags are required.")
		return subcommands.ExitUsageError
	}
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date %q: %v\n", c.date, err)
		return subcommands.ExitUsageError
	}

	cb, err := DecodeCashbox()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading cashbox:", err)
		return subcommands.ExitFailure
	}
	src := cb.Account(c.from)
	if src == nil {
		fmt.Fprintf(os.Stderr, "Error: no account named %q.\n", c.from)
		return subcommands.ExitFailure
	}
	dst := cb.Account(c.to)
	if dst == nil {
		fmt.Fprintf(os.Stderr, "Error: no account named %q.\n", c.to)
		return subcommands.ExitFailure
	}

	leg, err := cb.NewTransfer(src, dst, on, c.payee, c.check)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error recording transfer:", err)
		return subcommands.ExitFailure
	}

	if err := SaveCashbox(cb); err != nil {
		fmt.Fprintln(os.Stderr, "Error saving cashbox:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ Successfully recorded transfer %d from %q to %q.\n", leg.ID(), src.Name(), dst.Name())
	return subcommands.ExitSuccess
}
