// Package renderer formats cashbox entities as markdown reports.
package renderer

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/xanderman/quickcash"
)

// Currency is the display currency for all amounts. The ledger itself
// is currency-agnostic, it only stores decimals.
var Currency = money.USD

// Amount formats a decimal as a localized currency string. Amounts
// whose minor units do not fit an int64 fall back to plain decimal
// notation instead of a truncated value.
func Amount(d decimal.Decimal) string {
	cur := money.GetCurrency(Currency)
	minor := d.Shift(int32(cur.Fraction))
	if !minor.BigInt().IsInt64() {
		return d.StringFixed(int32(cur.Fraction))
	}
	return cur.Formatter().Format(minor.IntPart())
}

// mdRenderer formats markdown tables into a string builder.
type mdRenderer struct {
	*strings.Builder
}

func (r *mdRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

// Accounts renders the overview table of every registered account.
func Accounts(cb *quickcash.Cashbox) string {
	r := &mdRenderer{Builder: &strings.Builder{}}
	r.Printf("# Accounts\n\n")
	r.Printf("| Account | Type | Institution | Number | Balance |\n")
	r.Printf("|:---|:---|:---|:---|---:|\n")
	total := decimal.Zero
	for a := range cb.Accounts() {
		balance := a.Balance()
		total = total.Add(balance)
		r.Printf("| %s | %s | %s | %s | %s |\n",
			a.Name(), a.Type(), a.Institution(), a.Number(), Amount(balance))
	}
	r.Printf("| **Total** | | | | **%s** |\n", Amount(total))
	return r.String()
}

// Register renders one account's transactions as a check register.
// Transactions come out in (date, id) order, the account's natural
// order. Split transactions report the roll-up sentinels.
func Register(a *quickcash.Account) string {
	r := &mdRenderer{Builder: &strings.Builder{}}
	r.Printf("# %s\n\n", a.Name())
	r.Printf("| Date | Num | Payee | Description | Category | Amount |\n")
	r.Printf("|:---|:---|:---|:---|:---|---:|\n")
	for t := range a.Transactions() {
		r.Printf("| %s | %s | %s | %s | %s | %s |\n",
			t.Date(), t.CheckNr(), t.Payee(), t.Description(), t.Category().Name(), Amount(t.Amount()))
	}
	r.Printf("\nBalance: %s\n", Amount(a.Balance()))
	return r.String()
}

// Splits renders the line items of one transaction.
func Splits(t *quickcash.Transaction) string {
	r := &mdRenderer{Builder: &strings.Builder{}}
	r.Printf("# %s, %s\n\n", t.Payee(), t.Date())
	r.Printf("| Category | Description | Amount |\n")
	r.Printf("|:---|:---|---:|\n")
	for li := range t.Items() {
		r.Printf("| %s | %s | %s |\n", li.Category().Name(), li.Description(), Amount(li.Amount()))
	}
	r.Printf("| **Total** | | **%s** |\n", Amount(t.Amount()))
	return r.String()
}

// Categories renders the category table.
func Categories(cb *quickcash.Cashbox) string {
	r := &mdRenderer{Builder: &strings.Builder{}}
	r.Printf("# Categories\n\n")
	r.Printf("| Category | Description |\n")
	r.Printf("|:---|:---|\n")
	for c := range cb.Categories() {
		r.Printf("| %s | %s |\n", c.Name(), c.Description())
	}
	return r.String()
}
