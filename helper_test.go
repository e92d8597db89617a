package quickcash

import (
	"github.com/shopspring/decimal"
	"github.com/xanderman/quickcash/date"
)

// dec is a helper for tests to create decimal amounts from consts.
func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// day is a helper for tests to create dates from consts.
func day(s string) date.Date { return date.MustParse(s) }

// testCashbox returns a fresh cashbox with two categories registered.
func testCashbox(t interface{ Fatal(...any) }) (cb *Cashbox, groceries, dining *Category) {
	cb = NewCashbox()
	var err error
	groceries, err = cb.NewCategory("Groceries", "food and household")
	if err != nil {
		t.Fatal(err)
	}
	dining, err = cb.NewCategory("Dining", "eating out")
	if err != nil {
		t.Fatal(err)
	}
	return cb, groceries, dining
}
