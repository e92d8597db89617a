package quickcash

import (
	"errors"
	"slices"
	"testing"
)

func TestCashbox_AccountUniqueness(t *testing.T) {
	testCases := []struct {
		name    string
		first   [3]string // name, institution, number
		second  [3]string
		wantErr error
	}{
		{
			name:    "same name",
			first:   [3]string{"Savings", "Wells Fargo", "111"},
			second:  [3]string{"Savings", "Chase", "222"},
			wantErr: ErrDuplicate,
		},
		{
			name:    "same name after trimming",
			first:   [3]string{"Savings", "Wells Fargo", "111"},
			second:  [3]string{"  Savings  ", "Chase", "222"},
			wantErr: ErrDuplicate,
		},
		{
			name:    "same institution and number",
			first:   [3]string{"Checking", "Wells Fargo", "111"},
			second:  [3]string{"Other", "Wells Fargo", "111"},
			wantErr: ErrDuplicate,
		},
		{
			name:   "same institution, different number",
			first:  [3]string{"Checking", "Wells Fargo", "111"},
			second: [3]string{"Other", "Wells Fargo", "222"},
		},
		{
			name:   "empty pairs are exempt from the pair constraint",
			first:  [3]string{"Checking", "", ""},
			second: [3]string{"Other", "", ""},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cb := NewCashbox()
			first, err := cb.NewAccount(tc.first[0], tc.first[1], tc.first[2], Checking, "")
			if err != nil {
				t.Fatalf("first NewAccount: %v", err)
			}
			_, err = cb.NewAccount(tc.second[0], tc.second[1], tc.second[2], Checking, "")
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("second NewAccount error = %v, want %v", err, tc.wantErr)
			}
			if !first.Valid() {
				t.Error("first account should stay valid")
			}
			// The first account must remain registered either way.
			var names []string
			for a := range cb.Accounts() {
				names = append(names, a.Name())
			}
			if !slices.Contains(names, first.Name()) {
				t.Errorf("first account missing from registry, got %v", names)
			}
			if tc.wantErr != nil && len(names) != 1 {
				t.Errorf("registry should hold exactly the first account, got %v", names)
			}
		})
	}
}

func TestCashbox_AccountsOrderedByName(t *testing.T) {
	cb := NewCashbox()
	for _, name := range []string{"Vacation", "Checking", "Savings"} {
		if _, err := cb.NewAccount(name, "", "", Savings, ""); err != nil {
			t.Fatal(err)
		}
	}
	var got []string
	for a := range cb.Accounts() {
		got = append(got, a.Name())
	}
	want := []string{"Checking", "Savings", "Vacation"}
	if !slices.Equal(got, want) {
		t.Errorf("Accounts() order = %v, want %v", got, want)
	}
}

func TestCashbox_CategoriesOrderedByName(t *testing.T) {
	cb := NewCashbox()
	for _, name := range []string{"Utilities", "Dining", "Groceries"} {
		if _, err := cb.NewCategory(name, ""); err != nil {
			t.Fatal(err)
		}
	}
	var got []string
	for c := range cb.Categories() {
		got = append(got, c.Name())
	}
	want := []string{"Dining", "Groceries", "Utilities"}
	if !slices.Equal(got, want) {
		t.Errorf("Categories() order = %v, want %v", got, want)
	}
}

func TestCashbox_Lookup(t *testing.T) {
	cb := NewCashbox()
	a, err := cb.NewAccount("Checking", "WF", "1", Checking, "")
	if err != nil {
		t.Fatal(err)
	}
	if got := cb.Account("Checking"); got != a {
		t.Errorf("Account(%q) = %v, want the created account", "Checking", got)
	}
	if got := cb.Account("  Checking "); got != a {
		t.Error("Account lookup should trim its argument")
	}
	if got := cb.Account("Nope"); got != nil {
		t.Errorf("Account(%q) = %v, want nil", "Nope", got)
	}
}

func TestCashbox_IDsNeverReused(t *testing.T) {
	cb := NewCashbox()
	first, err := cb.NewAccount("First", "", "", Checking, "")
	if err != nil {
		t.Fatal(err)
	}
	firstID := first.ID()
	if err := first.Delete(); err != nil {
		t.Fatal(err)
	}
	second, err := cb.NewAccount("Second", "", "", Checking, "")
	if err != nil {
		t.Fatal(err)
	}
	if second.ID() <= firstID {
		t.Errorf("id %d issued after deleting account %d; ids must be strictly increasing", second.ID(), firstID)
	}
}

func TestCashbox_SubscribeReceivesCascade(t *testing.T) {
	cb, groceries, _ := testCashbox(t)
	a, err := cb.NewAccount("Checking", "WF", "1", Checking, "")
	if err != nil {
		t.Fatal(err)
	}
	tx, err := a.NewTransaction(day("2009-06-02"), "Albertsons", "101")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tx.NewLineItem(dec(10), groceries, "food"); err != nil {
		t.Fatal(err)
	}

	var got []Kind
	cb.Subscribe(func(ev Invalidation) { got = append(got, ev.Kind) })

	if err := a.Delete(); err != nil {
		t.Fatal(err)
	}
	// Children first: item, then transaction, then account.
	want := []Kind{KindLineItem, KindTransaction, KindAccount}
	if !slices.Equal(got, want) {
		t.Errorf("event kinds = %v, want %v", got, want)
	}
}
