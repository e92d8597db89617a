package quickcash

import (
	"errors"
	"testing"
)

func TestNewCategory_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		cat     string
		wantErr error
	}{
		{name: "empty name", cat: "", wantErr: ErrInvalid},
		{name: "blank name", cat: "  \t ", wantErr: ErrInvalid},
		{name: "valid", cat: "Groceries"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cb := NewCashbox()
			_, err := cb.NewCategory(tc.cat, "desc")
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("NewCategory error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewCategory_DuplicateName(t *testing.T) {
	cb := NewCashbox()
	if _, err := cb.NewCategory("Groceries", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := cb.NewCategory(" Groceries ", "other desc"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate NewCategory error = %v, want %v", err, ErrDuplicate)
	}
}

func TestCategory_SetName(t *testing.T) {
	cb, groceries, dining := testCashbox(t)
	if err := groceries.SetName("Food"); err != nil {
		t.Fatal(err)
	}
	if got := groceries.Name(); got != "Food" {
		t.Errorf("Name = %q after SetName", got)
	}
	if err := groceries.SetName(dining.Name()); !errors.Is(err, ErrDuplicate) {
		t.Errorf("SetName onto existing name error = %v, want %v", err, ErrDuplicate)
	}
	if err := groceries.SetName(" "); !errors.Is(err, ErrInvalid) {
		t.Errorf("SetName(blank) error = %v, want %v", err, ErrInvalid)
	}
	// Keeping the current name is not a collision.
	if err := groceries.SetName("Food"); err != nil {
		t.Errorf("SetName to own name: %v", err)
	}
	_ = cb
}

func TestCategory_DeleteBlockedWhileInUse(t *testing.T) {
	cb, groceries, _ := testCashbox(t)
	a, err := cb.NewAccount("Checking", "WF", "1", Checking, "")
	if err != nil {
		t.Fatal(err)
	}
	tx, err := a.NewTransaction(day("2009-06-02"), "Albertsons", "")
	if err != nil {
		t.Fatal(err)
	}
	li, err := tx.NewLineItem(dec(10), groceries, "")
	if err != nil {
		t.Fatal(err)
	}

	if err := groceries.Delete(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Delete while referenced error = %v, want %v", err, ErrInvalid)
	}
	if !groceries.Valid() {
		t.Error("failed Delete must leave the category valid")
	}

	// Once the last reference is gone the delete succeeds.
	if err := li.Delete(); err != nil {
		t.Fatal(err)
	}
	if err := groceries.Delete(); err != nil {
		t.Fatal(err)
	}
	if groceries.Valid() {
		t.Error("category should be invalid after Delete")
	}
	if got := cb.Category("Groceries"); got != nil {
		t.Errorf("Category lookup after delete = %v, want nil", got)
	}
}

func TestCategory_DeleteUnblockedByCascade(t *testing.T) {
	cb, groceries, _ := testCashbox(t)
	a, err := cb.NewAccount("Checking", "WF", "1", Checking, "")
	if err != nil {
		t.Fatal(err)
	}
	tx, err := a.NewTransaction(day("2009-06-02"), "Albertsons", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tx.NewLineItem(dec(10), groceries, ""); err != nil {
		t.Fatal(err)
	}
	// Deleting the whole account invalidates the referencing item, so
	// the category is free again.
	if err := a.Delete(); err != nil {
		t.Fatal(err)
	}
	if err := groceries.Delete(); err != nil {
		t.Errorf("Delete after cascade removed all references: %v", err)
	}
}

func TestCategory_Sentinels(t *testing.T) {
	for _, c := range []*Category{NoCategory, None} {
		if !c.Sentinel() {
			t.Errorf("%v should report Sentinel", c)
		}
		if !c.Valid() {
			t.Errorf("%v should always be valid", c)
		}
		if c.ID() >= 0 {
			t.Errorf("%v id = %d, sentinels use negative ids", c, c.ID())
		}
		if err := c.Delete(); !errors.Is(err, ErrNotSupported) {
			t.Errorf("deleting %v error = %v, want %v", c, err, ErrNotSupported)
		}
		if err := c.SetName("x"); !errors.Is(err, ErrNotSupported) {
			t.Errorf("renaming %v error = %v, want %v", c, err, ErrNotSupported)
		}
	}
	if NoCategory.Name() != MultipleItems {
		t.Errorf("NoCategory name = %q, want %q", NoCategory.Name(), MultipleItems)
	}
}
