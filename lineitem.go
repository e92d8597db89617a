package quickcash

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one monetary split of a transaction, tagged with a
// category. An item is owned by exactly one transaction for its whole
// lifetime.
//
// Amounts carry no sign constraint: a refund line on a grocery receipt
// is simply negative.
type LineItem struct {
	box *Cashbox
	tx  *Transaction

	id          int
	amount      decimal.Decimal
	category    *Category
	description string
	valid       bool
}

// NewLineItem creates a line item, assigns it an id, and adds it to the
// transaction. It fails if the transaction has been deleted or the
// category is nil or deleted; on failure the transaction's item set is
// unchanged.
func (t *Transaction) NewLineItem(amount decimal.Decimal, category *Category, description string) (*LineItem, error) {
	t.box.mu.Lock()
	defer t.box.mu.Unlock()
	if !t.valid {
		return nil, fmt.Errorf("transaction %d: %w", t.id, ErrDeleted)
	}
	if category == nil {
		return nil, fmt.Errorf("category: %w", ErrMissing)
	}
	if category.box != nil && !category.valid {
		return nil, fmt.Errorf("category %d: %w", category.id, ErrDeleted)
	}
	li := &LineItem{
		box:         t.box,
		tx:          t,
		id:          t.box.itemIDs.next(),
		amount:      amount,
		category:    category,
		description: strings.TrimSpace(description),
		valid:       true,
	}
	if err := t.addItem(li); err != nil {
		return nil, err
	}
	return li, nil
}

// addItem links a valid item into the transaction's ordered set.
// Owner-only: called with the Cashbox mutex held.
func (t *Transaction) addItem(li *LineItem) error {
	if !li.valid {
		return fmt.Errorf("line item is invalid: %w", ErrInvalid)
	}
	for _, other := range t.items {
		if other.id == li.id {
			return fmt.Errorf("line item id %d already exists in transaction %d: %w", li.id, t.id, ErrInvalid)
		}
	}
	// Item ids are monotonically increasing, appending keeps id order.
	t.items = append(t.items, li)
	return nil
}

// removeItem unlinks an already-invalidated item. It is the reaction to
// the item's invalidation.
func (t *Transaction) removeItem(li *LineItem) error {
	if li.valid {
		return fmt.Errorf("line item %d is still valid: %w", li.id, ErrInvalid)
	}
	for i, other := range t.items {
		if other == li {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("line item %d not owned by transaction %d: %w", li.id, t.id, ErrInvalid)
}

// Valid reports whether the line item is still live.
func (li *LineItem) Valid() bool {
	li.box.mu.Lock()
	defer li.box.mu.Unlock()
	return li.valid
}

// ID returns the record identifier.
func (li *LineItem) ID() int {
	li.mustBeLive()
	return li.id
}

// Transaction returns the transaction owning this item.
func (li *LineItem) Transaction() *Transaction {
	li.mustBeLive()
	return li.tx
}

// Amount returns the monetary amount of this split.
func (li *LineItem) Amount() decimal.Decimal {
	li.mustBeLive()
	return li.amount
}

// Category returns the category tagging this split.
func (li *LineItem) Category() *Category {
	li.mustBeLive()
	return li.category
}

// Description returns the item description.
func (li *LineItem) Description() string {
	li.mustBeLive()
	return li.description
}

// SetAmount replaces the amount.
func (li *LineItem) SetAmount(amount decimal.Decimal) error {
	li.box.mu.Lock()
	defer li.box.mu.Unlock()
	if !li.valid {
		return fmt.Errorf("line item %d: %w", li.id, ErrDeleted)
	}
	li.amount = amount
	return nil
}

// SetCategory re-tags the split with another category.
func (li *LineItem) SetCategory(category *Category) error {
	li.box.mu.Lock()
	defer li.box.mu.Unlock()
	if !li.valid {
		return fmt.Errorf("line item %d: %w", li.id, ErrDeleted)
	}
	if category == nil {
		return fmt.Errorf("category: %w", ErrMissing)
	}
	if category.box != nil && !category.valid {
		return fmt.Errorf("category %d: %w", category.id, ErrDeleted)
	}
	li.category = category
	return nil
}

// SetDescription replaces the item description.
func (li *LineItem) SetDescription(description string) error {
	li.box.mu.Lock()
	defer li.box.mu.Unlock()
	if !li.valid {
		return fmt.Errorf("line item %d: %w", li.id, ErrDeleted)
	}
	li.description = strings.TrimSpace(description)
	return nil
}

// Delete soft-deletes the line item and removes it from its transaction
// in the same step. Deleting twice is a no-op.
func (li *LineItem) Delete() error {
	li.box.mu.Lock()
	defer li.box.mu.Unlock()
	if !li.valid {
		return nil
	}
	events := li.deleteLocked(nil)
	li.box.publish(events)
	return nil
}

func (li *LineItem) deleteLocked(events []Invalidation) []Invalidation {
	if !li.valid {
		return events
	}
	li.valid = false
	// The owning transaction may already be mid-deletion; it then
	// clears its own item set.
	if li.tx.valid {
		li.tx.removeItem(li)
	}
	return append(events, Invalidation{Kind: KindLineItem, ID: li.id})
}

func (li *LineItem) mustBeLive() {
	li.box.mu.Lock()
	defer li.box.mu.Unlock()
	if !li.valid {
		panic(fmt.Sprintf("line item %d has been deleted", li.id))
	}
}
