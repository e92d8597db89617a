package quickcash

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xanderman/quickcash/date"
)

// MultipleItems is the description reported by a transaction whose
// roll-up is ambiguous because it holds more than one line item.
const MultipleItems = "..."

// Transaction records one receipt against an account. It owns an
// ordered set of line items, allowing a receipt to be split across
// several categories.
//
// A transaction whose Peer is non-nil is one leg of a transfer between
// two accounts; see NewTransfer.
type Transaction struct {
	box     *Cashbox
	account *Account

	id      int
	date    date.Date
	payee   string
	checkNr string
	items   []*LineItem // ordered by id
	valid   bool

	// Transfer wiring; nil for plain transactions.
	dest *Account
	peer *Transaction
}

// NewTransaction creates a transaction, assigns it an id, and adds it
// to the account. It fails if the account has been deleted; the account
// is responsible for rejecting a duplicate transaction id.
func (a *Account) NewTransaction(on date.Date, payee, checkNr string) (*Transaction, error) {
	a.box.mu.Lock()
	defer a.box.mu.Unlock()
	return a.newTransaction(on, payee, checkNr)
}

// newTransaction is NewTransaction with the Cashbox mutex held, shared
// with the transfer constructor.
func (a *Account) newTransaction(on date.Date, payee, checkNr string) (*Transaction, error) {
	if !a.valid {
		return nil, fmt.Errorf("account %d: %w", a.id, ErrDeleted)
	}
	if on.IsZero() {
		return nil, fmt.Errorf("transaction date: %w", ErrMissing)
	}
	t := &Transaction{
		box:     a.box,
		account: a,
		id:      a.box.txIDs.next(),
		date:    on,
		payee:   strings.TrimSpace(payee),
		checkNr: strings.TrimSpace(checkNr),
		valid:   true,
	}
	if err := a.addTransaction(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Valid reports whether the transaction is still live.
func (t *Transaction) Valid() bool {
	t.box.mu.Lock()
	defer t.box.mu.Unlock()
	return t.valid
}

// ID returns the record identifier.
func (t *Transaction) ID() int {
	t.mustBeLive()
	return t.id
}

// Account returns the account owning this transaction.
func (t *Transaction) Account() *Account {
	t.mustBeLive()
	return t.account
}

// Date returns the day the transaction occurred.
func (t *Transaction) Date() date.Date {
	t.mustBeLive()
	return t.date
}

// Payee returns the payee.
func (t *Transaction) Payee() string {
	t.mustBeLive()
	return t.payee
}

// CheckNr returns the check number, empty when no check was involved.
func (t *Transaction) CheckNr() string {
	t.mustBeLive()
	return t.checkNr
}

// IsTransfer reports whether this transaction is one leg of a transfer.
func (t *Transaction) IsTransfer() bool {
	t.mustBeLive()
	return t.peer != nil
}

// DestAccount returns the account on the other side of a transfer leg,
// or nil for a plain transaction.
func (t *Transaction) DestAccount() *Account {
	t.mustBeLive()
	return t.dest
}

// Peer returns the paired leg of a transfer, or nil for a plain
// transaction. The two legs always reference each other.
func (t *Transaction) Peer() *Transaction {
	t.mustBeLive()
	return t.peer
}

// SetDate moves the transaction to another day, re-ordering it within
// its account.
func (t *Transaction) SetDate(on date.Date) error {
	t.box.mu.Lock()
	defer t.box.mu.Unlock()
	if !t.valid {
		return fmt.Errorf("transaction %d: %w", t.id, ErrDeleted)
	}
	if on.IsZero() {
		return fmt.Errorf("transaction date: %w", ErrMissing)
	}
	t.date = on
	t.account.sortTransactions()
	return nil
}

// SetPayee replaces the payee.
func (t *Transaction) SetPayee(payee string) error {
	t.box.mu.Lock()
	defer t.box.mu.Unlock()
	if !t.valid {
		return fmt.Errorf("transaction %d: %w", t.id, ErrDeleted)
	}
	t.payee = strings.TrimSpace(payee)
	return nil
}

// SetCheckNr replaces the check number.
func (t *Transaction) SetCheckNr(checkNr string) error {
	t.box.mu.Lock()
	defer t.box.mu.Unlock()
	if !t.valid {
		return fmt.Errorf("transaction %d: %w", t.id, ErrDeleted)
	}
	t.checkNr = strings.TrimSpace(checkNr)
	return nil
}

// Items iterates over the transaction's line items ordered by id. The
// iteration works on a snapshot.
func (t *Transaction) Items() iter.Seq[*LineItem] {
	t.mustBeLive()
	t.box.mu.Lock()
	items := slices.Clone(t.items)
	t.box.mu.Unlock()
	return slices.Values(items)
}

// Amount returns the sum of all line item amounts.
func (t *Transaction) Amount() decimal.Decimal {
	t.mustBeLive()
	t.box.mu.Lock()
	defer t.box.mu.Unlock()
	return t.amount()
}

func (t *Transaction) amount() decimal.Decimal {
	total := decimal.Zero
	for _, li := range t.items {
		total = total.Add(li.amount)
	}
	return total
}

// Description returns the sole line item's description when the
// transaction has exactly one item. A transfer leg always reports a
// synthesized description naming the other account; any other item
// count reports the MultipleItems sentinel.
func (t *Transaction) Description() string {
	t.mustBeLive()
	t.box.mu.Lock()
	defer t.box.mu.Unlock()
	return t.description()
}

func (t *Transaction) description() string {
	if t.peer != nil {
		return "Transfer with " + t.dest.name
	}
	if len(t.items) == 1 {
		return t.items[0].description
	}
	return MultipleItems
}

// Category returns the sole line item's category when the transaction
// has exactly one item, and the NoCategory sentinel otherwise.
func (t *Transaction) Category() *Category {
	t.mustBeLive()
	t.box.mu.Lock()
	defer t.box.mu.Unlock()
	if len(t.items) == 1 {
		return t.items[0].category
	}
	return NoCategory
}

// SetDescription delegates to the sole line item. It fails on a
// transfer leg, whose description is always synthesized, and on any
// transaction that does not hold exactly one item.
func (t *Transaction) SetDescription(description string) error {
	t.box.mu.Lock()
	defer t.box.mu.Unlock()
	if !t.valid {
		return fmt.Errorf("transaction %d: %w", t.id, ErrDeleted)
	}
	if t.peer != nil {
		return fmt.Errorf("transfer description is synthesized: %w", ErrNotSupported)
	}
	if len(t.items) != 1 {
		return fmt.Errorf("description requires exactly one line item, have %d: %w", len(t.items), ErrInvalid)
	}
	t.items[0].description = strings.TrimSpace(description)
	return nil
}

// SetCategory delegates to the sole line item. It fails on any
// transaction that does not hold exactly one item.
func (t *Transaction) SetCategory(c *Category) error {
	t.box.mu.Lock()
	defer t.box.mu.Unlock()
	if !t.valid {
		return fmt.Errorf("transaction %d: %w", t.id, ErrDeleted)
	}
	if c == nil {
		return fmt.Errorf("category: %w", ErrMissing)
	}
	if len(t.items) != 1 {
		return fmt.Errorf("category requires exactly one line item, have %d: %w", len(t.items), ErrInvalid)
	}
	if c.box != nil && !c.valid {
		return fmt.Errorf("category %d: %w", c.id, ErrDeleted)
	}
	t.items[0].category = c
	return nil
}

// SetAmount delegates to the sole line item. It fails on any
// transaction that does not hold exactly one item.
func (t *Transaction) SetAmount(amount decimal.Decimal) error {
	t.box.mu.Lock()
	defer t.box.mu.Unlock()
	if !t.valid {
		return fmt.Errorf("transaction %d: %w", t.id, ErrDeleted)
	}
	if len(t.items) != 1 {
		return fmt.Errorf("amount requires exactly one line item, have %d: %w", len(t.items), ErrInvalid)
	}
	t.items[0].amount = amount
	return nil
}

// Delete soft-deletes the transaction: every owned line item is
// invalidated and the transaction is removed from its account, all
// before Delete returns. Deleting one leg of a transfer deletes both
// legs in the same step. Deleting twice is a no-op.
func (t *Transaction) Delete() error {
	t.box.mu.Lock()
	defer t.box.mu.Unlock()
	if !t.valid {
		return nil
	}
	events := t.deleteLocked(nil)
	t.box.publish(events)
	return nil
}

// deleteLocked performs the cascade with the Cashbox mutex held,
// appending one Invalidation per deleted entity, children first.
func (t *Transaction) deleteLocked(events []Invalidation) []Invalidation {
	if !t.valid {
		return events
	}
	t.valid = false
	for _, li := range slices.Clone(t.items) {
		events = li.deleteLocked(events)
	}
	t.items = nil
	// The owning account may already be mid-deletion; it then clears
	// its own transaction set.
	if t.account.valid {
		t.account.removeTransaction(t)
	}
	events = append(events, Invalidation{Kind: KindTransaction, ID: t.id})
	// A transfer relationship dies with either of its legs.
	if t.peer != nil {
		events = t.peer.deleteLocked(events)
	}
	return events
}

func (t *Transaction) mustBeLive() {
	t.box.mu.Lock()
	defer t.box.mu.Unlock()
	if !t.valid {
		panic(fmt.Sprintf("transaction %d has been deleted", t.id))
	}
}
