package quickcash

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType enumerates the kinds of bank accounts the ledger tracks.
type AccountType int

const (
	Checking AccountType = iota
	Savings
)

func (t AccountType) String() string {
	switch t {
	case Checking:
		return "checking"
	case Savings:
		return "savings"
	default:
		return "unknown"
	}
}

// ParseAccountType parses a string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch s {
	case "checking":
		return Checking, nil
	case "savings":
		return Savings, nil
	default:
		return 0, fmt.Errorf("unknown account type %q: %w", s, ErrInvalid)
	}
}

// Account is a bank account owning an ordered set of transactions.
//
// Mutations fail with ErrDeleted once the account has been deleted.
// Read accessors on a deleted account panic; callers holding a stale
// reference must check Valid first.
type Account struct {
	box *Cashbox

	id          int
	name        string
	institution string
	number      string
	typ         AccountType
	notes       string
	txs         []*Transaction // ordered by (date, id)
	valid       bool
}

// NewAccount creates an account, assigns it an id, and registers it
// with the Cashbox. The name must be non-empty after trimming; name and
// the (institution, number) pair must be unique among registered
// accounts. On failure nothing is registered.
func (cb *Cashbox) NewAccount(name, institution, number string, typ AccountType, notes string) (*Account, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("account name must not be empty: %w", ErrInvalid)
	}
	a := &Account{
		box:         cb,
		id:          cb.accountIDs.next(),
		name:        name,
		institution: strings.TrimSpace(institution),
		number:      strings.TrimSpace(number),
		typ:         typ,
		notes:       strings.TrimSpace(notes),
		valid:       true,
	}
	if err := cb.addAccount(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Valid reports whether the account is still live.
func (a *Account) Valid() bool {
	a.box.mu.Lock()
	defer a.box.mu.Unlock()
	return a.valid
}

// ID returns the record identifier.
func (a *Account) ID() int {
	a.mustBeLive()
	return a.id
}

// Name returns the account name.
func (a *Account) Name() string {
	a.mustBeLive()
	return a.name
}

// Institution returns the financial institution holding the account.
func (a *Account) Institution() string {
	a.mustBeLive()
	return a.institution
}

// Number returns the account number at the institution.
func (a *Account) Number() string {
	a.mustBeLive()
	return a.number
}

// Type returns the account type.
func (a *Account) Type() AccountType {
	a.mustBeLive()
	return a.typ
}

// Notes returns the free-form notes attached to the account.
func (a *Account) Notes() string {
	a.mustBeLive()
	return a.notes
}

func (a *Account) String() string { return a.Name() }

// SetName renames the account. The new name must be non-empty after
// trimming and unique among registered accounts.
func (a *Account) SetName(name string) error {
	a.box.mu.Lock()
	defer a.box.mu.Unlock()
	if !a.valid {
		return fmt.Errorf("account %d: %w", a.id, ErrDeleted)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("account name must not be empty: %w", ErrInvalid)
	}
	if err := a.box.checkAccountUnique(a, name, a.institution, a.number); err != nil {
		return err
	}
	a.name = name
	return nil
}

// SetInstitution replaces the institution. The (institution, number)
// pair must remain unique among registered accounts.
func (a *Account) SetInstitution(institution string) error {
	a.box.mu.Lock()
	defer a.box.mu.Unlock()
	if !a.valid {
		return fmt.Errorf("account %d: %w", a.id, ErrDeleted)
	}
	institution = strings.TrimSpace(institution)
	if err := a.box.checkAccountUnique(a, a.name, institution, a.number); err != nil {
		return err
	}
	a.institution = institution
	return nil
}

// SetNumber replaces the account number. The (institution, number) pair
// must remain unique among registered accounts.
func (a *Account) SetNumber(number string) error {
	a.box.mu.Lock()
	defer a.box.mu.Unlock()
	if !a.valid {
		return fmt.Errorf("account %d: %w", a.id, ErrDeleted)
	}
	number = strings.TrimSpace(number)
	if err := a.box.checkAccountUnique(a, a.name, a.institution, number); err != nil {
		return err
	}
	a.number = number
	return nil
}

// SetType replaces the account type.
func (a *Account) SetType(typ AccountType) error {
	a.box.mu.Lock()
	defer a.box.mu.Unlock()
	if !a.valid {
		return fmt.Errorf("account %d: %w", a.id, ErrDeleted)
	}
	if typ != Checking && typ != Savings {
		return fmt.Errorf("account type %d: %w", typ, ErrInvalid)
	}
	a.typ = typ
	return nil
}

// SetNotes replaces the notes.
func (a *Account) SetNotes(notes string) error {
	a.box.mu.Lock()
	defer a.box.mu.Unlock()
	if !a.valid {
		return fmt.Errorf("account %d: %w", a.id, ErrDeleted)
	}
	a.notes = strings.TrimSpace(notes)
	return nil
}

// Transactions iterates over the account's transactions ordered by
// (date, id). The iteration works on a snapshot.
func (a *Account) Transactions() iter.Seq[*Transaction] {
	a.mustBeLive()
	a.box.mu.Lock()
	txs := slices.Clone(a.txs)
	a.box.mu.Unlock()
	return slices.Values(txs)
}

// Transaction returns the owned transaction with this id, or nil.
func (a *Account) Transaction(id int) *Transaction {
	a.mustBeLive()
	a.box.mu.Lock()
	defer a.box.mu.Unlock()
	for _, t := range a.txs {
		if t.id == id {
			return t
		}
	}
	return nil
}

// Balance returns the sum of all transaction amounts, a derived value
// that is always consistent with the current state of the graph.
func (a *Account) Balance() decimal.Decimal {
	a.mustBeLive()
	a.box.mu.Lock()
	defer a.box.mu.Unlock()
	total := decimal.Zero
	for _, t := range a.txs {
		total = total.Add(t.amount())
	}
	return total
}

// Delete soft-deletes the account, cascading to every transaction it
// owns (and transitively their line items), and removes it from the
// Cashbox. The full cascade completes before Delete returns. Deleting
// twice is a no-op.
func (a *Account) Delete() error {
	a.box.mu.Lock()
	defer a.box.mu.Unlock()
	if !a.valid {
		return nil
	}
	a.valid = false
	var events []Invalidation
	// Children first: every owned transaction dies with its account.
	for _, t := range slices.Clone(a.txs) {
		events = t.deleteLocked(events)
	}
	a.txs = nil
	if err := a.box.removeAccount(a); err != nil {
		return err
	}
	events = append(events, Invalidation{Kind: KindAccount, ID: a.id})
	a.box.publish(events)
	return nil
}

// addTransaction links a valid transaction into the account's ordered
// set. Owner-only: called with the Cashbox mutex held.
func (a *Account) addTransaction(t *Transaction) error {
	if !a.valid {
		return fmt.Errorf("account %d: %w", a.id, ErrDeleted)
	}
	if !t.valid {
		return fmt.Errorf("transaction is invalid: %w", ErrInvalid)
	}
	for _, other := range a.txs {
		if other.id == t.id {
			return fmt.Errorf("transaction id %d already exists in account %q: %w", t.id, a.name, ErrInvalid)
		}
	}
	a.txs = append(a.txs, t)
	a.sortTransactions()
	return nil
}

// removeTransaction unlinks an already-invalidated transaction. It is
// the reaction to the transaction's invalidation.
func (a *Account) removeTransaction(t *Transaction) error {
	if t.valid {
		return fmt.Errorf("transaction %d is still valid: %w", t.id, ErrInvalid)
	}
	i := slices.Index(a.txs, t)
	if i < 0 {
		return fmt.Errorf("transaction %d not owned by account %q: %w", t.id, a.name, ErrInvalid)
	}
	a.txs = slices.Delete(a.txs, i, i+1)
	return nil
}

// sortTransactions restores the (date, id) order after an insert or a
// date change. The sort is stable; same-day transactions keep their id
// order.
func (a *Account) sortTransactions() {
	slices.SortStableFunc(a.txs, func(x, y *Transaction) int {
		if c := x.date.Compare(y.date); c != 0 {
			return c
		}
		return x.id - y.id
	})
}

func (a *Account) mustBeLive() {
	a.box.mu.Lock()
	defer a.box.mu.Unlock()
	if !a.valid {
		panic(fmt.Sprintf("account %d has been deleted", a.id))
	}
}

// compareAccounts orders accounts by name. Consistent with identity
// only because registered names are unique.
func compareAccounts(a, b *Account) int {
	return strings.Compare(a.name, b.name)
}
