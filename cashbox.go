package quickcash

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"
)

// Cashbox is the registry of all live accounts and categories. It is
// the sole authority for uniqueness constraints and global enumeration,
// and it owns the identifier counters for every entity kind.
//
// A Cashbox covers one application session. Tests get isolation by
// creating a fresh one instead of resetting shared state.
//
// All operations on the graph, including reads, serialize on the
// Cashbox mutex. Invalidation events are delivered synchronously while
// that mutex is held, so subscribers must not call back into the graph.
type Cashbox struct {
	mu         sync.Mutex
	accounts   []*Account
	categories []*Category

	accountIDs  counter
	txIDs       counter
	itemIDs     counter
	categoryIDs counter

	subscribers []func(Invalidation)
}

// NewCashbox returns an empty registry.
func NewCashbox() *Cashbox {
	return &Cashbox{}
}

// Subscribe registers fn to receive an Invalidation event for every
// entity that is soft-deleted, children before owners. Events are
// delivered synchronously before the deleting call returns; fn must not
// call back into the Cashbox or its entities.
func (cb *Cashbox) Subscribe(fn func(Invalidation)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.subscribers = append(cb.subscribers, fn)
}

func (cb *Cashbox) publish(events []Invalidation) {
	for _, ev := range events {
		for _, fn := range cb.subscribers {
			fn(ev)
		}
	}
}

// Accounts iterates over all registered accounts ordered by name. The
// iteration works on a snapshot: mutating the graph while iterating is
// safe and does not affect the sequence.
func (cb *Cashbox) Accounts() iter.Seq[*Account] {
	cb.mu.Lock()
	accounts := slices.Clone(cb.accounts)
	cb.mu.Unlock()
	slices.SortFunc(accounts, compareAccounts)
	return slices.Values(accounts)
}

// Categories iterates over all registered categories ordered by name,
// on a snapshot like Accounts.
func (cb *Cashbox) Categories() iter.Seq[*Category] {
	cb.mu.Lock()
	categories := slices.Clone(cb.categories)
	cb.mu.Unlock()
	slices.SortFunc(categories, compareCategories)
	return slices.Values(categories)
}

// Account returns the registered account with this name, or nil.
func (cb *Cashbox) Account(name string) *Account {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	name = strings.TrimSpace(name)
	for _, a := range cb.accounts {
		if a.name == name {
			return a
		}
	}
	return nil
}

// Category returns the registered category with this name, or nil.
func (cb *Cashbox) Category(name string) *Category {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	name = strings.TrimSpace(name)
	for _, c := range cb.categories {
		if c.name == name {
			return c
		}
	}
	return nil
}

// addAccount registers an account. Uniqueness of id, name, and the
// (institution, number) pair is checked before the account is linked to
// anything, so a rejection leaves the registry untouched. An empty
// (institution, number) pair is exempt from the pair constraint.
func (cb *Cashbox) addAccount(a *Account) error {
	if !a.valid {
		return fmt.Errorf("add account: %w", ErrDeleted)
	}
	if err := cb.checkAccountUnique(a, a.name, a.institution, a.number); err != nil {
		return err
	}
	cb.accounts = append(cb.accounts, a)
	return nil
}

// checkAccountUnique verifies the registry constraints for an account
// about to take the given name, institution, and number. The account
// itself is skipped so the check also serves renames.
func (cb *Cashbox) checkAccountUnique(a *Account, name, institution, number string) error {
	for _, other := range cb.accounts {
		if other == a {
			continue
		}
		if a.id >= 0 && other.id == a.id {
			return fmt.Errorf("account id %d: %w", a.id, ErrDuplicate)
		}
		if other.name == name {
			return fmt.Errorf("account name %q: %w", name, ErrDuplicate)
		}
		if institution != "" && number != "" && other.institution == institution && other.number == number {
			return fmt.Errorf("account %s/%s: %w", institution, number, ErrDuplicate)
		}
	}
	return nil
}

// removeAccount deregisters an already-invalidated account. It is the
// reaction to the account's invalidation, never a deletion trigger.
func (cb *Cashbox) removeAccount(a *Account) error {
	if a.valid {
		return fmt.Errorf("remove account %q: still valid: %w", a.name, ErrInvalid)
	}
	i := slices.Index(cb.accounts, a)
	if i < 0 {
		return fmt.Errorf("remove account %q: not registered: %w", a.name, ErrInvalid)
	}
	cb.accounts = slices.Delete(cb.accounts, i, i+1)
	return nil
}

// addCategory registers a category, enforcing id and name uniqueness.
func (cb *Cashbox) addCategory(c *Category) error {
	if !c.valid {
		return fmt.Errorf("add category: %w", ErrDeleted)
	}
	for _, other := range cb.categories {
		if c.id >= 0 && other.id == c.id {
			return fmt.Errorf("category id %d: %w", c.id, ErrDuplicate)
		}
		if other.name == c.name {
			return fmt.Errorf("category name %q: %w", c.name, ErrDuplicate)
		}
	}
	cb.categories = append(cb.categories, c)
	return nil
}

func (cb *Cashbox) removeCategory(c *Category) error {
	if c.valid {
		return fmt.Errorf("remove category %q: still valid: %w", c.name, ErrInvalid)
	}
	i := slices.Index(cb.categories, c)
	if i < 0 {
		return fmt.Errorf("remove category %q: not registered: %w", c.name, ErrInvalid)
	}
	cb.categories = slices.Delete(cb.categories, i, i+1)
	return nil
}

// categoryInUse reports whether any valid line item anywhere in the
// graph still references c.
func (cb *Cashbox) categoryInUse(c *Category) bool {
	for _, a := range cb.accounts {
		for _, t := range a.txs {
			for _, li := range t.items {
				if li.category == c {
					return true
				}
			}
		}
	}
	return false
}
