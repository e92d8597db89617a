package quickcash

import (
	"fmt"
	"strings"
)

// Sentinel categories. They live outside the registry and its
// uniqueness constraints, are always valid, and cannot be deleted.
var (
	// NoCategory marks a roll-up that is ambiguous because the
	// transaction holds more than one line item.
	NoCategory = &Category{id: -1, name: "...", description: "...", valid: true}

	// None is the default selection when no category has been chosen.
	None = &Category{id: -2, name: "None", valid: true}
)

// Category classifies line items.
//
// Categories are identified, registered with the Cashbox, and
// validity-tracked like every other entity: once deleted, a category is
// never revived and its id is never reused.
type Category struct {
	box *Cashbox

	id          int
	name        string
	description string
	valid       bool
}

// NewCategory creates a category, assigns it an id, and registers it
// with the Cashbox. The name must be non-empty after trimming and
// unique among registered categories.
func (cb *Cashbox) NewCategory(name, description string) (*Category, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name must not be empty: %w", ErrInvalid)
	}
	c := &Category{
		box:         cb,
		id:          cb.categoryIDs.next(),
		name:        name,
		description: strings.TrimSpace(description),
		valid:       true,
	}
	if err := cb.addCategory(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Valid reports whether the category is still live. It is the one
// accessor that is always safe to call on a stale reference.
func (c *Category) Valid() bool {
	if c.box == nil {
		return true // sentinel
	}
	c.box.mu.Lock()
	defer c.box.mu.Unlock()
	return c.valid
}

// Sentinel reports whether c is one of the fixed sentinel categories.
func (c *Category) Sentinel() bool { return c.box == nil }

// ID returns the record identifier. Sentinels have negative ids.
func (c *Category) ID() int {
	c.mustBeLive()
	return c.id
}

// Name returns the category name.
func (c *Category) Name() string {
	c.mustBeLive()
	return c.name
}

// Description returns the category description.
func (c *Category) Description() string {
	c.mustBeLive()
	return c.description
}

func (c *Category) String() string { return c.Name() }

// SetName renames the category. The new name must be non-empty after
// trimming and unique among registered categories.
func (c *Category) SetName(name string) error {
	if c.box == nil {
		return fmt.Errorf("sentinel category: %w", ErrNotSupported)
	}
	c.box.mu.Lock()
	defer c.box.mu.Unlock()
	if !c.valid {
		return fmt.Errorf("category %d: %w", c.id, ErrDeleted)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("category name must not be empty: %w", ErrInvalid)
	}
	for _, other := range c.box.categories {
		if other != c && other.name == name {
			return fmt.Errorf("category name %q: %w", name, ErrDuplicate)
		}
	}
	c.name = name
	return nil
}

// SetDescription replaces the category description.
func (c *Category) SetDescription(description string) error {
	if c.box == nil {
		return fmt.Errorf("sentinel category: %w", ErrNotSupported)
	}
	c.box.mu.Lock()
	defer c.box.mu.Unlock()
	if !c.valid {
		return fmt.Errorf("category %d: %w", c.id, ErrDeleted)
	}
	c.description = strings.TrimSpace(description)
	return nil
}

// Delete soft-deletes the category and removes it from the Cashbox.
// Deleting twice is a no-op. A category still referenced by a valid
// line item cannot be deleted; this is what keeps line items from ever
// holding a dangling category reference.
func (c *Category) Delete() error {
	if c.box == nil {
		return fmt.Errorf("sentinel category: %w", ErrNotSupported)
	}
	c.box.mu.Lock()
	defer c.box.mu.Unlock()
	if !c.valid {
		return nil
	}
	if c.box.categoryInUse(c) {
		return fmt.Errorf("category %q is still in use: %w", c.name, ErrInvalid)
	}
	c.valid = false
	if err := c.box.removeCategory(c); err != nil {
		return err
	}
	c.box.publish([]Invalidation{{Kind: KindCategory, ID: c.id}})
	return nil
}

// mustBeLive panics if the category has been deleted. Reading a deleted
// entity is a programming error in the caller, who held on to the
// reference past its deletion.
func (c *Category) mustBeLive() {
	if c.box == nil {
		return // sentinels are always live
	}
	c.box.mu.Lock()
	defer c.box.mu.Unlock()
	if !c.valid {
		panic(fmt.Sprintf("category %d has been deleted", c.id))
	}
}

// compareCategories orders categories by name. Consistent with identity
// only because registered names are unique.
func compareCategories(a, b *Category) int {
	return strings.Compare(a.name, b.name)
}
