package quickcash

import "errors"

// Error kinds reported by mutating operations. They are wrapped with
// context, use errors.Is to test for them.
var (
	// ErrMissing reports a required argument that was absent.
	ErrMissing = errors.New("required value is missing")

	// ErrInvalid reports a non-missing argument that breaks a semantic
	// rule: an empty name, a duplicate line-item id, a roll-up setter on
	// a transaction that does not have exactly one item.
	ErrInvalid = errors.New("invalid value")

	// ErrDeleted reports a mutation attempted on an entity that has
	// already been soft-deleted. The caller retained a stale reference.
	ErrDeleted = errors.New("entity has been deleted")

	// ErrDuplicate reports a Cashbox uniqueness violation. It is always
	// detected at registration time, before the entity is linked to
	// anything else.
	ErrDuplicate = errors.New("duplicate registration")

	// ErrNotSupported reports an operation an entity never supports,
	// such as setting the description of a transfer leg.
	ErrNotSupported = errors.New("operation not supported")
)
