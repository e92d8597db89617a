package quickcash

// Kind identifies the kind of entity an Invalidation refers to.
type Kind int

const (
	KindAccount Kind = iota
	KindTransaction
	KindLineItem
	KindCategory
)

func (k Kind) String() string {
	switch k {
	case KindAccount:
		return "account"
	case KindTransaction:
		return "transaction"
	case KindLineItem:
		return "line item"
	case KindCategory:
		return "category"
	default:
		return "unknown"
	}
}

// Invalidation is the event emitted when an entity is soft-deleted.
// One event is emitted per deleted entity, children first, so a
// subscriber sees a transaction's line items invalidated before the
// transaction itself.
type Invalidation struct {
	Kind Kind
	ID   int
}

// counter allocates record identifiers for one entity kind. Identifiers
// are strictly increasing and never reused, even after deletion.
type counter int

func (c *counter) next() int {
	id := int(*c)
	*c++
	return id
}

// bump makes sure the counter will never issue id again. Used when
// restoring a snapshot that carries pre-assigned identifiers.
func (c *counter) bump(id int) {
	if id >= int(*c) {
		*c = counter(id + 1)
	}
}
