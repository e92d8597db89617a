// Package quickcash implements the data model of a personal-finance
// ledger: bank accounts, the transactions posted against them, the
// split line items that make up a transaction, and the user-defined
// categories that classify line items.
//
// There is no backing database. Referential integrity is enforced
// in-process: entities are soft-deleted by flipping a validity flag,
// and deletion cascades synchronously through everything the entity
// owns (an account's transactions, a transaction's line items) before
// the triggering call returns. The Cashbox is the registry of all live
// accounts and categories and the sole authority for uniqueness
// constraints.
//
// All mutations validate their inputs before touching any state, so a
// failed operation leaves the whole graph unchanged.
package quickcash
