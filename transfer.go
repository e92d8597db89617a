package quickcash

import (
	"fmt"
	"strings"

	"github.com/xanderman/quickcash/date"
)

// NewTransfer records a movement of money between two accounts. It
// creates two transactions, one per account, linked as each other's
// peer before either is registered, so an unpaired leg is never
// observable. The returned transaction is the leg in the source
// account; its Peer is the leg in the destination account.
//
// Each leg's description is synthesized from the other account's name
// and cannot be set. Deleting either leg deletes both.
func (cb *Cashbox) NewTransfer(src, dst *Account, on date.Date, payee, checkNr string) (*Transaction, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if src == nil || dst == nil {
		return nil, fmt.Errorf("transfer account: %w", ErrMissing)
	}
	if src == dst {
		return nil, fmt.Errorf("transfer within account %q: %w", src.name, ErrInvalid)
	}
	// Both accounts are checked up front so that no leg is registered
	// when either side would reject it.
	if !src.valid {
		return nil, fmt.Errorf("account %d: %w", src.id, ErrDeleted)
	}
	if !dst.valid {
		return nil, fmt.Errorf("account %d: %w", dst.id, ErrDeleted)
	}
	if on.IsZero() {
		return nil, fmt.Errorf("transfer date: %w", ErrMissing)
	}
	payee = strings.TrimSpace(payee)
	checkNr = strings.TrimSpace(checkNr)

	srcLeg := &Transaction{
		box:     cb,
		account: src,
		id:      cb.txIDs.next(),
		date:    on,
		payee:   payee,
		checkNr: checkNr,
		valid:   true,
		dest:    dst,
	}
	dstLeg := &Transaction{
		box:     cb,
		account: dst,
		id:      cb.txIDs.next(),
		date:    on,
		payee:   payee,
		checkNr: checkNr,
		valid:   true,
		dest:    src,
	}
	// Pair the legs before registration.
	srcLeg.peer = dstLeg
	dstLeg.peer = srcLeg

	// Fresh ids cannot collide and both accounts are valid, so neither
	// add can fail after the checks above.
	if err := src.addTransaction(srcLeg); err != nil {
		return nil, err
	}
	if err := dst.addTransaction(dstLeg); err != nil {
		src.removeTransactionAny(srcLeg)
		return nil, err
	}
	return srcLeg, nil
}

// removeTransactionAny unlinks a transaction regardless of validity.
// Only used to unwind a half-registered transfer.
func (a *Account) removeTransactionAny(t *Transaction) {
	for i, other := range a.txs {
		if other == t {
			a.txs = append(a.txs[:i], a.txs[i+1:]...)
			return
		}
	}
}
