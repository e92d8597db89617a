package quickcash

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xanderman/quickcash/date"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The snapshot format is JSONL: one record per line, discriminated by
// the "record" field. Categories come first, then each account followed
// by its transactions and their items, so every reference points
// backwards in the stream.
const (
	recCategory    = "category"
	recAccount     = "account"
	recTransaction = "transaction"
	recItem        = "item"
)

type categoryRec struct {
	Record      string `json:"record"`
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type accountRec struct {
	Record      string `json:"record"`
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Institution string `json:"institution,omitempty"`
	Number      string `json:"number,omitempty"`
	Type        string `json:"type"`
	Notes       string `json:"notes,omitempty"`
}

type transactionRec struct {
	Record  string    `json:"record"`
	ID      int       `json:"id"`
	Account int       `json:"account"`
	Date    date.Date `json:"date"`
	Payee   string    `json:"payee,omitempty"`
	Check   string    `json:"check,omitempty"`
	// Transfer wiring, present only on transfer legs.
	Dest *int `json:"dest,omitempty"`
	Peer *int `json:"peer,omitempty"`
}

type itemRec struct {
	Record      string          `json:"record"`
	ID          int             `json:"id"`
	Transaction int             `json:"transaction"`
	Amount      decimal.Decimal `json:"amount"`
	Category    int             `json:"category"`
	Description string          `json:"description,omitempty"`
}

func writeRecord(w io.Writer, rec any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("could not marshal record: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("could not write record: %w", err)
	}
	return nil
}

// EncodeCashbox writes a snapshot of the whole cashbox to w in JSONL
// format. Output is deterministic: categories and accounts in name
// order, transactions in (date, id) order, items in id order.
func EncodeCashbox(w io.Writer, cb *Cashbox) error {
	for c := range cb.Categories() {
		rec := categoryRec{Record: recCategory, ID: c.ID(), Name: c.Name(), Description: c.Description()}
		if err := writeRecord(w, rec); err != nil {
			return err
		}
	}
	for a := range cb.Accounts() {
		rec := accountRec{
			Record:      recAccount,
			ID:          a.ID(),
			Name:        a.Name(),
			Institution: a.Institution(),
			Number:      a.Number(),
			Type:        a.Type().String(),
			Notes:       a.Notes(),
		}
		if err := writeRecord(w, rec); err != nil {
			return err
		}
		for t := range a.Transactions() {
			trec := transactionRec{
				Record:  recTransaction,
				ID:      t.ID(),
				Account: a.ID(),
				Date:    t.Date(),
				Payee:   t.Payee(),
				Check:   t.CheckNr(),
			}
			if t.IsTransfer() {
				destID := t.DestAccount().ID()
				peerID := t.Peer().ID()
				trec.Dest = &destID
				trec.Peer = &peerID
			}
			if err := writeRecord(w, trec); err != nil {
				return err
			}
			for li := range t.Items() {
				irec := itemRec{
					Record:      recItem,
					ID:          li.ID(),
					Transaction: t.ID(),
					Amount:      li.Amount(),
					Category:    li.categoryID(),
					Description: li.Description(),
				}
				if err := writeRecord(w, irec); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// categoryID returns the category reference for encoding. Sentinels
// keep their fixed negative ids.
func (li *LineItem) categoryID() int {
	li.box.mu.Lock()
	defer li.box.mu.Unlock()
	return li.category.id
}

// pendingTransfer remembers transfer wiring until both legs exist.
type pendingTransfer struct {
	tx     *Transaction
	destID int
	peerID int
}

// DecodeCashbox reads a JSONL snapshot and rebuilds the cashbox.
// Record identifiers are preserved and the per-kind counters resume
// above the highest id seen, so ids are never reused across a
// save/load cycle. All registry constraints are re-checked; a snapshot
// that violates them is rejected.
func DecodeCashbox(r io.Reader) (*Cashbox, error) {
	cb := NewCashbox()
	accounts := make(map[int]*Account)
	txs := make(map[int]*Transaction)
	categories := map[int]*Category{NoCategory.id: NoCategory, None.id: None}
	items := make(map[int]bool)
	var transfers []pendingTransfer

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}
		var identifier struct {
			Record string `json:"record"`
		}
		if err := json.Unmarshal(data, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: could not identify record: %w", line, err)
		}

		switch identifier.Record {
		case recCategory:
			var rec categoryRec
			if err := json.Unmarshal(data, &rec); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if _, ok := categories[rec.ID]; ok {
				return nil, fmt.Errorf("line %d: category id %d already used: %w", line, rec.ID, ErrDuplicate)
			}
			name := strings.TrimSpace(rec.Name)
			if name == "" {
				return nil, fmt.Errorf("line %d: category name must not be empty: %w", line, ErrInvalid)
			}
			c := &Category{box: cb, id: rec.ID, name: name, description: strings.TrimSpace(rec.Description), valid: true}
			if err := cb.addCategory(c); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			cb.categoryIDs.bump(rec.ID)
			categories[rec.ID] = c

		case recAccount:
			var rec accountRec
			if err := json.Unmarshal(data, &rec); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if _, ok := accounts[rec.ID]; ok {
				return nil, fmt.Errorf("line %d: account id %d already used: %w", line, rec.ID, ErrDuplicate)
			}
			name := strings.TrimSpace(rec.Name)
			if name == "" {
				return nil, fmt.Errorf("line %d: account name must not be empty: %w", line, ErrInvalid)
			}
			typ, err := ParseAccountType(rec.Type)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			a := &Account{
				box:         cb,
				id:          rec.ID,
				name:        name,
				institution: strings.TrimSpace(rec.Institution),
				number:      strings.TrimSpace(rec.Number),
				typ:         typ,
				notes:       strings.TrimSpace(rec.Notes),
				valid:       true,
			}
			if err := cb.addAccount(a); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			cb.accountIDs.bump(rec.ID)
			accounts[rec.ID] = a

		case recTransaction:
			var rec transactionRec
			if err := json.Unmarshal(data, &rec); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			// Account.addTransaction only rejects id collisions within one
			// account, ids must stay unique across the whole snapshot.
			if _, ok := txs[rec.ID]; ok {
				return nil, fmt.Errorf("line %d: transaction id %d already used: %w", line, rec.ID, ErrDuplicate)
			}
			a, ok := accounts[rec.Account]
			if !ok {
				return nil, fmt.Errorf("line %d: unknown account %d: %w", line, rec.Account, ErrInvalid)
			}
			if rec.Date.IsZero() {
				return nil, fmt.Errorf("line %d: transaction date: %w", line, ErrMissing)
			}
			t := &Transaction{
				box:     cb,
				account: a,
				id:      rec.ID,
				date:    rec.Date,
				payee:   strings.TrimSpace(rec.Payee),
				checkNr: strings.TrimSpace(rec.Check),
				valid:   true,
			}
			if err := a.addTransaction(t); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			cb.txIDs.bump(rec.ID)
			txs[rec.ID] = t
			if rec.Dest != nil || rec.Peer != nil {
				if rec.Dest == nil || rec.Peer == nil {
					return nil, fmt.Errorf("line %d: transfer needs both dest and peer: %w", line, ErrInvalid)
				}
				if *rec.Peer == rec.ID {
					return nil, fmt.Errorf("line %d: transfer leg cannot be its own peer: %w", line, ErrInvalid)
				}
				transfers = append(transfers, pendingTransfer{tx: t, destID: *rec.Dest, peerID: *rec.Peer})
			}

		case recItem:
			var rec itemRec
			if err := json.Unmarshal(data, &rec); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if items[rec.ID] {
				return nil, fmt.Errorf("line %d: item id %d already used: %w", line, rec.ID, ErrDuplicate)
			}
			t, ok := txs[rec.Transaction]
			if !ok {
				return nil, fmt.Errorf("line %d: unknown transaction %d: %w", line, rec.Transaction, ErrInvalid)
			}
			c, ok := categories[rec.Category]
			if !ok {
				return nil, fmt.Errorf("line %d: unknown category %d: %w", line, rec.Category, ErrInvalid)
			}
			li := &LineItem{
				box:         cb,
				tx:          t,
				id:          rec.ID,
				amount:      rec.Amount,
				category:    c,
				description: strings.TrimSpace(rec.Description),
				valid:       true,
			}
			if err := t.addItem(li); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			cb.itemIDs.bump(rec.ID)
			items[rec.ID] = true

		default:
			return nil, fmt.Errorf("unknown record type %q on line %d: %w", identifier.Record, line, ErrInvalid)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading snapshot: %w", err)
	}

	// Second pass: wire transfer legs, now that both exist.
	for _, p := range transfers {
		dest, ok := accounts[p.destID]
		if !ok {
			return nil, fmt.Errorf("transfer %d: unknown destination account %d: %w", p.tx.id, p.destID, ErrInvalid)
		}
		peer, ok := txs[p.peerID]
		if !ok {
			return nil, fmt.Errorf("transfer %d: unknown peer transaction %d: %w", p.tx.id, p.peerID, ErrInvalid)
		}
		p.tx.dest = dest
		p.tx.peer = peer
	}
	// The pairing must be mutual and each leg's dest must be the
	// account the peer leg lives in.
	for _, p := range transfers {
		if p.tx.peer.peer != p.tx {
			return nil, fmt.Errorf("transfer %d: legs are not mutually paired: %w", p.tx.id, ErrInvalid)
		}
		if p.tx.peer.account != p.tx.dest {
			return nil, fmt.Errorf("transfer %d: dest account %d is not the peer's account: %w", p.tx.id, p.tx.dest.id, ErrInvalid)
		}
		if p.tx.dest == p.tx.account {
			return nil, fmt.Errorf("transfer %d: both legs are in the same account: %w", p.tx.id, ErrInvalid)
		}
	}
	return cb, nil
}
