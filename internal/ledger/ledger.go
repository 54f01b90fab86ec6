// Package ledger owns the ordered list of loot rows for a farming session
// and the totals derived from it.
package ledger

import (
	"math"

	"github.com/google/uuid"

	"github.com/twiq13/kt-poe2-tool/internal/catalog"
)

// Kind distinguishes catalog-linked rows from free-form manual ones. It is
// fixed at creation.
type Kind int

const (
	KindLinked Kind = iota
	KindManual
)

func (k Kind) String() string {
	if k == KindManual {
		return "manual"
	}
	return "linked"
}

// RowID is an opaque row handle. IDs have no meaning outside the store that
// issued them.
type RowID string

// Row is one loot line. UnitPrice is in base units: resolved from the
// catalog for linked rows, entered by the user for manual rows.
type Row struct {
	ID        RowID
	Kind      Kind
	ItemName  string
	Quantity  int
	UnitPrice float64
}

// Total returns the row's quantity-extended value in base units.
func (r Row) Total() float64 {
	return r.UnitPrice * float64(r.Quantity)
}

// Resolver looks up catalog entries for linked rows. *catalog.Index
// satisfies it.
type Resolver interface {
	Lookup(name string) (catalog.Entry, bool)
}

// Store holds the session's loot rows in insertion order. Operations on
// unknown or removed handles are silent no-ops so that rapid UI event bursts
// cannot crash a session.
type Store struct {
	rows     []*Row
	byID     map[RowID]*Row
	resolver Resolver
}

// NewStore creates an empty store. resolver may be nil; linked rows then
// resolve to 0 until SetResolver installs an index.
func NewStore(resolver Resolver) *Store {
	return &Store{byID: make(map[RowID]*Row), resolver: resolver}
}

// SetResolver swaps the catalog index and re-resolves every linked row, so
// prices follow catalog reloads.
func (s *Store) SetResolver(resolver Resolver) {
	s.resolver = resolver
	for _, r := range s.rows {
		if r.Kind == KindLinked {
			r.UnitPrice = s.resolve(r.ItemName)
		}
	}
}

func (s *Store) resolve(name string) float64 {
	if s.resolver == nil {
		return 0
	}
	e, ok := s.resolver.Lookup(name)
	if !ok {
		return 0
	}
	return e.BaseAmount
}

// AddLinked appends a catalog-linked row, resolving its price immediately.
func (s *Store) AddLinked(name string) RowID {
	r := &Row{
		ID:        RowID(uuid.NewString()),
		Kind:      KindLinked,
		ItemName:  name,
		UnitPrice: s.resolve(name),
	}
	s.rows = append(s.rows, r)
	s.byID[r.ID] = r
	return r.ID
}

// AddManual appends a free-form row with price 0 and quantity 0.
func (s *Store) AddManual() RowID {
	r := &Row{ID: RowID(uuid.NewString()), Kind: KindManual}
	s.rows = append(s.rows, r)
	s.byID[r.ID] = r
	return r.ID
}

// SetItemName renames a row. Linked rows re-resolve their price from the
// catalog on every edit; manual rows only change their label.
func (s *Store) SetItemName(id RowID, name string) {
	r, ok := s.byID[id]
	if !ok {
		return
	}
	r.ItemName = name
	if r.Kind == KindLinked {
		r.UnitPrice = s.resolve(name)
	}
}

// SetQuantity sets a row's looted count, floored and clamped at 0.
func (s *Store) SetQuantity(id RowID, qty float64) {
	r, ok := s.byID[id]
	if !ok {
		return
	}
	q := int(math.Floor(qty))
	if q < 0 {
		q = 0
	}
	r.Quantity = q
}

// SetManualPrice sets a manual row's unit price, clamped at 0. Linked rows
// ignore it; their price belongs to the catalog.
func (s *Store) SetManualPrice(id RowID, price float64) {
	r, ok := s.byID[id]
	if !ok || r.Kind != KindManual {
		return
	}
	if price < 0 {
		price = 0
	}
	r.UnitPrice = price
}

// Remove deletes a row; the order of the remaining rows is preserved.
func (s *Store) Remove(id RowID) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, r := range s.rows {
		if r.ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			break
		}
	}
}

// Rows returns a copy of the rows in insertion order.
func (s *Store) Rows() []Row {
	out := make([]Row, len(s.rows))
	for i, r := range s.rows {
		out[i] = *r
	}
	return out
}

// Get returns a row by handle.
func (s *Store) Get(id RowID) (Row, bool) {
	r, ok := s.byID[id]
	if !ok {
		return Row{}, false
	}
	return *r, true
}

// Len reports the number of rows.
func (s *Store) Len() int { return len(s.rows) }

// Reset discards every row.
func (s *Store) Reset() {
	s.rows = nil
	s.byID = make(map[RowID]*Row)
}
