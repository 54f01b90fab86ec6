// Package session persists the parts of a farming session that survive a
// restart: the loot rows, cost inputs, filters and display preference. The
// catalog itself is never persisted; linked rows re-resolve against whatever
// catalog is loaded at restore time.
package session

import (
	"github.com/twiq13/kt-poe2-tool/internal/convert"
	"github.com/twiq13/kt-poe2-tool/internal/ledger"
)

// RowSnapshot is one persisted loot row. Price is only meaningful for
// manual rows; linked rows re-resolve from the catalog.
type RowSnapshot struct {
	Kind     string  `msgpack:"kind"`
	Name     string  `msgpack:"name"`
	Quantity int     `msgpack:"qty"`
	Price    float64 `msgpack:"price,omitempty"`
}

// Snapshot is the serialized session state. It is a projection, not a live
// reference: later ledger edits do not alter a snapshot already taken.
type Snapshot struct {
	Version         int           `msgpack:"v"`
	Section         string        `msgpack:"section,omitempty"`
	Search          string        `msgpack:"search,omitempty"`
	CostBase        float64       `msgpack:"cost_base,omitempty"`
	CostSecondary   float64       `msgpack:"cost_secondary,omitempty"`
	CostLastEdited  string        `msgpack:"cost_last_edited,omitempty"`
	PreferSecondary bool          `msgpack:"prefer_secondary,omitempty"`
	MapCount        int           `msgpack:"maps,omitempty"`
	Rows            []RowSnapshot `msgpack:"rows,omitempty"`
}

// snapshotVersion is bumped when the wire format changes shape.
const snapshotVersion = 1

// Capture projects the current session state into a snapshot. Pure; no
// catalog involvement.
func Capture(section, search string, pair convert.CostPair, preferSecondary bool, maps int, rows []ledger.Row) Snapshot {
	snap := Snapshot{
		Version:         snapshotVersion,
		Section:         section,
		Search:          search,
		CostBase:        pair.Base,
		CostSecondary:   pair.Secondary,
		CostLastEdited:  costFieldName(pair.LastEdited),
		PreferSecondary: preferSecondary,
		MapCount:        maps,
		Rows:            make([]RowSnapshot, 0, len(rows)),
	}
	for _, r := range rows {
		rs := RowSnapshot{Kind: r.Kind.String(), Name: r.ItemName, Quantity: r.Quantity}
		if r.Kind == ledger.KindManual {
			rs.Price = r.UnitPrice
		}
		snap.Rows = append(snap.Rows, rs)
	}
	return snap
}

// CostPair rebuilds the cost inputs exactly as they were entered. The caller
// synchronizes the pair against the current rate afterwards.
func (s Snapshot) CostPair() convert.CostPair {
	return convert.CostPair{
		Base:       s.CostBase,
		Secondary:  s.CostSecondary,
		LastEdited: costFieldFromName(s.CostLastEdited),
	}
}

// RestoreLedger rebuilds a store by replaying the snapshot's rows in order.
// Linked rows whose names no longer match the catalog resolve to price 0.
func (s Snapshot) RestoreLedger(resolver ledger.Resolver) *ledger.Store {
	store := ledger.NewStore(resolver)
	for _, rs := range s.Rows {
		var id ledger.RowID
		if rs.Kind == ledger.KindManual.String() {
			id = store.AddManual()
			store.SetItemName(id, rs.Name)
			store.SetManualPrice(id, rs.Price)
		} else {
			id = store.AddLinked(rs.Name)
		}
		store.SetQuantity(id, float64(rs.Quantity))
	}
	return store
}

func costFieldName(f convert.CostField) string {
	if f == convert.FieldSecondary {
		return "secondary"
	}
	return "base"
}

func costFieldFromName(name string) convert.CostField {
	if name == "secondary" {
		return convert.FieldSecondary
	}
	return convert.FieldBase
}
