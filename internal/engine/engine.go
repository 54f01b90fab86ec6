// Package engine ties the catalog index, loot ledger, cost inputs and
// session persistence into one explicit instance. Every operation is
// synchronous and leaves the state fully consistent before returning; the
// presentation layer is a plain caller and holds no state of its own.
package engine

import (
	"fmt"
	"time"

	"github.com/twiq13/kt-poe2-tool/internal/catalog"
	"github.com/twiq13/kt-poe2-tool/internal/convert"
	"github.com/twiq13/kt-poe2-tool/internal/export"
	"github.com/twiq13/kt-poe2-tool/internal/ledger"
	"github.com/twiq13/kt-poe2-tool/internal/session"
)

// SnapshotStore is the single persistence slot for session state.
// *session.FileStore satisfies it.
type SnapshotStore interface {
	Save(session.Snapshot) error
	Load() (session.Snapshot, error)
	Clear() error
}

// LoadResult summarizes a catalog load for the status surface.
type LoadResult struct {
	Lines     int
	Malformed int
}

// Engine owns all mutable session state. Not safe for concurrent use; the
// event source serializes calls.
type Engine struct {
	index *catalog.Index
	store *ledger.Store

	pair            convert.CostPair
	preferSecondary bool
	maps            int
	section         string
	search          string

	status string
	slot   SnapshotStore
}

// New creates an engine with an empty catalog and, when the slot holds a
// prior session, restores it. A missing or corrupt slot starts fresh.
func New(slot SnapshotStore) *Engine {
	e := &Engine{index: catalog.NewIndex(), slot: slot}
	e.store = ledger.NewStore(e.index)
	if slot != nil {
		if snap, err := slot.Load(); err == nil {
			e.applySnapshot(snap)
			e.status = "session restored"
		}
	}
	return e
}

func (e *Engine) applySnapshot(snap session.Snapshot) {
	e.section = snap.Section
	e.search = snap.Search
	e.preferSecondary = snap.PreferSecondary
	e.maps = snap.MapCount
	e.pair = convert.Synced(snap.CostPair(), e.rate())
	e.store = snap.RestoreLedger(e.index)
}

func (e *Engine) rate() convert.Rate {
	v, ok := e.index.SecondaryRate()
	return convert.Rate{Value: v, OK: ok}
}

// persist writes the snapshot slot after a committed mutation. Persistence
// problems surface on the status line, never as errors to the caller.
func (e *Engine) persist() {
	if e.slot == nil {
		return
	}
	snap := session.Capture(e.section, e.search, e.pair, e.preferSecondary, e.maps, e.store.Rows())
	if err := e.slot.Save(snap); err != nil {
		e.status = fmt.Sprintf("session save failed: %v", err)
	}
}

// LoadCatalog replaces the catalog index wholesale. Ledger rows re-resolve
// and the cost pair re-synchronizes against the new rate. Malformed lines
// are counted, never fatal.
func (e *Engine) LoadCatalog(doc catalog.Document) LoadResult {
	ix := catalog.BuildIndex(doc)
	e.index = ix
	e.store.SetResolver(ix)
	e.pair = convert.Synced(e.pair, e.rate())

	res := LoadResult{Lines: ix.Len(), Malformed: ix.Malformed()}
	if res.Malformed > 0 {
		e.status = fmt.Sprintf("catalog loaded: %d lines, %d malformed", res.Lines, res.Malformed)
	} else {
		e.status = fmt.Sprintf("catalog loaded: %d lines", res.Lines)
	}
	e.persist()
	return res
}

// NoteCatalogError records a failed catalog load. The prior index stays in
// place (or the empty one, if nothing was ever loaded).
func (e *Engine) NoteCatalogError(err error) {
	e.status = fmt.Sprintf("catalog unavailable: %v", err)
}

// Status returns the last load/save status line.
func (e *Engine) Status() string { return e.status }

// Index exposes the current catalog for read-only browsing.
func (e *Engine) Index() *catalog.Index { return e.index }

// CatalogEntries returns the catalog lines matching the active filter.
func (e *Engine) CatalogEntries() []catalog.Entry {
	return e.index.Entries(e.section, e.search)
}

// AddLinkedRow appends a catalog-linked loot row, optionally prefilled.
func (e *Engine) AddLinkedRow(name string) ledger.RowID {
	id := e.store.AddLinked(name)
	e.persist()
	return id
}

// AddManualRow appends a free-form loot row.
func (e *Engine) AddManualRow() ledger.RowID {
	id := e.store.AddManual()
	e.persist()
	return id
}

// EditRowName renames a row; linked rows re-resolve their price.
func (e *Engine) EditRowName(id ledger.RowID, name string) {
	e.store.SetItemName(id, name)
	e.persist()
}

// EditRowQuantity updates a row's looted count.
func (e *Engine) EditRowQuantity(id ledger.RowID, qty float64) {
	e.store.SetQuantity(id, qty)
	e.persist()
}

// EditRowPrice updates a manual row's unit price.
func (e *Engine) EditRowPrice(id ledger.RowID, price float64) {
	e.store.SetManualPrice(id, price)
	e.persist()
}

// RemoveRow deletes a row; unknown handles are no-ops.
func (e *Engine) RemoveRow(id ledger.RowID) {
	e.store.Remove(id)
	e.persist()
}

// Rows returns the loot rows in insertion order.
func (e *Engine) Rows() []ledger.Row { return e.store.Rows() }

// Row returns a single row by handle.
func (e *Engine) Row(id ledger.RowID) (ledger.Row, bool) { return e.store.Get(id) }

// SetFilter updates the catalog browse filter.
func (e *Engine) SetFilter(section, search string) {
	e.section = section
	e.search = search
	e.persist()
}

// Filter returns the active section and search filter.
func (e *Engine) Filter() (section, search string) { return e.section, e.search }

// SetCost records an edit to one side of the cost-per-map pair and keeps the
// other side consistent in the same step.
func (e *Engine) SetCost(field convert.CostField, value float64) {
	e.pair = convert.ApplyEdit(e.pair, field, value, e.rate())
	e.persist()
}

// CostPair returns the current cost inputs.
func (e *Engine) CostPair() convert.CostPair { return e.pair }

// SetMapCount records how many maps the session ran, clamped at 0.
func (e *Engine) SetMapCount(n int) {
	if n < 0 {
		n = 0
	}
	e.maps = n
	e.persist()
}

// MapCount returns the session's map count.
func (e *Engine) MapCount() int { return e.maps }

// ToggleDisplayUnit flips the totals unit preference and reports the new
// value (true = secondary).
func (e *Engine) ToggleDisplayUnit() bool {
	e.preferSecondary = !e.preferSecondary
	e.persist()
	return e.preferSecondary
}

// PreferSecondary reports the totals unit preference.
func (e *Engine) PreferSecondary() bool { return e.preferSecondary }

// Totals recomputes the session summary in base units.
func (e *Engine) Totals() ledger.Totals {
	return ledger.Compute(e.maps, e.pair, e.rate(), e.store.Rows())
}

// DisplayAmount applies the automatic threshold rule, the single source of
// truth for which unit a catalog or ledger amount shows in.
func (e *Engine) DisplayAmount(baseAmount float64) convert.Display {
	return convert.DisplayAmount(baseAmount, e.rate())
}

// DisplayTotal applies the explicit totals unit toggle.
func (e *Engine) DisplayTotal(baseAmount float64) convert.Display {
	return ledger.FormatTotal(baseAmount, e.preferSecondary, e.rate())
}

// ExportCSV renders the current session as CSV.
func (e *Engine) ExportCSV() ([]byte, error) {
	return export.RenderCSV(e.store.Rows(), e.Totals(), e.rate())
}

// ExportXLSX writes the current session as a spreadsheet.
func (e *Engine) ExportXLSX(path string) error {
	return export.WriteXLSX(path, e.store.Rows(), e.Totals(), e.rate())
}

// ExportFilename suggests a timestamped export name.
func (e *Engine) ExportFilename(ext string) string {
	return export.DefaultFilename(ext, time.Now())
}

// Reset discards the ledger, cost inputs, filters and the persisted slot.
// The catalog stays loaded.
func (e *Engine) Reset() {
	e.store.Reset()
	e.pair = convert.CostPair{}
	e.maps = 0
	e.section = ""
	e.search = ""
	e.preferSecondary = false
	if e.slot != nil {
		if err := e.slot.Clear(); err != nil {
			e.status = fmt.Sprintf("session clear failed: %v", err)
			return
		}
	}
	e.status = "session reset"
}
