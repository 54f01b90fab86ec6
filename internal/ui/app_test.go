package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiq13/kt-poe2-tool/internal/catalog"
	"github.com/twiq13/kt-poe2-tool/internal/config"
	"github.com/twiq13/kt-poe2-tool/internal/convert"
	"github.com/twiq13/kt-poe2-tool/internal/engine"
	"github.com/twiq13/kt-poe2-tool/internal/ledger"
	"github.com/twiq13/kt-poe2-tool/internal/theme"
)

func fv(v float64) *float64 { return &v }

func testApp(t *testing.T) *App {
	t.Helper()
	eng := engine.New(nil)
	eng.LoadCatalog(catalog.Document{League: "vaal", Lines: []catalog.Line{
		{Section: "currency", Name: "Exalted Orb", ExaltedValue: fv(1)},
		{Section: "currency", Name: "Divine Orb", ExaltedValue: fv(180)},
	}})
	a := NewApp(eng, config.DefaultConfig())
	a.ready = true
	a.width = 100
	a.height = 30
	return a
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(a *App, keys ...string) {
	for _, k := range keys {
		a.Update(key(k))
	}
}

func TestAddLinkedRowFromCatalog(t *testing.T) {
	a := testApp(t)
	press(a, "j") // move to Divine Orb
	press(a, "a")

	rows := a.eng.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].ItemName != "Divine Orb" || rows[0].UnitPrice != 180 {
		t.Errorf("row = %+v", rows[0])
	}
	if a.focus != focusLedger {
		t.Error("focus should move to the ledger after adding")
	}
}

func TestQuantityInput(t *testing.T) {
	a := testApp(t)
	press(a, "a", "g", "5", "enter")

	rows := a.eng.Rows()
	if rows[0].Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", rows[0].Quantity)
	}
}

func TestIncrementDecrement(t *testing.T) {
	a := testApp(t)
	press(a, "a", "+", "+", "+", "-")
	if q := a.eng.Rows()[0].Quantity; q != 2 {
		t.Errorf("Quantity = %d, want 2", q)
	}
	// Decrement below zero clamps.
	press(a, "-", "-", "-")
	if q := a.eng.Rows()[0].Quantity; q != 0 {
		t.Errorf("Quantity = %d, want 0", q)
	}
}

func TestManualRowPriceInput(t *testing.T) {
	a := testApp(t)
	press(a, "m", "p", "1", "2", ",", "5", "enter") // decimal comma accepted

	rows := a.eng.Rows()
	if rows[0].UnitPrice != 12.5 {
		t.Errorf("UnitPrice = %v, want 12.5", rows[0].UnitPrice)
	}
}

func TestSearchFiltersCatalog(t *testing.T) {
	a := testApp(t)
	press(a, "/", "d", "i", "v", "enter")

	entries := a.eng.CatalogEntries()
	if len(entries) != 1 || entries[0].Name != "Divine Orb" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestEscCancelsInput(t *testing.T) {
	a := testApp(t)
	press(a, "a", "g", "9", "esc")
	if q := a.eng.Rows()[0].Quantity; q != 0 {
		t.Errorf("Quantity = %d, want 0 after cancel", q)
	}
	if a.input != inputNone {
		t.Error("input mode should be cleared")
	}
}

func TestDeleteRow(t *testing.T) {
	a := testApp(t)
	press(a, "a", "m", "d")
	if got := len(a.eng.Rows()); got != 1 {
		t.Errorf("rows = %d, want 1 after delete", got)
	}
	// Deleting with an empty ledger is a no-op.
	press(a, "d", "d")
	if got := len(a.eng.Rows()); got != 0 {
		t.Errorf("rows = %d, want 0", got)
	}
}

func TestView_RendersTotals(t *testing.T) {
	a := testApp(t)
	press(a, "j", "a", "g", "5", "enter")
	press(a, "M", "1", "0", "enter")
	press(a, "c", "5", "0", "enter")

	out := a.View()
	if !strings.Contains(out, "Maps 10") {
		t.Errorf("missing map count in view:\n%s", out)
	}
	if !strings.Contains(out, "+400") {
		t.Errorf("missing gain in view:\n%s", out)
	}
}

func TestStyleHelpers(t *testing.T) {
	if amountStyle(convert.UnitSecondary).GetForeground() != theme.DivineStyle.GetForeground() {
		t.Error("secondary amounts should render in the divine style")
	}
	if amountStyle(convert.UnitBase).GetForeground() != theme.PriceStyle.GetForeground() {
		t.Error("base amounts should render in the price style")
	}
	if rowStyle(ledger.KindManual).GetForeground() != theme.ManualStyle.GetForeground() {
		t.Error("manual rows should render in the manual style")
	}
	if rowStyle(ledger.KindLinked).GetForeground() != theme.BodyStyle.GetForeground() {
		t.Error("linked rows should render in the body style")
	}
}

func TestScrollOffset(t *testing.T) {
	cases := []struct {
		cursor, length, visible, want int
	}{
		{0, 10, 5, 0},
		{9, 10, 5, 5},
		{5, 10, 5, 3},
		{3, 4, 10, 0},
	}
	for _, c := range cases {
		if got := scrollOffset(c.cursor, c.length, c.visible); got != c.want {
			t.Errorf("scrollOffset(%d,%d,%d) = %d, want %d", c.cursor, c.length, c.visible, got, c.want)
		}
	}
}
