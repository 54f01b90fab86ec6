package ui

import (
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiq13/kt-poe2-tool/internal/convert"
	"github.com/twiq13/kt-poe2-tool/internal/i18n"
	"github.com/twiq13/kt-poe2-tool/internal/ledger"
)

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if !a.ready {
			a.ready = true
			return a, doTick(a.refreshInterval())
		}
		return a, nil

	case tea.KeyMsg:
		if a.input != inputNone {
			return a.updateInput(msg)
		}
		return a.handleKey(msg)

	case TickMsg:
		// Live mode re-fetches periodically; file mode relies on the
		// watcher and only re-arms the timer.
		if a.cfg.Catalog.PricesFile == "" {
			return a, tea.Batch(a.loadCatalog, doTick(a.refreshInterval()))
		}
		return a, doTick(a.refreshInterval())

	case fileChangedMsg:
		return a, tea.Batch(a.loadCatalog, a.waitForChange)

	case catalogMsg:
		if msg.err != nil {
			a.eng.NoteCatalogError(msg.err)
		} else {
			a.eng.LoadCatalog(msg.doc)
		}
		a.notice = ""
		a.clampCursors()
		return a, nil
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "tab":
		if a.focus == focusCatalog {
			a.focus = focusLedger
		} else {
			a.focus = focusCatalog
		}

	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)

	case "/":
		a.startInput(inputSearch, a.currentSearch())
	case "s":
		a.cycleSection()

	case "a":
		name := ""
		if a.focus == focusCatalog {
			if entries := a.eng.CatalogEntries(); len(entries) > 0 && a.catCursor < len(entries) {
				name = entries[a.catCursor].Name
			}
		}
		a.eng.AddLinkedRow(name)
		a.focus = focusLedger
		a.ledCursor = len(a.eng.Rows()) - 1
	case "m":
		a.eng.AddManualRow()
		a.focus = focusLedger
		a.ledCursor = len(a.eng.Rows()) - 1

	case "d":
		if row, ok := a.selectedRow(); ok {
			a.eng.RemoveRow(row.ID)
			a.clampCursors()
		}

	case "n":
		if row, ok := a.selectedRow(); ok {
			a.editRow = row.ID
			a.startInput(inputRowName, row.ItemName)
		}
	case "g":
		if row, ok := a.selectedRow(); ok {
			a.editRow = row.ID
			a.startInput(inputRowQty, strconv.Itoa(row.Quantity))
		}
	case "+":
		if row, ok := a.selectedRow(); ok {
			a.eng.EditRowQuantity(row.ID, float64(row.Quantity+1))
		}
	case "-":
		if row, ok := a.selectedRow(); ok {
			a.eng.EditRowQuantity(row.ID, float64(row.Quantity-1))
		}
	case "p":
		if row, ok := a.selectedRow(); ok {
			a.editRow = row.ID
			a.startInput(inputRowPrice, trimFloat(row.UnitPrice))
		}

	case "c":
		a.startInput(inputCostBase, trimFloat(a.eng.CostPair().Base))
	case "C":
		a.startInput(inputCostSecondary, trimFloat(a.eng.CostPair().Secondary))
	case "M":
		a.startInput(inputMaps, strconv.Itoa(a.eng.MapCount()))

	case "u":
		a.eng.ToggleDisplayUnit()

	case "e":
		path := a.exportPath(a.eng.ExportFilename("csv"))
		if data, err := a.eng.ExportCSV(); err == nil {
			if werr := os.WriteFile(path, data, 0644); werr == nil {
				a.notice = i18n.Tf("status_exported", path)
			}
		}
	case "x":
		path := a.exportPath(a.eng.ExportFilename("xlsx"))
		if err := a.eng.ExportXLSX(path); err == nil {
			a.notice = i18n.Tf("status_exported", path)
		}

	case "r":
		a.eng.Reset()
		a.clampCursors()
		a.notice = ""

	case "R":
		return a, a.loadCatalog
	}
	return a, nil
}

func (a *App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.commitInput()
	case "esc":
		a.input = inputNone
		a.buffer = ""
	case "backspace":
		if len(a.buffer) > 0 {
			r := []rune(a.buffer)
			a.buffer = string(r[:len(r)-1])
		}
		if a.input == inputSearch {
			a.applySearch()
		}
	default:
		switch msg.Type {
		case tea.KeyRunes:
			a.buffer += string(msg.Runes)
		case tea.KeySpace:
			a.buffer += " "
		default:
			return a, nil
		}
		if a.input == inputSearch {
			a.applySearch()
		}
	}
	return a, nil
}

func (a *App) startInput(field inputField, initial string) {
	a.input = field
	a.buffer = initial
}

func (a *App) commitInput() {
	value := strings.TrimSpace(a.buffer)
	switch a.input {
	case inputSearch:
		a.applySearch()
	case inputRowName:
		a.eng.EditRowName(a.editRow, value)
	case inputRowQty:
		a.eng.EditRowQuantity(a.editRow, parseNumber(value))
	case inputRowPrice:
		a.eng.EditRowPrice(a.editRow, parseNumber(value))
	case inputCostBase:
		a.eng.SetCost(convert.FieldBase, parseNumber(value))
	case inputCostSecondary:
		a.eng.SetCost(convert.FieldSecondary, parseNumber(value))
	case inputMaps:
		a.eng.SetMapCount(int(parseNumber(value)))
	}
	a.input = inputNone
	a.buffer = ""
	a.clampCursors()
}

func (a *App) applySearch() {
	section, _ := a.eng.Filter()
	a.eng.SetFilter(section, strings.TrimSpace(a.buffer))
	a.catCursor = 0
}

func (a *App) currentSearch() string {
	_, search := a.eng.Filter()
	return search
}

// cycleSection walks "" -> first section -> ... -> last -> "".
func (a *App) cycleSection() {
	sections := a.eng.Index().Sections()
	current, search := a.eng.Filter()
	next := ""
	if current == "" {
		if len(sections) > 0 {
			next = sections[0]
		}
	} else {
		for i, s := range sections {
			if s == current && i+1 < len(sections) {
				next = sections[i+1]
				break
			}
		}
	}
	a.eng.SetFilter(next, search)
	a.catCursor = 0
}

func (a *App) moveCursor(delta int) {
	if a.focus == focusCatalog {
		a.catCursor += delta
	} else {
		a.ledCursor += delta
	}
	a.clampCursors()
}

func (a *App) clampCursors() {
	a.catCursor = clamp(a.catCursor, len(a.eng.CatalogEntries()))
	a.ledCursor = clamp(a.ledCursor, len(a.eng.Rows()))
}

func clamp(cursor, length int) int {
	if cursor >= length {
		cursor = length - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

func (a *App) selectedRow() (ledger.Row, bool) {
	rows := a.eng.Rows()
	if len(rows) == 0 || a.ledCursor >= len(rows) {
		return ledger.Row{}, false
	}
	return rows[a.ledCursor], true
}

func parseNumber(s string) float64 {
	// Accept a decimal comma, the original tool's locale habit.
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
