package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiq13/kt-poe2-tool/internal/convert"
	"github.com/twiq13/kt-poe2-tool/internal/i18n"
	"github.com/twiq13/kt-poe2-tool/internal/ledger"
	"github.com/twiq13/kt-poe2-tool/internal/theme"
)

func (a *App) View() string {
	if !a.ready {
		return i18n.T("app_title")
	}
	if a.width < 70 || a.height < 18 {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center,
			theme.MutedStyle.Render(fmt.Sprintf("%dx%d — need 70x18", a.width, a.height)),
		)
	}

	header := a.renderHeader()
	totals := a.renderTotals()
	status := a.renderStatus()

	contentHeight := a.height - lipgloss.Height(header) - lipgloss.Height(totals) - lipgloss.Height(status) - 2
	if contentHeight < 4 {
		contentHeight = 4
	}

	catalogWidth := a.width / 2
	ledgerWidth := a.width - catalogWidth - 4

	left := a.paneStyle(focusCatalog).Width(catalogWidth).Height(contentHeight).
		Render(a.renderCatalog(catalogWidth, contentHeight))
	right := a.paneStyle(focusLedger).Width(ledgerWidth).Height(contentHeight).
		Render(a.renderLedger(ledgerWidth, contentHeight))

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, totals, status)
}

func (a *App) paneStyle(area focusArea) lipgloss.Style {
	if a.focus == area {
		return theme.ActivePaneStyle
	}
	return theme.PaneStyle
}

func (a *App) renderHeader() string {
	ix := a.eng.Index()
	title := theme.HeaderStyle.Render(i18n.T("app_title"))
	meta := ""
	if ix.League() != "" {
		meta = theme.MutedStyle.Render("  " + ix.League())
	}
	if ix.UpdatedAt() != "" {
		meta += theme.MutedStyle.Render("  " + ix.UpdatedAt())
	}
	return title + meta
}

func (a *App) renderCatalog(width, height int) string {
	var b strings.Builder

	section, search := a.eng.Filter()
	label := section
	if label == "" {
		label = i18n.T("section_all")
	}
	filter := fmt.Sprintf("%s: %s", i18n.T("pane_catalog"), label)
	if a.input == inputSearch {
		filter += fmt.Sprintf("  %s: %s_", i18n.T("search"), a.buffer)
	} else if search != "" {
		filter += fmt.Sprintf("  %s: %s", i18n.T("search"), search)
	}
	b.WriteString(theme.HeaderStyle.Render(filter))
	b.WriteString("\n")

	entries := a.eng.CatalogEntries()
	if len(entries) == 0 {
		b.WriteString(theme.MutedStyle.Render(i18n.T("no_catalog")))
		return b.String()
	}

	visible := height - 2
	start := scrollOffset(a.catCursor, len(entries), visible)
	for i := start; i < len(entries) && i < start+visible; i++ {
		e := entries[i]
		d := a.eng.DisplayAmount(e.BaseAmount)
		amount := fmt.Sprintf("%6d %s", d.Value, shortUnit(d.Unit))
		name := fmt.Sprintf("%-*s ", width-20, truncate(e.Name, width-20))
		if i == a.catCursor && a.focus == focusCatalog {
			b.WriteString(theme.SelectedStyle.Render("> " + name + amount))
		} else {
			b.WriteString(theme.BodyStyle.Render("  "+name) + amountStyle(d.Unit).Render(amount))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) renderLedger(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render(fmt.Sprintf("%-*s %8s %5s %8s",
		width-28, i18n.T("col_item"), i18n.T("col_price"), i18n.T("col_qty"), i18n.T("col_total"))))
	b.WriteString("\n")

	rows := a.eng.Rows()
	visible := height - 2
	start := scrollOffset(a.ledCursor, len(rows), visible)
	for i := start; i < len(rows) && i < start+visible; i++ {
		r := rows[i]
		name := r.ItemName
		if a.input == inputRowName && r.ID == a.editRow {
			name = a.buffer + "_"
		}
		price := a.eng.DisplayAmount(r.UnitPrice)
		total := a.eng.DisplayAmount(r.Total())
		line := fmt.Sprintf("%-*s %6d %s %5d %6d %s",
			width-28, truncate(name, width-28),
			price.Value, shortUnit(price.Unit),
			r.Quantity,
			total.Value, shortUnit(total.Unit))
		if i == a.ledCursor && a.focus == focusLedger {
			b.WriteString(theme.SelectedStyle.Render("> " + line))
		} else {
			b.WriteString(rowStyle(r.Kind).Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) renderTotals() string {
	tot := a.eng.Totals()
	inv := a.eng.DisplayTotal(tot.Investment)
	loot := a.eng.DisplayTotal(tot.Loot)
	gain := a.eng.DisplayTotal(tot.Gain)
	pair := a.eng.CostPair()

	parts := []string{
		theme.MutedStyle.Render(fmt.Sprintf("%s %d", i18n.T("maps"), a.eng.MapCount())),
		theme.MutedStyle.Render(fmt.Sprintf("%s %s", i18n.T("cost_per_map"), trimFloat(pair.Base))),
		theme.PriceStyle.Render(fmt.Sprintf("%s %d %s", i18n.T("investment"), inv.Value, shortUnit(inv.Unit))),
		theme.PriceStyle.Render(fmt.Sprintf("%s %d %s", i18n.T("loot_value"), loot.Value, shortUnit(loot.Unit))),
		theme.GainStyle(tot.Gain).Render(fmt.Sprintf("%s %+d %s", i18n.T("gain"), gain.Value, shortUnit(gain.Unit))),
	}
	return strings.Join(parts, theme.MutedStyle.Render("  |  "))
}

func (a *App) renderStatus() string {
	msg := a.notice
	if msg == "" {
		msg = a.eng.Status()
	}
	if a.input != inputNone && a.input != inputSearch && a.input != inputRowName {
		msg = fmt.Sprintf("%s: %s_", inputLabel(a.input), a.buffer)
	}
	help := theme.MutedStyle.Render(i18n.T("help_keys"))
	return theme.StatusStyle.Render(msg) + "\n" + help
}

func inputLabel(f inputField) string {
	switch f {
	case inputRowQty:
		return i18n.T("col_qty")
	case inputRowPrice:
		return i18n.T("col_price")
	case inputCostBase:
		return i18n.T("cost_per_map") + " (" + convert.UnitBase.Label() + ")"
	case inputCostSecondary:
		return i18n.T("cost_per_map") + " (" + convert.UnitSecondary.Label() + ")"
	case inputMaps:
		return i18n.T("maps")
	}
	return ""
}

// amountStyle colours a value by the unit it displays in.
func amountStyle(u convert.Unit) lipgloss.Style {
	if u == convert.UnitSecondary {
		return theme.DivineStyle
	}
	return theme.PriceStyle
}

// rowStyle distinguishes manual rows from catalog-linked ones.
func rowStyle(k ledger.Kind) lipgloss.Style {
	if k == ledger.KindManual {
		return theme.ManualStyle
	}
	return theme.BodyStyle
}

// shortUnit abbreviates unit labels for narrow columns.
func shortUnit(u convert.Unit) string {
	if u == convert.UnitSecondary {
		return "div"
	}
	return "ex"
}

func truncate(s string, width int) string {
	if width <= 1 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

// scrollOffset keeps the cursor visible in a window of the given size.
func scrollOffset(cursor, length, visible int) int {
	if visible <= 0 || length <= visible {
		return 0
	}
	start := cursor - visible/2
	if start < 0 {
		start = 0
	}
	if start > length-visible {
		start = length - visible
	}
	return start
}
