// Package export renders the ledger and totals into flat documents. Renders
// are deterministic: identical inputs produce identical bytes, and no
// timestamp appears inside the data (only export filenames carry one).
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/twiq13/kt-poe2-tool/internal/convert"
	"github.com/twiq13/kt-poe2-tool/internal/ledger"
)

// header is the fixed CSV column order.
var header = []string{"Item", "Price", "Unit", "Qty", "Total(base/secondary)"}

// dualTotal renders an amount in both units, secondary as 0 when no rate is
// known.
func dualTotal(baseAmount float64, rate convert.Rate) string {
	var secondary int64
	if rate.OK {
		secondary = convert.Round(baseAmount / rate.Value)
	}
	return fmt.Sprintf("%d %s / %d %s",
		convert.Round(baseAmount), convert.UnitBase.Label(),
		secondary, convert.UnitSecondary.Label())
}

// records builds the row matrix shared by the CSV and XLSX renderers: the
// header, one record per ledger row (threshold-rule unit price), and trailer
// records for the three totals.
func records(rows []ledger.Row, tot ledger.Totals, rate convert.Rate) [][]string {
	out := make([][]string, 0, len(rows)+4)
	out = append(out, header)
	for _, r := range rows {
		d := convert.DisplayAmount(r.UnitPrice, rate)
		out = append(out, []string{
			r.ItemName,
			strconv.FormatInt(d.Value, 10),
			d.Unit.Label(),
			strconv.Itoa(r.Quantity),
			dualTotal(r.Total(), rate),
		})
	}
	out = append(out,
		[]string{"Investment", "", "", "", dualTotal(tot.Investment, rate)},
		[]string{"Loot", "", "", "", dualTotal(tot.Loot, rate)},
		[]string{"Gain", "", "", "", dualTotal(tot.Gain, rate)},
	)
	return out
}

// RenderCSV renders the session as CSV. Fields containing commas, quotes or
// newlines get standard CSV quoting with doubled internal quotes.
func RenderCSV(rows []ledger.Row, tot ledger.Totals, rate convert.Rate) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records(rows, tot, rate)); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteXLSX renders the same contract as a spreadsheet.
func WriteXLSX(path string, rows []ledger.Row, tot ledger.Totals, rate convert.Rate) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, rec := range records(rows, tot, rate) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("sheet coordinates: %w", err)
		}
		vals := make([]interface{}, len(rec))
		for j, v := range rec {
			vals[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return fmt.Errorf("write sheet row: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx %s: %w", path, err)
	}
	return nil
}

// DefaultFilename is the suggested export name; the timestamp lives here and
// nowhere inside the document.
func DefaultFilename(ext string, now time.Time) string {
	return "loot-session-" + now.Format("20060102-150405") + "." + ext
}
