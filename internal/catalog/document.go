package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

//go:embed catalog.json
var defaultCatalogJSON []byte

// Section describes one scraped poe.ninja economy tab.
type Section struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Slug  string `json:"slug"`
	URL   string `json:"url,omitempty"`
}

// Line is a single price line from the scraped document. The amount lives
// under "exaltedValue" in current scraper output and under "amount" in older
// script iterations; the decoder accepts both.
type Line struct {
	Section      string   `json:"section"`
	Name         string   `json:"name"`
	Icon         string   `json:"icon,omitempty"`
	ExaltedValue *float64 `json:"exaltedValue,omitempty"`
	Amount       *float64 `json:"amount,omitempty"`
	Unit         string   `json:"unit,omitempty"`
	UnitIcon     string   `json:"unitIcon,omitempty"`
}

// UnmarshalJSON decodes the amount fields leniently. The scraper occasionally
// emits non-numeric amounts ("n/a", null, quoted numbers); those must not
// reject the whole document, so they decode to nil and BaseAmount coerces
// them to 0 with a malformed count.
func (l *Line) UnmarshalJSON(data []byte) error {
	type alias Line
	aux := struct {
		ExaltedValue json.RawMessage `json:"exaltedValue,omitempty"`
		Amount       json.RawMessage `json:"amount,omitempty"`
		*alias
	}{alias: (*alias)(l)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	l.ExaltedValue = numericAmount(aux.ExaltedValue)
	l.Amount = numericAmount(aux.Amount)
	return nil
}

// numericAmount parses a raw amount, accepting bare numbers and quoted
// numeric strings. Anything else is nil.
func numericAmount(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return &v
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return &f
		}
	}
	return nil
}

// BaseAmount returns the line's value in the base unit. ok is false when the
// amount is missing or negative; callers index such lines with 0 and count
// them as malformed rather than dropping them.
func (l Line) BaseAmount() (float64, bool) {
	v := l.ExaltedValue
	if v == nil {
		v = l.Amount
	}
	if v == nil || *v < 0 {
		return 0, false
	}
	return *v, true
}

// Document is the price catalog produced by the scraper (or mapped from the
// live currency overview API).
type Document struct {
	UpdatedAt  string    `json:"updatedAt"`
	League     string    `json:"league,omitempty"`
	Base       string    `json:"base,omitempty"`
	BaseIcon   string    `json:"baseIcon,omitempty"`
	DivineInEx *float64  `json:"divineInEx,omitempty"`
	Sections   []Section `json:"sections,omitempty"`
	Lines      []Line    `json:"lines"`
}

// ParseDocument decodes a scraped price document.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode price document: %w", err)
	}
	return doc, nil
}

// LoadFile reads a price document from disk.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read price document %s: %w", path, err)
	}
	return ParseDocument(data)
}

// Default returns the embedded fallback catalog so the tool works offline.
func Default() (Document, error) {
	return ParseDocument(defaultCatalogJSON)
}
