package catalog

import "strings"

// SecondaryUnitName is the catalog row whose base-unit amount defines the
// secondary-unit exchange rate. poe.ninja has exactly one such tier.
const SecondaryUnitName = "divine orb"

// DefaultBaseUnit labels the base unit when the document does not name one.
const DefaultBaseUnit = "Exalted Orb"

// SecondaryUnitLabel is the display label for the secondary unit.
const SecondaryUnitLabel = "Divine Orb"

// Entry is one indexed catalog line.
type Entry struct {
	Section    string
	Name       string
	Icon       string
	BaseAmount float64
}

// Index is a normalized-name lookup over a price document. It is immutable
// after BuildIndex; catalog reloads build a fresh Index and swap it in whole.
type Index struct {
	byName    map[string]Entry
	entries   []Entry // document order, for browsing
	sections  []string
	updatedAt string
	league    string
	baseUnit  string
	baseIcon  string
	malformed int
}

// NormalizeName produces the lookup key: trimmed, case-folded, with the
// scraper's trailing "WIKI" noise token stripped.
func NormalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if t := strings.TrimSuffix(s, "wiki"); t != s {
		s = strings.TrimSpace(t)
	}
	return s
}

// BuildIndex indexes a document. Lines without a name are dropped and
// counted; missing or negative amounts are indexed as 0 and counted. When
// two lines normalize to the same name the last one wins.
func BuildIndex(doc Document) *Index {
	ix := &Index{
		byName:    make(map[string]Entry, len(doc.Lines)),
		updatedAt: doc.UpdatedAt,
		league:    doc.League,
		baseUnit:  doc.Base,
		baseIcon:  doc.BaseIcon,
	}
	if ix.baseUnit == "" {
		ix.baseUnit = DefaultBaseUnit
	}

	seenSection := make(map[string]bool)
	for _, line := range doc.Lines {
		key := NormalizeName(line.Name)
		if key == "" {
			ix.malformed++
			continue
		}
		amount, ok := line.BaseAmount()
		if !ok {
			ix.malformed++
		}
		e := Entry{
			Section:    line.Section,
			Name:       strings.TrimSpace(line.Name),
			Icon:       line.Icon,
			BaseAmount: amount,
		}
		ix.byName[key] = e
		ix.entries = append(ix.entries, e)
		if line.Section != "" && !seenSection[line.Section] {
			seenSection[line.Section] = true
			ix.sections = append(ix.sections, line.Section)
		}
	}
	return ix
}

// NewIndex returns an empty index; every lookup misses.
func NewIndex() *Index {
	return &Index{byName: make(map[string]Entry)}
}

// Lookup finds an entry by name, case- and whitespace-insensitive.
func (ix *Index) Lookup(name string) (Entry, bool) {
	e, ok := ix.byName[NormalizeName(name)]
	return e, ok
}

// SecondaryRate returns the secondary unit's exchange rate in base units.
// ok is false when the catalog has no usable secondary-unit row, in which
// case secondary-unit display is disabled.
func (ix *Index) SecondaryRate() (float64, bool) {
	e, ok := ix.byName[SecondaryUnitName]
	if !ok || e.BaseAmount <= 0 {
		return 0, false
	}
	return e.BaseAmount, true
}

// Entries returns the browsable lines in document order, filtered by section
// tag and case-insensitive substring search. Empty filters match everything.
func (ix *Index) Entries(section, search string) []Entry {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]Entry, 0, len(ix.entries))
	for _, e := range ix.entries {
		if section != "" && e.Section != section {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(e.Name), needle) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Sections lists the distinct section tags in first-seen order.
func (ix *Index) Sections() []string { return ix.sections }

// Len reports how many lines were indexed (duplicates included).
func (ix *Index) Len() int { return len(ix.entries) }

// Malformed reports how many lines were dropped or coerced during indexing.
func (ix *Index) Malformed() int { return ix.malformed }

// UpdatedAt echoes the document's informational timestamp.
func (ix *Index) UpdatedAt() string { return ix.updatedAt }

// League echoes the document's league tag.
func (ix *Index) League() string { return ix.league }

// BaseUnit returns the base unit's display label.
func (ix *Index) BaseUnit() string { return ix.baseUnit }
