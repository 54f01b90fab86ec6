package catalog

import "testing"

func fv(v float64) *float64 { return &v }

func TestNormalizeName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Divine Orb", "divine orb"},
		{"  Divine Orb  ", "divine orb"},
		{"Divine Orb WIKI", "divine orb"},
		{"DIVINE ORB wiki", "divine orb"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeName(c.in); got != c.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBuildIndex_Lookup(t *testing.T) {
	doc := Document{Lines: []Line{
		{Section: "currency", Name: "Exalted Orb", ExaltedValue: fv(1)},
		{Section: "currency", Name: "Divine Orb", ExaltedValue: fv(180)},
		{Section: "runes", Name: "Iron Rune", Amount: fv(0.5)},
	}}
	ix := BuildIndex(doc)

	t.Run("case and whitespace insensitive", func(t *testing.T) {
		e, ok := ix.Lookup("  DIVINE orb ")
		if !ok || e.BaseAmount != 180 {
			t.Fatalf("Lookup = %+v, %v; want Divine Orb at 180", e, ok)
		}
	})

	t.Run("legacy amount field", func(t *testing.T) {
		e, ok := ix.Lookup("Iron Rune")
		if !ok || e.BaseAmount != 0.5 {
			t.Fatalf("Lookup = %+v, %v; want Iron Rune at 0.5", e, ok)
		}
	})

	t.Run("miss", func(t *testing.T) {
		if _, ok := ix.Lookup("Mirror of Kalandra"); ok {
			t.Error("unexpected hit for absent entry")
		}
	})

	if ix.Malformed() != 0 {
		t.Errorf("Malformed = %d, want 0", ix.Malformed())
	}
}

func TestBuildIndex_DuplicateLastWins(t *testing.T) {
	doc := Document{Lines: []Line{
		{Name: "Chaos Orb", ExaltedValue: fv(2)},
		{Name: "chaos orb ", ExaltedValue: fv(3)},
	}}
	ix := BuildIndex(doc)
	e, ok := ix.Lookup("Chaos Orb")
	if !ok || e.BaseAmount != 3 {
		t.Fatalf("Lookup = %+v, %v; want last entry (3) to win", e, ok)
	}
}

func TestBuildIndex_Malformed(t *testing.T) {
	neg := -1.0
	doc := Document{Lines: []Line{
		{Name: "", ExaltedValue: fv(5)},       // no name: dropped
		{Name: "No Amount"},                   // coerced to 0
		{Name: "Negative", ExaltedValue: &neg}, // coerced to 0
		{Name: "Fine", ExaltedValue: fv(7)},
	}}
	ix := BuildIndex(doc)

	if ix.Malformed() != 3 {
		t.Errorf("Malformed = %d, want 3", ix.Malformed())
	}
	if _, ok := ix.Lookup(""); ok {
		t.Error("nameless line should be dropped")
	}
	if e, ok := ix.Lookup("No Amount"); !ok || e.BaseAmount != 0 {
		t.Errorf("coerced line = %+v, %v; want indexed at 0", e, ok)
	}
	if e, ok := ix.Lookup("Fine"); !ok || e.BaseAmount != 7 {
		t.Errorf("valid line = %+v, %v; want 7", e, ok)
	}
}

func TestParseDocument_NonNumericAmount(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"lines":[
		{"name":"Broken","amount":"n/a"},
		{"name":"Nulled","exaltedValue":null},
		{"name":"Quoted","amount":"2.5"},
		{"name":"Fine","amount":2}
	]}`))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	ix := BuildIndex(doc)

	if ix.Malformed() != 2 {
		t.Errorf("Malformed = %d, want 2", ix.Malformed())
	}
	if e, ok := ix.Lookup("Broken"); !ok || e.BaseAmount != 0 {
		t.Errorf("Broken = %+v, %v; want indexed at 0", e, ok)
	}
	if e, ok := ix.Lookup("Nulled"); !ok || e.BaseAmount != 0 {
		t.Errorf("Nulled = %+v, %v; want indexed at 0", e, ok)
	}
	if e, ok := ix.Lookup("Quoted"); !ok || e.BaseAmount != 2.5 {
		t.Errorf("Quoted = %+v, %v; want 2.5", e, ok)
	}
	if e, ok := ix.Lookup("Fine"); !ok || e.BaseAmount != 2 {
		t.Errorf("Fine = %+v, %v; want 2", e, ok)
	}
}

func TestSecondaryRate(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		ix := BuildIndex(Document{Lines: []Line{{Name: "Divine Orb", ExaltedValue: fv(180)}}})
		rate, ok := ix.SecondaryRate()
		if !ok || rate != 180 {
			t.Fatalf("SecondaryRate = %v, %v; want 180, true", rate, ok)
		}
	})

	t.Run("absent row", func(t *testing.T) {
		ix := BuildIndex(Document{Lines: []Line{{Name: "Exalted Orb", ExaltedValue: fv(1)}}})
		if _, ok := ix.SecondaryRate(); ok {
			t.Error("rate should be absent without a divine orb row")
		}
	})

	t.Run("zero amount disables", func(t *testing.T) {
		ix := BuildIndex(Document{Lines: []Line{{Name: "Divine Orb", ExaltedValue: fv(0)}}})
		if _, ok := ix.SecondaryRate(); ok {
			t.Error("rate should be absent when the row amount is 0")
		}
	})

	t.Run("empty index", func(t *testing.T) {
		if _, ok := NewIndex().SecondaryRate(); ok {
			t.Error("empty index should have no rate")
		}
	})
}

func TestEntries_Filter(t *testing.T) {
	doc := Document{Lines: []Line{
		{Section: "currency", Name: "Exalted Orb", ExaltedValue: fv(1)},
		{Section: "currency", Name: "Divine Orb", ExaltedValue: fv(180)},
		{Section: "runes", Name: "Iron Rune", ExaltedValue: fv(0.5)},
	}}
	ix := BuildIndex(doc)

	t.Run("by section", func(t *testing.T) {
		got := ix.Entries("runes", "")
		if len(got) != 1 || got[0].Name != "Iron Rune" {
			t.Fatalf("Entries(runes) = %+v", got)
		}
	})

	t.Run("by search", func(t *testing.T) {
		got := ix.Entries("", "orb")
		if len(got) != 2 {
			t.Fatalf("Entries(search=orb) = %d entries, want 2", len(got))
		}
	})

	t.Run("unfiltered keeps document order", func(t *testing.T) {
		got := ix.Entries("", "")
		if len(got) != 3 || got[0].Name != "Exalted Orb" || got[2].Name != "Iron Rune" {
			t.Fatalf("Entries() = %+v", got)
		}
	})

	secs := ix.Sections()
	if len(secs) != 2 || secs[0] != "currency" || secs[1] != "runes" {
		t.Errorf("Sections = %v", secs)
	}
}

func TestDefault(t *testing.T) {
	doc, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	ix := BuildIndex(doc)
	if ix.Len() < 5 {
		t.Errorf("embedded catalog has %d lines, want at least 5", ix.Len())
	}
	rate, ok := ix.SecondaryRate()
	if !ok || rate <= 0 {
		t.Errorf("embedded catalog should define a divine rate, got %v, %v", rate, ok)
	}
}
