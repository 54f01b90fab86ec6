package ledger

import "github.com/twiq13/kt-poe2-tool/internal/convert"

// Totals is the session summary in base units. Gain may be negative.
type Totals struct {
	Investment float64
	Loot       float64
	Gain       float64
}

// Investment returns maps * cost-per-map in base units. A negative map count
// counts as 0.
func Investment(maps int, pair convert.CostPair, rate convert.Rate) float64 {
	if maps < 0 {
		maps = 0
	}
	return float64(maps) * convert.ToBase(pair, rate)
}

// LootValue sums quantity-extended row values. Blank rows contribute 0.
func LootValue(rows []Row) float64 {
	var sum float64
	for _, r := range rows {
		sum += r.Total()
	}
	return sum
}

// Gain is loot minus investment, unclamped.
func Gain(investment, loot float64) float64 {
	return loot - investment
}

// Compute derives the full summary in one step.
func Compute(maps int, pair convert.CostPair, rate convert.Rate, rows []Row) Totals {
	inv := Investment(maps, pair, rate)
	loot := LootValue(rows)
	return Totals{Investment: inv, Loot: loot, Gain: Gain(inv, loot)}
}

// FormatTotal resolves a total for display. Unlike per-row prices, totals
// obey the user's explicit unit toggle rather than the automatic threshold:
// when the toggle prefers the secondary unit and a rate exists, the total is
// always rendered in it.
func FormatTotal(baseAmount float64, preferSecondary bool, rate convert.Rate) convert.Display {
	if preferSecondary && rate.OK {
		return convert.Display{Value: convert.Round(baseAmount / rate.Value), Unit: convert.UnitSecondary}
	}
	return convert.Display{Value: convert.Round(baseAmount), Unit: convert.UnitBase}
}
