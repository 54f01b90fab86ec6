package i18n

import "fmt"

// Language represents a supported locale.
type Language string

const (
	LangEN Language = "en"
	LangFR Language = "fr"
)

var current Language = LangEN

// SetLanguage changes the active locale.
// Unrecognized values fall back to English.
func SetLanguage(lang string) {
	switch Language(lang) {
	case LangEN:
		current = LangEN
	case LangFR:
		current = LangFR
	default:
		current = LangEN
	}
}

// Current returns the active language.
func Current() Language {
	return current
}

// T returns the translated string for the given key.
// If the key is not found, the key itself is returned.
func T(key string) string {
	if current == LangFR {
		if v, ok := fr[key]; ok {
			return v
		}
	}
	if v, ok := en[key]; ok {
		return v
	}
	return key
}

// Tf returns a formatted translated string.
func Tf(key string, args ...any) string {
	return fmt.Sprintf(T(key), args...)
}

var en = map[string]string{
	"app_title":       "PoE2 Loot Tracker",
	"pane_catalog":    "Prices",
	"pane_ledger":     "Loot",
	"col_item":        "Item",
	"col_price":       "Price",
	"col_unit":        "Unit",
	"col_qty":         "Qty",
	"col_total":       "Total",
	"investment":      "Investment",
	"loot_value":      "Loot",
	"gain":            "Gain",
	"maps":            "Maps",
	"cost_per_map":    "Cost/map",
	"search":          "Search",
	"section_all":     "All",
	"status_loading":  "Fetching prices for league %s...",
	"status_loaded":   "Catalog: %d lines",
	"status_exported": "Exported to %s",
	"help_keys":       "a add row  m manual row  d delete  u toggle unit  e export  r reset  q quit",
	"no_catalog":      "No price data (check league or prices file)",
}

var fr = map[string]string{
	"app_title":       "Tracker de Loot PoE2",
	"pane_catalog":    "Prix",
	"pane_ledger":     "Loot",
	"col_item":        "Objet",
	"col_price":       "Prix",
	"col_unit":        "Unité",
	"col_qty":         "Qté",
	"col_total":       "Total",
	"investment":      "Investissement",
	"loot_value":      "Loot",
	"gain":            "Gain",
	"maps":            "Maps",
	"cost_per_map":    "Coût/map",
	"search":          "Recherche",
	"section_all":     "Tout",
	"status_loading":  "Récupération des prix pour la ligue %s...",
	"status_loaded":   "Catalogue : %d lignes",
	"status_exported": "Exporté vers %s",
	"help_keys":       "a ajouter  m ligne manuelle  d supprimer  u unité  e exporter  r reset  q quitter",
	"no_catalog":      "Aucune donnée (ligue ou fichier de prix)",
}
