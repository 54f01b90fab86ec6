package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiq13/kt-poe2-tool/internal/catalog"
	"github.com/twiq13/kt-poe2-tool/internal/config"
	"github.com/twiq13/kt-poe2-tool/internal/engine"
	"github.com/twiq13/kt-poe2-tool/internal/session"
	"github.com/twiq13/kt-poe2-tool/internal/ui"
	"github.com/twiq13/kt-poe2-tool/internal/watcher"
)

// version is set by goreleaser via ldflags.
var version = "dev"

func main() {
	var (
		configPath  = flag.String("config", config.DefaultPath(), "config file path")
		league      = flag.String("league", "", "override poe.ninja league slug")
		pricesFile  = flag.String("prices", "", "override scraped prices file path")
		noTUI       = flag.Bool("no-tui", false, "output session JSON to stdout instead of TUI")
		exportCSV   = flag.String("export", "", "write a CSV export to this path and exit")
		fresh       = flag.Bool("fresh", false, "ignore any saved session")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("kt-poe2-tool", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Apply CLI overrides
	if *league != "" {
		cfg.Catalog.League = *league
	}
	if *pricesFile != "" {
		cfg.Catalog.PricesFile = *pricesFile
	}

	var slot engine.SnapshotStore
	if !*fresh {
		slot = session.NewFileStore(session.DefaultPath())
	}
	eng := engine.New(slot)

	if *noTUI || *exportCSV != "" {
		runHeadless(eng, cfg, *noTUI, *exportCSV)
		return
	}

	app := ui.NewApp(eng, cfg)

	if cfg.Catalog.PricesFile != "" {
		changes := make(chan struct{}, 1)
		interval := time.Duration(cfg.Catalog.RefreshSeconds) * time.Second
		if interval <= 0 {
			interval = 30 * time.Second
		}
		w := watcher.New(cfg.Catalog.PricesFile, interval, func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		})
		if err := w.Start(); err == nil {
			defer w.Stop()
			app.Changes = changes
		}
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// headlessOutput is the --no-tui JSON shape.
type headlessOutput struct {
	League     string        `json:"league,omitempty"`
	UpdatedAt  string        `json:"updatedAt,omitempty"`
	Rows       []headlessRow `json:"rows"`
	Investment float64       `json:"investment"`
	Loot       float64       `json:"loot"`
	Gain       float64       `json:"gain"`
}

type headlessRow struct {
	Kind      string  `json:"kind"`
	Item      string  `json:"item"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"qty"`
	Total     float64 `json:"total"`
}

func runHeadless(eng *engine.Engine, cfg config.Config, dumpJSON bool, exportPath string) {
	loadCatalog(eng, cfg)

	if exportPath != "" {
		data, err := eng.ExportCSV()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering export: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(exportPath, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing export: %v\n", err)
			os.Exit(1)
		}
	}

	if dumpJSON {
		tot := eng.Totals()
		out := headlessOutput{
			League:     eng.Index().League(),
			UpdatedAt:  eng.Index().UpdatedAt(),
			Rows:       make([]headlessRow, 0, len(eng.Rows())),
			Investment: tot.Investment,
			Loot:       tot.Loot,
			Gain:       tot.Gain,
		}
		for _, r := range eng.Rows() {
			out.Rows = append(out.Rows, headlessRow{
				Kind:      r.Kind.String(),
				Item:      r.ItemName,
				UnitPrice: r.UnitPrice,
				Quantity:  r.Quantity,
				Total:     r.Total(),
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
	}
}

// loadCatalog mirrors the TUI's source order: prices file, then live fetch,
// then the embedded fallback.
func loadCatalog(eng *engine.Engine, cfg config.Config) {
	if cfg.Catalog.PricesFile != "" {
		doc, err := catalog.LoadFile(cfg.Catalog.PricesFile)
		if err == nil {
			eng.LoadCatalog(doc)
			return
		}
		eng.NoteCatalogError(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	doc, err := catalog.FetchOverview(ctx, cfg.Catalog.League)
	if err == nil {
		eng.LoadCatalog(doc)
		return
	}
	eng.NoteCatalogError(err)

	if doc, err := catalog.Default(); err == nil {
		eng.LoadCatalog(doc)
	}
}
