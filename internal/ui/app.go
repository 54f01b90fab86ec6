// Package ui is the terminal presentation layer. It owns no session state:
// every mutation goes through the engine's operation surface and every
// render reads back through its queries.
package ui

import (
	"context"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiq13/kt-poe2-tool/internal/catalog"
	"github.com/twiq13/kt-poe2-tool/internal/config"
	"github.com/twiq13/kt-poe2-tool/internal/engine"
	"github.com/twiq13/kt-poe2-tool/internal/i18n"
	"github.com/twiq13/kt-poe2-tool/internal/ledger"
)

type focusArea int

const (
	focusCatalog focusArea = iota
	focusLedger
)

type inputField int

const (
	inputNone inputField = iota
	inputSearch
	inputRowName
	inputRowQty
	inputRowPrice
	inputCostBase
	inputCostSecondary
	inputMaps
)

// catalogMsg carries a freshly fetched or read price document.
type catalogMsg struct {
	doc catalog.Document
	err error
}

// fileChangedMsg means the watched prices file was rewritten.
type fileChangedMsg struct{}

// TickMsg triggers the periodic catalog refresh.
type TickMsg time.Time

type App struct {
	eng *engine.Engine
	cfg config.Config

	// Changes is fed by the prices-file watcher; nil when no file is
	// configured.
	Changes <-chan struct{}

	width  int
	height int
	ready  bool

	focus     focusArea
	catCursor int
	ledCursor int

	// inline editing state
	input   inputField
	buffer  string
	editRow ledger.RowID

	notice string // transient, replaces engine status until next event
}

func NewApp(eng *engine.Engine, cfg config.Config) *App {
	i18n.SetLanguage(cfg.General.Language)
	return &App{eng: eng, cfg: cfg}
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadCatalog}
	if a.Changes != nil {
		cmds = append(cmds, a.waitForChange)
	}
	return tea.Batch(cmds...)
}

// loadCatalog reads the configured prices file, or fetches live prices when
// no file is configured.
func (a *App) loadCatalog() tea.Msg {
	if a.cfg.Catalog.PricesFile != "" {
		doc, err := catalog.LoadFile(a.cfg.Catalog.PricesFile)
		return catalogMsg{doc: doc, err: err}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	doc, err := catalog.FetchOverview(ctx, a.cfg.Catalog.League)
	return catalogMsg{doc: doc, err: err}
}

func (a *App) waitForChange() tea.Msg {
	if _, ok := <-a.Changes; !ok {
		return nil
	}
	return fileChangedMsg{}
}

func doTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (a *App) refreshInterval() time.Duration {
	secs := a.cfg.Catalog.RefreshSeconds
	if secs <= 0 {
		secs = 30
	}
	return time.Duration(secs) * time.Second
}

// exportDir resolves the configured export directory.
func (a *App) exportPath(name string) string {
	dir := a.cfg.General.ExportDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name)
}
