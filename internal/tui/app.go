package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/tiermaker/internal/config"
	"github.com/jask/tiermaker/internal/service"
	"github.com/jask/tiermaker/internal/tierlist"
)

// App is the board editor. Board mutations happen synchronously in Update;
// persistence runs as a command carrying an immutable snapshot.
type App struct {
	ctx      context.Context
	cfg      config.Config
	services Services
	logger   *zap.Logger
	keys     keyMap
	help     help.Model

	row, col int
	held     string // id of the picked-up item
	modal    modalState
	input    string
	matches  []tierlist.Match
	matchIdx int
	link     string
	status   string
	dirty    bool
	width    int
	chart    bool
}

type Services struct {
	Session     *service.Session
	Ingest      *service.IngestService
	Maintenance *service.MaintenanceService
}

type modalState string

const (
	modalNone         modalState = ""
	modalNewItem      modalState = "newItem"
	modalImage        modalState = "image"
	modalImportCSV    modalState = "importCSV"
	modalNewTier      modalState = "newTier"
	modalRenameTier   modalState = "renameTier"
	modalSearch       modalState = "search"
	modalShare        modalState = "share"
	modalConfirmReset modalState = "confirmReset"
)

const searchLimit = 8

func New(ctx context.Context, cfg config.Config, services Services, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{ctx: ctx, cfg: cfg, services: services, logger: logger, keys: newKeyMap(), help: help.New()}
}

// SetStatus shows a message on the status line, e.g. a startup notice.
func (a *App) SetStatus(s string) { a.status = s }

func (a *App) Init() tea.Cmd { return nil }

func (a *App) board() tierlist.Board { return a.services.Session.Board() }

// rows are the tiers top to bottom followed by the unranked area.
func (a *App) rowCount() int { return len(a.board().Tiers) + 1 }

func (a *App) containerID(row int) string {
	tiers := a.board().Tiers
	if row < len(tiers) {
		return tiers[row].ID
	}
	return tierlist.UnrankedID
}

func (a *App) rowItems(row int) []tierlist.Item {
	items, _ := a.board().Container(a.containerID(row))
	return items
}

func (a *App) onTier() bool { return a.row < len(a.board().Tiers) }

func (a *App) clamp() {
	if a.row >= a.rowCount() {
		a.row = a.rowCount() - 1
	}
	if a.row < 0 {
		a.row = 0
	}
	n := len(a.rowItems(a.row))
	if a.col >= n {
		a.col = n - 1
	}
	if a.col < 0 {
		a.col = 0
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		return a.handleBoardKey(m)
	case savedMsg:
		if uint64(m) == a.services.Session.Snapshot().Version {
			a.dirty = false
		}
	case errMsg:
		a.status = "error: " + m.Error()
	case importDoneMsg:
		summary := fmt.Sprintf("imported %d, skipped %d", m.Result.Imported, m.Result.Skipped)
		if len(m.Result.Errors) > 0 {
			summary += fmt.Sprintf(", errors %d (first: %v)", len(m.Result.Errors), m.Result.Errors[0])
		}
		a.status = summary
		if m.Result.Imported > 0 {
			return a, a.saveCmd()
		}
	}
	return a, nil
}

func (a *App) handleBoardKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := a.services.Session
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(m, a.keys.Chart):
		a.chart = !a.chart
	case key.Matches(m, a.keys.Up):
		if a.row > 0 {
			a.row--
		}
		a.clamp()
	case key.Matches(m, a.keys.Down):
		if a.row < a.rowCount()-1 {
			a.row++
		}
		a.clamp()
	case key.Matches(m, a.keys.Left):
		if a.col > 0 {
			a.col--
		}
	case key.Matches(m, a.keys.Right):
		if a.col < len(a.rowItems(a.row))-1 {
			a.col++
		}
	case key.Matches(m, a.keys.Grab):
		if a.held == "" {
			items := a.rowItems(a.row)
			if len(items) == 0 {
				a.status = "nothing to pick up here"
				return a, nil
			}
			a.held = items[a.col].ID
			a.status = "holding " + itemTitle(items[a.col]) + " - move to a row and press space to drop"
			return a, nil
		}
		return a, a.drop()
	case key.Matches(m, a.keys.Cancel):
		if a.held != "" {
			a.held = ""
			a.status = "drop cancelled"
		}
	case key.Matches(m, a.keys.NewItem):
		a.openInput(modalNewItem, "")
	case key.Matches(m, a.keys.Image):
		a.openInput(modalImage, "")
	case key.Matches(m, a.keys.ImportCSV):
		a.openInput(modalImportCSV, "")
	case key.Matches(m, a.keys.NewTier):
		a.openInput(modalNewTier, "")
	case key.Matches(m, a.keys.Rename):
		if !a.onTier() {
			a.status = "select a tier to rename"
			return a, nil
		}
		a.openInput(modalRenameTier, a.board().Tiers[a.row].Name)
	case key.Matches(m, a.keys.Remove):
		if !a.onTier() {
			a.status = "the unranked area cannot be removed"
			return a, nil
		}
		tier := a.board().Tiers[a.row]
		if err := s.RemoveTier(tier.ID); err != nil {
			return a, errCmd(err)
		}
		a.clamp()
		a.status = fmt.Sprintf("removed tier %s (%d items moved to unranked)", tier.Name, len(tier.Items))
		return a, a.saveCmd()
	case key.Matches(m, a.keys.TierUp):
		if a.onTier() && s.MoveTierUp(a.row) {
			a.row--
			return a, a.saveCmd()
		}
	case key.Matches(m, a.keys.TierDown):
		if a.onTier() && s.MoveTierDown(a.row) {
			a.row++
			return a, a.saveCmd()
		}
	case key.Matches(m, a.keys.Find):
		a.openInput(modalSearch, "")
		a.matches = nil
	case key.Matches(m, a.keys.Share):
		link, err := s.ShareURL()
		if err != nil {
			return a, errCmd(err)
		}
		a.link = link
		a.modal = modalShare
	case key.Matches(m, a.keys.Reset):
		a.modal = modalConfirmReset
	}
	return a, nil
}

// drop moves the held item to the end of the container under the cursor.
func (a *App) drop() tea.Cmd {
	itemID := a.held
	a.held = ""
	source, ok := a.board().Locate(itemID)
	if !ok {
		a.status = "item is no longer on the board"
		return nil
	}
	target := a.containerID(a.row)
	if err := a.services.Session.MoveItem(itemID, source, target); err != nil {
		return errCmd(err)
	}
	a.col = len(a.rowItems(a.row)) - 1
	a.status = ""
	return a.saveCmd()
}

func (a *App) openInput(modal modalState, initial string) {
	a.modal = modal
	a.input = initial
}

func (a *App) closeModal() {
	a.modal = modalNone
	a.input = ""
	a.matches = nil
	a.matchIdx = 0
	a.link = ""
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	switch a.modal {
	case modalShare:
		a.closeModal()
		return a, nil
	case modalConfirmReset:
		switch m.String() {
		case "y", "Y":
			a.closeModal()
			a.held = ""
			a.services.Session.Reset()
			a.row, a.col = 0, 0
			a.status = "board reset"
			return a, a.resetCmd()
		case "n", "N", "esc":
			a.closeModal()
		}
		return a, nil
	case modalSearch:
		switch m.String() {
		case "up", "ctrl+p":
			if a.matchIdx > 0 {
				a.matchIdx--
			}
			return a, nil
		case "down", "ctrl+n":
			if a.matchIdx < len(a.matches)-1 {
				a.matchIdx++
			}
			return a, nil
		}
	}

	switch m.Type {
	case tea.KeyEsc:
		a.closeModal()
	case tea.KeyEnter:
		return a, a.submit()
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if r := []rune(a.input); len(r) > 0 {
			a.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		a.input += " "
	case tea.KeyRunes:
		a.input += string(m.Runes)
	}
	if a.modal == modalSearch {
		a.matches = a.board().Search(a.input, searchLimit)
		a.matchIdx = 0
	}
	return a, nil
}

// submit applies the open input modal.
func (a *App) submit() tea.Cmd {
	s := a.services.Session
	text := strings.TrimSpace(a.input)
	modal := a.modal
	switch modal {
	case modalNewItem:
		item, err := s.AddItem(tierlist.KindText, text, "")
		if err != nil {
			a.status = "error: " + err.Error()
			return nil
		}
		a.closeModal()
		a.status = "added " + itemTitle(item)
		return a.saveCmd()
	case modalImage:
		if text == "" {
			a.status = "enter an image path"
			return nil
		}
		if a.services.Ingest == nil {
			return errCmd(fmt.Errorf("ingest service not configured"))
		}
		label := strings.TrimSuffix(filepath.Base(text), filepath.Ext(text))
		item, err := a.services.Ingest.AddImageFile(text, label)
		if err != nil {
			a.status = "error: " + err.Error()
			return nil
		}
		a.closeModal()
		a.status = "added image " + itemTitle(item)
		return a.saveCmd()
	case modalImportCSV:
		if text == "" {
			a.status = "enter a CSV path"
			return nil
		}
		a.closeModal()
		return a.importCmd(text)
	case modalNewTier:
		if err := s.AddTier(text); err != nil {
			a.status = "error: " + err.Error()
			return nil
		}
		a.closeModal()
		a.status = "added tier " + text
		return a.saveCmd()
	case modalRenameTier:
		if !a.onTier() {
			a.closeModal()
			return nil
		}
		if err := s.RenameTier(a.board().Tiers[a.row].ID, text); err != nil {
			a.status = "error: " + err.Error()
			return nil
		}
		a.closeModal()
		return a.saveCmd()
	case modalSearch:
		if len(a.matches) == 0 {
			a.status = "no match for " + text
			a.closeModal()
			return nil
		}
		a.jumpTo(a.matches[a.matchIdx])
		a.closeModal()
	}
	return nil
}

func (a *App) jumpTo(match tierlist.Match) {
	a.row = len(a.board().Tiers)
	if idx := a.board().TierIndex(match.ContainerID); idx >= 0 {
		a.row = idx
	}
	a.col = 0
	for i, it := range a.rowItems(a.row) {
		if it.ID == match.Item.ID {
			a.col = i
			break
		}
	}
	a.status = "found " + itemTitle(match.Item)
}

// commands

// saveCmd persists the current snapshot. The session drops snapshots older
// than one already written, so commands finishing out of order are safe.
func (a *App) saveCmd() tea.Cmd {
	a.dirty = true
	s := a.services.Session
	snap := s.Snapshot()
	return func() tea.Msg {
		if err := s.Save(a.ctx, snap); err != nil {
			return errMsg{err}
		}
		return savedMsg(snap.Version)
	}
}

// resetCmd clears the stored slot, then writes the seed board back.
func (a *App) resetCmd() tea.Cmd {
	if a.services.Maintenance == nil {
		return a.saveCmd()
	}
	a.dirty = true
	s := a.services.Session
	snap := s.Snapshot()
	return func() tea.Msg {
		if err := a.services.Maintenance.Reset(a.ctx); err != nil {
			return errMsg{err}
		}
		if err := s.Save(a.ctx, snap); err != nil {
			return errMsg{err}
		}
		return savedMsg(snap.Version)
	}
}

// importCmd reads the CSV file up front and hands the records to the session
// on the update loop; the session is not safe for concurrent mutation.
func (a *App) importCmd(path string) tea.Cmd {
	if a.services.Ingest == nil {
		return errCmd(fmt.Errorf("ingest service not configured"))
	}
	f, err := os.Open(path)
	if err != nil {
		return errCmd(fmt.Errorf("open %s: %w", path, err))
	}
	defer f.Close()
	res, err := a.services.Ingest.ImportText(f)
	if err != nil {
		a.logger.Warn("csv import stopped", zap.String("path", path), zap.Int("imported", res.Imported), zap.Error(err))
		a.status = "error: " + err.Error()
		if res.Imported > 0 {
			return a.saveCmd()
		}
		return nil
	}
	for i := range res.Errors {
		res.Errors[i] = fmt.Errorf("%s: %w", filepath.Base(path), res.Errors[i])
	}
	a.logger.Info("csv import", zap.String("path", path), zap.Int("imported", res.Imported), zap.Int("skipped", res.Skipped), zap.Int("errors", len(res.Errors)))
	return func() tea.Msg { return importDoneMsg{Result: res} }
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg { return errMsg{err} }
}

// messages
type errMsg struct{ error }

type savedMsg uint64

type importDoneMsg struct {
	Result service.IngestResult
}
