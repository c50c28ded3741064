package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jask/tiermaker/internal/codec"
	"github.com/jask/tiermaker/internal/store"
	"github.com/jask/tiermaker/internal/tierlist"
)

// Source says where a session's board came from at startup.
type Source string

const (
	SourceLink    Source = "link"
	SourceStorage Source = "storage"
	SourceSeed    Source = "seed"
)

// LoadResult describes a startup load. LinkErr is set when a share link was
// given but could not be decoded and storage was used instead.
type LoadResult struct {
	Source  Source
	LinkErr error
}

// Snapshot is a board together with the session version it was taken at.
type Snapshot struct {
	Version uint64
	Board   tierlist.Board
}

// SessionOptions configure a Session.
type SessionOptions struct {
	Slot         string
	ShareBaseURL string
	WarnBytes    int
}

// Session owns the current board for a single actor. Mutators replace the
// board wholesale and bump the version; persistence is done with Save, which
// the host runs after each mutation and which ignores snapshots older than
// the last one written.
type Session struct {
	store  store.Store
	opts   SessionOptions
	logger *zap.Logger

	board   tierlist.Board
	version uint64

	saveMu sync.Mutex
	saved  uint64
}

func NewSession(st store.Store, opts SessionOptions, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{store: st, opts: opts, logger: logger, board: tierlist.NewBoard()}
}

// Board returns the current board.
func (s *Session) Board() tierlist.Board { return s.board }

// Snapshot returns the current board and version.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{Version: s.version, Board: s.board}
}

func (s *Session) replace(next tierlist.Board) {
	s.board = next
	s.version++
}

// Load picks the startup board. A non-empty link (full URL or bare token) is
// tried first; if it does not decode, or no link is given, the durable slot
// is read, falling back to the seed board when the slot is missing or
// unreadable. A board opened from a link is written to the slot.
func (s *Session) Load(ctx context.Context, link string) LoadResult {
	var res LoadResult
	if token := codec.FragmentToken(link); token != "" {
		b, err := codec.DecodeShare(token)
		if err == nil {
			s.replace(b)
			s.logger.Info("board loaded from link", zap.Int("tiers", len(b.Tiers)), zap.Int("items", b.ItemCount()))
			if err := s.Save(ctx, s.Snapshot()); err != nil {
				s.logger.Warn("persist linked board", zap.Error(err))
			}
			res.Source = SourceLink
			return res
		}
		s.logger.Warn("share link rejected, using storage", zap.Error(err))
		res.LinkErr = err
	}

	data, err := s.store.Load(ctx, s.opts.Slot)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.logger.Info("no saved board, starting from seed", zap.String("slot", s.opts.Slot))
		s.replace(tierlist.NewBoard())
		res.Source = SourceSeed
		return res
	case err != nil:
		s.logger.Error("read saved board", zap.String("slot", s.opts.Slot), zap.Error(err))
		s.replace(tierlist.NewBoard())
		res.Source = SourceSeed
		return res
	}

	b, err := codec.ParseDurable(data)
	if err != nil {
		s.logger.Warn("saved board unreadable, starting from seed", zap.String("slot", s.opts.Slot), zap.Error(err))
		s.replace(tierlist.NewBoard())
		res.Source = SourceSeed
		return res
	}
	s.replace(b)
	res.Source = SourceStorage
	return res
}

// Save writes snap to the durable slot unless a newer snapshot was already
// written. Errors are logged and returned; the in-memory board is unaffected.
func (s *Session) Save(ctx context.Context, snap Snapshot) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if snap.Version <= s.saved {
		return nil
	}
	data, err := codec.EncodeDurable(snap.Board)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, s.opts.Slot, data); err != nil {
		s.logger.Error("save board", zap.String("slot", s.opts.Slot), zap.Uint64("version", snap.Version), zap.Error(err))
		return fmt.Errorf("save board: %w", err)
	}
	s.saved = snap.Version
	s.logger.Debug("board saved", zap.String("slot", s.opts.Slot), zap.Uint64("version", snap.Version), zap.Int("bytes", len(data)))
	return nil
}

// ShareURL builds the share link for the current board.
func (s *Session) ShareURL() (string, error) {
	link, err := codec.ShareURL(s.opts.ShareBaseURL, s.board)
	if err != nil {
		return "", err
	}
	if s.opts.WarnBytes > 0 && len(link) > s.opts.WarnBytes {
		s.logger.Warn("share link is long and may be truncated by browsers or chat clients", zap.Int("bytes", len(link)))
	}
	return link, nil
}

// Oversized reports whether a share link exceeds the configured warning size.
func (s *Session) Oversized(link string) bool {
	return s.opts.WarnBytes > 0 && len(link) > s.opts.WarnBytes
}

func (s *Session) AddItem(kind tierlist.Kind, payload, label string) (tierlist.Item, error) {
	next, item, err := s.board.AddItem(kind, payload, label)
	if err != nil {
		return tierlist.Item{}, err
	}
	s.replace(next)
	return item, nil
}

func (s *Session) AddTier(name string) error {
	return s.apply(func(b tierlist.Board) (tierlist.Board, error) { return b.AddTier(name) })
}

func (s *Session) RemoveTier(tierID string) error {
	return s.apply(func(b tierlist.Board) (tierlist.Board, error) { return b.RemoveTier(tierID) })
}

func (s *Session) RenameTier(tierID, name string) error {
	return s.apply(func(b tierlist.Board) (tierlist.Board, error) { return b.RenameTier(tierID, name) })
}

func (s *Session) MoveItem(itemID, sourceID, targetID string) error {
	return s.apply(func(b tierlist.Board) (tierlist.Board, error) { return b.MoveItem(itemID, sourceID, targetID) })
}

// MoveTierUp and MoveTierDown report whether the board changed.
func (s *Session) MoveTierUp(index int) bool {
	if index <= 0 || index >= len(s.board.Tiers) {
		return false
	}
	s.replace(s.board.MoveTierUp(index))
	return true
}

func (s *Session) MoveTierDown(index int) bool {
	if index < 0 || index >= len(s.board.Tiers)-1 {
		return false
	}
	s.replace(s.board.MoveTierDown(index))
	return true
}

// Replace swaps in a whole board, such as a generated demo board.
func (s *Session) Replace(b tierlist.Board) {
	s.replace(b)
}

// Reset replaces the board with the seed board. Callers confirm first.
func (s *Session) Reset() {
	s.replace(s.board.Reset())
	s.logger.Info("board reset")
}

func (s *Session) apply(fn func(tierlist.Board) (tierlist.Board, error)) error {
	next, err := fn(s.board)
	if err != nil {
		return err
	}
	s.replace(next)
	return nil
}
