package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jask/tiermaker/internal/database"
	"github.com/jask/tiermaker/internal/database/repository"
)

// SQLite keeps slots in the slots table of a local database.
type SQLite struct {
	db    *sql.DB
	slots *repository.SlotRepo
}

// OpenSQLite migrates and opens the database at path, creating its directory.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.RunMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLite{db: db, slots: repository.NewSlotRepo(db)}, nil
}

func (s *SQLite) Load(ctx context.Context, slot string) ([]byte, error) {
	if err := checkSlot(slot); err != nil {
		return nil, err
	}
	row, err := s.slots.Get(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", slot, err)
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return row.Value, nil
}

func (s *SQLite) Save(ctx context.Context, slot string, data []byte) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if err := s.slots.Upsert(ctx, repository.Slot{Name: slot, Value: data, UpdatedAt: database.Now()}); err != nil {
		return fmt.Errorf("save slot %s: %w", slot, err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, slot string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if err := s.slots.Delete(ctx, slot); err != nil {
		return fmt.Errorf("delete slot %s: %w", slot, err)
	}
	return nil
}

func (s *SQLite) Slots(ctx context.Context) ([]string, error) {
	rows, err := s.slots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name)
	}
	return names, nil
}

// Vacuum compacts the database file after large boards were removed.
func (s *SQLite) Vacuum(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "VACUUM")
	return err
}

func (s *SQLite) Close() error { return s.db.Close() }
