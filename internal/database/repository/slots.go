package repository

import (
	"context"
	"database/sql"
	"time"
)

// Slot is a named value in the slots table.
type Slot struct {
	Name      string
	Value     []byte
	UpdatedAt time.Time
}

// SlotRepo handles slots.
type SlotRepo struct {
	db *sql.DB
}

func NewSlotRepo(db *sql.DB) *SlotRepo { return &SlotRepo{db: db} }

func (r *SlotRepo) Upsert(ctx context.Context, s Slot) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO slots(name, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at;
	`, s.Name, s.Value, s.UpdatedAt)
	return err
}

// Get returns nil without error when the slot does not exist.
func (r *SlotRepo) Get(ctx context.Context, name string) (*Slot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT name, value, updated_at FROM slots WHERE name = ?`, name)
	var s Slot
	if err := row.Scan(&s.Name, &s.Value, &s.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SlotRepo) Delete(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE name = ?`, name)
	return err
}

func (r *SlotRepo) List(ctx context.Context) ([]Slot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, value, updated_at FROM slots ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Slot
	for rows.Next() {
		var s Slot
		if err := rows.Scan(&s.Name, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
