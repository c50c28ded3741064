package service

import (
	"context"
	"fmt"

	"github.com/jask/tiermaker/internal/store"
)

// MaintenanceService houses destructive/ops actions surfaced through the CLI.
type MaintenanceService struct {
	Store store.Store
	Slot  string
}

// Reset deletes the saved board so the next start begins from the seed
// board. On the sqlite backend the database file is compacted afterwards.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.Store == nil {
		return fmt.Errorf("maintenance: store not configured")
	}
	if err := s.Store.Delete(ctx, s.Slot); err != nil {
		return fmt.Errorf("reset slot %s: %w", s.Slot, err)
	}
	if v, ok := s.Store.(interface{ Vacuum(context.Context) error }); ok {
		_ = v.Vacuum(ctx)
	}
	return nil
}
