package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/skirmish/internal/game/skill"
)

// BattlerPersistenceService сохраняет и загружает состояние banks всех battler'ов.
type BattlerPersistenceService struct {
	pool     *pgxpool.Pool
	slotRepo *SlotRepository
}

// NewBattlerPersistenceService создаёт новый сервис.
func NewBattlerPersistenceService(pool *pgxpool.Pool, slotRepo *SlotRepository) *BattlerPersistenceService {
	return &BattlerPersistenceService{pool: pool, slotRepo: slotRepo}
}

// SaveAll saves the slot snapshots of every battler in a single transaction.
// Either all battlers are saved or none.
func (s *BattlerPersistenceService) SaveAll(ctx context.Context, snapshots map[uint32][]skill.SlotState) error {
	if len(snapshots) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "error", err)
		}
	}()

	// Stable order keeps lock acquisition consistent between concurrent savers.
	ids := make([]uint32, 0, len(snapshots))
	for id := range snapshots {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if err := s.slotRepo.SaveTx(ctx, tx, int64(id), snapshots[id]); err != nil {
			return fmt.Errorf("saving slots for battler %d: %w", id, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.Debug("battlers saved", "count", len(ids))
	return nil
}

// LoadAll loads the slot states of the given battlers. Battlers without
// saved rows are absent from the result.
func (s *BattlerPersistenceService) LoadAll(ctx context.Context, battlerIDs []uint32) (map[uint32][]skill.SlotState, error) {
	result := make(map[uint32][]skill.SlotState, len(battlerIDs))
	for _, id := range battlerIDs {
		states, err := s.slotRepo.LoadByBattlerID(ctx, int64(id))
		if err != nil {
			return nil, fmt.Errorf("loading slots for battler %d: %w", id, err)
		}
		if len(states) > 0 {
			result[id] = states
		}
	}
	return result, nil
}
