package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/skirmish/internal/game/skill"
)

// SlotRepository управляет состоянием слотов действий в БД.
// Cooldown хранится как оставшиеся тики, не как deadline.
type SlotRepository struct {
	db *pgxpool.Pool
}

// NewSlotRepository создаёт новый SlotRepository.
func NewSlotRepository(db *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{db: db}
}

// LoadByBattlerID загружает все слоты battler'а.
func (r *SlotRepository) LoadByBattlerID(ctx context.Context, battlerID int64) ([]skill.SlotState, error) {
	query := `
		SELECT slot_key, action_id, combo_action_id,
		       cooldown_remaining, cooldown_base, combo_window_remaining, locked
		FROM battler_action_slots
		WHERE battler_id = $1
		ORDER BY slot_key
	`

	rows, err := r.db.Query(ctx, query, battlerID)
	if err != nil {
		return nil, fmt.Errorf("querying slots for battler %d: %w", battlerID, err)
	}
	defer rows.Close()

	states := make([]skill.SlotState, 0, skill.SlotCount)
	for rows.Next() {
		var (
			key               int16
			actionID, comboID int32
			st                skill.SlotState
		)
		if err := rows.Scan(&key, &actionID, &comboID,
			&st.CooldownRemaining, &st.CooldownBase, &st.ComboWindow, &st.Locked); err != nil {
			return nil, fmt.Errorf("scanning slot row: %w", err)
		}
		st.Key = skill.SlotKey(key)
		st.ActionID = skill.ActionID(actionID)
		st.ComboID = skill.ActionID(comboID)
		states = append(states, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slot rows: %w", err)
	}

	return states, nil
}

// SaveTx сохраняет все слоты battler'а внутри существующей транзакции (полная перезапись).
func (r *SlotRepository) SaveTx(ctx context.Context, tx pgx.Tx, battlerID int64, states []skill.SlotState) error {
	if _, err := tx.Exec(ctx, `DELETE FROM battler_action_slots WHERE battler_id = $1`, battlerID); err != nil {
		return fmt.Errorf("deleting existing slots: %w", err)
	}

	for _, st := range states {
		if !st.Key.Valid() {
			continue
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO battler_action_slots
			   (battler_id, slot_key, action_id, combo_action_id,
			    cooldown_remaining, cooldown_base, combo_window_remaining, locked)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			battlerID, int16(st.Key), int32(st.ActionID), int32(st.ComboID),
			max(st.CooldownRemaining, 0), max(st.CooldownBase, 0), max(st.ComboWindow, 0), st.Locked,
		); err != nil {
			return fmt.Errorf("inserting slot %s: %w", st.Key, err)
		}
	}

	return nil
}

// Save сохраняет слоты battler'а в отдельной транзакции.
func (r *SlotRepository) Save(ctx context.Context, battlerID int64, states []skill.SlotState) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("slot rollback failed", "battlerID", battlerID, "error", err)
		}
	}()

	if err := r.SaveTx(ctx, tx, battlerID, states); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing slots save: %w", err)
	}

	return nil
}
