package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dom/pokedex-web/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type handoffRepository struct {
	db *gorm.DB
}

func NewHandoffRepository(db *gorm.DB) *handoffRepository {
	return &handoffRepository{db: db}
}

func (r *handoffRepository) Save(ctx context.Context, slotKey string, handoff *domain.Handoff) error {
	pokemonJSON, err := json.Marshal(handoff.Pokemon)
	if err != nil {
		return fmt.Errorf("encoding pokemon: %w", err)
	}

	slot := &domain.HandoffSlot{
		SlotKey:     slotKey,
		Pokemon:     datatypes.JSON(pokemonJSON),
		PublishedAt: handoff.PublishedAt,
	}
	if handoff.Sequence != nil {
		seqJSON, err := json.Marshal(handoff.Sequence)
		if err != nil {
			return fmt.Errorf("encoding sequence: %w", err)
		}
		slot.Sequence = datatypes.JSON(seqJSON)
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		UpdateAll: true,
	}).Create(slot).Error
}

func (r *handoffRepository) Take(ctx context.Context, slotKey string) (*domain.Handoff, error) {
	var slot domain.HandoffSlot
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&slot, "slot_key = ?", slotKey).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.HandoffSlot{}, "slot_key = ?", slotKey).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoHandoff
		}
		return nil, err
	}

	return slotToHandoff(&slot)
}

func slotToHandoff(slot *domain.HandoffSlot) (*domain.Handoff, error) {
	h := &domain.Handoff{PublishedAt: slot.PublishedAt}
	if err := json.Unmarshal(slot.Pokemon, &h.Pokemon); err != nil {
		return nil, fmt.Errorf("decoding pokemon: %w", err)
	}
	if len(slot.Sequence) > 0 && string(slot.Sequence) != "null" {
		if err := json.Unmarshal(slot.Sequence, &h.Sequence); err != nil {
			return nil, fmt.Errorf("decoding sequence: %w", err)
		}
	}
	return h, nil
}

// DeleteStale removes slots that were published but never consumed.
func (r *handoffRepository) DeleteStale(ctx context.Context, olderThan time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("published_at < ?", olderThan).Delete(&domain.HandoffSlot{})
	return res.RowsAffected, res.Error
}
