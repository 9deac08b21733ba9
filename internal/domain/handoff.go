package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Handoff is the typed payload carried from the page that resolved a
// Pokemon to the page that renders it. Sequence is only set when the
// chain was resolved before the redirect.
type Handoff struct {
	Pokemon     *Pokemon          `json:"pokemon"`
	Sequence    EvolutionSequence `json:"sequence,omitempty"`
	PublishedAt time.Time         `json:"publishedAt"`
}

// HandoffSlot is the stored row for one session. SlotKey is a digest of
// the session id.
type HandoffSlot struct {
	SlotKey     string         `json:"-" gorm:"primaryKey"`
	Pokemon     datatypes.JSON `json:"pokemon" gorm:"type:jsonb;not null"`
	Sequence    datatypes.JSON `json:"sequence" gorm:"type:jsonb"`
	PublishedAt time.Time      `json:"publishedAt" gorm:"not null;index"`
}
