package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the lost & found service.
const (
	TopicItemCreated   = "item.created"
	TopicItemClaimed   = "item.claimed"
	TopicItemDelivered = "item.delivered"
)

// ItemCreatedEvent is published after a new Item is persisted.
type ItemCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	ItemID     uuid.UUID `json:"item_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Location   string    `json:"location"`
	Image      string    `json:"image"`
	AddedBy    string    `json:"added_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemClaimedEvent is published in the same transaction as the conditional
// claim update — delivery implies the claim actually won.
type ItemClaimedEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	Version     int       `json:"version"`
	ItemID      uuid.UUID `json:"item_id"`
	Name        string    `json:"name"`
	StudentName string    `json:"student_name"`
	RollNumber  string    `json:"roll_number"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ItemDeliveredEvent is published when a claimed item is handed over.
type ItemDeliveredEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     uuid.UUID `json:"item_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}
