package event

import (
	"context"
	"time"
)

type Type string

const (
	TypeProposalCreated  Type = "PROPOSAL_CREATED"
	TypeProposalModified Type = "PROPOSAL_MODIFIED"
	TypeProposalDeleted  Type = "PROPOSAL_DELETED"
	TypeProposalSent     Type = "PROPOSAL_SENT"
	TypeDecisionCreated  Type = "DECISION_CREATED"
	TypeDecisionDeleted  Type = "DECISION_DELETED"
	TypeStagePromoted    Type = "STAGE_PROMOTED"
)

// Event is one lifecycle notification handed to the Notification Router.
// Delivery ordering and read/unread bookkeeping are the router's problem;
// the engine only guarantees at-least-once emission in commit order.
type Event struct {
	Type       Type      `json:"event_type"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	ProjectID  string    `json:"project_id"`
	ActorID    string    `json:"actor_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher fans events out to the external router. Implementations must not
// fail the calling operation: a broken transport is logged, never propagated.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}
