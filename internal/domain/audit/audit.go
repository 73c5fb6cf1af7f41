// Package audit defines the recording contract for document activity.
// Orders and invoices are append-only; the audit trail captures every
// state-changing action with a compressed payload for later inspection.
package audit

import (
	"context"
	"time"

	"salesledger/internal/core/id"
)

// Action identifies what happened to a document.
type Action string

const (
	ActionCreate        Action = "create"
	ActionRecordPayment Action = "record_payment"
)

// Entry is a single audit record.
type Entry struct {
	ID        id.ID          `db:"id" json:"id"`
	Entity    string         `db:"entity" json:"entity"`
	EntityID  id.ID          `db:"entity_id" json:"entityId"`
	Action    Action         `db:"action" json:"action"`
	ActorID   string         `db:"actor_id" json:"actorId,omitempty"`
	Payload   map[string]any `db:"-" json:"payload,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
}

// Recorder persists audit entries. Implementations must not fail the
// calling operation: recording is best-effort and errors are logged,
// not returned to the document services.
type Recorder interface {
	Record(ctx context.Context, entity string, entityID id.ID, action Action, payload map[string]any)
}

// NopRecorder discards all entries. Used in tests and tools that do not
// need a trail.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, string, id.ID, Action, map[string]any) {}
