// Package audit defines the change journal for inventory records.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"devinventory/internal/core/id"
)

// Action represents the type of audited operation.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entry is a single journal record.
type Entry struct {
	ID         id.ID           `db:"id" json:"id"`
	EntityType string          `db:"entity_type" json:"entityType"`
	EntityID   id.ID           `db:"entity_id" json:"entityId"`
	Action     Action          `db:"action" json:"action"`
	UserID     string          `db:"user_id" json:"userId,omitempty"`
	UserEmail  string          `db:"user_email" json:"userEmail,omitempty"`
	Changes    json.RawMessage `db:"changes" json:"changes,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`
}

// Recorder writes and reads the journal.
// Record joins the transaction carried by ctx when the implementation supports one.
type Recorder interface {
	Record(ctx context.Context, entityType string, entityID id.ID, action Action, changes map[string]any) error
	History(ctx context.Context, entityType string, entityID id.ID, limit int) ([]Entry, error)
}

// Diff calculates the difference between old and new entity states.
// Each changed key maps to {"old": ..., "new": ...}.
func Diff(oldState, newState map[string]any) map[string]any {
	changes := make(map[string]any)

	for key, newVal := range newState {
		oldVal, exists := oldState[key]
		if !exists {
			changes[key] = map[string]any{"old": nil, "new": newVal}
		} else if !equal(oldVal, newVal) {
			changes[key] = map[string]any{"old": oldVal, "new": newVal}
		}
	}

	for key, oldVal := range oldState {
		if _, exists := newState[key]; !exists {
			changes[key] = map[string]any{"old": oldVal, "new": nil}
		}
	}

	return changes
}

// equal compares snapshot values by their printed form.
// Snapshots hold scalars only, so this is exact enough.
func equal(a, b any) bool {
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

// NewEntry fills ID, timestamp and user fields of a journal entry from ctx.
func NewEntry(ctx context.Context, entityType string, entityID id.ID, action Action, changes map[string]any) (Entry, error) {
	raw, err := json.Marshal(changes)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal changes: %w", err)
	}

	e := Entry{
		ID:         id.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Changes:    raw,
		CreatedAt:  time.Now().UTC(),
	}
	e.UserID, e.UserEmail = currentUser(ctx)
	return e, nil
}

// NopRecorder discards entries.
type NopRecorder struct{}

// Record implements Recorder.
func (NopRecorder) Record(context.Context, string, id.ID, Action, map[string]any) error { return nil }

// History implements Recorder.
func (NopRecorder) History(context.Context, string, id.ID, int) ([]Entry, error) { return nil, nil }
