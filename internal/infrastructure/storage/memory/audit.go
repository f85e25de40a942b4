package memory

import (
	"context"
	"sync"

	"devinventory/internal/core/id"
	"devinventory/internal/domain/audit"
)

// AuditRecorder keeps the journal in a slice.
type AuditRecorder struct {
	mu      sync.RWMutex
	entries []audit.Entry
}

var _ audit.Recorder = (*AuditRecorder)(nil)

// NewAuditRecorder creates an empty journal.
func NewAuditRecorder() *AuditRecorder {
	return &AuditRecorder{}
}

// Record implements audit.Recorder.
func (r *AuditRecorder) Record(ctx context.Context, entityType string, entityID id.ID, action audit.Action, changes map[string]any) error {
	e, err := audit.NewEntry(ctx, entityType, entityID, action, changes)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.entries = append(r.entries, e)
	r.mu.Unlock()
	return nil
}

// History implements audit.Recorder, newest first.
func (r *AuditRecorder) History(ctx context.Context, entityType string, entityID id.ID, limit int) ([]audit.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []audit.Entry
	for i := len(r.entries) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		e := r.entries[i]
		if e.EntityType == entityType && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}
