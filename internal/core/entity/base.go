// Package entity holds the fields and behaviors shared by stored records.
package entity

import (
	"context"
	"time"

	"devinventory/internal/core/id"
)

// Validatable is implemented by entities that check their own invariants.
// Validate must not touch storage; cross-entity checks belong to services.
type Validatable interface {
	Validate(ctx context.Context) error
}

// BaseEntity is the key and optimistic lock version of a row.
type BaseEntity struct {
	ID id.ID `db:"id" json:"id"`

	// Version is bumped by every successful update; an update carrying a stale
	// version fails with CONCURRENT_MODIFICATION.
	Version int `db:"version" json:"version"`
}

// NewBaseEntity returns a BaseEntity with a fresh UUIDv7 at version 1.
func NewBaseEntity() BaseEntity {
	return BaseEntity{ID: id.New(), Version: 1}
}

// GetID returns the entity ID.
func (b *BaseEntity) GetID() id.ID { return b.ID }

// GetVersion returns the optimistic lock version.
func (b *BaseEntity) GetVersion() int { return b.Version }

// SetVersion is called by repositories after a successful update.
func (b *BaseEntity) SetVersion(v int) { b.Version = v }

// BaseRecord adds who/when columns to BaseEntity.
type BaseRecord struct {
	BaseEntity

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	CreatedBy string    `db:"created_by" json:"createdBy,omitempty"`
	UpdatedBy string    `db:"updated_by" json:"updatedBy,omitempty"`
}

// NewBaseRecord returns a BaseRecord stamped with the current UTC time.
func NewBaseRecord() BaseRecord {
	now := time.Now().UTC()
	return BaseRecord{
		BaseEntity: NewBaseEntity(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Touch sets UpdatedAt to now.
func (b *BaseRecord) Touch() {
	b.UpdatedAt = time.Now().UTC()
}

// SetCreatedBy records the creating user (audit.EnrichCreatedBy).
func (b *BaseRecord) SetCreatedBy(userID string) {
	b.CreatedBy = userID
}

// SetUpdatedBy records the updating user (audit.EnrichUpdatedBy).
func (b *BaseRecord) SetUpdatedBy(userID string) {
	b.UpdatedBy = userID
}
