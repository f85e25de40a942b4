package audit

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "devinventory/internal/core/context"
	"devinventory/internal/core/entity"
	"devinventory/internal/core/id"
)

func TestDiff(t *testing.T) {
	oldState := map[string]any{"lokasi": "Gudang", "merk": "Dell", "type": "P2419"}
	newState := map[string]any{"lokasi": "Lantai 2", "merk": "Dell", "kondisi": "Baik"}

	changes := Diff(oldState, newState)

	assert.Len(t, changes, 3)
	assert.Equal(t, map[string]any{"old": "Gudang", "new": "Lantai 2"}, changes["lokasi"])
	assert.Equal(t, map[string]any{"old": nil, "new": "Baik"}, changes["kondisi"])
	assert.Equal(t, map[string]any{"old": "P2419", "new": nil}, changes["type"])
	assert.NotContains(t, changes, "merk")
}

func TestDiff_NoChanges(t *testing.T) {
	state := map[string]any{"garansi": true, "nilai_aset": "1500000"}
	assert.Empty(t, Diff(state, state))
}

func TestNewEntry_TakesUserFromContext(t *testing.T) {
	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{UserID: "u-1", Email: "ops@example.com"})
	entityID := id.New()

	e, err := NewEntry(ctx, "device", entityID, ActionCreate, map[string]any{"kode_id": "INV-01-001-24"})
	require.NoError(t, err)

	assert.False(t, id.IsNil(e.ID))
	assert.Equal(t, "u-1", e.UserID)
	assert.Equal(t, "ops@example.com", e.UserEmail)
	assert.Equal(t, entityID, e.EntityID)

	var changes map[string]string
	require.NoError(t, json.Unmarshal(e.Changes, &changes))
	assert.Equal(t, "INV-01-001-24", changes["kode_id"])
}

func TestEnrichCreatedBy(t *testing.T) {
	rec := entity.NewBaseRecord()

	EnrichCreatedBy(context.Background(), &rec)
	assert.Empty(t, rec.CreatedBy)

	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{UserID: "u-7"})
	EnrichCreatedBy(ctx, &rec)
	assert.Equal(t, "u-7", rec.CreatedBy)
	assert.Equal(t, "u-7", rec.UpdatedBy)

	ctx = appctx.WithUser(context.Background(), &appctx.UserContext{UserID: "u-8"})
	EnrichUpdatedBy(ctx, &rec)
	assert.Equal(t, "u-7", rec.CreatedBy)
	assert.Equal(t, "u-8", rec.UpdatedBy)
}
