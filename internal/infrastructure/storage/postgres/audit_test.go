package postgres

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devinventory/internal/core/id"
	"devinventory/internal/domain/audit"
)

func TestAuditService_CompressesLargeChanges(t *testing.T) {
	svc, err := NewAuditService(nil, 64)
	require.NoError(t, err)

	small, err := audit.NewEntry(context.Background(), "device", id.New(), audit.ActionUpdate,
		map[string]any{"lokasi": "A"})
	require.NoError(t, err)
	row := svc.encode(small)
	assert.Equal(t, CompressionNone, row.CompressionAlgo)
	assert.Nil(t, row.ChangesCompressed)

	large, err := audit.NewEntry(context.Background(), "device", id.New(), audit.ActionUpdate,
		map[string]any{"spesifikasi": strings.Repeat("Intel Core i7, 16GB RAM, ", 20)})
	require.NoError(t, err)
	row = svc.encode(large)
	assert.Equal(t, CompressionZstd, row.CompressionAlgo)
	assert.Nil(t, row.Changes)
	assert.Less(t, len(row.ChangesCompressed), len(large.Changes))

	decoded, err := svc.decode(row)
	require.NoError(t, err)
	assert.JSONEq(t, string(large.Changes), string(decoded.Changes))
}

func TestHistoryQuery(t *testing.T) {
	entityID := id.New()

	sql, args, err := historyQuery("device", entityID, 20).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, entity_type, entity_id, action, user_id, user_email, changes, changes_compressed, "+
		"compression_algo, created_at FROM sys_audit WHERE entity_id = $1 AND entity_type = $2 "+
		"ORDER BY created_at DESC, id DESC LIMIT 20", sql)
	assert.Equal(t, []any{entityID, "device"}, args)
}
