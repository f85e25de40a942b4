package device_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devinventory/internal/core/apperror"
	"devinventory/internal/core/id"
	"devinventory/internal/domain/device"
)

func TestPrefixQuery_EscapesWildcards(t *testing.T) {
	sql, args, err := prefixQuery("INV-01-").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT kode_id, tanggal_beli FROM devices WHERE kode_id LIKE $1", sql)
	assert.Equal(t, []any{"INV-01-%"}, args)

	_, args, err = prefixQuery("INV_1%").ToSql()
	require.NoError(t, err)
	assert.Equal(t, []any{`INV\_1\%%`}, args)
}

func TestListQuery(t *testing.T) {
	f := device.ListFilter{Condition: "Baik", Division: "all", OrderBy: "tanggal_beli", Limit: 10, Offset: 20}.Normalized()

	q, err := listQuery([]string{"id", "kode_id"}, f)
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, kode_id FROM devices WHERE kondisi = $1 ORDER BY tanggal_beli ASC, id ASC LIMIT 10 OFFSET 20",
		sql)
	assert.Equal(t, []any{"Baik"}, args)
}

func TestListQuery_DefaultOrderNewestFirst(t *testing.T) {
	q, err := listQuery([]string{"id"}, device.ListFilter{}.Normalized())
	require.NoError(t, err)

	sql, _, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM devices ORDER BY created_at DESC, id DESC", sql)
}

func TestListQuery_RejectsUnknownOrder(t *testing.T) {
	_, err := listQuery([]string{"id"}, device.ListFilter{OrderBy: "gambar"}.Normalized())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestApplyFilter_SearchSpansColumns(t *testing.T) {
	f := device.ListFilter{Search: "thinkpad"}.Normalized()

	sql, args, err := applyFilter(builder().Select("id").From(tableName), f).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "kode_id ILIKE $1 OR jenis_barang ILIKE $2")
	assert.Len(t, args, len(device.SearchColumns))
	for _, a := range args {
		assert.Equal(t, "%thinkpad%", a)
	}
}

func TestSummaryQuery(t *testing.T) {
	sql, args, err := summaryQuery(device.ListFilter{Status: "Aktif"}.Normalized()).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT kondisi, COUNT(*), COALESCE(SUM(nilai_aset), 0) FROM devices WHERE status = $1 GROUP BY kondisi",
		sql)
	assert.Equal(t, []any{"Aktif"}, args)
}

func TestDistinctQuery(t *testing.T) {
	sql, args, err := distinctQuery(device.FieldBrand).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT DISTINCT merk FROM devices WHERE merk <> $1 ORDER BY merk", sql)
	assert.Equal(t, []any{""}, args)
}

func TestUpdateQuery_KeepsImmutableColumns(t *testing.T) {
	d := device.New()
	d.ID = id.New()
	d.Version = 4
	d.KodeID = "INV-01-001-24"

	sql, args, err := updateQuery(d).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "kode_id =")
	assert.NotContains(t, sql, "created_at =")
	assert.Contains(t, sql, "version = version + 1 WHERE id = $")
	assert.Equal(t, 4, args[len(args)-1])
}
