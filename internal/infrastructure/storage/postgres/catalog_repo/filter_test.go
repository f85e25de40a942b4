package catalog_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devinventory/internal/core/apperror"
	"devinventory/internal/domain"
	"devinventory/internal/domain/filter"
)

func testRepo() *BaseCatalogRepo[any] {
	return NewBaseCatalogRepo[any](nil, "test_table", []string{"id", "code", "name"}, func() any { return nil })
}

func TestApplyAdvancedFilters_Operators(t *testing.T) {
	repo := testRepo()

	tests := []struct {
		name     string
		item     filter.Item
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "Greater",
			item:     filter.Item{Field: "code", Operator: filter.Greater, Value: "05"},
			wantSQL:  "SELECT id, code, name FROM test_table WHERE code > $1",
			wantArgs: []any{"05"},
		},
		{
			name:     "Less",
			item:     filter.Item{Field: "code", Operator: filter.Less, Value: "10"},
			wantSQL:  "SELECT id, code, name FROM test_table WHERE code < $1",
			wantArgs: []any{"10"},
		},
		{
			name:     "Contains escapes wildcards",
			item:     filter.Item{Field: "name", Operator: filter.Contains, Value: "50%"},
			wantSQL:  "SELECT id, code, name FROM test_table WHERE name ILIKE $1",
			wantArgs: []any{`%50\%%`},
		},
		{
			name:     "IsNull",
			item:     filter.Item{Field: "name", Operator: filter.IsNull},
			wantSQL:  "SELECT id, code, name FROM test_table WHERE name IS NULL",
			wantArgs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := repo.applyAdvancedFilters(repo.baseSelect(), []filter.Item{tt.item})
			require.NoError(t, err)

			sql, args, err := q.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

func TestApplyAdvancedFilters_RejectsUnknownColumn(t *testing.T) {
	repo := testRepo()

	_, err := repo.applyAdvancedFilters(repo.baseSelect(), []filter.Item{
		{Field: "code; DROP TABLE x", Operator: filter.Equal, Value: 1},
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestFiltered_Search(t *testing.T) {
	repo := testRepo()

	q, err := repo.filtered(domain.ListFilter{Search: " lap "})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, code, name FROM test_table WHERE (name ILIKE $1 OR code ILIKE $2)", sql)
	assert.Equal(t, []any{"%lap%", "%lap%"}, args)
}

func TestParseOrderBy(t *testing.T) {
	repo := testRepo()

	got, err := repo.parseOrderBy("")
	require.NoError(t, err)
	assert.Equal(t, "code ASC", got)

	got, err = repo.parseOrderBy("-name")
	require.NoError(t, err)
	assert.Equal(t, "name DESC", got)

	_, err = repo.parseOrderBy("created_at")
	assert.Error(t, err)
}

func TestUpdateQuery_OptimisticLock(t *testing.T) {
	repo := testRepo()

	sql, args, err := repo.updateQuery(map[string]any{"name": "Laptop"}, "id-1", 3).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE test_table SET name = $1, version = version + 1 WHERE id = $2 AND version = $3", sql)
	assert.Equal(t, []any{"Laptop", "id-1", 3}, args)
}
