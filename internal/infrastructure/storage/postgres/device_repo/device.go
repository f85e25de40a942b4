// Package device_repo provides the PostgreSQL implementation of device.Repository.
package device_repo

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"devinventory/internal/core/apperror"
	"devinventory/internal/core/id"
	"devinventory/internal/core/numerator"
	"devinventory/internal/core/types"
	"devinventory/internal/domain"
	"devinventory/internal/domain/device"
	"devinventory/internal/infrastructure/storage/postgres"
)

const tableName = "devices"

// Columns never rewritten by Update.
var immutableColumns = map[string]bool{
	"id":         true,
	"version":    true,
	"kode_id":    true,
	"created_at": true,
	"created_by": true,
}

// Repo implements device.Repository.
type Repo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

var _ device.Repository = (*Repo)(nil)

// New creates a device repository.
func New(txManager *postgres.TxManager) *Repo {
	return &Repo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[device.Device](),
	}
}

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *Repo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

func prefixQuery(prefix string) squirrel.SelectBuilder {
	return builder().
		Select("kode_id", "tanggal_beli").
		From(tableName).
		Where(squirrel.Like{"kode_id": postgres.EscapeLike(prefix) + "%"})
}

// ListByKodePrefix implements numerator.RecordStore.
// The LIKE prefix scan is served by the text_pattern_ops index on kode_id.
func (r *Repo) ListByKodePrefix(ctx context.Context, prefix string) ([]numerator.Record, error) {
	sql, args, err := prefixQuery(prefix).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build prefix query: %w", err)
	}

	rows, err := r.querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list by kode prefix: %w", err)
	}
	defer rows.Close()

	var records []numerator.Record
	for rows.Next() {
		var rec numerator.Record
		if err := rows.Scan(&rec.KodeID, &rec.PurchaseDate); err != nil {
			return nil, fmt.Errorf("scan kode record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Create implements device.Repository.
func (r *Repo) Create(ctx context.Context, d *device.Device) error {
	data := postgres.StructToMap(d)

	sql, args, err := builder().Insert(tableName).SetMap(data).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(fmt.Errorf("insert device: %w", err), tableName, d.KodeID)
	}
	return nil
}

func (r *Repo) findOne(ctx context.Context, where squirrel.Sqlizer, key string) (*device.Device, error) {
	sql, args, err := builder().
		Select(r.selectCols...).
		From(tableName).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var d device.Device
	if err := pgxscan.Get(ctx, r.querier(ctx), &d, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(tableName, key)
		}
		return nil, fmt.Errorf("get device: %w", err)
	}
	return &d, nil
}

// GetByID implements device.Repository.
func (r *Repo) GetByID(ctx context.Context, deviceID id.ID) (*device.Device, error) {
	return r.findOne(ctx, squirrel.Eq{"id": deviceID}, deviceID.String())
}

// GetByKodeID implements device.Repository.
func (r *Repo) GetByKodeID(ctx context.Context, kodeID string) (*device.Device, error) {
	return r.findOne(ctx, squirrel.Eq{"kode_id": kodeID}, kodeID)
}

func updateQuery(d *device.Device) squirrel.UpdateBuilder {
	data := postgres.StructToMap(d)
	for col := range immutableColumns {
		delete(data, col)
	}

	return builder().
		Update(tableName).
		SetMap(data).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": d.ID}).
		Where(squirrel.Eq{"version": d.Version})
}

// Update implements device.Repository.
func (r *Repo) Update(ctx context.Context, d *device.Device) error {
	sql, args, err := updateQuery(d).ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(fmt.Errorf("update device: %w", err), tableName, d.KodeID)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(tableName, d.ID)
	}

	d.Version++
	return nil
}

// Delete implements device.Repository.
func (r *Repo) Delete(ctx context.Context, deviceID id.ID) error {
	sql, args, err := builder().Delete(tableName).Where(squirrel.Eq{"id": deviceID}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete device: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(tableName, deviceID.String())
	}
	return nil
}

// applyFilter adds the WHERE clauses for f. f must be normalized.
func applyFilter(q squirrel.SelectBuilder, f device.ListFilter) squirrel.SelectBuilder {
	eq := f.Equalities()
	cols := make([]string, 0, len(eq))
	for col := range eq {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		q = q.Where(squirrel.Eq{col: eq[col]})
	}

	if f.Search != "" {
		pattern := "%" + postgres.EscapeLike(f.Search) + "%"
		or := make(squirrel.Or, 0, len(device.SearchColumns))
		for _, col := range device.SearchColumns {
			or = append(or, squirrel.ILike{col: pattern})
		}
		q = q.Where(or)
	}
	return q
}

func listQuery(selectCols []string, f device.ListFilter) (squirrel.SelectBuilder, error) {
	column, desc, err := device.ParseOrderBy(f.OrderBy)
	if err != nil {
		return squirrel.SelectBuilder{}, err
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}

	q := applyFilter(builder().Select(selectCols...).From(tableName), f).
		OrderBy(column+" "+direction, "id "+direction)

	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	return q, nil
}

// List implements device.Repository.
func (r *Repo) List(ctx context.Context, filter device.ListFilter) (domain.ListResult[*device.Device], error) {
	f := filter.Normalized()
	result := domain.ListResult[*device.Device]{
		Items:  make([]*device.Device, 0),
		Limit:  f.Limit,
		Offset: f.Offset,
	}

	countSQL, countArgs, err := applyFilter(builder().Select("COUNT(*)").From(tableName), f).ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}
	if err := r.querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count devices: %w", err)
	}

	q, err := listQuery(r.selectCols, f)
	if err != nil {
		return result, err
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, r.querier(ctx), &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list devices: %w", err)
	}
	return result, nil
}

func distinctQuery(field device.Field) squirrel.SelectBuilder {
	col := string(field)
	return builder().
		Select(col).
		Distinct().
		From(tableName).
		Where(squirrel.NotEq{col: ""}).
		OrderBy(col)
}

// DistinctValues implements device.Repository.
func (r *Repo) DistinctValues(ctx context.Context, field device.Field) ([]string, error) {
	if _, err := device.ParseField(string(field)); err != nil {
		return nil, err
	}

	sql, args, err := distinctQuery(field).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build distinct query: %w", err)
	}

	values := make([]string, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &values, sql, args...); err != nil {
		return nil, fmt.Errorf("distinct %s: %w", field, err)
	}
	return values, nil
}

func summaryQuery(f device.ListFilter) squirrel.SelectBuilder {
	return applyFilter(
		builder().
			Select("kondisi", "COUNT(*)", "COALESCE(SUM(nilai_aset), 0)").
			From(tableName),
		f,
	).GroupBy("kondisi")
}

// Summary implements device.Repository.
func (r *Repo) Summary(ctx context.Context, filter device.ListFilter) (device.Summary, error) {
	summary := device.NewSummary()

	sql, args, err := summaryQuery(filter.Normalized()).ToSql()
	if err != nil {
		return summary, fmt.Errorf("build summary query: %w", err)
	}

	rows, err := r.querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return summary, fmt.Errorf("summary: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			condition string
			count     int64
			value     types.Money
		)
		if err := rows.Scan(&condition, &count, &value); err != nil {
			return summary, fmt.Errorf("scan summary: %w", err)
		}
		summary.ByCondition[device.Condition(condition)] = count
		summary.Total += count
		summary.TotalAssetValue = summary.TotalAssetValue.Add(value)
	}
	return summary, rows.Err()
}
