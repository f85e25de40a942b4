package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/klauspost/compress/zstd"

	"devinventory/internal/core/id"
	"devinventory/internal/domain/audit"
)

// CompressionAlgo specifies how sys_audit.changes is stored.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// DefaultCompressThreshold is the change-set size above which entries are zstd-compressed.
const DefaultCompressThreshold = 10 * 1024

const auditTable = "sys_audit"

// auditRow is the sys_audit row layout.
type auditRow struct {
	audit.Entry
	ChangesCompressed []byte          `db:"changes_compressed"`
	CompressionAlgo   CompressionAlgo `db:"compression_algo"`
}

// AuditService stores the journal in sys_audit.
// Large change sets are compressed with zstd.
type AuditService struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

var _ audit.Recorder = (*AuditService)(nil)

// NewAuditService creates a new audit service. threshold <= 0 uses DefaultCompressThreshold.
func NewAuditService(txManager *TxManager, threshold int) (*AuditService, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	if threshold <= 0 {
		threshold = DefaultCompressThreshold
	}

	return &AuditService{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: threshold,
	}, nil
}

// Record implements audit.Recorder. It joins the transaction carried by ctx.
func (s *AuditService) Record(ctx context.Context, entityType string, entityID id.ID, action audit.Action, changes map[string]any) error {
	entry, err := audit.NewEntry(ctx, entityType, entityID, action, changes)
	if err != nil {
		return err
	}

	row := s.encode(entry)

	sql, args, err := builder().
		Insert(auditTable).
		Columns("id", "entity_type", "entity_id", "action", "user_id", "user_email",
			"changes", "changes_compressed", "compression_algo", "created_at").
		Values(row.ID, row.EntityType, row.EntityID, row.Action, row.UserID, row.UserEmail,
			[]byte(row.Changes), row.ChangesCompressed, row.CompressionAlgo, row.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build audit insert: %w", err)
	}

	if _, err := s.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// encode moves changes above the threshold into the compressed column.
func (s *AuditService) encode(e audit.Entry) auditRow {
	row := auditRow{Entry: e, CompressionAlgo: CompressionNone}
	if len(e.Changes) > s.compressThreshold {
		row.ChangesCompressed = s.encoder.EncodeAll(e.Changes, nil)
		row.Changes = nil
		row.CompressionAlgo = CompressionZstd
	}
	return row
}

func (s *AuditService) decode(row auditRow) (audit.Entry, error) {
	e := row.Entry
	if row.CompressionAlgo == CompressionZstd && len(row.ChangesCompressed) > 0 {
		raw, err := s.decoder.DecodeAll(row.ChangesCompressed, nil)
		if err != nil {
			return e, fmt.Errorf("decompress changes: %w", err)
		}
		e.Changes = raw
	}
	return e, nil
}

// History implements audit.Recorder, newest first.
func (s *AuditService) History(ctx context.Context, entityType string, entityID id.ID, limit int) ([]audit.Entry, error) {
	sql, args, err := historyQuery(entityType, entityID, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build history query: %w", err)
	}

	rows, err := s.txManager.GetQuerier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var row auditRow
		var changes []byte
		if err := rows.Scan(
			&row.ID, &row.EntityType, &row.EntityID, &row.Action, &row.UserID, &row.UserEmail,
			&changes, &row.ChangesCompressed, &row.CompressionAlgo, &row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		row.Changes = changes

		e, err := s.decode(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func historyQuery(entityType string, entityID id.ID, limit int) squirrel.SelectBuilder {
	q := builder().
		Select("id", "entity_type", "entity_id", "action", "user_id", "user_email",
			"changes", "changes_compressed", "compression_algo", "created_at").
		From(auditTable).
		Where(squirrel.Eq{"entity_type": entityType, "entity_id": entityID}).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	return q
}

// builder returns a squirrel builder with PostgreSQL placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
