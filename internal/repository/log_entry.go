package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/db"
)

type LogEntryRepository interface {
	WithDB(db db.DB) LogEntryRepository
	CreateLogEntry(ctx context.Context, entry model.LogEntry) error
	ListLogEntries(ctx context.Context, params ListParams) ([]model.LogEntry, int, error)
}

type logEntryRepository struct {
	db db.DB
}

func NewLogEntryRepository(db db.DB) LogEntryRepository {
	return &logEntryRepository{
		db: db,
	}
}

func (r logEntryRepository) WithDB(db db.DB) LogEntryRepository {
	return &logEntryRepository{
		db: db,
	}
}

func (r logEntryRepository) CreateLogEntry(ctx context.Context, entry model.LogEntry) error {
	if _, err := r.db.Exec(ctx, `
		INSERT INTO audit_logs (id, operation, data, created_at)
		VALUES (@id, @operation, @data, @created_at)
	`, pgx.NamedArgs{
		"id":         entry.ID,
		"operation":  entry.Operation,
		"data":       entry.Data,
		"created_at": entry.CreatedAt,
	}); err != nil {
		return translateErr("create log entry", err)
	}

	return nil
}

func (r logEntryRepository) ListLogEntries(ctx context.Context, params ListParams) ([]model.LogEntry, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs`).Scan(&total); err != nil {
		return nil, 0, translateErr("count log entries", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, operation, data, created_at
		FROM audit_logs
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, translateErr("list log entries", err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.LogEntry, error) {
		var e model.LogEntry
		err := row.Scan(&e.ID, &e.Operation, &e.Data, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, 0, translateErr("list log entries", err)
	}

	return entries, total, nil
}
