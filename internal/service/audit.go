package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/inventory-service/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/repository"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/mq"
	"github.com/tuanvumaihuynh/inventory-service/pkg/mqheader"
)

type AuditLog interface {
	// Append records operation with a snapshot of the affected entity.
	// Failures are logged and never surface to the caller.
	Append(ctx context.Context, operation string, snapshot any)
	List(ctx context.Context, page model.PageParams) ([]model.LogEntry, int, error)
}

type auditLog struct {
	logEntryRepo repository.LogEntryRepository
	producer     mq.Producer
	topic        string
	logger       *slog.Logger
}

// NewAuditLog creates the audit log. producer may be nil, in which case entries
// are only written to the database.
func NewAuditLog(
	logEntryRepo repository.LogEntryRepository,
	producer mq.Producer,
	topic string,
	logger *slog.Logger,
) AuditLog {
	return &auditLog{
		logEntryRepo: logEntryRepo,
		producer:     producer,
		topic:        topic,
		logger:       logger.With(slog.String("service", "audit-log")),
	}
}

func (a *auditLog) Append(ctx context.Context, operation string, snapshot any) {
	entry, err := newLogEntry(operation, snapshot)
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to build audit entry",
			slog.String("operation", operation),
			slog.Any("error", err),
		)
		return
	}

	if err := a.logEntryRepo.CreateLogEntry(ctx, entry); err != nil {
		a.logger.ErrorContext(ctx, "Failed to save audit entry",
			slog.String("operation", operation),
			slog.Any("error", err),
		)
		return
	}

	if a.producer == nil {
		return
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		a.logger.WarnContext(ctx, "Failed to marshal audit entry for publishing", slog.Any("error", err))
		return
	}
	if err := a.producer.Produce(ctx, mq.ProduceMsg{
		Topic:        a.topic,
		Headers:      mqheader.BuildHeaders(ctx),
		Payload:      payload,
		PartitionKey: &entry.Operation,
	}); err != nil {
		a.logger.WarnContext(ctx, "Failed to publish audit entry",
			slog.String("operation", operation),
			slog.String("log_entry_id", entry.ID.String()),
			slog.Any("error", err),
		)
	}
}

func (a *auditLog) List(ctx context.Context, page model.PageParams) ([]model.LogEntry, int, error) {
	if !page.Valid() {
		return nil, 0, apperr.InvalidPaginationErr
	}

	entries, total, err := a.logEntryRepo.ListLogEntries(ctx, repository.ListParams{
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("log entry repository list log entries: %w", err)
	}

	return entries, total, nil
}

func newLogEntry(operation string, snapshot any) (model.LogEntry, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return model.LogEntry{}, fmt.Errorf("marshal snapshot: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.LogEntry{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	return model.LogEntry{
		ID:        id,
		Operation: operation,
		Data:      data,
		CreatedAt: time.Now(),
	}, nil
}
