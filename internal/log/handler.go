package log

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/inventory-service/internal/session"
	"github.com/tuanvumaihuynh/inventory-service/pkg/correlationid"
)

var _ slog.Handler = (*requestHandler)(nil)

// requestHandler stamps every record with the request identity found in ctx:
// correlation id, authenticated user and the active span.
type requestHandler struct {
	next slog.Handler
}

func wrap(next slog.Handler) requestHandler {
	return requestHandler{next: next}
}

func (h requestHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h requestHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(requestAttrs(ctx)...)
	return h.next.Handle(ctx, r)
}

func (h requestHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return wrap(h.next.WithAttrs(attrs))
}

func (h requestHandler) WithGroup(name string) slog.Handler {
	return wrap(h.next.WithGroup(name))
}

func requestAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr

	if id, ok := correlationid.FromContext(ctx); ok {
		attrs = append(attrs, slog.String("correlation_id", id))
	}
	if userID, ok := session.UserIDFromContext(ctx); ok {
		attrs = append(attrs, slog.String("user_id", userID.String()))
	}
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		attrs = append(attrs,
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	return attrs
}
