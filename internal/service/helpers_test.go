package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/repository/memrepo"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/mq"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/upload"
	"github.com/tuanvumaihuynh/inventory-service/pkg/zerror"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeImages accepts every image and records what was stored and discarded.
type fakeImages struct {
	mu        sync.Mutex
	stored    []string
	discarded []string
	err       error
}

func (f *fakeImages) AcceptBatch(_ context.Context, baseURL string, imgs []upload.Image) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	urls := make([]string, 0, len(imgs))
	for _, img := range imgs {
		urls = append(urls, baseURL+"/uploads/"+img.Filename)
	}
	f.stored = append(f.stored, urls...)
	return urls, nil
}

func (f *fakeImages) Discard(_ context.Context, urls []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.discarded = append(f.discarded, urls...)
}

func pngImage(name string) upload.Image {
	return upload.Image{Filename: name, ContentType: "image/png", Content: strings.NewReader("png")}
}

type fakeProducer struct {
	mu   sync.Mutex
	msgs []mq.ProduceMsg
	err  error
}

func (p *fakeProducer) Produce(_ context.Context, msg mq.ProduceMsg) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, msg)
	return nil
}

var errBoom = errors.New("boom")

// decodeSnapshot unmarshals the data of a log entry into T.
func decodeSnapshot[T any](t *testing.T, entry model.LogEntry) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(entry.Data, &v))
	return v
}

func newTestAudit(entries *memrepo.LogEntries) AuditLog {
	return NewAuditLog(entries, nil, "", discardLogger())
}

// requireCode asserts that err carries the given application error code.
func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var zerr zerror.ZError
	require.ErrorAs(t, err, &zerr)
	require.Equal(t, code, zerr.Code())
}
