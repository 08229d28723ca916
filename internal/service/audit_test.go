package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-service/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/repository/memrepo"
	"github.com/tuanvumaihuynh/inventory-service/pkg/correlationid"
)

func TestAuditLog_Append(t *testing.T) {
	ctx := context.Background()

	t.Run("Should store the snapshot under the operation label", func(t *testing.T) {
		entries := memrepo.NewLogEntries()
		a := newTestAudit(entries)

		a.Append(ctx, model.OpAddSupplier, model.Supplier{Name: "Acme"})

		all := entries.All()
		require.Len(t, all, 1)
		assert.Equal(t, "Add Supplier", all[0].Operation)
		assert.Equal(t, "Acme", decodeSnapshot[model.Supplier](t, all[0]).Name)
	})

	t.Run("Should swallow storage failures", func(t *testing.T) {
		entries := memrepo.NewLogEntries()
		entries.Err = errBoom
		a := newTestAudit(entries)

		assert.NotPanics(t, func() { a.Append(ctx, model.OpAddProduct, model.Product{}) })
		assert.Empty(t, entries.All())
	})

	t.Run("Should swallow snapshots that cannot be encoded", func(t *testing.T) {
		entries := memrepo.NewLogEntries()
		a := newTestAudit(entries)

		a.Append(ctx, model.OpAddProduct, func() {})

		assert.Empty(t, entries.All())
	})

	t.Run("Should mirror saved entries to the producer", func(t *testing.T) {
		entries := memrepo.NewLogEntries()
		producer := &fakeProducer{}
		a := NewAuditLog(entries, producer, "inventory.audit", discardLogger())

		a.Append(correlationid.NewContext(ctx, "corr-1"), model.OpRemoveSupplier, model.Supplier{Name: "Acme"})

		require.Len(t, producer.msgs, 1)
		msg := producer.msgs[0]
		assert.Equal(t, "inventory.audit", msg.Topic)
		assert.Equal(t, "corr-1", msg.Headers[correlationid.Header])
		require.NotNil(t, msg.PartitionKey)
		assert.Equal(t, model.OpRemoveSupplier, *msg.PartitionKey)

		var published model.LogEntry
		require.NoError(t, json.Unmarshal(msg.Payload, &published))
		assert.Equal(t, entries.All()[0].ID, published.ID)
	})

	t.Run("Should keep the entry when publishing fails", func(t *testing.T) {
		entries := memrepo.NewLogEntries()
		a := NewAuditLog(entries, &fakeProducer{err: errBoom}, "inventory.audit", discardLogger())

		a.Append(ctx, model.OpAddSupplier, model.Supplier{})

		assert.Len(t, entries.All(), 1)
	})

	t.Run("Should not publish entries that were not saved", func(t *testing.T) {
		entries := memrepo.NewLogEntries()
		entries.Err = errBoom
		producer := &fakeProducer{}
		a := NewAuditLog(entries, producer, "inventory.audit", discardLogger())

		a.Append(ctx, model.OpAddSupplier, model.Supplier{})

		assert.Empty(t, producer.msgs)
	})
}

func TestAuditLog_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Should list newest first with pagination", func(t *testing.T) {
		entries := memrepo.NewLogEntries()
		a := newTestAudit(entries)
		for _, op := range []string{model.OpAddProduct, model.OpUpdateProduct, model.OpRemoveProduct} {
			a.Append(ctx, op, map[string]string{"op": op})
		}

		got, total, err := a.List(ctx, model.PageParams{Page: 1, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, got, 2)
		assert.Equal(t, model.OpRemoveProduct, got[0].Operation)
		assert.Equal(t, model.OpUpdateProduct, got[1].Operation)

		got, _, err = a.List(ctx, model.PageParams{Page: 2, Limit: 2})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, model.OpAddProduct, got[0].Operation)
	})

	t.Run("Should reject invalid pages", func(t *testing.T) {
		a := newTestAudit(memrepo.NewLogEntries())

		_, _, err := a.List(ctx, model.PageParams{Page: 0, Limit: 10})
		assert.ErrorIs(t, err, apperr.InvalidPaginationErr)
	})
}
