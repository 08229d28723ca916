package mqheader_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/inventory-service/pkg/correlationid"
	"github.com/tuanvumaihuynh/inventory-service/pkg/mqheader"
)

func TestBuildHeaders(t *testing.T) {
	t.Run("Should carry correlation id", func(t *testing.T) {
		ctx := correlationid.NewContext(context.Background(), "abc-123")

		headers := mqheader.BuildHeaders(ctx)

		assert.Equal(t, "abc-123", headers[correlationid.Header])
	})

	t.Run("Should be empty without request data", func(t *testing.T) {
		headers := mqheader.BuildHeaders(context.Background())

		assert.NotContains(t, headers, correlationid.Header)
	})
}
