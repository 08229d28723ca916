package zerror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-service/pkg/zerror"
)

func TestZError(t *testing.T) {
	base := zerror.NewNotFound("PRODUCT_NOT_FOUND", "product not found")

	t.Run("Should format without parent", func(t *testing.T) {
		assert.Equal(t, "Code=PRODUCT_NOT_FOUND, Msg=product not found", base.Error())
	})

	t.Run("Should unwrap parent through fmt wrapping", func(t *testing.T) {
		parent := errors.New("no rows")
		err := fmt.Errorf("get product: %w", base.WrapParent(parent))

		var zErr zerror.ZError
		require.True(t, errors.As(err, &zErr))
		assert.Equal(t, zerror.StatusNotFound, zErr.Status())
		assert.Equal(t, "PRODUCT_NOT_FOUND", zErr.Code())
		assert.ErrorIs(t, err, parent)
	})

	t.Run("Should replace message without touching the predefined error", func(t *testing.T) {
		custom := base.WithMsg("missing")
		assert.Equal(t, "missing", custom.Msg())
		assert.Equal(t, "product not found", base.Msg())
	})

	t.Run("Should ignore nil parent", func(t *testing.T) {
		assert.Nil(t, base.WrapParent(nil).Parent())
	})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "PAYLOAD_TOO_LARGE", zerror.StatusPayloadTooLarge.String())
	assert.Equal(t, "UNKNOWN", zerror.Status(200).String())
}
