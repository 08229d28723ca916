package model_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/pkg/ptr"
)

func TestPageParams(t *testing.T) {
	t.Run("Should default missing values", func(t *testing.T) {
		p := model.NewPageParams(nil, nil)
		assert.Equal(t, model.PageParams{Page: 1, Limit: 10}, p)
		assert.True(t, p.Valid())
		assert.Equal(t, 0, p.Offset())
	})

	t.Run("Should reject non-positive values", func(t *testing.T) {
		assert.False(t, model.NewPageParams(ptr.New(0), nil).Valid())
		assert.False(t, model.NewPageParams(nil, ptr.New(-3)).Valid())
	})

	t.Run("Should reject pages whose offset overflows", func(t *testing.T) {
		assert.False(t, model.PageParams{Page: 3, Limit: math.MaxInt}.Valid())
		assert.False(t, model.PageParams{Page: math.MaxInt, Limit: 10}.Valid())

		p := model.PageParams{Page: 2, Limit: math.MaxInt}
		assert.True(t, p.Valid())
		assert.Equal(t, math.MaxInt, p.Offset())
		assert.Equal(t, 1, p.TotalPages(1))
	})

	t.Run("Should compute offset", func(t *testing.T) {
		assert.Equal(t, 40, model.PageParams{Page: 5, Limit: 10}.Offset())
	})

	t.Run("Should match ceil for total pages", func(t *testing.T) {
		for total := 0; total <= 57; total++ {
			for limit := 1; limit <= 12; limit++ {
				want := int(math.Ceil(float64(total) / float64(limit)))
				got := model.PageParams{Page: 1, Limit: limit}.TotalPages(total)
				assert.Equal(t, want, got, "total=%d limit=%d", total, limit)
			}
		}
	})
}

func TestEnums(t *testing.T) {
	assert.NoError(t, model.CategoryPreBuiltDesktop.Validate())
	assert.Error(t, model.Category("Toaster").Validate())
	assert.NoError(t, model.ConditionRefurbished.Validate())
	assert.Error(t, model.Condition("Broken").Validate())
}
