package ptr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/inventory-service/pkg/ptr"
)

func TestValue(t *testing.T) {
	assert.Equal(t, 0, ptr.Value[int](nil))
	assert.Equal(t, "sku", ptr.Value(ptr.New("sku")))
}

func TestOr(t *testing.T) {
	assert.Equal(t, 10, ptr.Or(nil, 10))
	assert.Equal(t, 0, ptr.Or(ptr.New(0), 10))
}
