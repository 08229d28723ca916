package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateErr(t *testing.T) {
	t.Run("Should map no rows to ErrNotFound", func(t *testing.T) {
		err := translateErr("get product", pgx.ErrNoRows)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Should map unique violation to ErrDuplicateKey", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "products_sku_key"}
		err := translateErr("create product", pgErr)
		assert.ErrorIs(t, err, ErrDuplicateKey)
		assert.Contains(t, err.Error(), "products_sku_key")
	})

	t.Run("Should keep other errors", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := translateErr("list products", cause)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%%", likePattern(""))
	assert.Equal(t, "%lap%", likePattern("lap"))
	assert.Equal(t, `%100\%\_off\\%`, likePattern(`100%_off\`))
}
