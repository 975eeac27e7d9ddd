package storage

import (
	"context"
	"testing"

	"github.com/kharcha/kharcha/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLStore(t *testing.T) {
	ctx := context.Background()

	t.Run("should return ErrNotFound for a missing key", func(t *testing.T) {
		store := NewSQLStore(test_utils.SetupTestDB(t), "test")

		_, err := store.Load(ctx, "expenses")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should load what was saved", func(t *testing.T) {
		store := NewSQLStore(test_utils.SetupTestDB(t), "test")

		require.NoError(t, store.Save(ctx, "expenses", []byte(`[{"id":1}]`)))
		value, err := store.Load(ctx, "expenses")

		assert.NoError(t, err)
		assert.Equal(t, []byte(`[{"id":1}]`), value)
	})

	t.Run("should overwrite an existing key", func(t *testing.T) {
		store := NewSQLStore(test_utils.SetupTestDB(t), "test")

		require.NoError(t, store.Save(ctx, "budget", []byte(`{"monthlyLimit":1}`)))
		require.NoError(t, store.Save(ctx, "budget", []byte(`{"monthlyLimit":2}`)))
		value, err := store.Load(ctx, "budget")

		assert.NoError(t, err)
		assert.Equal(t, []byte(`{"monthlyLimit":2}`), value)
	})

	t.Run("should delete a key", func(t *testing.T) {
		store := NewSQLStore(test_utils.SetupTestDB(t), "test")

		require.NoError(t, store.Save(ctx, "bills", []byte(`[]`)))
		require.NoError(t, store.Delete(ctx, "bills"))

		_, err := store.Load(ctx, "bills")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should keep namespaces apart", func(t *testing.T) {
		db := test_utils.SetupTestDB(t)
		first := NewSQLStore(db, "first")
		second := NewSQLStore(db, "second")

		require.NoError(t, first.Save(ctx, "expenses", []byte(`["a"]`)))
		require.NoError(t, second.Save(ctx, "expenses", []byte(`["b"]`)))

		value, err := first.Load(ctx, "expenses")
		assert.NoError(t, err)
		assert.Equal(t, []byte(`["a"]`), value)
	})

	t.Run("should clear only its own namespace", func(t *testing.T) {
		db := test_utils.SetupTestDB(t)
		first := NewSQLStore(db, "first")
		second := NewSQLStore(db, "second")

		require.NoError(t, first.Save(ctx, "expenses", []byte(`["a"]`)))
		require.NoError(t, second.Save(ctx, "expenses", []byte(`["b"]`)))
		require.NoError(t, first.Clear(ctx))

		_, err := first.Load(ctx, "expenses")
		assert.ErrorIs(t, err, ErrNotFound)

		value, err := second.Load(ctx, "expenses")
		assert.NoError(t, err)
		assert.Equal(t, []byte(`["b"]`), value)
	})
}
