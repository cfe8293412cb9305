package cache

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/tenancy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKeyTenant(t *testing.T) tenancy.Context {
	tctx, err := tenancy.NewContext(uuid.New())
	require.NoError(t, err)
	return tctx
}

func TestBuildKey(t *testing.T) {
	t.Run("tenant is the first component after the namespace", func(t *testing.T) {
		tctx := newKeyTenant(t)
		propertyID := uuid.New()

		key, err := BuildKey(tctx, SummaryKind, propertyID, nil)
		require.NoError(t, err)

		parts := strings.Split(key.String(), ":")
		require.Len(t, parts, 5)
		assert.Equal(t, "rev", parts[0])
		assert.Equal(t, tctx.TenantID().String(), parts[1])
		assert.Equal(t, SummaryKind, parts[2])
		assert.Equal(t, propertyID.String(), parts[3])
	})

	t.Run("same inputs produce the same key", func(t *testing.T) {
		tctx := newKeyTenant(t)
		propertyID := uuid.New()

		a, err := BuildKey(tctx, SummaryKind, propertyID, map[string]string{"year": "2026", "month": "3"})
		require.NoError(t, err)
		b, err := BuildKey(tctx, SummaryKind, propertyID, map[string]string{"year": "2026", "month": "3"})
		require.NoError(t, err)

		assert.Equal(t, a.String(), b.String())
	})

	t.Run("parameter map order does not change the key", func(t *testing.T) {
		tctx := newKeyTenant(t)
		propertyID := uuid.New()

		a, err := BuildKey(tctx, SummaryKind, propertyID, map[string]string{"month": "3", "year": "2026"})
		require.NoError(t, err)
		b, err := BuildKey(tctx, SummaryKind, propertyID, map[string]string{"year": "2026", "month": "3"})
		require.NoError(t, err)

		assert.Equal(t, a.String(), b.String())
	})

	t.Run("different params produce different keys", func(t *testing.T) {
		tctx := newKeyTenant(t)
		propertyID := uuid.New()

		a, err := BuildKey(tctx, SummaryKind, propertyID, map[string]string{"month": "3", "year": "2026"})
		require.NoError(t, err)
		b, err := BuildKey(tctx, SummaryKind, propertyID, map[string]string{"month": "4", "year": "2026"})
		require.NoError(t, err)

		assert.NotEqual(t, a.String(), b.String())
	})

	t.Run("same resource under two tenants produces different keys", func(t *testing.T) {
		propertyID := uuid.New()

		a, err := BuildKey(newKeyTenant(t), SummaryKind, propertyID, nil)
		require.NoError(t, err)
		b, err := BuildKey(newKeyTenant(t), SummaryKind, propertyID, nil)
		require.NoError(t, err)

		assert.NotEqual(t, a.String(), b.String())
	})

	t.Run("rejects zero-value tenant context", func(t *testing.T) {
		_, err := BuildKey(tenancy.Context{}, SummaryKind, uuid.New(), nil)
		assert.ErrorIs(t, err, tenancy.ErrUnauthenticated)
	})

	t.Run("rejects empty kind and nil resource", func(t *testing.T) {
		tctx := newKeyTenant(t)

		_, err := BuildKey(tctx, "", uuid.New(), nil)
		assert.Error(t, err)

		_, err = BuildKey(tctx, SummaryKind, uuid.Nil, nil)
		assert.Error(t, err)
	})
}

func TestPropertyPrefix(t *testing.T) {
	tctx := newKeyTenant(t)
	propertyID := uuid.New()

	key, err := BuildKey(tctx, SummaryKind, propertyID, map[string]string{"year": "2026"})
	require.NoError(t, err)

	prefix := PropertyPrefix(tctx, SummaryKind, propertyID)
	assert.True(t, strings.HasPrefix(key.String(), prefix))
	assert.True(t, strings.HasPrefix(prefix, TenantPrefix(tctx)))
}
