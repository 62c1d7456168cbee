package product

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeadm/backend/internal/domain"
)

func int64Ptr(v int64) *int64 { return &v }

func TestWhereFromFilter_PriceRange(t *testing.T) {
	t.Parallel()

	where := whereFromFilter(uuid.New(), domain.ProductFilter{
		PriceMin: int64Ptr(1000),
		PriceMax: int64Ptr(5000),
	})
	sql, args, err := where.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "price_cents >= ?")
	assert.Contains(t, sql, "price_cents <= ?")
	assert.Contains(t, args, int64(1000))
	assert.Contains(t, args, int64(5000))
}

func TestWhereFromFilter_EmptyFilterScopesTenantOnly(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	sql, args, err := whereFromFilter(tenantID, domain.ProductFilter{}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "(tenant_id = ?)", sql)
	assert.Equal(t, []any{tenantID}, args)
}
