package category

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeadm/backend/internal/domain"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestBuildSearch_EmptyFilter(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	sql, args, err := buildSearch(tenantID, domain.SearchQuery[domain.CategoryFilter]{
		Limit:  10,
		Offset: 20,
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "tenant_id = $1")
	assert.Contains(t, sql, "ORDER BY created_at DESC")
	assert.Contains(t, sql, "LIMIT 10")
	assert.Contains(t, sql, "OFFSET 20")
	assert.Equal(t, []any{tenantID}, args)
}

func TestBuildSearch_IsFeatureFalseIsNotIgnored(t *testing.T) {
	t.Parallel()

	sql, args, err := buildSearch(uuid.New(), domain.SearchQuery[domain.CategoryFilter]{
		Filter: domain.CategoryFilter{IsFeature: boolPtr(false)},
		Limit:  10,
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "is_feature = $2")
	require.Len(t, args, 2)
	assert.Equal(t, false, args[1])
}

func TestBuildSearch_TextFiltersUseILike(t *testing.T) {
	t.Parallel()

	sql, args, err := buildSearch(uuid.New(), domain.SearchQuery[domain.CategoryFilter]{
		Filter: domain.CategoryFilter{
			Name: strPtr("shoe"),
			Slug: strPtr("sh"),
		},
		Limit: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(sql, "ILIKE"))
	assert.Contains(t, args, "%shoe%")
	assert.Contains(t, args, "%sh%")
}

func TestBuildSearch_CustomOrder(t *testing.T) {
	t.Parallel()

	sql, _, err := buildSearch(uuid.New(), domain.SearchQuery[domain.CategoryFilter]{
		OrderBy: "name_ASC",
		Limit:   10,
	})
	require.NoError(t, err)
	assert.Contains(t, sql, "ORDER BY name ASC")
}

func TestBuildSearch_UnknownOrderFallsBack(t *testing.T) {
	t.Parallel()

	sql, _, err := buildSearch(uuid.New(), domain.SearchQuery[domain.CategoryFilter]{
		OrderBy: "importHash_DESC",
		Limit:   10,
	})
	require.NoError(t, err)
	assert.Contains(t, sql, "ORDER BY created_at DESC")
}

func TestBuildCount_MatchesFilterPredicates(t *testing.T) {
	t.Parallel()

	status := domain.RecordStatusPublished
	sql, args, err := buildCount(uuid.New(), domain.CategoryFilter{
		Status:    &status,
		IsFeature: boolPtr(true),
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "count(*)")
	assert.Contains(t, sql, "status = $2")
	assert.Contains(t, sql, "is_feature = $3")
	assert.NotContains(t, sql, "LIMIT")
	assert.Len(t, args, 3)
}

func TestBuildUpdate_OnlySetFieldsChange(t *testing.T) {
	t.Parallel()

	sql, args, err := buildUpdate(uuid.New(), uuid.New(), uuid.New(), domain.CategoryUpdateParams{
		Name: strPtr("renamed"),
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "name = ")
	assert.Contains(t, sql, "updated_by = ")
	assert.Contains(t, sql, "updated_at = now()")
	assert.NotContains(t, sql, "slug = ")
	assert.NotContains(t, sql, "photo = ")
	assert.Contains(t, sql, "RETURNING")
	assert.Contains(t, args, "renamed")
}

func TestBuildUpdate_EmptyPhotoClears(t *testing.T) {
	t.Parallel()

	sql, args, err := buildUpdate(uuid.New(), uuid.New(), uuid.New(), domain.CategoryUpdateParams{
		Photo: []domain.FileRef{},
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "photo = ")
	assert.Contains(t, args, []byte("[]"))
}

func TestBuildAutocomplete(t *testing.T) {
	t.Parallel()

	sql, args, err := buildAutocomplete(uuid.New(), "sho", 15)
	require.NoError(t, err)

	assert.Contains(t, sql, "SELECT id, name FROM categories")
	assert.Contains(t, sql, "ILIKE")
	assert.Contains(t, sql, "id::text ILIKE")
	assert.Contains(t, sql, "ORDER BY name ASC")
	assert.Contains(t, sql, "LIMIT 15")
	assert.Contains(t, args, "%sho%")
}

func TestBuildAutocomplete_EmptyQueryListsAll(t *testing.T) {
	t.Parallel()

	sql, _, err := buildAutocomplete(uuid.New(), "", 15)
	require.NoError(t, err)
	assert.NotContains(t, sql, "ILIKE")
}

func TestMarshalPhoto_StripsDownloadURL(t *testing.T) {
	t.Parallel()

	b, err := marshalPhoto([]domain.FileRef{{
		Key:         "tenants/x/cat.jpg",
		Name:        "cat.jpg",
		SizeBytes:   1024,
		DownloadURL: "https://signed.example/cat.jpg?sig=abc",
	}})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "downloadUrl")
	assert.Contains(t, string(b), "cat.jpg")
}
