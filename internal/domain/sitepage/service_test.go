package sitepage

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"theroom/internal/database/dbtest"
	"theroom/internal/pkg/apperr"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	db := dbtest.Open(t, &WebsitePage{})
	return NewService(NewRepository(db), testLanguages(t))
}

func strPtr(s string) *string { return &s }

func TestCreate_NormalizesAndRejectsDuplicateSlug(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, "hotel-a", "Hakkımızda", "about")
	require.NoError(t, err)
	assert.Equal(t, "/about", p.Slug)
	assert.Empty(t, p.Components)
	assert.False(t, p.IsSystemPage)

	_, err = svc.Create(ctx, "hotel-a", "Başka", "/about")
	assert.ErrorIs(t, err, ErrSlugTaken)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Create(ctx, "hotel-b", "About", "/about")
	assert.NoError(t, err, "slugs are unique per hotel")

	_, err = svc.Create(ctx, "hotel-a", " ", "/x")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.Create(ctx, "hotel-a", "X", " ")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestUpdate_MetaAndComponents(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, "hotel-a", "Hakkımızda", "/about")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "hotel-a", "İletişim", "/contact")
	require.NoError(t, err)

	_, err = svc.UpdateMeta(ctx, "hotel-a", p.ID, nil, strPtr("contact"))
	assert.ErrorIs(t, err, ErrSlugTaken)

	updated, err := svc.UpdateMeta(ctx, "hotel-a", p.ID, strPtr("Biz Kimiz"), strPtr("who-we-are"))
	require.NoError(t, err)
	assert.Equal(t, "Biz Kimiz", updated.Name)
	assert.Equal(t, "/who-we-are", updated.Slug)

	_, err = svc.UpdateMeta(ctx, "hotel-a", p.ID, nil, strPtr("/who-we-are"))
	assert.NoError(t, err, "keeping the own slug is not a conflict")

	_, err = svc.ReplaceComponents(ctx, "hotel-a", p.ID, []Component{
		{ID: "1", Type: TypeText, Data: json.RawMessage(`{"content":{"tr":"A"}}`)},
		{ID: "2", Type: TypeRooms, Data: json.RawMessage(`{"limit":3}`)},
	})
	require.NoError(t, err)

	saved, err := svc.ReplaceComponents(ctx, "hotel-a", p.ID, []Component{
		{ID: "2", Type: TypeRooms, Data: json.RawMessage(`{"limit":3}`)},
	})
	require.NoError(t, err)
	require.Len(t, saved.Components, 1)

	got, err := svc.Get(ctx, "hotel-a", p.ID)
	require.NoError(t, err)
	require.Len(t, got.Components, 1)
	assert.Equal(t, "2", got.Components[0].ID)
	assert.JSONEq(t, `{"limit":3}`, string(got.Components[0].Data))
	assert.Equal(t, "Biz Kimiz", got.Name)

	_, err = svc.ReplaceComponents(ctx, "hotel-a", p.ID, []Component{{ID: "x", Type: "video"}})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.ReplaceComponents(ctx, "hotel-b", p.ID, nil)
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestUpdate_MissingPageWithTakenSlug(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "hotel-a", "Hakkımızda", "/about")
	require.NoError(t, err)

	_, err = svc.Update(ctx, "hotel-a", "missing", UpdateInput{Slug: strPtr("/about")})
	assert.ErrorIs(t, err, ErrPageNotFound)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSystemPages(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedSystemPages(ctx, "hotel-a"))
	require.NoError(t, svc.SeedSystemPages(ctx, "hotel-a"), "seeding is idempotent")

	pages, err := svc.List(ctx, "hotel-a")
	require.NoError(t, err)
	require.Len(t, pages, 1)
	home := pages[0]
	assert.Equal(t, HomeSlug, home.Slug)
	assert.Equal(t, HomeName, home.Name)
	assert.True(t, home.IsSystemPage)

	assert.ErrorIs(t, svc.Delete(ctx, "hotel-a", home.ID), ErrSystemPage)

	_, err = svc.UpdateMeta(ctx, "hotel-a", home.ID, nil, strPtr("/home"))
	assert.ErrorIs(t, err, ErrSystemPageSlug)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	renamed, err := svc.UpdateMeta(ctx, "hotel-a", home.ID, strPtr("Anasayfa"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Anasayfa", renamed.Name)
}

func TestDeleteAndOwnership(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, "hotel-a", "Blog", "/blog")
	require.NoError(t, err)

	owned, err := svc.OwnsPage(ctx, "hotel-a", p.ID)
	require.NoError(t, err)
	assert.True(t, owned)
	owned, err = svc.OwnsPage(ctx, "hotel-b", p.ID)
	require.NoError(t, err)
	assert.False(t, owned)

	assert.ErrorIs(t, svc.Delete(ctx, "hotel-b", p.ID), ErrPageNotFound)
	require.NoError(t, svc.Delete(ctx, "hotel-a", p.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "hotel-a", p.ID), ErrPageNotFound)
}

func TestList_CreationOrder(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()
	for _, slug := range []string{"/a", "/b", "/c"} {
		_, err := svc.Create(ctx, "hotel-a", "Page "+slug, slug)
		require.NoError(t, err)
	}
	pages, err := svc.List(ctx, "hotel-a")
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, []string{"/a", "/b", "/c"}, []string{pages[0].Slug, pages[1].Slug, pages[2].Slug})
}
