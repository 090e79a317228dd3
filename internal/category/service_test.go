package category

import (
	"context"
	"errors"
	"testing"

	"school-cms-api/internal/apperr"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// postRow stands in for the posts table so the counts can be checked without importing post.
type postRow struct {
	ID         uint
	CategoryID *uint
	DeletedAt  gorm.DeletedAt
}

func (postRow) TableName() string { return "posts" }

func newService(t *testing.T) (*CategoryService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t, &Category{}, &postRow{})
	return NewCategoryService(db), db
}

func TestCategoryService_Create_GeneratesUniqueSlug(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, CategoryInput{Name: "School News"})
	require.NoError(t, err)
	assert.Equal(t, "school-news", first.Slug)
	assert.Equal(t, TypePost, first.Type)

	second, err := svc.Create(ctx, CategoryInput{Name: "School  News!"})
	require.NoError(t, err)
	assert.Equal(t, "school-news-2", second.Slug)
}

func TestCategoryService_Create_ExplicitDuplicateSlug(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CategoryInput{Name: "Events", Slug: testutil.Ptr("events")})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CategoryInput{Name: "More events", Slug: testutil.Ptr("events")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrDuplicate))
}

func TestCategoryService_List_SummaryAndPostCounts(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	news, err := svc.Create(ctx, CategoryInput{Name: "News"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CategoryInput{Name: "Exams", Type: TypeAnnouncement})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CategoryInput{Name: "Sports", Type: TypePost})
	require.NoError(t, err)

	require.NoError(t, db.Create(&postRow{CategoryID: &news.ID}).Error)
	require.NoError(t, db.Create(&postRow{CategoryID: &news.ID}).Error)
	gone := postRow{CategoryID: &news.ID}
	require.NoError(t, db.Create(&gone).Error)
	require.NoError(t, db.Delete(&gone).Error)

	params := jsonapi.QueryParams{PageSize: 2}
	listing, err := svc.List(ctx, params)
	require.NoError(t, err)

	require.Len(t, listing.Items, 2)
	assert.Equal(t, "Exams", listing.Items[0].Name)
	assert.Equal(t, "News", listing.Items[1].Name)
	assert.EqualValues(t, 3, listing.Page.Total)
	assert.Equal(t, 2, listing.Page.LastPage)
	assert.EqualValues(t, 2, listing.PostCounts[news.ID])

	assert.Equal(t, 3, listing.Summary.Total)
	require.Len(t, listing.Summary.ByType, 2)
	assert.Equal(t, TypePost, listing.Summary.ByType[0].Label)
	assert.Equal(t, 2, listing.Summary.ByType[0].Count)
}

func TestCategoryService_List_FilterAndInvalidSort(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, _ = svc.Create(ctx, CategoryInput{Name: "News"})
	_, _ = svc.Create(ctx, CategoryInput{Name: "Albums", Type: TypeGallery})

	listing, err := svc.List(ctx, jsonapi.QueryParams{Filters: map[string]string{"type": TypeGallery}})
	require.NoError(t, err)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, "Albums", listing.Items[0].Name)
	assert.Equal(t, 1, listing.Summary.Total)

	_, err = svc.List(ctx, jsonapi.QueryParams{Sort: []jsonapi.Sort{{Field: "posts"}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrBadRequest))
}

func TestCategoryService_GetAndUpdate(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, CategoryInput{Name: "News"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&postRow{CategoryID: &c.ID}).Error)

	got, posts, err := svc.Get(ctx, "news")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.EqualValues(t, 1, posts)

	updated, err := svc.Update(ctx, c.ID, CategoryInput{Name: "Latest News", Description: testutil.Ptr("from the office")})
	require.NoError(t, err)
	assert.Equal(t, "news", updated.Slug, "slug stays when none is given")
	assert.Equal(t, "Latest News", updated.Name)

	updated, err = svc.Update(ctx, c.ID, CategoryInput{Name: "Latest News", Slug: testutil.Ptr("latest-news")})
	require.NoError(t, err)
	assert.Equal(t, "latest-news", updated.Slug)

	_, _, err = svc.Get(ctx, "news")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCategoryService_Update_NotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Update(context.Background(), 42, CategoryInput{Name: "x"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCategoryService_Delete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, CategoryInput{Name: "News"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, c.ID), apperr.ErrNotFound))

	_, _, err = svc.GetByID(ctx, c.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCategoryService_ClosedDB(t *testing.T) {
	svc := NewCategoryService(testutil.ClosedDB(t, &Category{}))

	_, err := svc.List(context.Background(), jsonapi.QueryParams{})
	require.Error(t, err)
	assert.Equal(t, 500, apperr.Status(err))
}

func TestCategoryService_Seed_Idempotent(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&Category{Name: "Berita", Slug: "news", Type: TypePost}).Error)

	n, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(Defaults)-1, n)

	n, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	var news Category
	require.NoError(t, db.Where("slug = ?", "news").First(&news).Error)
	assert.Equal(t, "Berita", news.Name)
}
