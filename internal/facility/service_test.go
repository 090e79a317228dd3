package facility

import (
	"context"
	"testing"

	"school-cms-api/internal/apperr"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*FacilityService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t, &Facility{})
	return NewFacilityService(db), db
}

func seed(t *testing.T, svc *FacilityService) {
	t.Helper()
	inputs := []FacilityInput{
		{Name: "Main Hall", Type: "hall", AreaSqm: 400, Capacity: 500},
		{Name: "Chemistry Lab", Type: "laboratory", AreaSqm: 90, Capacity: 32, Condition: ConditionFair},
		{Name: "Physics Lab", Type: "laboratory", AreaSqm: 80, Capacity: 32},
		{Name: "Library", Type: "library", AreaSqm: 250, Capacity: 120, IsAvailable: testutil.Ptr(false)},
		{Name: "Old Court", Type: "sports", AreaSqm: 250, Capacity: 60, Condition: ConditionNeedsRepair},
	}
	for _, in := range inputs {
		_, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
	}
}

func TestFacilityService_Create_Defaults(t *testing.T) {
	svc, _ := newService(t)

	f, err := svc.Create(context.Background(), FacilityInput{Name: "Computer Lab", AreaSqm: 72.5})
	require.NoError(t, err)
	assert.Equal(t, "computer-lab", f.Slug)
	assert.Equal(t, ConditionGood, f.Condition)
	assert.True(t, f.IsAvailable)

	again, err := svc.GetByID(context.Background(), f.ID)
	require.NoError(t, err)
	assert.True(t, again.IsAvailable)
	assert.InDelta(t, 72.5, again.AreaSqm, 0.001)
}

func TestFacilityService_List_Summary(t *testing.T) {
	svc, _ := newService(t)
	seed(t, svc)

	l, err := svc.List(context.Background(), jsonapi.QueryParams{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, l.Items, 2)
	assert.Equal(t, int64(5), l.Page.Total)

	s := l.Summary
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 4, s.Available)
	assert.InDelta(t, 1070, s.TotalArea, 0.001)
	assert.Equal(t, 744, s.TotalCapacity)

	require.Len(t, s.ByType, 4)
	assert.Equal(t, "laboratory", s.ByType[0].Label)
	assert.Equal(t, 2, s.ByType[0].Count)
	// single-facility groups are ordered by area, then label
	assert.Equal(t, "hall", s.ByType[1].Label)
	assert.Equal(t, "library", s.ByType[2].Label)
	assert.Equal(t, "sports", s.ByType[3].Label)

	require.Len(t, s.Largest, 3)
	assert.Equal(t, "Main Hall", s.Largest[0].Name)
	assert.Equal(t, "Library", s.Largest[1].Name)
	assert.Equal(t, "Old Court", s.Largest[2].Name)

	assert.Equal(t, ConditionGood, s.ByCondition[0].Label)
	assert.Equal(t, 3, s.ByCondition[0].Count)
}

func TestFacilityService_List_Filters(t *testing.T) {
	svc, _ := newService(t)
	seed(t, svc)
	ctx := context.Background()

	l, err := svc.List(ctx, jsonapi.QueryParams{Page: 1, PageSize: 15, Filters: map[string]string{"type": "laboratory"}})
	require.NoError(t, err)
	assert.Equal(t, 2, l.Summary.Total)

	l, err = svc.List(ctx, jsonapi.QueryParams{Page: 1, PageSize: 15, Filters: map[string]string{"available": "false"}})
	require.NoError(t, err)
	require.Len(t, l.Items, 1)
	assert.Equal(t, "Library", l.Items[0].Name)

	l, err = svc.List(ctx, jsonapi.QueryParams{Page: 1, PageSize: 15,
		Filters: map[string]string{"condition": "fair,needs_repair"},
		Sort:    []jsonapi.Sort{{Field: "area", Desc: true}}})
	require.NoError(t, err)
	require.Len(t, l.Items, 2)
	assert.Equal(t, "Old Court", l.Items[0].Name)

	_, err = svc.List(ctx, jsonapi.QueryParams{Page: 1, PageSize: 15, Filters: map[string]string{"available": "maybe"}})
	assert.Equal(t, 400, apperr.Status(err))

	_, err = svc.List(ctx, jsonapi.QueryParams{Page: 1, PageSize: 15, Sort: []jsonapi.Sort{{Field: "condition"}}})
	assert.Equal(t, 400, apperr.Status(err))
}

func TestFacilityService_Update_KeepsSlugAndAvailability(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	f, err := svc.Create(ctx, FacilityInput{Name: "Gym", IsAvailable: testutil.Ptr(false)})
	require.NoError(t, err)

	up, err := svc.Update(ctx, f.ID, FacilityInput{Name: "Sports Gym", Capacity: 200, Condition: ConditionFair})
	require.NoError(t, err)
	assert.Equal(t, "gym", up.Slug)
	assert.False(t, up.IsAvailable)
	assert.Equal(t, 200, up.Capacity)

	_, err = svc.Update(ctx, 999, FacilityInput{Name: "x"})
	assert.Equal(t, 404, apperr.Status(err))
}

func TestFacilityService_Delete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	f, err := svc.Create(ctx, FacilityInput{Name: "Canteen"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, f.ID))

	_, err = svc.Get(ctx, "canteen")
	assert.Equal(t, 404, apperr.Status(err))
}
