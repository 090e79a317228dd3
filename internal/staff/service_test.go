package staff

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"school-cms-api/internal/apperr"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/sheet"
	"school-cms-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var now = time.Date(2026, 7, 15, 8, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*StaffService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t, &Staff{})
	svc := NewStaffService(db)
	svc.Clock = func() time.Time { return now }
	return svc, db
}

func joined(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestStaffService_Create_DuplicateSlug409(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, StaffInput{Name: "Sari Wulandari", Position: "Teacher"})
	require.NoError(t, err)
	assert.Equal(t, "sari-wulandari", first.Slug)
	assert.True(t, first.IsActive, "new staff are active unless told otherwise")

	_, err = svc.Create(ctx, StaffInput{Name: "Another Sari", Position: "Teacher", Slug: testutil.Ptr("sari-wulandari")})
	require.Error(t, err)
	assert.Equal(t, 409, apperr.Status(err))

	auto, err := svc.Create(ctx, StaffInput{Name: "Sari Wulandari", Position: "Librarian", IsActive: testutil.Ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "sari-wulandari-2", auto.Slug)
	assert.False(t, auto.IsActive)
}

func TestStaffService_Create_DuplicateEmployeeNumber409(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, StaffInput{Name: "A", Position: "Teacher", EmployeeNumber: testutil.Ptr("NIP-1")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, StaffInput{Name: "B", Position: "Teacher", EmployeeNumber: testutil.Ptr("NIP-1")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrDuplicate))

	// blank employee numbers are stored as NULL and never collide
	_, err = svc.Create(ctx, StaffInput{Name: "C", Position: "Teacher", EmployeeNumber: testutil.Ptr(" ")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, StaffInput{Name: "D", Position: "Teacher", EmployeeNumber: testutil.Ptr("")})
	require.NoError(t, err)
}

func TestStaffService_List_Summary(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	seed := []StaffInput{
		{Name: "Budi", Position: "Principal", Department: "Management", JoinedAt: joined(2006, 1, 1)},
		{Name: "Ani", Position: "Teacher", Department: "Science", JoinedAt: joined(2016, 7, 16)},
		{Name: "Citra", Position: "Teacher", Department: "Science", JoinedAt: joined(2016, 7, 15)},
		{Name: "Dodi", Position: "Teacher", Department: "Languages", JoinedAt: joined(2026, 1, 1)},
		{Name: "Eka", Position: "Staff", IsActive: testutil.Ptr(false)},
	}
	for _, in := range seed {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	listing, err := svc.List(ctx, jsonapi.QueryParams{})
	require.NoError(t, err)
	sum := listing.Summary

	assert.Equal(t, 5, sum.Total)
	assert.Equal(t, 4, sum.Active)
	assert.Equal(t, 1, sum.Inactive)
	require.NotEmpty(t, sum.ByDepartment)
	assert.Equal(t, "Science", sum.ByDepartment[0].Label)
	assert.Equal(t, 2, sum.ByDepartment[0].Count)

	// years: Budi 20, Ani 9, Citra 10, Dodi 0 -> 39 / 4
	assert.Equal(t, 9.8, sum.AverageExperience)
	require.Len(t, sum.MostExperienced, 4)
	assert.Equal(t, "Budi", sum.MostExperienced[0].Name)
	assert.Equal(t, "Citra", sum.MostExperienced[1].Name)
	assert.Equal(t, 10, sum.MostExperienced[1].Years)

	public, err := svc.ListPublic(ctx, jsonapi.QueryParams{Filters: map[string]string{"department": "Science,Management"}})
	require.NoError(t, err)
	assert.Len(t, public.Items, 3)

	_, err = svc.List(ctx, jsonapi.QueryParams{Filters: map[string]string{"active": "maybe"}})
	assert.True(t, errors.Is(err, apperr.ErrBadRequest))
}

func TestStaffService_List_DefaultOrder(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, in := range []StaffInput{
		{Name: "Zaki", Position: "Teacher", SortOrder: 1},
		{Name: "Bayu", Position: "Teacher", SortOrder: 2},
		{Name: "Ayu", Position: "Teacher", SortOrder: 2},
	} {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	listing, err := svc.List(ctx, jsonapi.QueryParams{})
	require.NoError(t, err)
	names := []string{}
	for _, m := range listing.Items {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Zaki", "Ayu", "Bayu"}, names)
}

func TestStaffService_Show_HidesInactive(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, StaffInput{Name: "Gone", Position: "Teacher", IsActive: testutil.Ptr(false)})
	require.NoError(t, err)

	_, err = svc.Show(ctx, "gone")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestStaffService_Update(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, StaffInput{Name: "Budi", Position: "Teacher"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, m.ID, StaffInput{Name: "Budi Santoso", Position: "Principal", IsActive: testutil.Ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "budi", updated.Slug)
	assert.Equal(t, "Principal", updated.Position)
	assert.False(t, updated.IsActive)

	_, err = svc.Update(ctx, 999, StaffInput{Name: "x", Position: "y"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestStaffService_Import_CSV(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, StaffInput{Name: "Existing", Position: "Teacher", EmployeeNumber: testutil.Ptr("E-1")})
	require.NoError(t, err)

	csv := strings.Join([]string{
		"Name,Position,Department,Email,Joined At,Employee Number",
		"Ani,Teacher,Science,ani@school.test,2019-08-01,E-2",
		",Teacher,Science,,,",
		"Budi,,Science,,,",
		"Citra,Teacher,Science,,01/02/2020,",
		"Dodi,Teacher,Languages,,,E-1",
		"Eka,Counselor,,,2021-01-04T00:00:00Z,",
	}, "\n")

	result, err := svc.Import(ctx, strings.NewReader(csv), "csv")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 4, result.Skipped)
	require.Len(t, result.Errors, 4)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, "name is required", result.Errors[0].Reason)
	assert.Contains(t, result.Errors[3].Reason, "E-1")

	var ani Staff
	require.NoError(t, db.Where("slug = ?", "ani").First(&ani).Error)
	require.NotNil(t, ani.JoinedAt)
	assert.Equal(t, 2019, ani.JoinedAt.Year())
	assert.True(t, ani.IsActive)
}

func TestStaffService_Import_XLSX(t *testing.T) {
	svc, _ := newService(t)

	_, _, data, err := sheet.Write(sheet.FormatXLSX, "Staff", ImportColumns, [][]any{
		{"Fajar", "Teacher", "Sports", "PE", "fajar@school.test", "0812", "2018-01-10", ""},
	})
	require.NoError(t, err)

	result, err := svc.Import(context.Background(), bytes.NewReader(data), "xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Zero(t, result.Skipped)
}

func TestStaffService_Import_BadFiles(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Import(ctx, strings.NewReader(""), "csv")
	assert.Equal(t, 400, apperr.Status(err))

	_, err = svc.Import(ctx, strings.NewReader("email,phone\na@b.c,1\n"), "csv")
	assert.Equal(t, 422, apperr.Status(err))
}
