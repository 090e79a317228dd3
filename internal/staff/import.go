package staff

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"school-cms-api/internal/apperr"
	"school-cms-api/internal/sheet"
	"school-cms-api/internal/util"

	"gorm.io/gorm"
)

// ImportColumns is the header row of the import template.
var ImportColumns = []string{"name", "position", "department", "subject", "email", "phone", "joined_at", "employee_number"}

// Import creates one staff member per spreadsheet row inside a single transaction. Rows
// without a name or position, with a bad date, or whose employee number is already taken
// are skipped and reported.
func (s *StaffService) Import(ctx context.Context, r io.Reader, format string) (*ImportResult, error) {
	headers, rows, err := sheet.Read(r, format)
	if err != nil {
		return nil, apperr.BadRequest("%v", err)
	}

	idx := sheet.Index(headers)
	for _, required := range []string{"name", "position"} {
		if _, ok := idx[required]; !ok {
			return nil, apperr.Invalid("file", "missing %q column", required)
		}
	}

	result := &ImportResult{Errors: []RowError{}}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.Repo.WithTx(tx)
		for i, row := range rows {
			line := i + 2
			in, reason := rowInput(idx, row)
			if reason != "" {
				result.Skipped++
				result.Errors = append(result.Errors, RowError{Row: line, Reason: reason})
				continue
			}

			if in.EmployeeNumber != nil {
				var n int64
				if err := tx.Model(&Staff{}).Unscoped().Where("employee_number = ?", *in.EmployeeNumber).Count(&n).Error; err != nil {
					return err
				}
				if n > 0 {
					result.Skipped++
					result.Errors = append(result.Errors, RowError{Row: line, Reason: fmt.Sprintf("employee number %s already exists", *in.EmployeeNumber)})
					continue
				}
			}

			if _, err := s.create(ctx, repo, in); err != nil {
				if errors.Is(err, apperr.ErrDuplicate) {
					result.Skipped++
					result.Errors = append(result.Errors, RowError{Row: line, Reason: err.Error()})
					continue
				}
				return err
			}
			result.Created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func rowInput(idx map[string]int, row []string) (StaffInput, string) {
	get := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	opt := func(col string) *string {
		if v := get(col); v != "" {
			return &v
		}
		return nil
	}

	in := StaffInput{
		Name:           get("name"),
		Position:       get("position"),
		Department:     get("department"),
		Subject:        opt("subject"),
		Email:          opt("email"),
		Phone:          opt("phone"),
		EmployeeNumber: opt("employee_number"),
	}
	if in.Name == "" {
		return in, "name is required"
	}
	if in.Position == "" {
		return in, "position is required"
	}
	if raw := get("joined_at"); raw != "" {
		t, ok, _, err := util.ParseDate(raw)
		if err != nil || !ok {
			return in, fmt.Sprintf("joined_at %q is not a date", raw)
		}
		in.JoinedAt = &t
	}
	return in, ""
}
