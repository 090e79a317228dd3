package sheet

import (
	"fmt"
	"strings"
	"time"
)

// cellValue unwraps pointers so excelize sees plain values; nil becomes an empty cell.
func cellValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case *time.Time:
		if x == nil {
			return nil
		}
		return x.UTC().Format(time.RFC3339)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case *int:
		if x == nil {
			return nil
		}
		return *x
	case *uint:
		if x == nil {
			return nil
		}
		return *x
	case *float64:
		if x == nil {
			return nil
		}
		return *x
	case []string:
		return strings.Join(x, ", ")
	}
	return v
}

func cellString(v any) string {
	v = cellValue(v)
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
