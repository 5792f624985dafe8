package listing

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is the sort order of the active column.
type Direction int

const (
	// Ascending sorts smallest (or A) first.
	Ascending Direction = iota
	// Descending sorts largest (or Z) first.
	Descending
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Arrow returns the header indicator for the direction.
func (d Direction) Arrow() string {
	if d == Descending {
		return "▼"
	}
	return "▲"
}

// SortSpec is the active sort column and direction.
// The zero value keeps input order.
type SortSpec struct {
	Key       SortKey
	Direction Direction
}

// Click applies a column-header click: the active column flips direction,
// any other column becomes active in ascending order.
func (s *SortSpec) Click(key SortKey) {
	if key == SortNone {
		*s = SortSpec{}
		return
	}
	if s.Key == key {
		s.Direction = s.Direction.flip()
		return
	}
	s.Key = key
	s.Direction = Ascending
}

// Active reports whether a column is selected.
func (s SortSpec) Active() bool {
	return s.Key != SortNone
}

// String renders the spec as a "field:order" expression.
func (s SortSpec) String() string {
	if !s.Active() {
		return SortNone.String()
	}
	return s.Key.String() + ":" + s.Direction.String()
}

func (d Direction) flip() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// sortPartsMax is the maximum number of colon-separated parts in a sort expression.
const sortPartsMax = 2

// ParseSortExpression parses a sort expression in "field:order" format.
// Supports:
//   - "field" - defaults to asc order
//   - "field:asc" - explicit ascending order
//   - "field:desc" - explicit descending order
//
// An empty expression yields the zero SortSpec (input order).
func ParseSortExpression(expr string) (SortSpec, error) {
	if strings.TrimSpace(expr) == "" {
		return SortSpec{}, nil
	}

	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return SortSpec{}, fmt.Errorf("invalid format: too many colons in %q", expr)
	}

	field := strings.TrimSpace(parts[0])
	if field == "" {
		return SortSpec{}, errors.New("empty sort field")
	}

	key, err := ParseSortKey(field)
	if err != nil {
		return SortSpec{}, fmt.Errorf("%w (valid: %s)", err, strings.Join(ValidFields(), ", "))
	}

	spec := SortSpec{Key: key, Direction: Ascending}
	if len(parts) == sortPartsMax {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "asc":
		case "desc":
			spec.Direction = Descending
		default:
			return SortSpec{}, fmt.Errorf("invalid sort order: %q (must be asc or desc)", parts[1])
		}
	}

	if key == SortNone {
		return SortSpec{}, nil
	}
	return spec, nil
}
