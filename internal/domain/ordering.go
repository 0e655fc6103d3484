package domain

import (
	"strings"
)

type SortKey struct {
	Field      string
	Descending bool
}

var EmployeeSortFields = []string{"id", "name", "age", "position"}

var DefaultEmployeeOrder = []SortKey{{Field: "name"}}

// ParseOrderBy reads clauses like "name desc, age". Names are matched
// case-insensitively against allowed; unknown names and repeated fields are
// skipped. If nothing usable remains, fallback is returned.
func ParseOrderBy(orderBy string, allowed []string, fallback []SortKey) []SortKey {
	var keys []SortKey
	seen := make(map[string]bool)
	for _, clause := range strings.Split(orderBy, ",") {
		parts := strings.Fields(clause)
		if len(parts) == 0 {
			continue
		}
		field, ok := canonicalField(parts[0], allowed)
		if !ok || seen[field] {
			continue
		}
		seen[field] = true
		keys = append(keys, SortKey{
			Field:      field,
			Descending: len(parts) > 1 && strings.EqualFold(parts[1], "desc"),
		})
	}
	if len(keys) == 0 {
		return append([]SortKey(nil), fallback...)
	}
	return keys
}

func canonicalField(name string, allowed []string) (string, bool) {
	for _, field := range allowed {
		if strings.EqualFold(field, name) {
			return field, true
		}
	}
	return "", false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(substr)))
}

// CompareEmployees orders a before b according to keys, breaking ties by id.
func CompareEmployees(a, b Employee, keys []SortKey) int {
	for _, key := range keys {
		var c int
		switch key.Field {
		case "id":
			c = strings.Compare(a.ID.String(), b.ID.String())
		case "name":
			c = strings.Compare(a.Name, b.Name)
		case "age":
			c = compareInts(a.Age, b.Age)
		case "position":
			c = strings.Compare(a.Position, b.Position)
		}
		if key.Descending {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
