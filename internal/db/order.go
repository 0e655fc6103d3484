package db

import (
	"strings"

	"github.com/technopolitica/company-employees/internal/domain"
)

const orderByToken = "{{order_by}}"

// Text columns sort bytewise so that both stores page in the same order.
var employeeColumns = map[string]string{
	"id":       "id",
	"name":     `name COLLATE "C"`,
	"age":      "age",
	"position": `position COLLATE "C"`,
}

// orderByClause renders keys as a SQL ORDER BY list. Only whitelisted
// columns are emitted and id always closes the list.
func orderByClause(keys []domain.SortKey, columns map[string]string) string {
	terms := make([]string, 0, len(keys)+1)
	hasID := false
	for _, key := range keys {
		column, ok := columns[key.Field]
		if !ok {
			continue
		}
		if column == "id" {
			hasID = true
		}
		direction := "ASC"
		if key.Descending {
			direction = "DESC"
		}
		terms = append(terms, column+" "+direction)
	}
	if !hasID {
		terms = append(terms, "id ASC")
	}
	return strings.Join(terms, ", ")
}

func withOrderBy(query string, keys []domain.SortKey, columns map[string]string) string {
	return strings.Replace(query, orderByToken, orderByClause(keys, columns), 1)
}
