package hateoas

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/technopolitica/company-employees/internal/domain"
	"github.com/technopolitica/company-employees/internal/paging"
)

type Catalog interface {
	EntityLinks(id string) []Link
	CollectionLinks(meta paging.MetaData) []Link
}

// EmployeeLinks builds links for one company's employees. Collection is the
// absolute URL of the list request being answered, query included.
type EmployeeLinks struct {
	Collection domain.URL
	Fields     domain.FieldSet
}

func (l EmployeeLinks) EntityLinks(id string) []Link {
	employee := l.Collection.JoinPath(id)
	self := employee
	if !l.Fields.IsEmpty() {
		self = employee.ModifyQuery(func(query *url.Values) {
			query.Set("fields", l.Fields.String())
		})
	}
	return []Link{
		NewLink(self, "self", http.MethodGet),
		NewLink(employee, "delete_employee", http.MethodDelete),
		NewLink(employee, "update_employee", http.MethodPut),
	}
}

func (l EmployeeLinks) CollectionLinks(meta paging.MetaData) []Link {
	links := []Link{
		NewLink(l.Collection.Clone(), "self", http.MethodGet),
		NewLink(l.Collection.WithoutQuery(), "create_employee", http.MethodPost),
	}
	// past the end, previous_page points back at the last page that has items
	if previous := min(meta.CurrentPage-1, meta.TotalPages); meta.HasPrevious && previous >= 1 {
		links = append(links, NewLink(l.page(previous, meta.PageSize), "previous_page", http.MethodGet))
	}
	if meta.HasNext {
		links = append(links, NewLink(l.page(meta.CurrentPage+1, meta.PageSize), "next_page", http.MethodGet))
	}
	return links
}

func (l EmployeeLinks) page(number int, size int) domain.URL {
	return l.Collection.ModifyQuery(func(query *url.Values) {
		query.Set("pageNumber", fmt.Sprint(number))
		query.Set("pageSize", fmt.Sprint(size))
	})
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
