package domain

import (
	"context"
	"math"
	"net/url"

	"github.com/google/uuid"
	"github.com/technopolitica/company-employees/internal/paging"
)

type Employee struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Position  string    `json:"position"`
	CompanyID uuid.UUID `json:"-"`
}

type EmployeeForCreation struct {
	Name     string `json:"name" validate:"required,max=30"`
	Age      int    `json:"age" validate:"required,gte=18,lte=2147483647"`
	Position string `json:"position" validate:"required,max=20"`
}

func (e EmployeeForCreation) ToEmployee(id uuid.UUID, companyID uuid.UUID) Employee {
	return Employee{
		ID:        id,
		Name:      e.Name,
		Age:       e.Age,
		Position:  e.Position,
		CompanyID: companyID,
	}
}

type EmployeeForUpdate struct {
	Name     string `json:"name" validate:"required,max=30"`
	Age      int    `json:"age" validate:"required,gte=18,lte=2147483647"`
	Position string `json:"position" validate:"required,max=20"`
}

func (e EmployeeForUpdate) Apply(employee Employee) Employee {
	employee.Name = e.Name
	employee.Age = e.Age
	employee.Position = e.Position
	return employee
}

const (
	DefaultMinAge = 0
	DefaultMaxAge = math.MaxInt32
)

// EmployeeFilter narrows and orders a company's employees before paging.
type EmployeeFilter struct {
	MinAge     int
	MaxAge     int
	SearchTerm string
	OrderBy    []SortKey
}

func (f EmployeeFilter) Matches(employee Employee) bool {
	return employee.Age >= f.MinAge && employee.Age <= f.MaxAge && containsFold(employee.Name, f.SearchTerm)
}

type EmployeeParameters struct {
	paging.Params
	EmployeeFilter
	Fields FieldSet
}

func ParseEmployeeParameters(values url.Values, limits paging.Limits) (params EmployeeParameters, err error) {
	parser := paging.NewParser(values)
	params.Params = parser.Page(limits)
	// ages are stored as int4
	params.MinAge = parser.IntAtMost("minAge", DefaultMinAge, 0, DefaultMaxAge)
	params.MaxAge = parser.IntAtMost("maxAge", DefaultMaxAge, 0, DefaultMaxAge)
	if params.MaxAge < params.MinAge {
		parser.Fail("maxAge", "max age can't be less than min age")
	}
	params.SearchTerm = parser.String("searchTerm", "")
	params.OrderBy = ParseOrderBy(parser.String("orderBy", ""), EmployeeSortFields, DefaultEmployeeOrder)
	params.Fields = ParseFieldSet(parser.String("fields", ""))
	err = parser.Err()
	return
}

type FetchEmployeeParams struct {
	CompanyID  uuid.UUID
	EmployeeID uuid.UUID
}

type EmployeeRepository interface {
	ListEmployees(ctx context.Context, companyID uuid.UUID, filter EmployeeFilter) ([]Employee, error)
	FetchEmployee(ctx context.Context, params FetchEmployeeParams) (Employee, error)
	InsertEmployee(ctx context.Context, employee Employee) error
	UpdateEmployee(ctx context.Context, employee Employee) error
	DeleteEmployee(ctx context.Context, params FetchEmployeeParams) error
}
