package service

import (
	"context"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"
	"github.com/technopolitica/company-employees/internal/domain"
	"github.com/technopolitica/company-employees/internal/hateoas"
	"github.com/technopolitica/company-employees/internal/paging"
	"github.com/technopolitica/company-employees/internal/shaping"
)

// LinkParameters carries what the transport knows about the request that the
// pipeline needs for link generation.
type LinkParameters struct {
	Capability hateoas.Capability
	// Collection is the absolute URL of the list request, query included.
	Collection domain.URL
}

type Employees struct {
	companies domain.CompanyRepository
	employees domain.EmployeeRepository
	shaper    *shaping.Shaper[domain.Employee]
}

func NewEmployees(companies domain.CompanyRepository, employees domain.EmployeeRepository) *Employees {
	return &Employees{
		companies: companies,
		employees: employees,
		shaper:    shaping.MustNew[domain.Employee](),
	}
}

func (s *Employees) checkCompany(ctx context.Context, companyID uuid.UUID) error {
	_, err := s.companies.FetchCompany(ctx, companyID)
	if err != nil {
		return notFoundAs(err, ErrCompanyNotFound)
	}
	return nil
}

// ListEmployees returns one page of a company's employees, projected onto
// params.Fields and decorated with links when the client negotiated them.
func (s *Employees) ListEmployees(ctx context.Context, companyID uuid.UUID, params domain.EmployeeParameters, links LinkParameters) (response hateoas.Response, meta paging.MetaData, err error) {
	err = s.checkCompany(ctx, companyID)
	if err != nil {
		return
	}
	employees, err := s.employees.ListEmployees(ctx, companyID, params.EmployeeFilter)
	if err != nil {
		err = fmt.Errorf("failed to list employees: %w", err)
		return
	}
	page := paging.Slice(employees, params.Params)
	shaped := s.shaper.ShapeAll(page.Items, params.Fields)
	catalog := hateoas.EmployeeLinks{Collection: links.Collection, Fields: params.Fields}
	response = hateoas.Decide(links.Capability, shaped, page.MetaData, catalog)
	meta = page.MetaData
	return
}

func (s *Employees) GetEmployee(ctx context.Context, companyID uuid.UUID, id uuid.UUID, fields domain.FieldSet) (entity shaping.Entity, err error) {
	err = s.checkCompany(ctx, companyID)
	if err != nil {
		return
	}
	employee, err := s.employees.FetchEmployee(ctx, domain.FetchEmployeeParams{CompanyID: companyID, EmployeeID: id})
	if err != nil {
		err = notFoundAs(err, ErrEmployeeNotFound)
		return
	}
	entity = s.shaper.Shape(employee, fields)
	return
}

func (s *Employees) CreateEmployee(ctx context.Context, companyID uuid.UUID, payload domain.EmployeeForCreation) (employee domain.Employee, err error) {
	err = domain.Validate(payload)
	if err != nil {
		return
	}
	err = s.checkCompany(ctx, companyID)
	if err != nil {
		return
	}
	employee = payload.ToEmployee(uuid.New(), companyID)
	err = s.employees.InsertEmployee(ctx, employee)
	if err != nil {
		err = fmt.Errorf("failed to insert employee: %w", notFoundAs(err, ErrCompanyNotFound))
	}
	return
}

func (s *Employees) UpdateEmployee(ctx context.Context, companyID uuid.UUID, id uuid.UUID, payload domain.EmployeeForUpdate) (err error) {
	err = domain.Validate(payload)
	if err != nil {
		return
	}
	err = s.checkCompany(ctx, companyID)
	if err != nil {
		return
	}
	employee, err := s.employees.FetchEmployee(ctx, domain.FetchEmployeeParams{CompanyID: companyID, EmployeeID: id})
	if err != nil {
		err = notFoundAs(err, ErrEmployeeNotFound)
		return
	}
	err = s.employees.UpdateEmployee(ctx, payload.Apply(employee))
	if err != nil {
		err = notFoundAs(err, ErrEmployeeNotFound)
	}
	return
}

// PatchEmployee applies a JSON Patch document to the updatable fields of an
// employee and stores the result if it still validates.
func (s *Employees) PatchEmployee(ctx context.Context, companyID uuid.UUID, id uuid.UUID, patch jsonpatch.Patch) (err error) {
	err = s.checkCompany(ctx, companyID)
	if err != nil {
		return
	}
	employee, err := s.employees.FetchEmployee(ctx, domain.FetchEmployeeParams{CompanyID: companyID, EmployeeID: id})
	if err != nil {
		err = notFoundAs(err, ErrEmployeeNotFound)
		return
	}
	update, err := employee.ForUpdate().Patch(patch)
	if err != nil {
		return
	}
	err = domain.Validate(update)
	if err != nil {
		return
	}
	err = s.employees.UpdateEmployee(ctx, update.Apply(employee))
	if err != nil {
		err = notFoundAs(err, ErrEmployeeNotFound)
	}
	return
}

func (s *Employees) DeleteEmployee(ctx context.Context, companyID uuid.UUID, id uuid.UUID) (err error) {
	err = s.checkCompany(ctx, companyID)
	if err != nil {
		return
	}
	err = s.employees.DeleteEmployee(ctx, domain.FetchEmployeeParams{CompanyID: companyID, EmployeeID: id})
	if err != nil {
		err = notFoundAs(err, ErrEmployeeNotFound)
	}
	return
}
