package domain

import (
	"context"

	"github.com/google/uuid"
)

type Company struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
	Country string    `json:"country"`
}

func (c Company) FullAddress() string {
	if c.Country == "" {
		return c.Address
	}
	return c.Address + " " + c.Country
}

type CompanyForCreation struct {
	Name      string                `json:"name" validate:"required,max=60"`
	Address   string                `json:"address" validate:"required,max=60"`
	Country   string                `json:"country"`
	Employees []EmployeeForCreation `json:"employees,omitempty" validate:"dive"`
}

func (c CompanyForCreation) ToCompany(id uuid.UUID) Company {
	return Company{
		ID:      id,
		Name:    c.Name,
		Address: c.Address,
		Country: c.Country,
	}
}

type CompanyForUpdate struct {
	Name    string `json:"name" validate:"required,max=60"`
	Address string `json:"address" validate:"required,max=60"`
	Country string `json:"country"`
}

func (c CompanyForUpdate) Apply(company Company) Company {
	company.Name = c.Name
	company.Address = c.Address
	company.Country = c.Country
	return company
}

type CompanyRepository interface {
	ListCompanies(ctx context.Context) ([]Company, error)
	ListCompaniesByID(ctx context.Context, ids []uuid.UUID) ([]Company, error)
	FetchCompany(ctx context.Context, id uuid.UUID) (Company, error)
	InsertCompany(ctx context.Context, company Company, employees []Employee) error
	UpdateCompany(ctx context.Context, company Company) error
	DeleteCompany(ctx context.Context, id uuid.UUID) error
}
