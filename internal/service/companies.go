package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/technopolitica/company-employees/internal/domain"
)

type Companies struct {
	repo domain.CompanyRepository
}

func NewCompanies(repo domain.CompanyRepository) *Companies {
	return &Companies{repo: repo}
}

func (s *Companies) GetAll(ctx context.Context) (companies []domain.Company, err error) {
	companies, err = s.repo.ListCompanies(ctx)
	if err != nil {
		err = fmt.Errorf("failed to list companies: %w", err)
	}
	return
}

// GetByIDs fails with ErrCompanyNotFound unless every id resolves.
func (s *Companies) GetByIDs(ctx context.Context, ids []uuid.UUID) (companies []domain.Company, err error) {
	companies, err = s.repo.ListCompaniesByID(ctx, ids)
	if err != nil {
		err = fmt.Errorf("failed to list companies by id: %w", err)
		return
	}
	if len(companies) != len(uniqueIDs(ids)) {
		err = ErrCompanyNotFound
		companies = nil
	}
	return
}

func (s *Companies) Get(ctx context.Context, id uuid.UUID) (company domain.Company, err error) {
	company, err = s.repo.FetchCompany(ctx, id)
	if err != nil {
		err = notFoundAs(err, ErrCompanyNotFound)
	}
	return
}

func (s *Companies) Create(ctx context.Context, payload domain.CompanyForCreation) (company domain.Company, employees []domain.Employee, err error) {
	err = domain.Validate(payload)
	if err != nil {
		return
	}
	company = payload.ToCompany(uuid.New())
	employees = make([]domain.Employee, 0, len(payload.Employees))
	for _, employee := range payload.Employees {
		employees = append(employees, employee.ToEmployee(uuid.New(), company.ID))
	}
	err = s.repo.InsertCompany(ctx, company, employees)
	if err != nil {
		err = fmt.Errorf("failed to insert company: %w", err)
	}
	return
}

func (s *Companies) Update(ctx context.Context, id uuid.UUID, payload domain.CompanyForUpdate) (err error) {
	err = domain.Validate(payload)
	if err != nil {
		return
	}
	company, err := s.Get(ctx, id)
	if err != nil {
		return
	}
	err = s.repo.UpdateCompany(ctx, payload.Apply(company))
	if err != nil {
		err = notFoundAs(err, ErrCompanyNotFound)
	}
	return
}

func (s *Companies) Delete(ctx context.Context, id uuid.UUID) (err error) {
	err = s.repo.DeleteCompany(ctx, id)
	if err != nil {
		err = notFoundAs(err, ErrCompanyNotFound)
	}
	return
}

func uniqueIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
