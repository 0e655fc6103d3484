package db

import (
	"context"
	"fmt"

	_ "embed"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/technopolitica/company-employees/internal/domain"
)

func collectCompanies(rows pgx.Rows) (companies []domain.Company, err error) {
	companyDTOs, err := pgx.CollectRows(rows, pgx.RowToStructByName[CompanyDTO])
	if err != nil {
		err = fmt.Errorf("failed to map row to CompanyDTO: %w", err)
		return
	}
	companies = make([]domain.Company, 0, len(companyDTOs))
	for _, dto := range companyDTOs {
		companies = append(companies, companyFromDTO(dto))
	}
	return
}

//go:embed queries/list-companies.sql
var listCompaniesQuery string

func (repo Repository) ListCompanies(ctx context.Context) (companies []domain.Company, err error) {
	rows, err := repo.Query(ctx, listCompaniesQuery)
	if err != nil {
		err = fmt.Errorf("failed to execute query: %w", err)
		return
	}
	return collectCompanies(rows)
}

//go:embed queries/list-companies-by-id.sql
var listCompaniesByIDQuery string

func (repo Repository) ListCompaniesByID(ctx context.Context, ids []uuid.UUID) (companies []domain.Company, err error) {
	textIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		textIDs = append(textIDs, id.String())
	}
	rows, err := repo.Query(ctx, listCompaniesByIDQuery, pgx.NamedArgs{"ids": textIDs})
	if err != nil {
		err = fmt.Errorf("failed to execute query: %w", err)
		return
	}
	return collectCompanies(rows)
}

//go:embed queries/fetch-company.sql
var fetchCompanyQuery string

func (repo Repository) FetchCompany(ctx context.Context, id uuid.UUID) (company domain.Company, err error) {
	rows, err := repo.Query(ctx, fetchCompanyQuery, pgx.NamedArgs{"id": id})
	if err != nil {
		err = fmt.Errorf("failed to execute query: %w", err)
		return
	}
	companies, err := collectCompanies(rows)
	if err != nil {
		return
	}
	if len(companies) == 0 {
		err = ErrNotFound
		return
	}
	company = companies[0]
	return
}

//go:embed queries/insert-company.sql
var insertCompanyQuery string

func (repo Repository) InsertCompany(ctx context.Context, company domain.Company, employees []domain.Employee) error {
	return repo.WithinTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, insertCompanyQuery, pgx.NamedArgs{
			"id":      company.ID,
			"name":    company.Name,
			"address": company.Address,
			"country": company.Country,
		})
		if err != nil {
			return classify(err)
		}
		for _, employee := range employees {
			employee.CompanyID = company.ID
			err = insertEmployee(ctx, tx, employee)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

//go:embed queries/update-company.sql
var updateCompanyQuery string

func (repo Repository) UpdateCompany(ctx context.Context, company domain.Company) error {
	res, err := repo.Exec(ctx, updateCompanyQuery, pgx.NamedArgs{
		"id":      company.ID,
		"name":    company.Name,
		"address": company.Address,
		"country": company.Country,
	})
	if err == nil && res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return err
}

//go:embed queries/delete-company.sql
var deleteCompanyQuery string

func (repo Repository) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	res, err := repo.Exec(ctx, deleteCompanyQuery, pgx.NamedArgs{"id": id})
	if err == nil && res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return err
}
