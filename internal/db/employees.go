package db

import (
	"context"
	"fmt"

	_ "embed"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/technopolitica/company-employees/internal/domain"
)

//go:embed queries/list-employees.sql
var listEmployeesQuery string

// ListEmployees returns every employee of the company that passes filter, in
// filter order. Paging happens above the repository.
func (repo Repository) ListEmployees(ctx context.Context, companyID uuid.UUID, filter domain.EmployeeFilter) (employees []domain.Employee, err error) {
	query := withOrderBy(listEmployeesQuery, filter.OrderBy, employeeColumns)
	rows, err := repo.Query(ctx, query, pgx.NamedArgs{
		"company_id":  companyID,
		"min_age":     filter.MinAge,
		"max_age":     filter.MaxAge,
		"search_term": filter.SearchTerm,
	})
	if err != nil {
		err = fmt.Errorf("failed to execute query: %w", err)
		return
	}
	employeeDTOs, err := pgx.CollectRows(rows, pgx.RowToStructByName[EmployeeDTO])
	if err != nil {
		err = fmt.Errorf("failed to map row to EmployeeDTO: %w", err)
		return
	}
	employees = make([]domain.Employee, 0, len(employeeDTOs))
	for _, dto := range employeeDTOs {
		employees = append(employees, employeeFromDTO(dto))
	}
	return
}

//go:embed queries/fetch-employee.sql
var fetchEmployeeQuery string

func (repo Repository) FetchEmployee(ctx context.Context, params domain.FetchEmployeeParams) (employee domain.Employee, err error) {
	rows, err := repo.Query(ctx, fetchEmployeeQuery, pgx.NamedArgs{"id": params.EmployeeID, "company_id": params.CompanyID})
	if err != nil {
		err = fmt.Errorf("failed to execute query: %w", err)
		return
	}
	employeeDTOs, err := pgx.CollectRows(rows, pgx.RowToStructByName[EmployeeDTO])
	if err != nil {
		err = fmt.Errorf("failed to map row to EmployeeDTO: %w", err)
		return
	}
	if len(employeeDTOs) == 0 {
		err = ErrNotFound
		return
	}
	employee = employeeFromDTO(employeeDTOs[0])
	return
}

//go:embed queries/insert-employee.sql
var insertEmployeeQuery string

func insertEmployee(ctx context.Context, conn DBConnection, employee domain.Employee) error {
	dto := dtoFromEmployee(employee)
	_, err := conn.Exec(ctx, insertEmployeeQuery, pgx.NamedArgs{
		"id":         dto.ID,
		"name":       dto.Name,
		"age":        dto.Age,
		"position":   dto.Position,
		"company_id": dto.CompanyID,
	})
	return classify(err)
}

func (repo Repository) InsertEmployee(ctx context.Context, employee domain.Employee) error {
	return insertEmployee(ctx, repo.DBConnection, employee)
}

//go:embed queries/update-employee.sql
var updateEmployeeQuery string

func (repo Repository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	dto := dtoFromEmployee(employee)
	res, err := repo.Exec(ctx, updateEmployeeQuery, pgx.NamedArgs{
		"id":         dto.ID,
		"name":       dto.Name,
		"age":        dto.Age,
		"position":   dto.Position,
		"company_id": dto.CompanyID,
	})
	if err == nil && res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return err
}

//go:embed queries/delete-employee.sql
var deleteEmployeeQuery string

func (repo Repository) DeleteEmployee(ctx context.Context, params domain.FetchEmployeeParams) error {
	res, err := repo.Exec(ctx, deleteEmployeeQuery, pgx.NamedArgs{"id": params.EmployeeID, "company_id": params.CompanyID})
	if err == nil && res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return err
}
