package db

import (
	"github.com/google/uuid"
	"github.com/technopolitica/company-employees/internal/domain"
)

type CompanyDTO struct {
	ID      uuid.UUID `db:"id"`
	Name    string    `db:"name"`
	Address string    `db:"address"`
	Country string    `db:"country"`
}

func companyFromDTO(dto CompanyDTO) domain.Company {
	return domain.Company{
		ID:      dto.ID,
		Name:    dto.Name,
		Address: dto.Address,
		Country: dto.Country,
	}
}

type EmployeeDTO struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Age       int32     `db:"age"`
	Position  string    `db:"position"`
	CompanyID uuid.UUID `db:"company_id"`
}

func employeeFromDTO(dto EmployeeDTO) domain.Employee {
	return domain.Employee{
		ID:        dto.ID,
		Name:      dto.Name,
		Age:       int(dto.Age),
		Position:  dto.Position,
		CompanyID: dto.CompanyID,
	}
}

func dtoFromEmployee(employee domain.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:        employee.ID,
		Name:      employee.Name,
		Age:       int32(employee.Age),
		Position:  employee.Position,
		CompanyID: employee.CompanyID,
	}
}
