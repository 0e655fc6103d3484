package memstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/technopolitica/company-employees/internal/domain"
)

var (
	ITSolutionsID    = uuid.MustParse("c9d4c053-49b6-410c-bc78-2d54a9991870")
	AdminSolutionsID = uuid.MustParse("3d490a70-94ce-4d15-9494-5248280c2ce3")
)

// SeedCompanies mirrors the rows inserted by the seed migration.
func SeedCompanies() []domain.Company {
	return []domain.Company{
		{ID: ITSolutionsID, Name: "IT_Solutions Ltd", Address: "583 Wall Dr. Gwynn Oak, MD 21207", Country: "USA"},
		{ID: AdminSolutionsID, Name: "Admin_Solutions Ltd", Address: "312 Forest Avenue, BF 923", Country: "USA"},
	}
}

func SeedEmployees() []domain.Employee {
	return []domain.Employee{
		{ID: uuid.MustParse("80abbca8-664d-4b20-b5de-024705497d4a"), Name: "Sam Raiden", Age: 26, Position: "Software developer", CompanyID: ITSolutionsID},
		{ID: uuid.MustParse("86dba8c0-d178-41e7-938c-ed49778fb52a"), Name: "Jana McLeaf", Age: 30, Position: "Software developer", CompanyID: ITSolutionsID},
		{ID: uuid.MustParse("021ca3c1-0deb-4afd-ae94-2159a8479811"), Name: "Kane Miller", Age: 35, Position: "Administrator", CompanyID: AdminSolutionsID},
	}
}

// Seed fills the store with the sample companies and employees.
func (s *Store) Seed(ctx context.Context) (err error) {
	employees := SeedEmployees()
	for _, company := range SeedCompanies() {
		var owned []domain.Employee
		for _, employee := range employees {
			if employee.CompanyID == company.ID {
				owned = append(owned, employee)
			}
		}
		err = s.InsertCompany(ctx, company, owned)
		if err != nil {
			return
		}
	}
	return
}
