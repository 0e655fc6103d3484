// Package memstore keeps companies and employees in process memory. It backs
// the server when no database is configured and the service tests.
package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/technopolitica/company-employees/internal/domain"
	"golang.org/x/exp/slices"
)

type Store struct {
	mu        sync.RWMutex
	companies map[uuid.UUID]domain.Company
	employees map[uuid.UUID]domain.Employee
}

var (
	_ domain.CompanyRepository  = (*Store)(nil)
	_ domain.EmployeeRepository = (*Store)(nil)
)

func New() *Store {
	return &Store{
		companies: make(map[uuid.UUID]domain.Company),
		employees: make(map[uuid.UUID]domain.Employee),
	}
}

func (s *Store) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	companies := make([]domain.Company, 0, len(s.companies))
	for _, company := range s.companies {
		companies = append(companies, company)
	}
	sortCompanies(companies)
	return companies, nil
}

func (s *Store) ListCompaniesByID(ctx context.Context, ids []uuid.UUID) ([]domain.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[uuid.UUID]bool, len(ids))
	companies := make([]domain.Company, 0, len(ids))
	for _, id := range ids {
		company, ok := s.companies[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		companies = append(companies, company)
	}
	sortCompanies(companies)
	return companies, nil
}

func (s *Store) FetchCompany(ctx context.Context, id uuid.UUID) (domain.Company, error) {
	if err := ctx.Err(); err != nil {
		return domain.Company{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	company, ok := s.companies[id]
	if !ok {
		return domain.Company{}, domain.ErrNotFound
	}
	return company, nil
}

// InsertCompany stores the company together with its employees, all or nothing.
func (s *Store) InsertCompany(ctx context.Context, company domain.Company, employees []domain.Employee) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[company.ID]; ok {
		return domain.ErrConflict
	}
	for _, employee := range employees {
		if _, ok := s.employees[employee.ID]; ok {
			return domain.ErrConflict
		}
	}
	s.companies[company.ID] = company
	for _, employee := range employees {
		employee.CompanyID = company.ID
		s.employees[employee.ID] = employee
	}
	return nil
}

func (s *Store) UpdateCompany(ctx context.Context, company domain.Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[company.ID]; !ok {
		return domain.ErrNotFound
	}
	s.companies[company.ID] = company
	return nil
}

// DeleteCompany removes the company and every employee it owns.
func (s *Store) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.companies, id)
	for employeeID, employee := range s.employees {
		if employee.CompanyID == id {
			delete(s.employees, employeeID)
		}
	}
	return nil
}

func (s *Store) ListEmployees(ctx context.Context, companyID uuid.UUID, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	employees := make([]domain.Employee, 0)
	for _, employee := range s.employees {
		if employee.CompanyID == companyID && filter.Matches(employee) {
			employees = append(employees, employee)
		}
	}
	slices.SortStableFunc(employees, func(a, b domain.Employee) bool {
		return domain.CompareEmployees(a, b, filter.OrderBy) < 0
	})
	return employees, nil
}

func (s *Store) FetchEmployee(ctx context.Context, params domain.FetchEmployeeParams) (domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return domain.Employee{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	employee, ok := s.employees[params.EmployeeID]
	if !ok || employee.CompanyID != params.CompanyID {
		return domain.Employee{}, domain.ErrNotFound
	}
	return employee, nil
}

func (s *Store) InsertEmployee(ctx context.Context, employee domain.Employee) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[employee.CompanyID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := s.employees[employee.ID]; ok {
		return domain.ErrConflict
	}
	s.employees[employee.ID] = employee
	return nil
}

func (s *Store) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.employees[employee.ID]
	if !ok || current.CompanyID != employee.CompanyID {
		return domain.ErrNotFound
	}
	s.employees[employee.ID] = employee
	return nil
}

func (s *Store) DeleteEmployee(ctx context.Context, params domain.FetchEmployeeParams) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	employee, ok := s.employees[params.EmployeeID]
	if !ok || employee.CompanyID != params.CompanyID {
		return domain.ErrNotFound
	}
	delete(s.employees, params.EmployeeID)
	return nil
}

func sortCompanies(companies []domain.Company) {
	slices.SortFunc(companies, func(a, b domain.Company) bool {
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID.String() < b.ID.String()
	})
}
