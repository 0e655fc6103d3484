package service

import (
	"errors"
	"fmt"

	"github.com/technopolitica/company-employees/internal/domain"
)

var (
	ErrCompanyNotFound  = fmt.Errorf("company %w", domain.ErrNotFound)
	ErrEmployeeNotFound = fmt.Errorf("employee %w", domain.ErrNotFound)
)

// notFoundAs swaps a repository ErrNotFound for the more specific sentinel.
func notFoundAs(err error, sentinel error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return sentinel
	}
	return err
}
