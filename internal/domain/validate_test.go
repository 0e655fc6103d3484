package domain

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Validate", func() {
	It("accepts a valid employee", func() {
		Expect(Validate(EmployeeForCreation{Name: "Sam Raiden", Age: 26, Position: "Software developer"})).To(Succeed())
	})

	It("describes every failing field by its JSON name", func() {
		err := Validate(EmployeeForCreation{Name: "", Age: 12, Position: "Chief Executive Officer of Everything"})
		Expect(errors.Is(err, ErrValidation)).To(BeTrue())

		var validationErr *ValidationError
		Expect(errors.As(err, &validationErr)).To(BeTrue())
		Expect(validationErr.Details).To(ConsistOf(
			"name: is required",
			"age: must be at least 18",
			"position: must be at most 20 characters",
		))
	})

	It("rejects ages the store cannot hold", func() {
		age := math.MaxInt32
		age++
		var validationErr *ValidationError
		Expect(errors.As(Validate(EmployeeForUpdate{Name: "Sam", Age: age, Position: "Tester"}), &validationErr)).To(BeTrue())
		Expect(validationErr.Details).To(ConsistOf("age: must be at most 2147483647"))
	})

	It("validates nested employees of a company", func() {
		err := Validate(CompanyForCreation{
			Name:      "IT_Solutions Ltd",
			Address:   "583 Wall Dr. Gwynn Oak, MD 21207",
			Employees: []EmployeeForCreation{{Name: "Sam", Age: 26}},
		})
		var validationErr *ValidationError
		Expect(errors.As(err, &validationErr)).To(BeTrue())
		Expect(validationErr.Details).To(ConsistOf("employees[0].position: is required"))
	})
})
