package domain

import (
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseOrderBy", func() {
	DescribeTable("parsing",
		func(orderBy string, expected []SortKey) {
			Expect(ParseOrderBy(orderBy, EmployeeSortFields, DefaultEmployeeOrder)).To(Equal(expected))
		},
		Entry("empty falls back to the default", "", []SortKey{{Field: "name"}}),
		Entry("single field", "age", []SortKey{{Field: "age"}}),
		Entry("descending", "age desc", []SortKey{{Field: "age", Descending: true}}),
		Entry("several clauses", "name desc, age", []SortKey{{Field: "name", Descending: true}, {Field: "age"}}),
		Entry("case-insensitive names", "AGE DESC", []SortKey{{Field: "age", Descending: true}}),
		Entry("unknown fields are skipped", "salary, position", []SortKey{{Field: "position"}}),
		Entry("only unknown fields fall back", "salary", []SortKey{{Field: "name"}}),
		Entry("repeated fields keep the first", "age desc, age", []SortKey{{Field: "age", Descending: true}}),
	)

	It("does not share the fallback slice", func() {
		keys := ParseOrderBy("", EmployeeSortFields, DefaultEmployeeOrder)
		keys[0].Descending = true
		Expect(DefaultEmployeeOrder[0].Descending).To(BeFalse())
	})
})

var _ = Describe("CompareEmployees", func() {
	lowID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	highID := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	It("orders by the first differing key", func() {
		a := Employee{ID: highID, Name: "Ann", Age: 40}
		b := Employee{ID: lowID, Name: "Bob", Age: 30}
		Expect(CompareEmployees(a, b, []SortKey{{Field: "name"}})).To(BeNumerically("<", 0))
		Expect(CompareEmployees(a, b, []SortKey{{Field: "age"}})).To(BeNumerically(">", 0))
		Expect(CompareEmployees(a, b, []SortKey{{Field: "age", Descending: true}})).To(BeNumerically("<", 0))
	})

	It("breaks ties by id", func() {
		a := Employee{ID: highID, Name: "Ann"}
		b := Employee{ID: lowID, Name: "Ann"}
		Expect(CompareEmployees(a, b, []SortKey{{Field: "name"}})).To(BeNumerically(">", 0))
	})
})
