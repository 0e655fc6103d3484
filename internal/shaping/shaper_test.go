package shaping

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/technopolitica/company-employees/internal/domain"
)

type gadget struct {
	ID        int        `json:"id"`
	Label     string     `json:"label"`
	Weight    float64    `json:"weight"`
	Active    bool       `json:"active"`
	Built     time.Time  `json:"built"`
	Retired   *time.Time `json:"retired"`
	Untagged  string
	internal  string
	Skipped   string `json:"-"`
	Anything  any    `json:"anything"`
	OwnerID   uuid.UUID
	LabelDupe string `json:"LABEL"`
}

type keyless struct {
	Name string `json:"name"`
}

var samRaiden = domain.Employee{
	ID:        uuid.MustParse("80abbca8-664d-4b20-b5de-024705497d4a"),
	Name:      "Sam Raiden",
	Age:       26,
	Position:  "Software developer",
	CompanyID: uuid.MustParse("c9d4c053-49b6-410c-bc78-2d54a9991870"),
}

var _ = Describe("Shaper", func() {
	var shaper *Shaper[domain.Employee]

	BeforeEach(func() {
		shaper = MustNew[domain.Employee]()
	})

	It("lists the available fields in declaration order", func() {
		Expect(shaper.Fields()).To(Equal([]string{"id", "name", "age", "position"}))
	})

	It("returns every field when none are requested", func() {
		entity := shaper.Shape(samRaiden, domain.FieldSet{})
		Expect(json.Marshal(entity)).To(MatchJSON(`{
			"id": "80abbca8-664d-4b20-b5de-024705497d4a",
			"name": "Sam Raiden",
			"age": 26,
			"position": "Software developer"
		}`))
		Expect(entity.Names()).To(Equal([]string{"id", "name", "age", "position"}))
	})

	It("returns the requested fields with the id first", func() {
		entity := shaper.Shape(samRaiden, domain.ParseFieldSet("name,age"))
		Expect(entity.Names()).To(Equal([]string{"id", "name", "age"}))
	})

	It("keeps the requested order", func() {
		entity := shaper.Shape(samRaiden, domain.ParseFieldSet("position,id,name"))
		Expect(entity.Names()).To(Equal([]string{"position", "id", "name"}))

		data, err := json.Marshal(entity)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(`{"position":"Software developer","id":"80abbca8-664d-4b20-b5de-024705497d4a","name":"Sam Raiden"}`))
	})

	It("matches requested names case-insensitively and emits canonical names", func() {
		entity := shaper.Shape(samRaiden, domain.ParseFieldSet("NAME,Age"))
		Expect(entity.Names()).To(Equal([]string{"id", "name", "age"}))
	})

	It("drops unknown names", func() {
		entity := shaper.Shape(samRaiden, domain.ParseFieldSet("salary,name"))
		Expect(entity.Names()).To(Equal([]string{"id", "name"}))
	})

	It("returns only the id when nothing requested is known", func() {
		entity := shaper.Shape(samRaiden, domain.ParseFieldSet("salary,bonus"))
		Expect(json.Marshal(entity)).To(MatchJSON(`{"id": "80abbca8-664d-4b20-b5de-024705497d4a"}`))
	})

	It("never exposes fields hidden from JSON", func() {
		entity := shaper.Shape(samRaiden, domain.ParseFieldSet("companyId,CompanyID"))
		Expect(entity.Names()).To(Equal([]string{"id"}))
	})

	It("exposes the id and typed values", func() {
		entity := shaper.Shape(samRaiden, domain.FieldSet{})
		Expect(entity.ID().String()).To(Equal("80abbca8-664d-4b20-b5de-024705497d4a"))

		age, ok := entity.Get("AGE")
		Expect(ok).To(BeTrue())
		Expect(age.Kind()).To(Equal(KindInt))
		Expect(age.Interface()).To(Equal(int64(26)))
	})

	It("shapes many entities with one selection", func() {
		other := samRaiden
		other.ID = uuid.MustParse("86dba8c0-d178-41e7-938c-ed49778fb52a")
		other.Name = "Jana McLeaf"

		entities := shaper.ShapeAll([]domain.Employee{samRaiden, other}, domain.ParseFieldSet("name"))
		Expect(json.Marshal(entities)).To(MatchJSON(`[
			{"id": "80abbca8-664d-4b20-b5de-024705497d4a", "name": "Sam Raiden"},
			{"id": "86dba8c0-d178-41e7-938c-ed49778fb52a", "name": "Jana McLeaf"}
		]`))
	})

	It("returns an empty, non-nil slice for no entities", func() {
		entities := shaper.ShapeAll(nil, domain.FieldSet{})
		Expect(entities).NotTo(BeNil())
		Expect(entities).To(BeEmpty())
	})

	It("is deterministic", func() {
		first, err := json.Marshal(shaper.Shape(samRaiden, domain.ParseFieldSet("age,name")))
		Expect(err).NotTo(HaveOccurred())
		second, err := json.Marshal(MustNew[domain.Employee]().Shape(samRaiden, domain.ParseFieldSet("age,name")))
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
	})
})

var _ = Describe("field tables", func() {
	It("rejects types without an id", func() {
		_, err := New[keyless]()
		Expect(err).To(MatchError(ErrNoKey))
	})

	It("rejects non-struct types", func() {
		_, err := New[string]()
		Expect(err).To(MatchError(ErrNotStruct))
	})

	It("derives names from JSON tags and skips hidden fields", func() {
		shaper, err := New[gadget]()
		Expect(err).NotTo(HaveOccurred())
		Expect(shaper.Fields()).To(Equal([]string{
			"id", "label", "weight", "active", "built", "retired", "Untagged", "anything", "OwnerID",
		}))
	})

	It("converts each kind of value", func() {
		built := time.Date(2023, 7, 1, 12, 0, 0, 0, time.UTC)
		owner := uuid.MustParse("3d490a70-94ce-4d15-9494-5248280c2ce3")
		shaper := MustNew[gadget]()
		entity := shaper.Shape(gadget{
			ID:       7,
			Label:    "lamp",
			Weight:   1.5,
			Active:   true,
			Built:    built,
			Anything: "loose",
			OwnerID:  owner,
		}, domain.FieldSet{})

		Expect(json.Marshal(entity)).To(MatchJSON(`{
			"id": 7,
			"label": "lamp",
			"weight": 1.5,
			"active": true,
			"built": "2023-07-01T12:00:00Z",
			"retired": null,
			"Untagged": "",
			"anything": "loose",
			"OwnerID": "3d490a70-94ce-4d15-9494-5248280c2ce3"
		}`))

		retired, _ := entity.Get("retired")
		Expect(retired.IsNull()).To(BeTrue())
		Expect(entity.Map()).To(HaveKeyWithValue("label", "lamp"))
	})

	It("builds each table once under concurrent use", func() {
		var wg sync.WaitGroup
		shapers := make([]*Shaper[domain.Employee], 16)
		for i := range shapers {
			wg.Add(1)
			go func(i int) {
				defer GinkgoRecover()
				defer wg.Done()
				shapers[i] = MustNew[domain.Employee]()
			}(i)
		}
		wg.Wait()
		for _, shaper := range shapers {
			Expect(shaper.table).To(BeIdenticalTo(shapers[0].table))
		}
	})
})
