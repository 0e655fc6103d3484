// Package shaping projects records onto a client-selected subset of their
// fields.
//
// Available fields are a struct's exported fields under their JSON names.
// Requested names are matched case-insensitively, unknown names are ignored,
// and the id field is always present in the result.
package shaping

import (
	"reflect"

	"github.com/technopolitica/company-employees/internal/domain"
)

type Shaper[T any] struct {
	table *fieldTable
}

func New[T any]() (*Shaper[T], error) {
	table, err := tableFor(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return &Shaper[T]{table: table}, nil
}

func MustNew[T any]() *Shaper[T] {
	shaper, err := New[T]()
	if err != nil {
		panic(err)
	}
	return shaper
}

// Fields lists every available field name in declaration order.
func (s *Shaper[T]) Fields() []string {
	names := make([]string, 0, len(s.table.fields))
	for _, field := range s.table.fields {
		names = append(names, field.name)
	}
	return names
}

// selection resolves requested names to table positions in output order.
func (s *Shaper[T]) selection(requested domain.FieldSet) []int {
	if requested.IsEmpty() {
		all := make([]int, len(s.table.fields))
		for i := range all {
			all[i] = i
		}
		return all
	}
	positions := make([]int, 0, len(requested)+1)
	hasKey := false
	for _, name := range requested {
		i, ok := s.table.lookup(name)
		if !ok {
			continue
		}
		if i == s.table.key {
			hasKey = true
		}
		positions = append(positions, i)
	}
	if !hasKey {
		positions = append([]int{s.table.key}, positions...)
	}
	return positions
}

func (s *Shaper[T]) shape(rv reflect.Value, positions []int) Entity {
	entity := Entity{
		id:     s.table.fields[s.table.key].get(rv.FieldByIndex(s.table.fields[s.table.key].index)),
		fields: make([]Field, 0, len(positions)),
	}
	for _, i := range positions {
		field := s.table.fields[i]
		if i == s.table.key {
			entity.fields = append(entity.fields, Field{Name: field.name, Value: entity.id})
			continue
		}
		entity.fields = append(entity.fields, Field{Name: field.name, Value: field.get(rv.FieldByIndex(field.index))})
	}
	return entity
}

func (s *Shaper[T]) Shape(entity T, fields domain.FieldSet) Entity {
	return s.shape(reflect.ValueOf(entity), s.selection(fields))
}

func (s *Shaper[T]) ShapeAll(entities []T, fields domain.FieldSet) []Entity {
	positions := s.selection(fields)
	shaped := make([]Entity, 0, len(entities))
	for _, entity := range entities {
		shaped = append(shaped, s.shape(reflect.ValueOf(entity), positions))
	}
	return shaped
}
