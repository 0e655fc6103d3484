package shaping

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// KeyField is the name of the field every shaped entity carries.
const KeyField = "id"

var (
	ErrNotStruct = errors.New("shaping: type is not a struct")
	ErrNoKey     = errors.New("shaping: type has no id field")
)

type accessor struct {
	name  string
	index []int
	get   func(reflect.Value) Value
}

type fieldTable struct {
	fields []accessor
	byName map[string]int
	key    int
}

func (table *fieldTable) lookup(name string) (int, bool) {
	i, ok := table.byName[strings.ToLower(name)]
	return i, ok
}

// tables memoizes one fieldTable per struct type. Concurrent builders for the
// same type compute identical tables, so whichever is stored first wins.
var tables sync.Map

func tableFor(t reflect.Type) (*fieldTable, error) {
	if cached, ok := tables.Load(t); ok {
		return cached.(*fieldTable), nil
	}
	table, err := buildTable(t)
	if err != nil {
		return nil, err
	}
	stored, _ := tables.LoadOrStore(t, table)
	return stored.(*fieldTable), nil
}

func buildTable(t reflect.Type) (*fieldTable, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v", ErrNotStruct, t)
	}
	table := &fieldTable{byName: make(map[string]int), key: -1}
	for _, field := range reflect.VisibleFields(t) {
		if field.Anonymous || !field.IsExported() {
			continue
		}
		name, ok := fieldName(field)
		if !ok {
			continue
		}
		folded := strings.ToLower(name)
		if _, dup := table.byName[folded]; dup {
			continue
		}
		table.byName[folded] = len(table.fields)
		if folded == KeyField {
			table.key = len(table.fields)
		}
		table.fields = append(table.fields, accessor{
			name:  name,
			index: field.Index,
			get:   converter(field.Type),
		})
	}
	if table.key < 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoKey, t)
	}
	return table, nil
}

func fieldName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, true
}
