package domain

import (
	"encoding/json"
	"strings"

	"golang.org/x/exp/slices"
)

// FieldSet is an ordered list of field names in which no two names are equal
// under case folding. The first spelling of a name wins.
type FieldSet []string

func NewFieldSet(names ...string) FieldSet {
	fields := make(FieldSet, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || fields.Contains(name) {
			continue
		}
		fields = append(fields, name)
	}
	return fields
}

// ParseFieldSet splits a comma separated list such as "name, age".
func ParseFieldSet(raw string) FieldSet {
	if strings.TrimSpace(raw) == "" {
		return FieldSet{}
	}
	return NewFieldSet(strings.Split(raw, ",")...)
}

func (fields FieldSet) Contains(name string) bool {
	return slices.IndexFunc(fields, func(field string) bool {
		return strings.EqualFold(field, name)
	}) >= 0
}

func (fields FieldSet) IsEmpty() bool {
	return len(fields) == 0
}

func (fields FieldSet) String() string {
	return strings.Join(fields, ",")
}

func (fields *FieldSet) UnmarshalJSON(data []byte) (err error) {
	var names []string
	err = json.Unmarshal(data, &names)
	if err != nil {
		return
	}
	*fields = NewFieldSet(names...)
	return
}
