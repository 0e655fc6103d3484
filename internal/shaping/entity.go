package shaping

import (
	"bytes"
	"encoding/json"
	"strings"
)

type Field struct {
	Name  string
	Value Value
}

// Entity is a projection of one source record: its id plus the selected
// fields in output order.
type Entity struct {
	id     Value
	fields []Field
}

func (e Entity) ID() Value {
	return e.id
}

func (e Entity) Len() int {
	return len(e.fields)
}

func (e Entity) Fields() []Field {
	return append([]Field(nil), e.fields...)
}

func (e Entity) Names() []string {
	names := make([]string, 0, len(e.fields))
	for _, field := range e.fields {
		names = append(names, field.Name)
	}
	return names
}

// Get looks a field up case-insensitively.
func (e Entity) Get(name string) (Value, bool) {
	for _, field := range e.fields {
		if strings.EqualFold(field.Name, name) {
			return field.Value, true
		}
	}
	return Value{}, false
}

// Map flattens the entity into a map, losing field order.
func (e Entity) Map() map[string]any {
	m := make(map[string]any, len(e.fields))
	for _, field := range e.fields {
		m[field.Name] = field.Value.Interface()
	}
	return m
}

func (e Entity) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range e.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(field.Name)
		if err != nil {
			return nil, err
		}
		value, err := field.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
