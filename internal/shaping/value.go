package shaping

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "null"
	}
}

// Value is a single projected field value. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
	b    bool
	t    time.Time
}

func Null() Value                { return Value{} }
func StringValue(s string) Value { return Value{kind: KindString, str: s} }
func IntValue(i int64) Value     { return Value{kind: KindInt, i: i} }
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }
func BoolValue(b bool) Value     { return Value{kind: KindBool, b: b} }
func TimeValue(t time.Time) Value {
	return Value{kind: KindTime, t: t}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Interface returns the value as nil, string, int64, float64, bool or time.Time.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return v.t.Format(time.RFC3339Nano)
	default:
		return ""
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// converter returns the function that turns a field of type t into a Value.
// It is resolved once per field when the field table is built.
func converter(t reflect.Type) func(reflect.Value) Value {
	switch {
	case t == timeType:
		return func(rv reflect.Value) Value { return TimeValue(rv.Interface().(time.Time)) }
	case t.Kind() == reflect.Pointer:
		elem := converter(t.Elem())
		return func(rv reflect.Value) Value {
			if rv.IsNil() {
				return Null()
			}
			return elem(rv.Elem())
		}
	case t.Kind() == reflect.Interface:
		// the dynamic type is only known per value
		return func(rv reflect.Value) Value {
			if rv.IsNil() {
				return Null()
			}
			elem := rv.Elem()
			return converter(elem.Type())(elem)
		}
	case t.Implements(stringerType):
		return func(rv reflect.Value) Value { return StringValue(rv.Interface().(fmt.Stringer).String()) }
	}
	switch t.Kind() {
	case reflect.String:
		return func(rv reflect.Value) Value { return StringValue(rv.String()) }
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(rv reflect.Value) Value { return IntValue(rv.Int()) }
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(rv reflect.Value) Value { return IntValue(int64(rv.Uint())) }
	case reflect.Float32, reflect.Float64:
		return func(rv reflect.Value) Value { return FloatValue(rv.Float()) }
	case reflect.Bool:
		return func(rv reflect.Value) Value { return BoolValue(rv.Bool()) }
	default:
		return func(rv reflect.Value) Value { return StringValue(fmt.Sprint(rv.Interface())) }
	}
}
