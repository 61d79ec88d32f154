// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/strand-data/strand/lib/result"
	"github.com/strand-data/strand/lib/value"
)

// DerivationError reports that a codec could not be derived for a Go
// type. It is a construction-time programmer error: derivation
// depends only on the type definition and can never be triggered by
// remote data.
type DerivationError struct {
	// Type is the type that could not be handled.
	Type reflect.Type

	// Detail describes why derivation failed.
	Detail string
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("codec: cannot derive codec for %s: %s", e.Type, e.Detail)
}

// Struct derives a Codec for a plain record type T by reflection.
//
// Every exported field maps to an Object key named by its `strand`
// tag (falling back to the Go field name); a tag of "-" skips the
// field. Decoding selects each field's sub-value by key and combines
// all field results independently, so one decode reports every
// missing or mistyped field at once. Pointer fields follow the
// optional rule: a missing or Null key decodes to nil, and a nil
// pointer encodes as an explicit Null key (never key omission).
//
// Supported field types: bool, string, int, int32, int64, float64,
// []byte, time.Time, every lib/value variant (and the value.Value
// interface itself), plus pointers, slices, maps with string keys,
// and nested structs of the above.
//
// T must be a struct; anything else returns a *DerivationError. The
// derivation is cached per type, so repeated calls for the same T are
// cheap.
func Struct[T any]() (Codec[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return nil, &DerivationError{Type: t, Detail: "not a struct type"}
	}
	plan, err := planFor(t, make(map[reflect.Type]*structPlan))
	if err != nil {
		return nil, err
	}
	return funcs[T]{
		decode: func(v value.Value, at result.Path) result.Result[T] {
			decoded, failures := plan.decode(v, at)
			if failures != nil {
				return result.Fail[T](failures...)
			}
			return result.Ok(decoded.Interface().(T))
		},
		encode: func(record T) value.Value {
			return plan.encode(reflect.ValueOf(record))
		},
	}, nil
}

// MustStruct is Struct that panics on derivation failure. Intended
// for package-level codec construction, where a bad type definition
// should fail at program start.
func MustStruct[T any]() Codec[T] {
	c, err := Struct[T]()
	if err != nil {
		panic(err)
	}
	return c
}

// converter decodes and encodes a single reflect type. The decode
// side returns failures as a plain slice because reflect.Value cannot
// flow through the generic Result type.
type converter struct {
	decode func(v value.Value, at result.Path) (reflect.Value, []result.Failure)
	encode func(rv reflect.Value) value.Value
}

// structPlan is the cached derivation for one struct type.
type structPlan struct {
	typ    reflect.Type
	fields []fieldPlan
}

// fieldPlan maps one struct field to one Object key.
type fieldPlan struct {
	// name is the Object key, from the `strand` tag or the field name.
	name string

	// index is the field's position within the struct.
	index int

	// optional marks pointer fields, which tolerate absence.
	optional bool

	// elem is the pointed-to type for optional fields.
	elem reflect.Type

	// conv handles the field's type (the pointed-to type for optional
	// fields).
	conv *converter
}

// planCache caches derivations per struct type. Derivation is a pure
// function of the type definition, so concurrent duplicate work is
// harmless; the first stored plan wins.
var planCache sync.Map // reflect.Type -> *structPlan

// planFor builds (or fetches) the derivation plan for a struct type.
// The building map carries in-progress plans so self-referential
// types (via pointers or slices) terminate: a type already being
// planned resolves to its incomplete plan pointer, which is fully
// populated before any decode can run.
func planFor(t reflect.Type, building map[reflect.Type]*structPlan) (*structPlan, error) {
	if cached, ok := planCache.Load(t); ok {
		return cached.(*structPlan), nil
	}
	if inProgress, ok := building[t]; ok {
		return inProgress, nil
	}

	plan := &structPlan{typ: t}
	building[t] = plan

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Tag.Get("strand")
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}

		entry := fieldPlan{name: name, index: i}
		fieldType := field.Type
		if fieldType.Kind() == reflect.Pointer {
			entry.optional = true
			entry.elem = fieldType.Elem()
			fieldType = fieldType.Elem()
		}
		conv, err := converterFor(fieldType, building)
		if err != nil {
			return nil, err
		}
		entry.conv = conv
		plan.fields = append(plan.fields, entry)
	}

	stored, _ := planCache.LoadOrStore(t, plan)
	return stored.(*structPlan), nil
}

func (p *structPlan) decode(v value.Value, at result.Path) (reflect.Value, []result.Failure) {
	obj, ok := v.(value.Object)
	if !ok {
		return reflect.Value{}, []result.Failure{{
			Path:   at,
			Reason: result.UnexpectedType{Expected: "Object", Actual: value.TypeName(v)},
		}}
	}

	out := reflect.New(p.typ).Elem()
	var failures []result.Failure
	for _, field := range p.fields {
		fieldPath := at.WithKey(field.name)
		sub, present := obj[field.name]

		if field.optional {
			if !present {
				continue // leave nil
			}
			if _, isNull := sub.(value.Null); isNull {
				continue
			}
			decoded, fieldFailures := field.conv.decode(sub, fieldPath)
			if fieldFailures != nil {
				failures = append(failures, fieldFailures...)
				continue
			}
			pointer := reflect.New(field.elem)
			pointer.Elem().Set(decoded)
			out.Field(field.index).Set(pointer)
			continue
		}

		if !present {
			failures = append(failures, result.Failure{Path: fieldPath, Reason: result.NotFound{}})
			continue
		}
		decoded, fieldFailures := field.conv.decode(sub, fieldPath)
		if fieldFailures != nil {
			failures = append(failures, fieldFailures...)
			continue
		}
		out.Field(field.index).Set(decoded)
	}

	if failures != nil {
		return reflect.Value{}, failures
	}
	return out, nil
}

func (p *structPlan) encode(rv reflect.Value) value.Value {
	obj := make(value.Object, len(p.fields))
	for _, field := range p.fields {
		fieldValue := rv.Field(field.index)
		if field.optional {
			if fieldValue.IsNil() {
				obj[field.name] = value.Null{}
				continue
			}
			obj[field.name] = field.conv.encode(fieldValue.Elem())
			continue
		}
		obj[field.name] = field.conv.encode(fieldValue)
	}
	return obj
}

var (
	timeType           = reflect.TypeOf(time.Time{})
	valueInterfaceType = reflect.TypeOf((*value.Value)(nil)).Elem()
	bytesType          = reflect.TypeOf([]byte(nil))
)

// converterFor resolves the converter for one reflect type. Types the
// value model cannot represent yield a *DerivationError.
func converterFor(t reflect.Type, building map[reflect.Type]*structPlan) (*converter, error) {
	switch {
	case t == timeType:
		return codecConverter(Time), nil
	case t == valueInterfaceType:
		return codecConverter(Raw), nil
	case t.Implements(valueInterfaceType):
		return variantConverter(t), nil
	case t == bytesType:
		return codecConverter(Bytes), nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return codecConverter(Bool), nil
	case reflect.String:
		return codecConverter(String), nil
	case reflect.Int64:
		return codecConverter(Int), nil
	case reflect.Int32:
		return codecConverter(Int32), nil
	case reflect.Int:
		return hostIntConverter(), nil
	case reflect.Float64:
		return codecConverter(Double), nil
	case reflect.Slice:
		return sliceConverter(t, building)
	case reflect.Map:
		return mapConverter(t, building)
	case reflect.Struct:
		plan, err := planFor(t, building)
		if err != nil {
			return nil, err
		}
		return &converter{decode: plan.decode, encode: plan.encode}, nil
	case reflect.Pointer:
		return nil, &DerivationError{Type: t, Detail: "nested pointers are not supported"}
	default:
		return nil, &DerivationError{Type: t, Detail: "unsupported field type"}
	}
}

// codecConverter adapts a typed Codec into the reflect-based
// converter shape.
func codecConverter[T any](c Codec[T]) *converter {
	return &converter{
		decode: func(v value.Value, at result.Path) (reflect.Value, []result.Failure) {
			decoded, err := c.Decode(v, at).Get()
			if err != nil {
				return reflect.Value{}, err.(*result.DecodeError).Failures
			}
			return reflect.ValueOf(decoded), nil
		},
		encode: func(rv reflect.Value) value.Value {
			return c.Encode(rv.Interface().(T))
		},
	}
}

// variantConverter handles fields declared as a concrete Value
// variant (value.Ref, value.Object, …): the sub-value must be exactly
// that variant.
func variantConverter(t reflect.Type) *converter {
	expected := value.TypeName(reflect.Zero(t).Interface().(value.Value))
	return &converter{
		decode: func(v value.Value, at result.Path) (reflect.Value, []result.Failure) {
			if reflect.TypeOf(v) != t {
				return reflect.Value{}, []result.Failure{{
					Path:   at,
					Reason: result.UnexpectedType{Expected: expected, Actual: value.TypeName(v)},
				}}
			}
			return reflect.ValueOf(v), nil
		},
		encode: func(rv reflect.Value) value.Value {
			return rv.Interface().(value.Value)
		},
	}
}

// hostIntConverter handles the host int type, detecting overflow when
// the platform int is narrower than the wire's 64-bit integers.
func hostIntConverter() *converter {
	return &converter{
		decode: func(v value.Value, at result.Path) (reflect.Value, []result.Failure) {
			i, ok := v.(value.Int)
			if !ok {
				return reflect.Value{}, []result.Failure{{
					Path:   at,
					Reason: result.UnexpectedType{Expected: "Int", Actual: value.TypeName(v)},
				}}
			}
			if strconv.IntSize == 32 && (int64(i) < math.MinInt32 || int64(i) > math.MaxInt32) {
				return reflect.Value{}, []result.Failure{{
					Path:   at,
					Reason: result.InvalidValue{Detail: fmt.Sprintf("%d overflows int", int64(i))},
				}}
			}
			return reflect.ValueOf(int(i)), nil
		},
		encode: func(rv reflect.Value) value.Value {
			return value.Int(rv.Int())
		},
	}
}

func sliceConverter(t reflect.Type, building map[reflect.Type]*structPlan) (*converter, error) {
	element, err := converterFor(t.Elem(), building)
	if err != nil {
		return nil, err
	}
	return &converter{
		decode: func(v value.Value, at result.Path) (reflect.Value, []result.Failure) {
			arr, ok := v.(value.Array)
			if !ok {
				return reflect.Value{}, []result.Failure{{
					Path:   at,
					Reason: result.UnexpectedType{Expected: "Array", Actual: value.TypeName(v)},
				}}
			}
			out := reflect.MakeSlice(t, len(arr), len(arr))
			var failures []result.Failure
			for i, elem := range arr {
				decoded, elemFailures := element.decode(elem, at.WithIndex(i))
				if elemFailures != nil {
					failures = append(failures, elemFailures...)
					continue
				}
				out.Index(i).Set(decoded)
			}
			if failures != nil {
				return reflect.Value{}, failures
			}
			return out, nil
		},
		encode: func(rv reflect.Value) value.Value {
			arr := make(value.Array, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				arr[i] = element.encode(rv.Index(i))
			}
			return arr
		},
	}, nil
}

func mapConverter(t reflect.Type, building map[reflect.Type]*structPlan) (*converter, error) {
	if t.Key().Kind() != reflect.String {
		return nil, &DerivationError{Type: t, Detail: "map keys must be strings"}
	}
	element, err := converterFor(t.Elem(), building)
	if err != nil {
		return nil, err
	}
	return &converter{
		decode: func(v value.Value, at result.Path) (reflect.Value, []result.Failure) {
			obj, ok := v.(value.Object)
			if !ok {
				return reflect.Value{}, []result.Failure{{
					Path:   at,
					Reason: result.UnexpectedType{Expected: "Object", Actual: value.TypeName(v)},
				}}
			}
			out := reflect.MakeMapWithSize(t, len(obj))
			var failures []result.Failure
			for key, elem := range obj {
				decoded, elemFailures := element.decode(elem, at.WithKey(key))
				if elemFailures != nil {
					failures = append(failures, elemFailures...)
					continue
				}
				out.SetMapIndex(reflect.ValueOf(key).Convert(t.Key()), decoded)
			}
			if failures != nil {
				return reflect.Value{}, failures
			}
			return out, nil
		},
		encode: func(rv reflect.Value) value.Value {
			obj := make(value.Object, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				obj[iter.Key().String()] = element.encode(iter.Value())
			}
			return obj
		},
	}, nil
}
