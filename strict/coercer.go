package strict

import (
	"fmt"
	"reflect"
)

// Coercer is a named validation function. The name distinguishes
// differently-parametrized coercers from one another in diagnostics.
type Coercer struct {
	Name string
	Fn   func(v any) (any, error)
}

// Valid reports whether the coercer carries a function.
func (c Coercer) Valid() bool {
	return c.Fn != nil
}

// Constructible is implemented by types that supply their own strict
// constructor, making them usable as the parameter of Of.
type Constructible interface {
	StrictConstruct(v any) (any, error)
}

// Value is the unparametrized coercer. Invoking it is a usage error: a type
// parameter must be supplied via Of.
var Value = Coercer{
	Name: "strict",
	Fn: func(any) (any, error) {
		return nil, fmt.Errorf("strict: missing type parameter: %w", ErrUsage)
	},
}

// Of parametrizes a coercer for T. Supported targets are int, int64,
// float64, string and any type implementing Constructible; the result of a
// successful coercion has T's exact kind. For an unsupported T the returned
// coercer fails with ErrUsage on every invocation.
func Of[T any]() Coercer {
	t := reflect.TypeFor[T]()
	name := t.String()

	var zero T
	if c, ok := any(zero).(Constructible); ok {
		return Coercer{Name: name, Fn: c.StrictConstruct}
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int64:
		return Coercer{Name: name, Fn: func(v any) (any, error) {
			n, err := Int(v)
			if err != nil {
				return nil, err
			}
			return reflect.ValueOf(n).Convert(t).Interface(), nil
		}}
	case reflect.Float64:
		return Coercer{Name: name, Fn: func(v any) (any, error) {
			f, err := Float(v)
			if err != nil {
				return nil, err
			}
			return reflect.ValueOf(f).Convert(t).Interface(), nil
		}}
	case reflect.String:
		return Coercer{Name: name, Fn: func(v any) (any, error) {
			s, err := Str(v)
			if err != nil {
				return nil, err
			}
			return reflect.ValueOf(s).Convert(t).Interface(), nil
		}}
	}

	return Coercer{Name: name, Fn: func(any) (any, error) {
		return nil, fmt.Errorf("strict: no strict constructor for type %s: %w", name, ErrUsage)
	}}
}

// Tuple builds an ordered-sequence coercer that applies elem to every
// element of the input in order; the first failing element propagates its
// error. With an empty elem the result is a plain ordered-sequence
// conversion with no per-element validation.
func Tuple(elem Coercer) Coercer {
	name := "tuple"
	if elem.Valid() {
		name = "tuple[" + elem.Name + "]"
	}
	return Coercer{Name: name, Fn: func(v any) (any, error) {
		items, err := toSequence(v)
		if err != nil {
			return nil, err
		}
		if !elem.Valid() {
			return items, nil
		}
		out := make([]any, len(items))
		for i, item := range items {
			coerced, err := elem.Fn(item)
			if err != nil {
				return nil, fmt.Errorf("strict: %s element %d: %w", name, i, err)
			}
			out[i] = coerced
		}
		return out, nil
	}}
}

func toSequence(v any) ([]any, error) {
	if items, ok := v.([]any); ok {
		out := make([]any, len(items))
		copy(out, items)
		return out, nil
	}
	rv := reflect.ValueOf(v)
	if v == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("strict: cannot convert %T to a sequence: %w", v, ErrValidation)
	}
	out := make([]any, rv.Len())
	for i := range rv.Len() {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}
