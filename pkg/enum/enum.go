package enum

import (
	"fmt"
	"reflect"
)

var registry = map[string]any{}

type enum[T comparable] struct {
	values map[string]T
}

// New registers value under its concrete enum type and returns it, so
// declarations can read `Foo = enum.New(FooType("foo"))`.
func New[T comparable](value T) T {
	v := reflect.ValueOf(value)
	name := v.Type().Name()
	if _, ok := registry[name]; !ok {
		registry[name] = enum[T]{values: make(map[string]T)}
	}

	registry[name].(enum[T]).values[v.String()] = value
	return value
}

// ToEnum parses s into a registered value of T.
func ToEnum[T comparable](s string) (T, error) {
	var zero T
	e, ok := registry[reflect.TypeOf(zero).Name()]
	if !ok {
		return zero, fmt.Errorf("no enum registered for type %T", zero)
	}

	value, ok := e.(enum[T]).values[s]
	if !ok {
		return zero, fmt.Errorf("invalid value %s of enum %T", s, zero)
	}

	return value, nil
}
