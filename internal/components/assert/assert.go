// Package assert panics on broken preconditions, it is meant for constructors
// receiving their dependencies, never for validating input.
package assert

import "reflect"

// NotNil panics if value is nil, including a nil pointer, func, map, chan, slice or
// interface stored in `value`.
func NotNil(value any) {
	if value == nil {
		panic("expected value to be not nil")
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Chan, reflect.Slice, reflect.Interface:
		if v.IsNil() {
			panic("expected value to be not nil")
		}
	}
}

func NotEmptyStr(str string) {
	if str == "" {
		panic("expected string to be non-empty")
	}
}
