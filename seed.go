package graft

import (
	"fmt"
	"reflect"
)

// NotAFunctionError indicates that a value offered as a seed was not
// a callable function.
type NotAFunctionError struct {
	Type reflect.Type
}

// Error satisfies the error interface
func (e *NotAFunctionError) Error() string {
	return fmt.Sprintf("%s is not a function", e.Type)
}

// SeedError indicates that a function's signature makes it unusable
// as a seed.
type SeedError struct {
	Type    reflect.Type
	Message string
}

// Error satisfies the error interface
func (e *SeedError) Error() string {
	return fmt.Sprintf("cannot use %s as a seed: %s", e.Type, e.Message)
}

// ZeroArityError indicates an attempt to curry a function that takes
// no parameters, which leaves nothing to supply.
type ZeroArityError struct {
	Type reflect.Type
}

// Error satisfies the error interface
func (e *ZeroArityError) Error() string {
	return fmt.Sprintf("cannot curry %s: it takes no parameters", e.Type)
}

// funcOf reflects v as a callable function value.  v may be a function
// or a reflect.Value holding one.
func funcOf(v any) (reflect.Value, error) {
	fv := ValueOf(v)
	if !fv.IsValid() || fv.Kind() != reflect.Func || fv.IsNil() {
		return reflect.Value{}, &NotAFunctionError{Type: TypeOf(v)}
	}

	return fv, nil
}

// Arity returns the declared parameter count of fn, which must be a
// function value or a reflect.Value holding one.
func Arity(fn any) (int, error) {
	fv, err := funcOf(fn)
	if err != nil {
		return 0, err
	}

	return fv.Type().NumIn(), nil
}

// seedOf validates v as a seed.  A seed is a non-variadic function
// with at least one parameter and exactly one result.
func seedOf(v any) (reflect.Value, error) {
	sv, err := funcOf(v)
	if err != nil {
		return sv, err
	}

	t := sv.Type()
	switch {
	case t.IsVariadic():
		return reflect.Value{}, &SeedError{Type: t, Message: "variadic functions cannot be curried"}

	case t.NumOut() != 1:
		return reflect.Value{}, &SeedError{Type: t, Message: "a seed must return exactly one value"}

	case t.NumIn() == 0:
		return reflect.Value{}, &ZeroArityError{Type: t}
	}

	return sv, nil
}
