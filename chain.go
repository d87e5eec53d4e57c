package graft

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNilChain indicates that a nil *Chain was supplied where a chain
// begun by Sow was required.
var ErrNilChain = errors.New("a chain cannot be nil")

// OverApplicationError indicates an attempt to bind more values to a
// chain than its seed has parameter slots.  Supplied is the total
// number of values that would have been bound had the attempt
// succeeded.
type OverApplicationError struct {
	Type     reflect.Type
	Arity    int
	Supplied int
}

// Error satisfies the error interface
func (e *OverApplicationError) Error() string {
	return fmt.Sprintf("cannot bind %d value(s) to %s: arity is %d", e.Supplied, e.Type, e.Arity)
}

// UnderApplicationError indicates a completion attempt against a chain
// with more than one parameter slot still unfilled.
type UnderApplicationError struct {
	Type      reflect.Type
	Remaining int
}

// Error satisfies the error interface
func (e *UnderApplicationError) Error() string {
	return fmt.Sprintf("%s still awaits %d values: exactly one may remain", e.Type, e.Remaining)
}

// ArgumentTypeError indicates that a supplied value cannot occupy the
// parameter slot it was destined for.  Actual is nil when the value
// was an untyped nil.
type ArgumentTypeError struct {
	Type     reflect.Type
	Position int
	Expected reflect.Type
	Actual   reflect.Type
}

// Error satisfies the error interface
func (e *ArgumentTypeError) Error() string {
	if e.Actual == nil {
		return fmt.Sprintf("cannot use nil as parameter %d of %s: expected %s", e.Position, e.Type, e.Expected)
	}

	return fmt.Sprintf("cannot use %s as parameter %d of %s: expected %s", e.Actual, e.Position, e.Type, e.Expected)
}

// binding is one supplied value in a chain's accumulator.  Bindings
// form a persistent list, newest first, so a supply is an O(1) prepend
// and every prior chain remains valid and unchanged.
type binding struct {
	value any
	prev  *binding
}

// Chain is a curried application of a seed function.  A chain is
// either pending, awaiting one or more values, or done, holding the
// seed's result.  Chains are immutable: Sow, Nurish, and Bloom never
// modify a chain they are given, and bound values are shared
// structurally between a chain and the chains supplied from it.
//
// The zero value of Chain is not usable; chains are begun by Sow.
type Chain struct {
	seed   reflect.Value
	bound  *binding
	count  int
	result any
	done   bool
}

// Sow begins a chain over seed, binding any prebound values in the
// order given.  The seed must be a non-variadic function taking at
// least one parameter and returning exactly one value; seed may also
// be a reflect.Value holding such a function.
//
// Binding exactly as many values as the seed's arity invokes the seed
// immediately and produces a done chain.  Binding more is an
// OverApplicationError.
func Sow(seed any, prebound ...any) (*Chain, error) {
	sv, err := seedOf(seed)
	if err != nil {
		return nil, err
	}

	c := &Chain{seed: sv}
	return c.supply(prebound)
}

// Nurish supplies one or more values to a pending chain, oldest first.
// The returned chain shares structure with c, and c itself is
// unchanged.  Supplying the last unfilled slot invokes the seed with
// every bound value in the order it was supplied.
func Nurish(c *Chain, values ...any) (*Chain, error) {
	if c == nil {
		return nil, ErrNilChain
	}

	return c.supply(values)
}

// Bloom completes a chain that awaits exactly one value.  The state
// value lands in the seed's first parameter slot, and every value
// bound earlier shifts right by one slot, keeping its supply order.
// Bloom returns the seed's single result.
//
// A chain awaiting two or more values fails with
// UnderApplicationError.  A done chain has no slot left for state and
// fails with OverApplicationError.
func Bloom(state any, c *Chain) (any, error) {
	if c == nil {
		return nil, ErrNilChain
	}

	t := c.seed.Type()
	switch remaining := t.NumIn() - c.count; {
	case c.done || remaining < 1:
		return nil, &OverApplicationError{Type: t, Arity: t.NumIn(), Supplied: c.count + 1}

	case remaining > 1:
		return nil, &UnderApplicationError{Type: t, Remaining: remaining}
	}

	args, err := c.materialize(1)
	if err != nil {
		return nil, err
	}

	args[0], err = argValue(t, 0, state)
	if err != nil {
		return nil, err
	}

	return c.seed.Call(args)[0].Interface(), nil
}

// Remaining returns the number of parameter slots not yet filled.
// A done chain has none remaining.
func (c *Chain) Remaining() int {
	if c.done {
		return 0
	}

	return c.seed.Type().NumIn() - c.count
}

// Arity returns the declared parameter count of the chain's seed.
func (c *Chain) Arity() int {
	return c.seed.Type().NumIn()
}

// Done reports whether the chain has invoked its seed.
func (c *Chain) Done() bool {
	return c.done
}

// Result returns the seed's result.  The second return is false until
// the chain is done.
func (c *Chain) Result() (any, bool) {
	return c.result, c.done
}

// Seed returns the reflected type of the chain's seed function.
func (c *Chain) Seed() reflect.Type {
	return c.seed.Type()
}

// supply binds values onto a new chain, invoking the seed if the last
// slot fills.  Exactness is enforced here: values beyond the unfilled
// slots are never dropped, and a done chain accepts nothing.
func (c *Chain) supply(values []any) (*Chain, error) {
	if len(values) == 0 {
		return c, nil
	}

	t := c.seed.Type()
	if c.done || c.count+len(values) > t.NumIn() {
		return nil, &OverApplicationError{
			Type:     t,
			Arity:    t.NumIn(),
			Supplied: c.count + len(values),
		}
	}

	bound, count := c.bound, c.count
	for _, v := range values {
		bound = &binding{value: v, prev: bound}
		count++
	}

	next := &Chain{seed: c.seed, bound: bound, count: count}
	if count < t.NumIn() {
		return next, nil
	}

	args, err := next.materialize(0)
	if err != nil {
		return nil, err
	}

	return &Chain{
		seed:   c.seed,
		bound:  bound,
		count:  count,
		result: next.seed.Call(args)[0].Interface(),
		done:   true,
	}, nil
}

// materialize rebuilds the bound values in the order they were
// supplied, adapted to their parameter slots.  The accumulator is
// newest first, so slots fill back to front.  offset shifts every
// value right, leaving the leading slots for the completion policy to
// fill.
func (c *Chain) materialize(offset int) ([]reflect.Value, error) {
	t := c.seed.Type()
	args := make([]reflect.Value, offset+c.count)

	slot := len(args)
	for b := c.bound; b != nil; b = b.prev {
		slot--

		av, err := argValue(t, slot, b.value)
		if err != nil {
			return nil, err
		}

		args[slot] = av
	}

	return args, nil
}

// argValue adapts v to parameter slot pos of the function type t.
// Values are used directly when assignable and converted when
// convertible, so an untyped constant like 2 satisfies a float64
// parameter.  An untyped nil satisfies any nilable parameter type.
func argValue(t reflect.Type, pos int, v any) (reflect.Value, error) {
	in := t.In(pos)
	if v == nil {
		switch in.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return reflect.Zero(in), nil
		}

		return reflect.Value{}, &ArgumentTypeError{Type: t, Position: pos, Expected: in}
	}

	vv := ValueOf(v)
	switch {
	case vv.Type().AssignableTo(in):
		return vv, nil

	case vv.Type().ConvertibleTo(in):
		return vv.Convert(in), nil
	}

	return reflect.Value{}, &ArgumentTypeError{Type: t, Position: pos, Expected: in, Actual: vv.Type()}
}
