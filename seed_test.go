package graft

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArity(t *testing.T) {
	testData := []struct {
		fn       any
		expected int
	}{
		{fn: func() {}, expected: 0},
		{fn: double, expected: 1},
		{fn: add2, expected: 2},
		{fn: add3, expected: 3},
		{fn: reflect.ValueOf(div), expected: 2},
	}

	for i, record := range testData {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			var (
				assert  = assert.New(t)
				require = require.New(t)
			)

			arity, err := Arity(record.fn)
			require.NoError(err)
			assert.Equal(record.expected, arity)
		})
	}
}

func TestArityNotAFunction(t *testing.T) {
	testData := []any{
		nil,
		123,
		"string",
		struct{}{},
		(func())(nil),
	}

	for i, record := range testData {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			var (
				assert  = assert.New(t)
				require = require.New(t)
			)

			arity, err := Arity(record)
			assert.Zero(arity)
			require.Error(err)
			assert.IsType(new(NotAFunctionError), err)
		})
	}
}
