// FILE: arsenic/src/internal/format/serialize_test.go
package format

import (
	"errors"
	"strings"
	"testing"

	"arsenic/src/internal/core"

	"github.com/stretchr/testify/assert"
)

type panicky struct{}

func (panicky) String() string {
	panic("no string for you")
}

type wide struct {
	Name        string
	Description string
	Values      []int
}

func TestSerializer_Serialize(t *testing.T) {
	s := NewSerializer(core.DefaultWrapWidth)

	testCases := []struct {
		name     string
		args     []any
		expected string
	}{
		{name: "StringVerbatim", args: []any{"hello world"}, expected: "hello world"},
		{name: "JoinedBySpace", args: []any{"a", "b", "c"}, expected: "a b c"},
		{name: "Numbers", args: []any{"n", 42, 3.5, true}, expected: "n 42 3.5 true"},
		{name: "SmallMap", args: []any{"x", map[string]int{"a": 1}}, expected: "x map[a:1]"},
		{name: "SortedKeys", args: []any{map[string]int{"b": 2, "a": 1}}, expected: "map[a:1 b:2]"},
		{name: "Error", args: []any{errors.New("disk full")}, expected: "disk full"},
		{name: "Nil", args: []any{nil}, expected: "<nil>"},
		{name: "Empty", args: nil, expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, s.Serialize(tc.args))
		})
	}
}

func TestSerializer_WideValuesWrap(t *testing.T) {
	s := NewSerializer(core.DefaultWrapWidth)
	value := wide{
		Name:        "a rather long name",
		Description: "a description that pushes the value past the wrap width",
		Values:      []int{1, 2, 3},
	}

	out := s.Serialize([]any{"value:", value})
	assert.True(t, strings.HasPrefix(out, "value: \n"))
	assert.Contains(t, out, "Description:")
	assert.Greater(t, strings.Count(out, "\n"), 2)
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestSerializer_Unserializable(t *testing.T) {
	s := NewSerializer(core.DefaultWrapWidth)
	out := s.Serialize([]any{"before", panicky{}, "after"})
	assert.Equal(t, "before "+Placeholder+" after", out)
}
