// FILE: arsenic/src/internal/format/serialize.go
package format

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Placeholder replaces arguments that cannot be rendered
const Placeholder = "[unserializable]"

// Serializer turns a heterogeneous argument list into one display string.
type Serializer struct {
	width int
	spew  *spew.ConfigState
}

// NewSerializer creates a serializer that keeps structured values on one line
// while they fit in width columns.
func NewSerializer(width int) *Serializer {
	return &Serializer{
		width: width,
		spew: &spew.ConfigState{
			Indent:                  "  ",
			SortKeys:                true,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
		},
	}
}

// Serialize renders args separated by a single space.
func (s *Serializer) Serialize(args []any) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, s.render(arg))
	}
	return strings.Join(parts, " ")
}

func (s *Serializer) render(arg any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = Placeholder
		}
	}()

	switch v := arg.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	case nil, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		uintptr, float32, float64, complex64, complex128:
		return fmt.Sprint(v)
	}

	compact := s.spew.Sprintf("%+v", arg)
	if len(compact) <= s.width && !strings.Contains(compact, "\n") {
		return compact
	}
	return "\n" + strings.TrimRight(s.spew.Sdump(arg), "\n")
}
