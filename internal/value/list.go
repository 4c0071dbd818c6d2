package value

import "strings"

// List is an ordered, 1-based-indexed sequence of values. It is never
// implicitly flattened.
type List struct {
	Elements []Value
}

func (List) Kind() Kind { return KindList }

func (l List) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range l.Elements {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}

// NewList builds a List value.
func NewList(elems ...Value) List { return List{Elements: elems} }
