package value

import "strings"

// Context is an order-preserving mapping from Name to Value. Equality
// ignores order; insertion order is preserved for printing,
// JSON-ify, and `get entries`.
type Context struct {
	keys []string
	vals map[string]Value
}

func (Context) Kind() Kind { return KindContext }

// NewContext returns an empty context ready for Set calls. Once handed out
// as a Value it should be treated as immutable by convention, matching the
// rest of the value domain.
func NewContext() *Context {
	return &Context{vals: make(map[string]Value)}
}

// Set inserts or updates key. New keys are appended to the insertion order;
// updating an existing key keeps its original position.
func (c *Context) Set(key string, v Value) {
	if _, exists := c.vals[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.vals[key] = v
}

// Get looks up key.
func (c *Context) Get(key string) (Value, bool) {
	v, ok := c.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order. The returned slice must not be
// mutated by the caller.
func (c *Context) Keys() []string { return c.keys }

// Len returns the number of entries.
func (c *Context) Len() int { return len(c.keys) }

// Clone returns a shallow copy with its own key/value storage.
func (c *Context) Clone() *Context {
	n := NewContext()
	for _, k := range c.keys {
		n.Set(k, c.vals[k])
	}
	return n
}

func (c *Context) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quoteContextKey(k))
		b.WriteString(": ")
		b.WriteString(c.vals[k].String())
	}
	b.WriteByte('}')
	return b.String()
}

// quoteContextKey renders a context key the way FEEL prints a Name literal:
// bare if it is a simple identifier, quoted string form otherwise.
func quoteContextKey(k string) string {
	for i, r := range k {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return quoteString(k)
	}
	if k == "" {
		return quoteString(k)
	}
	return k
}
