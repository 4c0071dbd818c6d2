package bif

import (
	"github.com/dmntk-go/dmntk/internal/value"
)

func init() {
	register(unary1("get value", [][]string{{"context", "key"}}, getValueCore))
	register(unary1("get entries", [][]string{{"context"}}, getEntriesCore))
	register(unary1("context", [][]string{{"entries"}}, contextCore))
	register(unary1("context merge", [][]string{{"contexts"}}, contextMergeCore))
	register(unary1("context put", [][]string{{"context", "key", "value"}}, contextPutCore))
}

func getValueCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 2, 2); !ok {
		return errv
	}
	c, ok := asContext(args[0])
	if !ok {
		return invalidType("get value", "context", args[0])
	}
	key, ok := asStr(args[1])
	if !ok {
		return invalidType("get value", "string", args[1])
	}
	v, found := c.Get(key.V)
	if !found {
		return value.Null{}
	}
	return v
}

func getEntriesCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	c, ok := asContext(args[0])
	if !ok {
		return invalidType("get entries", "context", args[0])
	}
	out := make([]value.Value, 0, c.Len())
	for _, k := range c.Keys() {
		v, _ := c.Get(k)
		entry := value.NewContext()
		entry.Set("key", value.Str{V: k})
		entry.Set("value", v)
		out = append(out, entry)
	}
	return value.NewList(out...)
}

// contextCore builds a Context from a list of {"key":..,"value":..} entries
// (the inverse of get entries).
func contextCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	l, ok := asList(args[0])
	if !ok {
		return invalidType("context", "list", args[0])
	}
	out := value.NewContext()
	for _, e := range l.Elements {
		entry, ok := asContext(e)
		if !ok {
			return invalidType("context", "context", e)
		}
		k, ok := entry.Get("key")
		if !ok {
			return value.NullOf("[core::context] entry missing 'key'")
		}
		ks, ok := asStr(k)
		if !ok {
			return invalidType("context", "string", k)
		}
		v, ok := entry.Get("value")
		if !ok {
			return value.NullOf("[core::context] entry missing 'value'")
		}
		out.Set(ks.V, v)
	}
	return out
}

func contextMergeCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 1, 1); !ok {
		return errv
	}
	l, ok := asList(args[0])
	if !ok {
		return invalidType("context merge", "list", args[0])
	}
	out := value.NewContext()
	for _, e := range l.Elements {
		c, ok := asContext(e)
		if !ok {
			return invalidType("context merge", "context", e)
		}
		for _, k := range c.Keys() {
			v, _ := c.Get(k)
			out.Set(k, v)
		}
	}
	return out
}

func contextPutCore(args []value.Value) value.Value {
	if errv, ok := checkArity(args, 3, 3); !ok {
		return errv
	}
	c, ok := asContext(args[0])
	if !ok {
		return invalidType("context put", "context", args[0])
	}
	key, ok := asStr(args[1])
	if !ok {
		return invalidType("context put", "string", args[1])
	}
	out := c.Clone()
	out.Set(key.V, args[2])
	return out
}
