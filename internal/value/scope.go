package value

// Scope is an ordered stack of immutable contexts. Lookup walks from the
// innermost (top) frame outward; the first hit wins. Pushing a frame
// returns a new Scope that shares the older frames by structural sharing;
// there is no mutable global scope.
type Scope struct {
	parent *Scope
	frame  *Context
}

// NewRootScope returns a Scope with a single frame.
func NewRootScope(frame *Context) *Scope {
	if frame == nil {
		frame = NewContext()
	}
	return &Scope{frame: frame}
}

// Push returns a new Scope with frame on top of s.
func (s *Scope) Push(frame *Context) *Scope {
	if frame == nil {
		frame = NewContext()
	}
	return &Scope{parent: s, frame: frame}
}

// Get walks the scope stack from the top frame outward, returning the first
// binding found for name.
func (s *Scope) Get(name string) (Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.frame.Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// TopFrame returns the innermost frame, the target of every name insertion.
func (s *Scope) TopFrame() *Context { return s.frame }

// Names returns every name visible from s, innermost frame's bindings
// taking precedence, used by the lexer to disambiguate multi-word
// identifiers against the names currently in scope.
func (s *Scope) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for cur := s; cur != nil; cur = cur.parent {
		for _, k := range cur.frame.Keys() {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	return names
}
