package lisp

// Scope is a lexically-scoped environment: a name-to-Value mapping plus
// an optional parent link, per §4.3. The interpreter owns one persistent
// root Scope; each closure invocation creates a fresh child rooted at
// the closure's captured Scope.
//
// The teacher keeps a single []*scope call stack since it never retains
// a scope past its call; this implementation needs scopes that outlive
// their call (a Closure can be returned and invoked later), so Scope is
// a proper tree of independently heap-allocated nodes instead.
//
// depth and maxDepth implement the teacher's call-depth guard (its
// Context.stackDepth/maxStackDepth): every Scope descended from the same
// root shares one depth counter, since Go's own call stack, unlike the
// original C++ source's, is what would otherwise grow unbounded on deep
// recursion.
type Scope struct {
	vars   map[string]*Value
	parent *Scope

	depth    *int
	maxDepth int
}

// NewScope returns a fresh Scope rooted at parent. parent may be nil for
// a self-contained top-level environment with no depth limit; use
// newRootScope instead to set one.
func NewScope(parent *Scope) *Scope {
	s := &Scope{vars: make(map[string]*Value)}
	if parent != nil {
		s.parent = parent
		s.depth = parent.depth
		s.maxDepth = parent.maxDepth
	}
	return s
}

// newRootScope returns a parentless Scope with its own depth counter,
// bounded by maxDepth (0 means unlimited, per the teacher's -depth flag).
func newRootScope(maxDepth int) *Scope {
	d := 0
	return &Scope{vars: make(map[string]*Value), depth: &d, maxDepth: maxDepth}
}

// Define inserts or overwrites name in s itself, never in an ancestor.
func (s *Scope) Define(name string, v *Value) {
	s.vars[name] = v
}

// Assign walks the parent chain and overwrites the first binding found.
// It raises NameError if name is unbound at every level.
func (s *Scope) Assign(name string, v *Value) {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			cur.vars[name] = v
			return
		}
	}
	raise(NameError, "unbound variable: %s", name)
}

func (s *Scope) find(name string) (*Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether name resolves, in this Scope's chain or the
// built-in registry, without raising.
func (s *Scope) Has(name string) bool {
	if _, ok := s.find(name); ok {
		return true
	}
	return hasBuiltin(name)
}

// maxAliasChain bounds the symbol-alias fixed-point below, guarding
// against a self-referential binding looping forever (§9 Design Note).
const maxAliasChain = 1000

// Lookup walks the parent chain, falling back to the built-in registry,
// and raises NameError if name resolves nowhere. If the resolved value
// is itself a Symbol, lookup continues using that symbol's name, up to
// the first non-symbol result (§4.3).
func (s *Scope) Lookup(name string) *Value {
	for i := 0; ; i++ {
		if i > maxAliasChain {
			raise(RuntimeError, "alias chain too long resolving %s", name)
		}
		v, ok := s.find(name)
		if !ok {
			bi, ok := lookupBuiltin(name)
			if !ok {
				raise(NameError, "unbound variable: %s", name)
			}
			return bi
		}
		if v != nil && v.Kind == KindSymbol {
			name = v.Sym
			continue
		}
		return v
	}
}

// Names returns every name bound anywhere in s's chain, deepest scope
// first. Used only by the REPL façade to suggest corrections on a
// NameError; the core evaluator never calls it.
func (s *Scope) Names() []string {
	seen := make(map[string]bool)
	var out []string
	for cur := s; cur != nil; cur = cur.parent {
		for name := range cur.vars {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}
