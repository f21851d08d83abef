package lisp

import "sync"

// builtinRegistry holds every special form and ordinary procedure named
// in §5, keyed by name. It is populated once, lazily, the first time any
// interpreter asks for a builtin — the idiomatic Go replacement for the
// teacher's ad hoc "if funcMap == nil" guard in evalInit.
var (
	builtinOnce     sync.Once
	builtinRegistry map[string]*Value
)

func ensureBuiltins() {
	builtinOnce.Do(func() {
		builtinRegistry = make(map[string]*Value)
		register := func(name string, fn BuiltinFunc) {
			builtinRegistry[name] = newBuiltin(name, fn)
		}

		// Special forms (§5.1): operate on raw, unevaluated operands.
		register("quote", biQuote)
		register("if", biIf)
		register("define", biDefine)
		register("set!", biSet)
		register("set-car!", biSetCar)
		register("set-cdr!", biSetCdr)
		register("lambda", biLambda)
		register("and", biAnd)
		register("or", biOr)

		// Predicates and booleans (§5.2).
		register("boolean?", biBooleanP)
		register("not", biNot)
		register("number?", biNumberP)
		register("pair?", biPairP)
		register("list?", biListP)
		register("null?", biNullP)
		register("symbol?", biSymbolP)

		// Numeric comparison and arithmetic (§5.3).
		register("=", biNumEq)
		register("<", biNumLt)
		register(">", biNumGt)
		register("<=", biNumLe)
		register(">=", biNumGe)
		register("+", biAdd)
		register("-", biSub)
		register("*", biMul)
		register("/", biDiv)
		register("min", biMin)
		register("max", biMax)
		register("abs", biAbs)

		// Pairs and lists (§5.4).
		register("cons", biCons)
		register("car", biCar)
		register("cdr", biCdr)
		register("list", biList)
		register("list-ref", biListRef)
		register("list-tail", biListTail)
	})
}

// lookupBuiltin resolves name against the registry, falling back to the
// generalized car/cdr-combination family (caar, cadr, cddr, ... — §5.4)
// before reporting a miss.
func lookupBuiltin(name string) (*Value, bool) {
	ensureBuiltins()
	if v, ok := builtinRegistry[name]; ok {
		return v, true
	}
	if isCadRName(name) {
		return newBuiltin(name, cadrBuiltin(name)), true
	}
	return nil, false
}

// hasBuiltin is lookupBuiltin without constructing a Value, used by
// Scope.Has to answer "is this name known" without allocating.
func hasBuiltin(name string) bool {
	ensureBuiltins()
	if _, ok := builtinRegistry[name]; ok {
		return true
	}
	return isCadRName(name)
}
