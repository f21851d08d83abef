package lisp

// Special forms receive their operands raw, exactly as written in the
// call, and decide for themselves what (if anything) to evaluate and in
// which scope — the opposite contract from an ordinary procedure, which
// evaluates every operand itself before acting. Arity violations here
// are SyntaxError, matching §5.1: malformed special-form shape is a
// parse-time concern, not a runtime one.

func biQuote(args []*Value, _ *Scope) *Value {
	if len(args) != 1 {
		raise(SyntaxError, "quote: expected 1 operand, got %d", len(args))
	}
	return args[0]
}

func biIf(args []*Value, scope *Scope) *Value {
	if len(args) < 2 || len(args) > 3 {
		raise(SyntaxError, "if: expected 2 or 3 operands, got %d", len(args))
	}
	if IsTruthy(Eval(args[0], scope)) {
		return Eval(args[1], scope)
	}
	if len(args) == 3 {
		return Eval(args[2], scope)
	}
	return nil
}

// biDefine implements both shapes from §5.1: (define name expr) binds a
// value, (define (name . params) body...) binds a lambda template.
func biDefine(args []*Value, scope *Scope) *Value {
	if len(args) < 2 {
		raise(SyntaxError, "define: expected at least 2 operands")
	}
	target := args[0]

	if IsSymbol(target) {
		if len(args) != 2 {
			raise(SyntaxError, "define: (define name expr) takes exactly 2 operands")
		}
		scope.Define(target.Sym, Eval(args[1], scope))
		return nil
	}

	if IsPair(target) {
		nameSym := target.car
		if !IsSymbol(nameSym) {
			raise(SyntaxError, "define: malformed function name")
		}
		params := symbolList("define", target.cdr)
		body := args[1:]
		scope.Define(nameSym.Sym, newLambdaTemplate(params, body, scope))
		return nil
	}

	raise(SyntaxError, "define: first operand must be a symbol or a (name . params) list")
	panic("unreached")
}

func biSet(args []*Value, scope *Scope) *Value {
	if len(args) != 2 {
		raise(SyntaxError, "set!: expected 2 operands, got %d", len(args))
	}
	if !IsSymbol(args[0]) {
		raise(SyntaxError, "set!: target must be a symbol")
	}
	scope.Assign(args[0].Sym, Eval(args[1], scope))
	return nil
}

func biSetCar(args []*Value, scope *Scope) *Value {
	if len(args) != 2 {
		raise(SyntaxError, "set-car!: expected 2 operands, got %d", len(args))
	}
	pair := Eval(args[0], scope)
	if !IsPair(pair) {
		raise(RuntimeError, "set-car!: not a pair")
	}
	SetCar(pair, Eval(args[1], scope))
	return nil
}

func biSetCdr(args []*Value, scope *Scope) *Value {
	if len(args) != 2 {
		raise(SyntaxError, "set-cdr!: expected 2 operands, got %d", len(args))
	}
	pair := Eval(args[0], scope)
	if !IsPair(pair) {
		raise(RuntimeError, "set-cdr!: not a pair")
	}
	SetCdr(pair, Eval(args[1], scope))
	return nil
}

func biLambda(args []*Value, scope *Scope) *Value {
	if len(args) < 2 {
		raise(SyntaxError, "lambda: expected a parameter list and a non-empty body")
	}
	params := symbolList("lambda", args[0])
	return newClosure(params, args[1:], scope)
}

// symbolList walks a (possibly nil) proper list of Symbols, as used by
// both define's and lambda's parameter lists, and returns their names in
// order. Any non-symbol or improper tail is a SyntaxError.
func symbolList(formName string, v *Value) []string {
	var names []string
	cur := v
	for IsPair(cur) {
		if !IsSymbol(cur.car) {
			raise(SyntaxError, "%s: parameter list must contain only symbols", formName)
		}
		names = append(names, cur.car.Sym)
		cur = cur.cdr
	}
	if cur != nil {
		raise(SyntaxError, "%s: parameter list must be a proper list", formName)
	}
	return names
}

// biAnd and biOr are special forms (not ordinary procedures) because
// they must short-circuit: an unevaluated later operand must never be
// forced once the result is already determined.

func biAnd(args []*Value, scope *Scope) *Value {
	result := NewBoolean(true)
	for _, a := range args {
		result = Eval(a, scope)
		if !IsTruthy(result) {
			return result
		}
	}
	return result
}

func biOr(args []*Value, scope *Scope) *Value {
	result := NewBoolean(false)
	for _, a := range args {
		result = Eval(a, scope)
		if IsTruthy(result) {
			return result
		}
	}
	return result
}
