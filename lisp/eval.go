package lisp

// Eval reduces v to a value in scope, per §4.4.
func Eval(v *Value, scope *Scope) *Value {
	if v == nil {
		raise(RuntimeError, "empty application: ()")
	}
	switch v.Kind {
	case KindInteger, KindBoolean, KindBuiltin, KindClosure:
		return v
	case KindLambdaTemplate:
		return newClosure(v.params, v.body, v.env)
	case KindSymbol:
		resolved := scope.Lookup(v.Sym)
		if resolved != nil && resolved.Kind == KindLambdaTemplate {
			return Eval(resolved, scope)
		}
		return resolved
	case KindPair:
		return evalPair(v, scope)
	default:
		raise(RuntimeError, "cannot evaluate value")
		panic("unreached")
	}
}

func evalPair(v *Value, scope *Scope) *Value {
	head := v.car
	if IsSymbol(head) && head.Sym == "quote" {
		return quoteOperand(v.cdr)
	}
	callee := Eval(head, scope)
	if !IsCallable(callee) {
		raise(RuntimeError, "not a procedure: %s", Serialize(callee))
	}
	operands := flattenOperands(v.cdr)
	return Apply(callee, operands, scope)
}

// quoteOperand implements §4.4 rule 1: return the car of tail, or the
// whole tail if it is not itself a Pair.
func quoteOperand(tail *Value) *Value {
	if IsPair(tail) {
		return tail.car
	}
	return tail
}

// flattenOperands walks the cdr chain of a call's tail, collecting each
// car; an improper tail's final non-nil, non-Pair value is appended as
// the last element (§4.4 rule 3).
func flattenOperands(tail *Value) []*Value {
	var out []*Value
	cur := tail
	for IsPair(cur) {
		out = append(out, cur.car)
		cur = cur.cdr
	}
	if cur != nil {
		out = append(out, cur)
	}
	return out
}

// Apply invokes callee with the raw operand sequence and the call's
// scope (§4.4 rule 4). Special forms and ordinary procedures are both
// BuiltIns, and both receive the unevaluated operands; a BuiltIn decides
// for itself whether and when to evaluate them. Closures always evaluate
// their operands per the fixed five-step protocol in §4.4.
func Apply(callee *Value, operands []*Value, callScope *Scope) *Value {
	switch {
	case callee == nil:
		raise(RuntimeError, "not a procedure: ()")
	case callee.Kind == KindBuiltin:
		return callee.builtin(operands, callScope)
	case callee.Kind == KindClosure:
		return applyClosure(callee, operands, callScope)
	}
	raise(RuntimeError, "not a procedure: %s", Serialize(callee))
	panic("unreached")
}

// applyClosure implements the five-step closure-application protocol.
func applyClosure(cl *Value, operands []*Value, callScope *Scope) *Value {
	if cl.env.depth != nil && cl.env.maxDepth > 0 {
		*cl.env.depth++
		if *cl.env.depth > cl.env.maxDepth {
			*cl.env.depth--
			raise(RuntimeError, "stack too deep")
		}
		defer func() { *cl.env.depth-- }()
	}

	var present []*Value
	for _, op := range operands {
		if op != nil {
			present = append(present, op)
		}
	}
	if len(present) != len(cl.params) {
		raise(RuntimeError, "wrong number of arguments: expected %d, got %d", len(cl.params), len(present))
	}
	child := NewScope(cl.env)
	for i, param := range cl.params {
		child.Define(param, Eval(present[i], callScope))
	}
	if len(cl.body) == 0 {
		return nil
	}
	var result *Value
	for _, expr := range cl.body {
		result = Eval(expr, child)
	}
	return result
}

// evalOperand is a small convenience used by built-ins: evaluate the
// i-th raw operand in scope, or raise a RuntimeError naming the
// procedure if the operand is missing. A literal () operand is the empty
// list and yields nil without being evaluated.
func evalOperand(name string, operands []*Value, i int, scope *Scope) *Value {
	if i >= len(operands) {
		raise(RuntimeError, "%s: missing argument %d", name, i+1)
	}
	if operands[i] == nil {
		return nil
	}
	return Eval(operands[i], scope)
}
