package lisp

import "strings"

// Interpreter is the persistent façade described in §6: one global Scope
// survives across calls to Run, so a definition made in one call is
// visible to the next, the way a REPL session accumulates state.
type Interpreter struct {
	global *Scope
}

// defaultMaxDepth mirrors the teacher's own -depth default (1e5).
const defaultMaxDepth = 100000

// NewInterpreter returns an Interpreter with a fresh, empty global Scope
// and the default call-depth limit.
func NewInterpreter() *Interpreter {
	return NewInterpreterWithDepth(defaultMaxDepth)
}

// NewInterpreterWithDepth returns an Interpreter whose closure
// invocations are limited to maxDepth nested calls; 0 means unlimited,
// matching the teacher's -depth flag.
func NewInterpreterWithDepth(maxDepth int) *Interpreter {
	return &Interpreter{global: newRootScope(maxDepth)}
}

// Run lexes and reads exactly the first top-level expression from
// source, evaluates it against the persistent global scope, and returns
// its printed representation. Any further top-level forms present in
// source are drained (tokenized and discarded without evaluation), so a
// lexical error anywhere in source is still reported as a SyntaxError;
// they are not parsed, and no lexer state survives the call. This
// mirrors the observed behavior of the original
// interpreter's Interpreter::Run, which reads and evaluates only the
// first form of whatever buffer it is given (§9 Design Note, Open
// Question #1).
//
// A panic raised anywhere below — the lexer, the reader, Eval, or a
// built-in — is recovered here and translated to an error; this is the
// single recover point for the whole package, matching the teacher's
// errorf/recover idiom in lisp1_5.Context.Eval.
func (in *Interpreter) Run(source string) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*Error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()

	lex := NewLexer(strings.NewReader(source))
	empty := lex.IsEnd()
	v := Read(lex)
	for !lex.IsEnd() {
		lex.Advance()
	}
	if v == nil {
		if empty {
			return "", nil
		}
		// Tokens existed but Read still yielded nil: the source was a
		// literal top-level (), which §4.6 rule 3 and §8 both call out
		// as a RuntimeError, not a silent no-op.
		raise(RuntimeError, "empty application: ()")
	}
	return Serialize(Eval(v, in.global)), nil
}

// Global exposes the persistent scope for hosts that want to pre-seed
// bindings (e.g. loading a prelude file) or offer name completion.
func (in *Interpreter) Global() *Scope {
	return in.global
}
