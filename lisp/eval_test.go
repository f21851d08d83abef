package lisp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// strEval reads a single expression from str and evaluates it against a
// fresh global scope, returning its printed form — the lisp package's
// analogue of the teacher's own strEval test helper.
func strEval(t *testing.T, str string) string {
	t.Helper()
	v := Read(NewLexer(strings.NewReader(str)))
	return Serialize(Eval(v, NewScope(nil)))
}

var consEvalTests = []struct{ in, out string }{
	{"(cons 1 2)", "(1 . 2)"},
	{"(cons 'a (cons 'b (cons 'c ())))", "(a b c)"},
	{"(list 'a 'b 'c)", "(a b c)"},
	{"(cons 1 (list 2 3 4))", "(1 2 3 4)"},
	{"(cons '(a b c) ())", "((a b c))"},
	{"(cons '(a b c) (list 'd))", "((a b c) d)"},
}

func TestConsEval(t *testing.T) {
	for _, test := range consEvalTests {
		assert.Equal(t, test.out, strEval(t, test.in), test.in)
	}
}

func TestCaaaddrStyleChaining(t *testing.T) {
	// Mirrors the teacher's TestExamples caaaddr case: arbitrary-depth
	// c[ad]+r combinations resolve generically, not just the
	// hand-written car/cdr/cadr trio.
	got := strEval(t, "(caaaddr (list (list 1 2) (list 3 4) (list (list 5 6)) (list 7 8)))")
	assert.Equal(t, "5", got)
}

func TestEvalSelfEvaluatingAtoms(t *testing.T) {
	assert.Equal(t, "42", strEval(t, "42"))
	assert.Equal(t, "#t", strEval(t, "#t"))
}

func TestEvalEmptyApplicationIsRuntimeError(t *testing.T) {
	defer func() {
		r := recover()
		lerr, ok := r.(*Error)
		assert.True(t, ok)
		assert.Equal(t, RuntimeError, lerr.Kind)
	}()
	Eval(Cons(nil, nil), NewScope(nil))
}

func TestIfWithoutElseBranchOnFalseReturnsNil(t *testing.T) {
	assert.Equal(t, "()", strEval(t, "(if #f 1)"))
}

func TestIfArityViolationIsSyntaxError(t *testing.T) {
	defer func() {
		r := recover()
		lerr, ok := r.(*Error)
		assert.True(t, ok)
		assert.Equal(t, SyntaxError, lerr.Kind)
	}()
	strEval(t, "(if #t)")
}

func TestDefineWithNonSymbolWithNonPairTargetIsSyntaxError(t *testing.T) {
	defer func() {
		r := recover()
		lerr, ok := r.(*Error)
		assert.True(t, ok)
		assert.Equal(t, SyntaxError, lerr.Kind)
	}()
	strEval(t, "(define 5 1)")
}

func TestLambdaWithNonSymbolParameterIsSyntaxError(t *testing.T) {
	defer func() {
		r := recover()
		lerr, ok := r.(*Error)
		assert.True(t, ok)
		assert.Equal(t, SyntaxError, lerr.Kind)
	}()
	strEval(t, "((lambda (1) 1) 2)")
}
