package interpreter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/runtime"
)

func runLox(t *testing.T, interp *Interpreter, source string) (string, []driver.Diagnostic, error) {
	t.Helper()
	var out bytes.Buffer
	interp.SetOutput(&out)
	diags, err := interp.RunSource(driver.Source{Name: "test.lox", Text: source, StartLine: 1})
	return out.String(), diags, err
}

func expectOutput(t *testing.T, source, want string) {
	t.Helper()
	out, diags, err := runLox(t, New(), source)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != want {
		t.Fatalf("expected output %q, got %q", want, out)
	}
}

func expectRuntimeError(t *testing.T, source string, kind ErrorKind) (*RuntimeError, string) {
	t.Helper()
	out, diags, err := runLox(t, New(), source)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected RuntimeError, got %v", err)
	}
	if rtErr.Kind != kind {
		t.Fatalf("expected %s, got %s (%s)", kind, rtErr.Kind, rtErr.Message)
	}
	return rtErr, out
}

func TestPrecedenceEvaluation(t *testing.T) {
	expectOutput(t, "print 10 + 2 * (3 - 1);", "14\n")
	expectOutput(t, "print -2 * 3 + 10 / 4;", "-3.5\n")
	expectOutput(t, "print 7 % 3; print -7 % 3; print 5.5 % 2;", "1\n-1\n1.5\n")
}

func TestStringConcatenation(t *testing.T) {
	expectOutput(t, `print "foo" + "bar";`, "foobar\n")
	expectRuntimeError(t, `print "foo" + 1;`, TypeMismatch)
	expectRuntimeError(t, `print 1 + "foo";`, TypeMismatch)
}

func TestArithmeticTypeMismatch(t *testing.T) {
	for _, src := range []string{`print "a" - 1;`, `print nil * 2;`, `print true / 1;`, `print "a" % 2;`, `print -"a";`, `print 1 < "2";`} {
		expectRuntimeError(t, src, TypeMismatch)
	}
}

func TestShortCircuitSkipsRightOperand(t *testing.T) {
	expectOutput(t, "print false and (1/0);", "false\n")
	expectOutput(t, "print true or (1/0);", "true\n")
	expectOutput(t, "var x = 1; false and (x = 2); true or (x = 3); print x;", "1\n")
}

func TestLogicalOperatorsReturnOperands(t *testing.T) {
	expectOutput(t, `print nil or "fallback"; print 0 and "second"; print "" or 1; print nil and 1;`, "fallback\nsecond\n\nnil\n")
}

func TestScopingShadowsWithoutReplacing(t *testing.T) {
	expectOutput(t, "var a = 1; { var a = 2; print a; } print a;", "2\n1\n")
	expectOutput(t, "var a = 1; { a = 2; } print a;", "2\n")
}

func TestContinueStillRunsForIncrement(t *testing.T) {
	expectOutput(t, "for (var i = 0; i < 3; i = i + 1) { if (i == 1) continue; print i; }", "0\n2\n")
}

func TestForInitializerDoesNotLeak(t *testing.T) {
	expectRuntimeError(t, "for (var i = 0; i < 1; i = i + 1) {} print i;", UndefinedVariable)
}

func TestNestedLoopsBreakOnlyInner(t *testing.T) {
	source := `
for (var i = 0; i < 2; i = i + 1) {
  for (var j = 0; j < 10; j = j + 1) {
    { if (j == 1) break; }
    print i * 10 + j;
  }
}
print "end";
`
	expectOutput(t, source, "0\n10\nend\n")
}

func TestWhileWithContinueAndBreak(t *testing.T) {
	source := `
var i = 0;
while (true) {
  i = i + 1;
  if (i % 2 == 0) continue;
  if (i > 5) break;
  print i;
}
`
	expectOutput(t, source, "1\n3\n5\n")
}

func TestDivisionByZeroHaltsProgram(t *testing.T) {
	rtErr, out := expectRuntimeError(t, "print 1;\nprint 1 / 0;\nprint 2;", DivisionByZero)
	if out != "1\n" {
		t.Fatalf("expected output before the error only, got %q", out)
	}
	if rtErr.Line != 2 {
		t.Fatalf("expected error on line 2, got %d", rtErr.Line)
	}
	expectRuntimeError(t, "print 1 % 0;", DivisionByZero)
}

func TestUndefinedVariable(t *testing.T) {
	rtErr, _ := expectRuntimeError(t, "x = 5;", UndefinedVariable)
	if rtErr.Message != "Undefined variable 'x'." {
		t.Fatalf("unexpected message %q", rtErr.Message)
	}
	expectRuntimeError(t, "print y;", UndefinedVariable)
}

func TestEqualityAcrossKinds(t *testing.T) {
	expectOutput(t, `print 1 == 1; print 1 == "1"; print nil == nil; print nil == false; print "a" != "b";`,
		"true\nfalse\ntrue\nfalse\ntrue\n")
}

func TestVarWithoutInitializerIsNil(t *testing.T) {
	expectOutput(t, "var a; print a;", "nil\n")
}

func TestAssignmentYieldsValue(t *testing.T) {
	expectOutput(t, "var a; var b; a = b = 3; print a + b;", "6\n")
}

func TestNativeClock(t *testing.T) {
	expectOutput(t, "print clock() > 0;", "true\n")
	expectOutput(t, "print clock;", "<native fn clock>\n")
	expectRuntimeError(t, "clock(1);", ArityMismatch)
	expectRuntimeError(t, `"str"();`, NotCallable)
}

func TestStaticErrorsSuppressEvaluation(t *testing.T) {
	source := "print \"side effect\";\nvar a = 1 @;\nvar b = # 2;\nprint (a;\n"
	out, diags, err := runLox(t, New(), source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no evaluation, got output %q", out)
	}
	if len(diags) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d: %v", len(diags), diags)
	}
	if diags[0].Stage != driver.StageLex || diags[1].Stage != driver.StageLex || diags[2].Stage != driver.StageParse {
		t.Fatalf("unexpected stages: %v", diags)
	}
	if diags[0].Line != 2 || diags[1].Line != 3 || diags[2].Line != 4 {
		t.Fatalf("unexpected lines: %v", diags)
	}
}

func TestBindingsPersistAcrossChunksAndRuntimeErrors(t *testing.T) {
	interp := New()
	if _, diags, err := runLox(t, interp, "var count = 1;"); err != nil || len(diags) != 0 {
		t.Fatalf("chunk 1: %v %v", diags, err)
	}
	_, _, err := runLox(t, interp, "count = count + 1; print count / 0; count = 100;")
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("chunk 2: expected runtime error, got %v", err)
	}
	out, diags, err := runLox(t, interp, "print count;")
	if err != nil || len(diags) != 0 {
		t.Fatalf("chunk 3: %v %v", diags, err)
	}
	if out != "2\n" {
		t.Fatalf("expected bindings from before the failure, got %q", out)
	}
	if _, diags, _ := runLox(t, interp, "print ("); len(diags) == 0 {
		t.Fatalf("expected diagnostics for a broken chunk")
	}
	if v, err := interp.GlobalEnvironment().Get("count"); err != nil || !runtime.ValuesEqual(v, runtime.NumberValue{Val: 2}) {
		t.Fatalf("expected count to survive a broken chunk, got %#v %v", v, err)
	}
}

func TestRuntimeErrorFormatting(t *testing.T) {
	rtErr, _ := expectRuntimeError(t, "\n\nprint -nil;", TypeMismatch)
	if got := rtErr.Error(); !strings.HasPrefix(got, "[line 3] Runtime error:") {
		t.Fatalf("unexpected error text %q", got)
	}
}

func TestOverflowPrintsInfinity(t *testing.T) {
	source := "var x = 1;\nfor (var i = 0; i < 400; i = i + 1) x = x * 10;\nprint x;\nprint -x;\nprint x - x;"
	expectOutput(t, source, "inf\n-inf\nNaN\n")
}

func TestHugeLiteralStillEvaluates(t *testing.T) {
	expectOutput(t, "print "+strings.Repeat("9", 400)+";", "inf\n")
}
