package bruntime

import (
	"errors"
	"strings"
	"testing"

	"github.com/gosuda/batgo/parser"
)

func newTestVM(script string) *VM {
	return New(parser.ParseProgram(parser.SplitLines(script)))
}

func mustRun(t *testing.T, script string) (*VM, []Output) {
	t.Helper()
	vm := newTestVM(script)
	out, err := vm.Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return vm, out
}

func mustFail(t *testing.T, script string) *Error {
	t.Helper()
	vm := newTestVM(script)
	_, err := vm.Run()
	var scriptErr *Error
	if !errors.As(err, &scriptErr) {
		t.Fatalf("expected script error, got %v", err)
	}
	return scriptErr
}

func outputTexts(out []Output) []string {
	texts := make([]string, 0, len(out))
	for _, o := range out {
		texts = append(texts, o.Text)
	}
	return texts
}

func TestIfElseEnd(t *testing.T) {
	_, out := mustRun(t, `
SET x=5
IF $x$ == 5
ECHO yes
ELSE
ECHO no
END
`)
	if len(out) != 1 || out[0].Text != "yes " || !out[0].NewLine {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestElseBranch(t *testing.T) {
	_, out := mustRun(t, `
IF 1 == 2
ECHO then
ELSE
ECHO else
END
`)
	if len(out) != 1 || out[0].Text != "else " {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestElseIfChain(t *testing.T) {
	_, out := mustRun(t, `
SET x=2
IF $x$ == 1
ECHO one
ELSE IF $x$ == 2
ECHO two
END
`)
	if len(out) != 1 || out[0].Text != "two " {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestElseIfAfterTakenBranchIsNotEvaluated(t *testing.T) {
	// "bogus" would be an evaluation error; the taken prior branch must
	// suppress the ELSE IF without evaluating its condition.
	_, out := mustRun(t, `
IF 1 == 1
ECHO one
ELSE IF bogus
ECHO two
END
`)
	if len(out) != 1 || out[0].Text != "one " {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestNestedIfInsideFalseBranch(t *testing.T) {
	// Directives inside a false branch still push placeholder entries, so
	// the matching ENDs stay balanced and nothing in the branch executes.
	_, out := mustRun(t, `
IF 1 == 2
IF 1 == 1
ECHO inner
ELSE
ECHO inner-else
END
ECHO outer
END
ECHO after
`)
	if len(out) != 1 || out[0].Text != "after " {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestWhileLoop(t *testing.T) {
	vm, out := mustRun(t, `
SET i=0
WHILE $i$ < 3
INC i
WEND
ECHO $i$
`)
	if v, _ := vm.Var("i"); v != "3" {
		t.Fatalf("i = %q", v)
	}
	if len(out) != 1 || out[0].Text != "3 " {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestNestedWhile(t *testing.T) {
	vm, _ := mustRun(t, `
SET total=0
SET i=0
WHILE $i$ < 3
SET j=0
WHILE $j$ < 2
INC total
INC j
WEND
INC i
WEND
`)
	if v, _ := vm.Var("total"); v != "6" {
		t.Fatalf("total = %q", v)
	}
}

func TestWhileInsideFalseBranchDoesNotRun(t *testing.T) {
	// The loop condition is forced false when the enclosing IF is inactive;
	// this must terminate instead of spinning on a truthy condition.
	vm := newTestVM(`
IF 1 == 2
WHILE 1 == 1
ECHO spinning
WEND
END
ECHO done
`)
	vm.SetMaxSteps(1000)
	out, err := vm.Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(out) != 1 || out[0].Text != "done " {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestCallReturn(t *testing.T) {
	_, out := mustRun(t, `
CALL a
ECHO done
EXIT
:a
ECHO a1
CALL b
ECHO a2
RETURN
:b
ECHO b
RETURN
`)
	want := []string{"a1 ", "b ", "a2 ", "done "}
	got := outputTexts(out)
	if len(got) != len(want) {
		t.Fatalf("unexpected outputs: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("output %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCallFallsOffProgramEnd(t *testing.T) {
	// Reaching program end with a pending return address resumes the caller.
	_, out := mustRun(t, `
CALL sub
ECHO back
EXIT
:sub
ECHO inside
`)
	want := []string{"inside ", "back "}
	got := outputTexts(out)
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("unexpected outputs: %v", got)
	}
}

func TestCallReturnsAcrossTrailingNoise(t *testing.T) {
	// Blank lines, comments and labels after the subroutine's last command
	// walk off the program end without a dispatch; the caller must still be
	// resumed from the pending return address.
	_, out := mustRun(t, `
CALL sub
ECHO back
EXIT
:sub
ECHO inside

# nothing more to do here
:unused
`)
	want := []string{"inside ", "back "}
	got := outputTexts(out)
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("unexpected outputs: %v", got)
	}
}

func TestBareWordConditionIsFatal(t *testing.T) {
	// An unquoted word in a condition is an unknown identifier, not an
	// implicit string literal.
	scriptErr := mustFail(t, `
SET who=world
IF $who$ == world
END
`)
	if scriptErr.Line != 3 {
		t.Fatalf("expected line 3, got %d", scriptErr.Line)
	}
	if !strings.Contains(scriptErr.Msg, "bad condition") {
		t.Fatalf("unexpected message %q", scriptErr.Msg)
	}
}

func TestGotoLoop(t *testing.T) {
	vm, out := mustRun(t, `
SET a=0
:loop
INC a
IF $a$ < 3
GOTO loop
END
ECHO $a$
EXIT
`)
	if v, _ := vm.Var("a"); v != "3" {
		t.Fatalf("a = %q", v)
	}
	if len(out) != 1 || out[0].Text != "3 " {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestPrintDoesNotBreakLine(t *testing.T) {
	_, out := mustRun(t, `
PRINT a, b
ECHO c
`)
	if len(out) != 2 {
		t.Fatalf("unexpected outputs: %+v", out)
	}
	if out[0].Text != "a b " || out[0].NewLine {
		t.Fatalf("unexpected first output: %+v", out[0])
	}
	if out[1].Text != "c " || !out[1].NewLine {
		t.Fatalf("unexpected second output: %+v", out[1])
	}
}

func TestSetLetSwapIncDec(t *testing.T) {
	vm, _ := mustRun(t, `
SET a=1, b=2
LET c=$a$ + $b$ * 2
SWAP a, b
INC a
DEC d
`)
	vars := vm.Vars()
	if vars["a"] != "3" {
		t.Fatalf("a = %q", vars["a"])
	}
	if vars["b"] != "1" {
		t.Fatalf("b = %q", vars["b"])
	}
	if vars["c"] != "5" {
		t.Fatalf("c = %q", vars["c"])
	}
	if vars["d"] != "-1" {
		t.Fatalf("d = %q", vars["d"])
	}
}

func TestInputStoresTrimmedText(t *testing.T) {
	vm := newTestVM(`
INPUT name, city
PAUSE
ECHO $name$/$city$
`)
	vm.EnqueueInput("  alice  ", "paris", "")
	out, err := vm.Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if v, _ := vm.Var("name"); v != "alice" {
		t.Fatalf("name = %q", v)
	}
	if len(out) != 1 || out[0].Text != "alice/paris " {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestErrorLevelTracksDispatchStatus(t *testing.T) {
	vm, _ := mustRun(t, `
NOSUCHCOMMAND
SET saved=$ERRORLEVEL$
SET x=1
`)
	if v, _ := vm.Var("saved"); v != "1" {
		t.Fatalf("saved = %q", v)
	}
	if v, _ := vm.Var("ERRORLEVEL"); v != "0" {
		t.Fatalf("ERRORLEVEL = %q", v)
	}
}

func TestErrorLevelNotWrittenByDirectives(t *testing.T) {
	vm, _ := mustRun(t, `
NOSUCHCOMMAND
IF 1 == 1
END
SET saved=$ERRORLEVEL$
`)
	// SET rewrites ERRORLEVEL after its own dispatch, but the value it
	// captures must still be the 1 left by the failed command: the IF/END
	// pair in between must not touch it.
	if v, _ := vm.Var("saved"); v != "1" {
		t.Fatalf("saved = %q", v)
	}
}

func TestExitStopsExecution(t *testing.T) {
	_, out := mustRun(t, `
ECHO before
EXIT
ECHO after
`)
	if len(out) != 1 || out[0].Text != "before " {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestUnknownLabelIsFatal(t *testing.T) {
	scriptErr := mustFail(t, `
SET a=1
GOTO missing_label
`)
	if scriptErr.Line != 3 {
		t.Fatalf("expected line 3, got %d", scriptErr.Line)
	}
	if scriptErr.Msg != "unknown label missing_label" {
		t.Fatalf("unexpected message %q", scriptErr.Msg)
	}
}

func TestUnknownCallTargetIsFatal(t *testing.T) {
	scriptErr := mustFail(t, `CALL nowhere`)
	if scriptErr.Msg != "unknown label nowhere" {
		t.Fatalf("unexpected message %q", scriptErr.Msg)
	}
}

func TestExtraEnd(t *testing.T) {
	scriptErr := mustFail(t, `
SET a=1
END
`)
	if scriptErr.Msg != "extra END" || scriptErr.Line != 3 {
		t.Fatalf("unexpected error %v", scriptErr)
	}
}

func TestExtraWend(t *testing.T) {
	scriptErr := mustFail(t, `WEND`)
	if scriptErr.Msg != "extra WEND" || scriptErr.Line != 1 {
		t.Fatalf("unexpected error %v", scriptErr)
	}
}

func TestElseWithoutIf(t *testing.T) {
	scriptErr := mustFail(t, `ELSE`)
	if scriptErr.Msg != "ELSE without IF" {
		t.Fatalf("unexpected error %v", scriptErr)
	}
}

func TestBadConditionCarriesLine(t *testing.T) {
	scriptErr := mustFail(t, `
SET a=1
IF $a$ ==
END
`)
	if scriptErr.Line != 3 {
		t.Fatalf("expected line 3, got %d", scriptErr.Line)
	}
}

func TestStepWatchdog(t *testing.T) {
	vm := newTestVM(`
:loop
GOTO loop
`)
	vm.SetMaxSteps(100)
	if _, err := vm.Run(); err == nil {
		t.Fatalf("expected watchdog error")
	}
}

func TestOutputHookStreams(t *testing.T) {
	vm := newTestVM(`
ECHO a
ECHO b
`)
	var streamed []string
	vm.SetOutputHook(func(out Output) {
		streamed = append(streamed, out.Text)
	})
	out, err := vm.Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(streamed) != len(out) || len(streamed) != 2 {
		t.Fatalf("hook saw %v, run returned %v", streamed, out)
	}
}
