package js_test

import (
	"testing"

	"github.com/kenjisato/tinybrowser/dom"
	"github.com/kenjisato/tinybrowser/js"
)

func newRuntime() *js.Runtime {
	alloc := dom.NewAllocator()
	root := alloc.NewDocument()
	return js.NewRuntime(alloc, root)
}

func TestRunNumericLiteral(t *testing.T) {
	t.Parallel()

	rt := newRuntime()
	results, err := rt.Run(js.Parse("42"))
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if len(results) != 1 || !results[0].Present || results[0].Value.Num != 42 {
		t.Fatalf("results = %+v, want one Present Number(42)", results)
	}
}

func TestRunAdditiveExpression(t *testing.T) {
	t.Parallel()

	rt := newRuntime()
	results, err := rt.Run(js.Parse("1 + 2"))
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if len(results) != 1 || !results[0].Present || results[0].Value.Num != 3 {
		t.Fatalf("results = %+v, want one Present Number(3)", results)
	}
}

func TestRunVarDeclAssignmentAndReadback(t *testing.T) {
	t.Parallel()

	rt := newRuntime()
	results, err := rt.Run(js.Parse("var foo=42; foo=1; foo"))
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if results[0].Present || results[1].Present {
		t.Fatalf("results[0:2] = %+v, want both absent (declaration and assignment don't report)", results[:2])
	}
	if !results[2].Present || results[2].Value.Kind != js.VNumber || results[2].Value.Num != 1 {
		t.Fatalf("results[2] = %+v, want Present Number(1)", results[2])
	}
}

func TestRunFunctionDeclarationAndCall(t *testing.T) {
	t.Parallel()

	rt := newRuntime()
	results, err := rt.Run(js.Parse("function foo(a,b){return a+b;} foo(1,2)+3"))
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Present {
		t.Fatalf("results[0] = %+v, want absent (function declaration)", results[0])
	}
	if !results[1].Present || results[1].Value.Num != 6 {
		t.Fatalf("results[1] = %+v, want Present Number(6)", results[1])
	}
}

func TestRunFunctionScopeDoesNotLeakIntoGlobal(t *testing.T) {
	t.Parallel()

	rt := newRuntime()
	results, err := rt.Run(js.Parse("var a=42; function foo(){var a=1; return a;} foo()+a"))
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if results[0].Present || results[1].Present {
		t.Fatalf("results[0:2] = %+v, want both absent", results[:2])
	}
	if !results[2].Present || results[2].Value.Num != 43 {
		t.Fatalf("results[2] = %+v, want Present Number(43) (foo()==1, a==42)", results[2])
	}
}

func TestRunGetElementByIdAndTextContentAssignment(t *testing.T) {
	t.Parallel()

	alloc := dom.NewAllocator()
	root := alloc.NewDocument()
	html := alloc.NewElement("html")
	body := alloc.NewElement("body")
	target := alloc.NewElementWithAttrs("p", []dom.Attribute{{Name: "id", Value: "x"}})
	text := alloc.NewText("before")

	root.SetFirstChild(html)
	html.SetParent(root)
	html.SetFirstChild(body)
	body.SetParent(html)
	body.SetFirstChild(target)
	target.SetParent(body)
	target.SetFirstChild(text)
	text.SetParent(target)

	rt := js.NewRuntime(alloc, root)
	if _, err := rt.Run(js.Parse(`document.getElementById("x").textContent = "after"`)); err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}

	if got := target.FirstChild().Data; got != "after" {
		t.Fatalf("target text content = %q, want %q", got, "after")
	}
}

func TestRunGetElementByIdMissingTargetIsNoOp(t *testing.T) {
	t.Parallel()

	rt := newRuntime()
	results, err := rt.Run(js.Parse(`document.getElementById("missing").textContent = "x"`))
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if len(results) != 1 || results[0].Present {
		t.Fatalf("results = %+v, want one absent result", results)
	}
}

func TestRunUndefinedFunctionAborts(t *testing.T) {
	t.Parallel()

	rt := newRuntime()
	results, err := rt.Run(js.Parse("bar()"))
	if err == nil {
		t.Fatal("Run() error = nil, want non-nil for a call to an undeclared function")
	}
	if results != nil {
		t.Errorf("results = %+v, want nil on abort", results)
	}
}

func TestRunFunctionArityMismatchAborts(t *testing.T) {
	t.Parallel()

	rt := newRuntime()
	results, err := rt.Run(js.Parse("function foo(a,b){return a+b;} foo(1)"))
	if err == nil {
		t.Fatal("Run() error = nil, want non-nil for a call with the wrong argument count")
	}
	if results != nil {
		t.Errorf("results = %+v, want nil on abort", results)
	}
}
