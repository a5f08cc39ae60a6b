package js

import (
	"fmt"
	"strconv"

	"github.com/kenjisato/tinybrowser/dom"
	jserrors "github.com/kenjisato/tinybrowser/errors"
)

// ValueKind tags which variant a Value represents.
type ValueKind int

const (
	VNumber ValueKind = iota
	VString
	VElement
)

// Value is a runtime value: a Number, a StringLiteral, or a reference to an
// HTML element obtained through the document API.
//
// An element value can carry a pending Property name, set by evaluating a
// MemberExpression whose object was itself already an element. Assignment
// does not read it: assign re-evaluates the target's object expression and
// takes the property name from the AST.
type Value struct {
	Kind ValueKind

	Num uint64
	Str string

	Element  *dom.Node
	Property string
}

func numberVal(n uint64) Value { return Value{Kind: VNumber, Num: n} }
func stringVal(s string) Value { return Value{Kind: VString, Str: s} }

// displayString renders a Value the way string concatenation and argument
// coercion need: Numbers as decimal, strings verbatim, elements as an inert
// placeholder (scripts in this language never print an element itself, only
// property access on one).
func displayString(v Value) string {
	switch v.Kind {
	case VNumber:
		return strconv.FormatUint(v.Num, 10)
	case VString:
		return v.Str
	case VElement:
		return "[object HTMLElement]"
	default:
		return ""
	}
}

// Environment is a chain of variable scopes, innermost first.
type Environment struct {
	outer  *Environment
	names  []string
	values []Value
}

// NewEnvironment creates a scope with no outer parent.
func NewEnvironment() *Environment {
	return &Environment{}
}

// NewChildEnvironment creates a scope nested inside outer.
func NewChildEnvironment(outer *Environment) *Environment {
	return &Environment{outer: outer}
}

// Declare binds name to v in this scope, shadowing any outer binding of the
// same name.
func (e *Environment) Declare(name string, v Value) {
	e.names = append(e.names, name)
	e.values = append(e.values, v)
}

// Get looks up name starting in this scope and walking outward.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.outer {
		for i, n := range env.names {
			if n == name {
				return env.values[i], true
			}
		}
	}
	return Value{}, false
}

// Update rewrites the first scope (searching outward from e) that already
// binds name; if none does, it does nothing (no implicit declaration).
//
// original_source/browser/core/src/renderer/js/runtime.rs only ever
// rewrites the current scope, so a reassignment inside a nested scope never
// reaches a variable declared outside it. This implementation instead walks
// outward, matching the plain reading of "update finds the first scope
// containing the name" — see DESIGN.md for why the wider contract was kept.
func (e *Environment) Update(name string, v Value) {
	for env := e; env != nil; env = env.outer {
		for i, n := range env.names {
			if n == name {
				env.values[i] = v
				return
			}
		}
	}
}

// abort is the value evalCall panics with when a script violates one of the
// two hard invariants spec.md §7 says must abort the script rather than
// produce a wrong result: a call to a function that was never declared, or
// a call whose argument count doesn't match the target function's declared
// parameters. original_source/browser/core/src/renderer/js/runtime.rs
// enforces the same two invariants with panic!/assert! (runtime.rs:176,181);
// Run recovers this panic at the top level and reports it as an Internal
// error instead of letting it escape to the driver.
type abort struct {
	err *jserrors.Error
}

func abortf(code, format string, args ...any) {
	panic(abort{err: jserrors.New(jserrors.Internal, fmt.Sprintf("%s: %s", code, fmt.Sprintf(format, args...)))})
}

// Runtime evaluates a parsed Program against a DOM tree, exposing a small
// "document" API and a per-instance table of user-defined functions.
type Runtime struct {
	root      *dom.Node
	alloc     *dom.Allocator
	global    *Environment
	functions map[string]*Node
}

// NewRuntime creates a runtime that scripts document.getElementById and
// element mutation against root.
func NewRuntime(alloc *dom.Allocator, root *dom.Node) *Runtime {
	return &Runtime{root: root, alloc: alloc, functions: map[string]*Node{}}
}

// Result is one top-level statement's reported outcome. Present is false
// for declarations and for bare assignment statements, which execute for
// their side effect and report nothing — only a statement whose top-level
// expression is not itself an assignment surfaces a Value, mirroring a
// REPL that echoes expressions but not assignments.
type Result struct {
	Present bool
	Value   Value
}

// Run executes every statement in prog against a fresh global scope and
// returns one Result per top-level statement, in order. If the script hits
// an unmet invariant (an undefined function, or an argument count mismatch)
// it aborts immediately: err is non-nil and results is nil, since the script
// never reached a reportable state to return partial results for.
func (r *Runtime) Run(prog *Node) (results []Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			a, ok := rec.(abort)
			if !ok {
				panic(rec)
			}
			results, err = nil, a.err
		}
	}()

	r.global = NewEnvironment()

	for _, stmt := range prog.Body {
		if stmt.Kind == FunctionDeclaration {
			r.functions[stmt.Id.Name] = stmt
		}
	}

	results = make([]Result, 0, len(prog.Body))
	for _, stmt := range prog.Body {
		if stmt.Kind == ExpressionStatement && stmt.Expr.Kind != AssignmentExpression {
			v := r.eval(stmt.Expr, r.global)
			results = append(results, Result{Present: true, Value: v})
			continue
		}
		r.execStatement(stmt, r.global)
		results = append(results, Result{})
	}
	return results, nil
}

func (r *Runtime) execBlock(block *Node, env *Environment) (Value, bool) {
	for _, stmt := range block.Body {
		if v, ok := r.execStatement(stmt, env); ok {
			return v, true
		}
	}
	return Value{}, false
}

func (r *Runtime) execStatement(node *Node, env *Environment) (Value, bool) {
	switch node.Kind {
	case ReturnStatement:
		if node.Argument == nil {
			return Value{}, true
		}
		return r.eval(node.Argument, env), true
	case VariableDeclaration:
		for _, decl := range node.Declarations {
			var v Value
			if decl.Init != nil {
				v = r.eval(decl.Init, env)
			}
			env.Declare(decl.Id.Name, v)
		}
		return Value{}, false
	case FunctionDeclaration:
		r.functions[node.Id.Name] = node
		return Value{}, false
	case ExpressionStatement:
		r.eval(node.Expr, env)
		return Value{}, false
	case BlockStatement:
		return r.execBlock(node, env)
	default:
		return Value{}, false
	}
}

// eval evaluates a single expression node. Only expression NodeKinds reach
// here; statements go through execStatement/execBlock.
func (r *Runtime) eval(node *Node, env *Environment) Value {
	switch node.Kind {
	case NumericLiteral:
		return numberVal(node.Num)

	case StringLiteral:
		return stringVal(node.Str)

	case Identifier:
		if v, ok := env.Get(node.Name); ok {
			return v
		}
		// An unbound identifier evaluates to its own name. This is what
		// lets a bare "document" flow into MemberExpression evaluation
		// and come out the other side as the string "document.getElementById"
		// without the identifier ever being a special case itself.
		return stringVal(node.Name)

	case BinaryExpression:
		left := r.eval(node.Left, env)
		right := r.eval(node.Right, env)
		return r.evalBinary(node.Op, left, right)

	case AssignmentExpression:
		rhs := r.eval(node.Right, env)
		r.assign(node.Left, rhs, env)
		return rhs

	case MemberExpression:
		obj := r.eval(node.Object, env)
		if obj.Kind == VElement {
			return Value{Kind: VElement, Element: obj.Element, Property: node.Property.Name}
		}
		return stringVal(displayString(obj) + "." + node.Property.Name)

	case CallExpression:
		return r.evalCall(node, env)

	default:
		return Value{}
	}
}

func (r *Runtime) evalBinary(op rune, left, right Value) Value {
	switch op {
	case '+':
		if left.Kind == VNumber && right.Kind == VNumber {
			return numberVal(left.Num + right.Num)
		}
		return stringVal(displayString(left) + displayString(right))
	case '-':
		if left.Kind == VNumber && right.Kind == VNumber {
			return numberVal(left.Num - right.Num)
		}
		// At least one operand was not numeric: there is no NaN variant in
		// this value model, so subtraction on non-numbers settles to 0.
		return numberVal(0)
	default:
		return Value{}
	}
}

func (r *Runtime) assign(target *Node, rhs Value, env *Environment) {
	switch target.Kind {
	case Identifier:
		env.Update(target.Name, rhs)
	case MemberExpression:
		obj := r.eval(target.Object, env)
		if obj.Kind == VElement && target.Property.Name == "textContent" {
			dom.SetTextContent(r.alloc, obj.Element, displayString(rhs))
		}
		// Any other member target (a non-textContent property, or a
		// property on a non-element) is not an assignable slot; the
		// write is silently discarded.
	}
}

// evalCall resolves and invokes a call expression. The callee is evaluated
// in a fresh child scope before dispatch is decided — a quirk carried over
// from the source this runtime is grounded on, where a call always opens a
// scope for its own callee resolution regardless of what that callee turns
// out to be.
//
// Evaluating the callee bottoms out at a StringLiteral in both routes this
// language supports: a bare function name that isn't a bound variable
// evaluates to its own name (Identifier's fallback), and
// "document.getElementById" arrives the same way through MemberExpression's
// string-concatenation fallback. Dispatch below only has to look at that
// one string.
func (r *Runtime) evalCall(node *Node, env *Environment) Value {
	calleeEnv := NewChildEnvironment(env)
	callee := r.eval(node.Callee, calleeEnv)
	if callee.Kind != VString {
		return Value{}
	}

	if callee.Str == "document.getElementById" {
		if len(node.Args) == 0 {
			return Value{}
		}
		id := displayString(r.eval(node.Args[0], env))
		found := dom.GetElementByID(r.root, id)
		return Value{Kind: VElement, Element: found}
	}

	fn, ok := r.functions[callee.Str]
	if !ok {
		abortf(jserrors.UndefinedFunction, "%s is not declared", callee.Str)
	}
	if len(node.Args) != len(fn.Params) {
		abortf(jserrors.UnmetFunctionArity, "%s expects %d argument(s), got %d",
			callee.Str, len(fn.Params), len(node.Args))
	}

	fnEnv := NewChildEnvironment(r.global)
	for i, param := range fn.Params {
		fnEnv.Declare(param.Name, r.eval(node.Args[i], env))
	}
	result, _ := r.execBlock(fn.FuncBody, fnEnv)
	return result
}
