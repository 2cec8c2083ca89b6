// Package tt supports table-driven tests with little boilerplate.
//
// A typical use looks like:
//
//	tt.Test(t, strings.Repeat,
//		tt.Args("x", 3).Rets("xxx"),
//		tt.Args("", 10).Rets(""),
//	)
//
// Return values are compared with [cmp.Equal], unless the wanted value
// implements [Matcher].
package tt

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Errors are compared with errors.Is instead of structurally.
var cmpOptions = []cmp.Option{cmpopts.EquateErrors()}

// Case represents a test case. It is created by the Args function, and
// offers setters that augment and return itself; those calls can be chained
// like Args(...).Rets(...).
type Case struct {
	args         []any
	retsMatchers [][]any
}

// Args returns a new Case with the given arguments.
func Args(args ...any) *Case {
	return &Case{args: args}
}

// Rets modifies the test case so that it requires the return values to match
// the given values. It returns the receiver.
func (c *Case) Rets(matchers ...any) *Case {
	c.retsMatchers = append(c.retsMatchers, matchers)
	return c
}

// T is the subset of testing.TB used by Test.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// Test calls fn with the arguments of each case and checks its return
// values.
func Test(t T, fn any, tests ...*Case) {
	t.Helper()
	name := funcName(fn)
	for _, test := range tests {
		rets := call(fn, test.args)
		for _, matchers := range test.retsMatchers {
			if len(matchers) != len(rets) {
				t.Errorf("%s(%s) returns %d values, test case wants %d",
					name, sprintList(test.args), len(rets), len(matchers))
				continue
			}
			if !match(matchers, rets) {
				t.Errorf("%s(%s) -> %s, want %s\ndiff (-want +got):\n%s",
					name, sprintList(test.args), sprintRets(rets),
					sprintRets(matchers), cmp.Diff(matchers, rets, cmpOptions...))
			}
		}
	}
}

// RetValue is an empty interface used in the Matcher interface.
type RetValue any

// Matcher wraps the Match method.
type Matcher interface {
	// Match reports whether a return value is considered a match. The
	// argument is of type RetValue so that it cannot be implemented
	// accidentally.
	Match(RetValue) bool
}

// Any is a Matcher that matches any value.
var Any Matcher = anyMatcher{}

type anyMatcher struct{}

func (anyMatcher) Match(RetValue) bool { return true }

// AnyError is a Matcher that matches any non-nil error.
var AnyError Matcher = anyErrorMatcher{}

type anyErrorMatcher struct{}

func (anyErrorMatcher) Match(v RetValue) bool {
	err, ok := v.(error)
	return ok && err != nil
}

func (anyErrorMatcher) String() string { return "<any error>" }

func match(matchers, actual []any) bool {
	for i, m := range matchers {
		if m, ok := m.(Matcher); ok {
			if !m.Match(actual[i]) {
				return false
			}
			continue
		}
		if !cmp.Equal(m, actual[i], cmpOptions...) {
			return false
		}
	}
	return true
}

func funcName(fn any) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "(unknown function)"
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '/'); i != -1 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

func sprintList(args []any) string {
	var sb strings.Builder
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%#v", arg)
	}
	return sb.String()
}

func sprintRets(rets []any) string {
	if len(rets) == 1 {
		return fmt.Sprintf("%#v", rets[0])
	}
	return "(" + sprintList(rets) + ")"
}

func call(fn any, args []any) []any {
	fnValue := reflect.ValueOf(fn)
	fnType := fnValue.Type()
	argValues := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			// reflect.ValueOf(nil) is the zero Value; use a typed nil of the
			// parameter type instead.
			var paramType reflect.Type
			if fnType.IsVariadic() && i >= fnType.NumIn()-1 {
				paramType = fnType.In(fnType.NumIn() - 1).Elem()
			} else {
				paramType = fnType.In(i)
			}
			argValues[i] = reflect.Zero(paramType)
		} else {
			argValues[i] = reflect.ValueOf(arg)
		}
	}
	retValues := fnValue.Call(argValues)
	rets := make([]any, len(retValues))
	for i, retValue := range retValues {
		rets[i] = retValue.Interface()
	}
	return rets
}
