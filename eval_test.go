package mylang

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptCase is a table-driven source/expected-output pair, grounded on
// iolang/testutils.SourceTestCase's "source plus predicate over the
// result" shape, adapted to check printed output lines instead of a
// returned Io object.
type scriptCase struct {
	name   string
	source string
	// wantLines are the expected lines written via print, in order.
	wantLines []string
}

func runScript(t *testing.T, source string) (string, *Error) {
	t.Helper()
	var out bytes.Buffer
	in := NewInterpreter(&out, &out, false)
	_, err := in.Run(source)
	return out.String(), err
}

// TestScenarios exercises the five output-producing scenarios spec.md §8
// describes; its error-case scenario is covered by TestDoesNotUnderstand and
// TestControlFlowOutOfContext below.
func TestScenarios(t *testing.T) {
	cases := []scriptCase{
		{
			name: "factorial via recursion",
			source: `
Number fact =
    self value < 2 ifTrue
        return self
    return (self value - 1) fact value * self value
5 fact print
`,
			wantLines: []string{"120"},
		},
		{
			name: "fizzbuzz up to 15",
			source: `
Number fizzbuzz =
    self value % 15 == 0 ifTrue
        "FizzBuzz" print
        return self
    self value % 3 == 0 ifTrue
        "Fizz" print
        return self
    self value % 5 == 0 ifTrue
        "Buzz" print
        return self
    self print
    return self

i = 0
i value < 15 whileTrue
    i value = i value + 1
    i value fizzbuzz
`,
			wantLines: []string{
				"1", "2", "Fizz", "4", "Buzz", "Fizz", "7", "8", "Fizz", "Buzz",
				"11", "Fizz", "13", "14", "FizzBuzz",
			},
		},
		{
			name: "non-local return",
			source: `
Number firstDivBy7 =
    i = 1
    i value <= self value whileTrue
        i value % 7 == 0 ifTrue
            return i
        i value = i value + 1
    return 0
20 firstDivBy7 print
`,
			wantLines: []string{"7"},
		},
		{
			name: "break from loop",
			source: `
i = 0
true whileTrue
    i value = i value + 1
    i value > 10 ifTrue
        "Found:" print
        i print
        break
`,
			wantLines: []string{"Found:", "11"},
		},
		{
			name: "continue skipping evens",
			source: `
i = 0
i value < 10 whileTrue
    i value = i value + 1
    i value % 2 == 0 ifTrue
        continue
    i print
`,
			wantLines: []string{"1", "3", "5", "7", "9"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := runScript(t, c.source)
			require.Nil(t, err, "script failed: %v", err)
			got := strings.Split(strings.TrimRight(out, "\n"), "\n")
			if !assert.Equal(t, c.wantLines, got) {
				t.Logf("want: %# v\ngot:  %# v", pretty.Formatter(c.wantLines), pretty.Formatter(got))
			}
		})
	}
}

func TestDoesNotUnderstand(t *testing.T) {
	_, err := runScript(t, `Object clone foo`)
	require.NotNil(t, err)
	assert.Equal(t, DoesNotUnderstand, err.Kind)
	assert.Equal(t, "foo", err.Selector)
}

func TestControlFlowOutOfContext(t *testing.T) {
	_, err := runScript(t, `break`)
	require.NotNil(t, err)
	assert.Equal(t, ControlFlowOutOfContext, err.Kind)
}

func TestDivisionByZero(t *testing.T) {
	_, err := runScript(t, `1 / 0`)
	require.NotNil(t, err)
	assert.Equal(t, DivisionByZero, err.Kind)
}

// TestArityMismatch exercises a redefinition that changes a selector's
// arity after an earlier method body was already parsed against the old
// arity: the parser always consumes exactly the shadow table's arity at
// each call site, so a mismatch can only surface at dispatch time, when
// the slot a call site resolves against no longer has the arity it was
// parsed with.
func TestArityMismatch(t *testing.T) {
	_, err := runScript(t, `
Number foo x = return x
Number useFoo = return self foo 1
Number foo = return 42
5 useFoo print
`)
	require.NotNil(t, err)
	assert.Equal(t, ArityMismatch, err.Kind)
}

// TestAutoboxRoundTrip checks spec.md §8's "autoboxing round-trip"
// invariant: sending value to an autoboxed raw returns the same payload.
func TestAutoboxRoundTrip(t *testing.T) {
	out, err := runScript(t, `42 value print`)
	require.Nil(t, err)
	assert.Equal(t, "42\n", out)
}

// TestCloneIsFresh checks spec.md §8's cloning invariant indirectly: a
// clone starts with no local slots of its own, so a slot defined only on
// the prototype is still reachable, and two clones are distinguishable by
// assigning different local state to each.
func TestCloneIsFresh(t *testing.T) {
	out, err := runScript(t, `
a = Object clone
b = Object clone
a greeting = "hello"
a greeting print
b type print
`)
	require.Nil(t, err)
	assert.Equal(t, "hello\nObject\n", out)
}
