package mylang

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
)

// ErrorKind is the closed taxonomy of spec.md §7.
type ErrorKind int

const (
	LexError ErrorKind = iota
	ParseError
	DoesNotUnderstand
	ArityMismatch
	TypeError
	DivisionByZero
	ControlFlowOutOfContext
	RuntimeError
)

func (k ErrorKind) String() string {
	switch k {
	case LexError:
		return "LexError"
	case ParseError:
		return "ParseError"
	case DoesNotUnderstand:
		return "DoesNotUnderstand"
	case ArityMismatch:
		return "ArityMismatch"
	case TypeError:
		return "TypeError"
	case DivisionByZero:
		return "DivisionByZero"
	case ControlFlowOutOfContext:
		return "ControlFlowOutOfContext"
	case RuntimeError:
		return "RuntimeError"
	default:
		return "UnknownError"
	}
}

// Error is MyLang's single diagnostic type: a kind, a message, a source
// position, and (for runtime errors) a shallow description of the
// offending receiver's prototype chain, per spec.md §6/§7.
type Error struct {
	Kind     ErrorKind
	Message  string
	Pos      Position
	Selector string // set for DoesNotUnderstand / ArityMismatch
	Chain    string // shallow prototype-chain description, set by the evaluator
	Snippet  string // the offending source line, if known
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s at %s: %s", e.Kind, e.Pos, e.Message)
	if e.Chain != "" {
		fmt.Fprintf(&b, " (receiver chain: %s)", e.Chain)
	}
	if e.Snippet != "" {
		fmt.Fprintf(&b, "\n\t%s", e.Snippet)
	}
	return b.String()
}

func newErrorf(kind ErrorKind, pos Position, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// annotate wraps a MyLang diagnostic with extra context using juju/errors,
// the way SPEC_FULL.md's ambient-stack expansion specifies; grounded on
// flosch-pongo2's go.mod dependency, first exercised here. Used at public
// API boundaries (Interpreter.RunFile) to note which file failed without
// losing the original *Error via errors.Cause.
func annotate(err *Error, context string) error {
	return errors.Annotatef(err, "%s", context)
}
