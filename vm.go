package mylang

import (
	"io"

	"github.com/juju/errors"
	"github.com/juju/loggo"
)

// Interpreter owns a single root environment and the four built-in
// prototypes, and evaluates one program against them. Distinct
// Interpreter instances never share state, per spec.md §5's "distinct
// interpreter instances do not share prototypes." Grounded on iolang's VM
// struct (a single owner of the bootstrap namespace plus IO sinks), scaled
// down to MyLang's much smaller bootstrap surface.
type Interpreter struct {
	Root   *Env
	Stdout io.Writer
	Stderr io.Writer
	Debug  bool

	log loggo.Logger

	ObjectProto  *Object
	NumberProto  *Object
	BooleanProto *Object
	StringProto  *Object

	// NilValue is the canonical "empty value" spec.md §4.4 returns from a
	// false ifTrue / true ifFalse with no matching block, and from an empty
	// block body.
	NilValue *Object
}

// NewInterpreter builds a fresh interpreter with its own bootstrap
// prototypes installed in Root, per spec.md §6's bootstrap script (realized
// here as direct Go construction of the same observable slots rather than
// by interpreting the literal prelude text — see DESIGN.md).
func NewInterpreter(stdout, stderr io.Writer, debug bool) *Interpreter {
	in := &Interpreter{
		Stdout: stdout,
		Stderr: stderr,
		Debug:  debug,
		log:    newDispatchLogger(debug),
	}
	in.bootstrap()
	return in
}

func (in *Interpreter) bootstrap() {
	in.ObjectProto = &Object{slots: make(map[string]Value), typeName: "Object"}
	in.NumberProto = &Object{proto: in.ObjectProto, slots: make(map[string]Value), typeName: "Number"}
	in.BooleanProto = &Object{proto: in.ObjectProto, slots: make(map[string]Value), typeName: "Boolean"}
	in.StringProto = &Object{proto: in.ObjectProto, slots: make(map[string]Value), typeName: "String"}

	registerObjectBuiltins(in.ObjectProto)
	registerNumberBuiltins(in.NumberProto)
	registerBooleanBuiltins(in.BooleanProto)
	registerStringBuiltins(in.StringProto)

	nilObj := newObject(in.ObjectProto)
	nilObj.typeName = "Nil"
	in.NilValue = nilObj

	in.Root = newRootEnv()
	in.Root.Set("Object", in.ObjectProto)
	in.Root.Set("Number", in.NumberProto)
	in.Root.Set("Boolean", in.BooleanProto)
	in.Root.Set("String", in.StringProto)
}

// autobox implements spec.md §4.5's "Autobox on receiver": raw payloads
// get wrapped in a fresh transient clone of their prototype with a .value
// slot (and, for strings, .length); *Object receivers pass through
// unchanged.
func (in *Interpreter) autobox(v Value, pos Position) (*Object, *Error) {
	switch x := v.(type) {
	case *Object:
		return x, nil
	case RawInt:
		o := newObject(in.NumberProto)
		setSlot(o, "value", x)
		return o, nil
	case RawFloat:
		o := newObject(in.NumberProto)
		setSlot(o, "value", x)
		return o, nil
	case RawBool:
		o := newObject(in.BooleanProto)
		setSlot(o, "value", x)
		return o, nil
	case RawString:
		o := newObject(in.StringProto)
		setSlot(o, "value", x)
		setSlot(o, "length", RawInt(len(string(x))))
		return o, nil
	}
	return nil, newErrorf(TypeError, pos, "value has no boxed representation")
}

// truthy extracts a Go bool from a MyLang Boolean value (raw or boxed),
// raising TypeError otherwise, per spec.md §7's TypeError row ("non-boolean
// where boolean required").
func (in *Interpreter) truthy(v Value, pos Position) (bool, *Error) {
	switch x := v.(type) {
	case RawBool:
		return bool(x), nil
	case *Object:
		// Walk the full proto chain via getSlot rather than comparing
		// x.proto by identity: a clone of a clone of true (clone is
		// available on any object, per spec.md §4.3) has BooleanProto two
		// or more hops away, not as its direct proto.
		if raw, owner := getSlot(x, "value"); owner != nil {
			if b, ok := raw.(RawBool); ok {
				return bool(b), nil
			}
		}
	}
	return false, newErrorf(TypeError, pos, "expected a Boolean value")
}

// asStringOf dispatches "asString" on obj the same way an ordinary message
// send would, so that Number/Boolean/String's overrides are honored even
// when called internally (by print, or by another built-in) rather than
// from user source.
func (in *Interpreter) asStringOf(obj *Object, env *Env) (string, *Error) {
	slotVal, owner := getSlot(obj, "asString")
	if owner == nil {
		return "", newErrorf(DoesNotUnderstand, Position{}, "object does not understand 'asString'")
	}
	method, ok := slotVal.(Method)
	if !ok || method.Arity() != 0 {
		return "", newErrorf(TypeError, Position{}, "asString slot is not a 0-arity method")
	}
	var v Value
	var sig signal
	var err *Error
	switch m := method.(type) {
	case *NativeMethod:
		v, sig, err = m.Fn(in, obj, nil, nil, nil, nil, env)
	case *UserMethod:
		v, sig, err = in.activateUserMethod(m, obj, nil, nil, env)
	}
	if err != nil {
		return "", err
	}
	if sig != sigNone {
		return "", newErrorf(RuntimeError, Position{}, "asString method exited via %s", sig)
	}
	s, ok := v.(RawString)
	if !ok {
		return "", newErrorf(TypeError, Position{}, "asString must return a String")
	}
	return string(s), nil
}

// Run lexes, parses, and evaluates source as a fresh program against this
// interpreter's root environment. A ReturnSignal/BreakSignal/ContinueSignal
// reaching the end of the program is a ControlFlowOutOfContext error, per
// spec.md §4.4.
func (in *Interpreter) Run(source string) (Value, *Error) {
	toks, lexErr := NewLexer(source).Lex()
	if lexErr != nil {
		return nil, lexErr
	}
	prog, parseErr := ParseProgram(toks)
	if parseErr != nil {
		return nil, parseErr
	}
	v, sig, err := evalBlockStmts(prog.Stmts, in, in.Root)
	if err != nil {
		return nil, err
	}
	if sig != sigNone {
		return nil, newErrorf(ControlFlowOutOfContext, prog.Pos, "%s used outside any method or loop", sig)
	}
	return v, nil
}

// RunFile reads and evaluates a source file, annotating any error with the
// file's path the way SPEC_FULL.md's ambient-stack expansion specifies.
func (in *Interpreter) RunFile(path string, read func(string) ([]byte, error)) (Value, error) {
	data, ioErr := read(path)
	if ioErr != nil {
		return nil, errors.Annotatef(ioErr, "reading %s", path)
	}
	v, err := in.Run(string(data))
	if err != nil {
		return nil, annotate(err, "evaluating "+path)
	}
	return v, nil
}
