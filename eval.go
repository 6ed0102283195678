package mylang

// Eval walks an AST node and produces its value, the unwind signal (if
// any) it is still propagating, and an error (if any). Exactly one of
// (value, signal != sigNone, error != nil) carries the interesting result;
// grounded on spec.md §9's "result variant that distinguishes Value,
// Return(v), Break, Continue, Err" and iolang's tree-walking Eval/Activate
// pair, adapted from Io's exception-based control flow to the explicit
// three-valued return spec.md calls for.
func Eval(node Node, in *Interpreter, env *Env) (Value, signal, *Error) {
	switch n := node.(type) {
	case *Literal:
		return evalLiteral(n), sigNone, nil
	case *Identifier:
		if v, ok := env.Get(n.Name); ok {
			return v, sigNone, nil
		}
		return nil, sigNone, newErrorf(RuntimeError, n.Pos, "undefined name %q", n.Name)
	case *Paren:
		return Eval(n.Inner, in, env)
	case *Assignment:
		return evalAssignment(n, in, env)
	case *MethodDef:
		return evalMethodDef(n, in, env)
	case *Message:
		return evalMessage(n, in, env)
	case *Return:
		v, sig, err := Eval(n.Expr, in, env)
		if err != nil || sig != sigNone {
			return v, sig, err
		}
		return v, sigReturn, nil
	case *Break:
		return nil, sigBreak, nil
	case *Continue:
		return nil, sigContinue, nil
	}
	return nil, sigNone, newErrorf(RuntimeError, node.Position(), "unhandled node type %T", node)
}

// evalBlockStmts runs a statement sequence, returning the value of the
// last statement and propagating the first non-sigNone signal or error it
// encounters (spec.md §4.2's "a block's value is the value of its last
// expression-statement").
func evalBlockStmts(stmts []Node, in *Interpreter, env *Env) (Value, signal, *Error) {
	var result Value = in.NilValue
	for _, stmt := range stmts {
		v, sig, err := Eval(stmt, in, env)
		if err != nil {
			return nil, sigNone, err
		}
		if sig != sigNone {
			return v, sig, nil
		}
		result = v
	}
	return result, sigNone, nil
}

func evalBlock(b *Block, in *Interpreter, env *Env) (Value, signal, *Error) {
	if b == nil {
		return in.NilValue, sigNone, nil
	}
	return evalBlockStmts(b.Stmts, in, env)
}

func evalLiteral(lit *Literal) Value {
	switch lit.Kind {
	case LitNumber:
		if lit.IsFloat {
			return RawFloat(lit.Num)
		}
		return RawInt(int64(lit.Num))
	case LitString:
		return RawString(lit.Str)
	case LitBool:
		return RawBool(lit.Bool)
	}
	return nil
}

// evalAssignment implements both LValue forms per spec.md §3/§4.3: a bare
// name binds in the current environment frame; a slot path evaluates its
// receiver and writes the slot on that object.
func evalAssignment(a *Assignment, in *Interpreter, env *Env) (Value, signal, *Error) {
	value, sig, err := Eval(a.Value, in, env)
	if err != nil || sig != sigNone {
		return value, sig, err
	}
	if !a.Target.isSlotPath() {
		env.Set(a.Target.Name, value)
		return value, sigNone, nil
	}
	recv, sig, err := Eval(a.Target.Receiver, in, env)
	if err != nil || sig != sigNone {
		return recv, sig, err
	}
	obj, boxErr := in.autobox(recv, a.Target.Receiver.Position())
	if boxErr != nil {
		return nil, sigNone, boxErr
	}
	setSlot(obj, a.Target.Selector, value)
	// A bare-name receiver that held a raw payload was just autoboxed into
	// a brand new clone; rebind the name to that clone so later reads of
	// it see this write, instead of re-autoboxing the original raw value
	// fresh (and losing the mutation) next time. Object receivers pass
	// through autobox unchanged, so this is a no-op for them.
	if ident, ok := a.Target.Receiver.(*Identifier); ok {
		env.Set(ident.Name, obj)
	}
	return value, sigNone, nil
}

// evalMethodDef installs a UserMethod on the receiver's value as a slot,
// per spec.md §4.3's "a method is stored like any other slot value."
func evalMethodDef(m *MethodDef, in *Interpreter, env *Env) (Value, signal, *Error) {
	recv, sig, err := Eval(m.Receiver, in, env)
	if err != nil || sig != sigNone {
		return recv, sig, err
	}
	obj, boxErr := in.autobox(recv, m.Receiver.Position())
	if boxErr != nil {
		return nil, sigNone, boxErr
	}
	setSlot(obj, m.Name, &UserMethod{Params: m.Params, Body: m.Body})
	return in.NilValue, sigNone, nil
}

// blockArgKey is the well-known internal key spec.md §4.4 step 5
// describes for passing a message's block argument into a user method's
// activation frame. No code reads this binding back: native methods
// receive the block directly as a NativeFn parameter.
const blockArgKey = "__block__"

// evalMessage implements spec.md §4.4's six-step message send.
func evalMessage(msg *Message, in *Interpreter, env *Env) (Value, signal, *Error) {
	recvVal, sig, err := Eval(msg.Receiver, in, env)
	if err != nil || sig != sigNone {
		return recvVal, sig, err
	}
	self, boxErr := in.autobox(recvVal, msg.Receiver.Position())
	if boxErr != nil {
		return nil, sigNone, boxErr
	}

	if in.Debug {
		in.log.Tracef("dispatch %s on %s", msg.Selector, describeChain(self))
	}

	slotVal, owner := getSlot(self, msg.Selector)
	if owner == nil {
		return nil, sigNone, &Error{
			Kind:     DoesNotUnderstand,
			Message:  "object does not understand " + quoteSelector(msg.Selector),
			Pos:      msg.Pos,
			Selector: msg.Selector,
			Chain:    describeChain(self),
		}
	}

	method, isMethod := slotVal.(Method)
	if !isMethod {
		if len(msg.Args) == 0 && msg.Block == nil {
			return slotVal, sigNone, nil
		}
		return nil, sigNone, newErrorf(TypeError, msg.Pos, "slot %q is not a method (arguments/block given to a field)", msg.Selector)
	}

	if method.Arity() != len(msg.Args) {
		return nil, sigNone, &Error{
			Kind:     ArityMismatch,
			Message:  "wrong number of arguments",
			Pos:      msg.Pos,
			Selector: msg.Selector,
			Chain:    describeChain(self),
		}
	}

	args := make([]Value, len(msg.Args))
	for i, a := range msg.Args {
		v, sig, err := Eval(a, in, env)
		if err != nil || sig != sigNone {
			return v, sig, err
		}
		args[i] = v
	}

	switch m := method.(type) {
	case *NativeMethod:
		return m.Fn(in, self, args, msg.Block, msg.ElseBlock, msg.Receiver, env)
	case *UserMethod:
		return in.activateUserMethod(m, self, args, msg.Block, env)
	}
	return nil, sigNone, newErrorf(RuntimeError, msg.Pos, "slot %q has an unrecognized method representation", msg.Selector)
}

// activateUserMethod builds a fresh frame binding self and the declared
// parameters, runs the body, and catches ReturnSignal per spec.md §4.4
// steps 5-6 and the ReturnSignal paragraph.
func (in *Interpreter) activateUserMethod(m *UserMethod, self Value, args []Value, block *Block, callerEnv *Env) (Value, signal, *Error) {
	frame := newChildEnv(in.Root)
	frame.Set("self", self)
	for i, p := range m.Params {
		frame.Set(p, args[i])
	}
	if block != nil {
		frame.vars[blockArgKey] = blockValue{block: block, env: callerEnv}
	}
	v, sig, err := evalBlock(m.Body, in, frame)
	if err != nil {
		return nil, sigNone, err
	}
	switch sig {
	case sigReturn:
		return v, sigNone, nil
	case sigBreak, sigContinue:
		return nil, sigNone, newErrorf(ControlFlowOutOfContext, m.Body.Pos, "%s used outside a loop", sig)
	default:
		return v, sigNone, nil
	}
}

// blockValue wraps a block argument together with the caller's environment
// and is what activateUserMethod binds under blockArgKey. ifTrue/ifFalse/
// whileTrue do not use it; they get the block through their NativeFn
// parameters.
type blockValue struct {
	block *Block
	env   *Env
}

func (blockValue) value() {}

func quoteSelector(sel string) string {
	return "'" + sel + "'"
}

// describeChain renders a shallow prototype-chain description for
// diagnostics, per spec.md §6/§7's "shallow prototype-chain description of
// the offending receiver."
func describeChain(obj *Object) string {
	names := make([]string, 0, 4)
	cur := obj
	for i := 0; cur != nil && i < 8; i++ {
		if cur.typeName != "" {
			names = append(names, cur.typeName)
		} else {
			names = append(names, "Object")
		}
		cur = cur.proto
	}
	out := names[0]
	for _, n := range names[1:] {
		out += " -> " + n
	}
	return out
}
