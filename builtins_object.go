package mylang

// registerObjectBuiltins installs the slots every object in the system
// inherits unless overridden: clone, print, asString, and the type slot.
// Grounded on iolang/object.go's CoreInit, which installs "clone", "type",
// and friends directly onto the root Object proto the same way.
func registerObjectBuiltins(proto *Object) {
	proto.slots["type"] = RawString("Object")
	proto.slotOrder = append(proto.slotOrder, "type")

	proto.slots["clone"] = &NativeMethod{N: 0, Fn: objectClone}
	proto.slotOrder = append(proto.slotOrder, "clone")

	proto.slots["print"] = &NativeMethod{N: 0, Fn: objectPrint}
	proto.slotOrder = append(proto.slotOrder, "print")

	proto.slots["asString"] = &NativeMethod{N: 0, Fn: objectAsString}
	proto.slotOrder = append(proto.slotOrder, "asString")

	proto.slots["=="] = &NativeMethod{N: 1, Fn: objectEquals}
	proto.slotOrder = append(proto.slotOrder, "==")
}

// objectEquals realizes spec.md §4.5's default for non-Number receivers:
// identity of the underlying object. Every other prototype that needs
// value equality (Number, String) overrides this with its own "==".
func objectEquals(in *Interpreter, self Value, args []Value, block, elseBlock *Block, condExpr Node, env *Env) (Value, signal, *Error) {
	pos := msgPos(condExpr)
	a, err := in.autobox(self, pos)
	if err != nil {
		return nil, sigNone, err
	}
	b, err := in.autobox(args[0], pos)
	if err != nil {
		return nil, sigNone, err
	}
	return RawBool(a == b), sigNone, nil
}

// objectClone realizes spec.md §6's "Object clone = return vm_clone self":
// a fresh empty-slot object whose sole proto is the receiver.
func objectClone(in *Interpreter, self Value, args []Value, block, elseBlock *Block, condExpr Node, env *Env) (Value, signal, *Error) {
	obj := self.(*Object)
	return obj.Clone(), sigNone, nil
}

// objectPrint realizes spec.md §6's "Object print": write self's textual
// form to the host sink, then return self, per the prelude's
//
//	Object print =
//	    vm_print self
//	    return self
func objectPrint(in *Interpreter, self Value, args []Value, block, elseBlock *Block, condExpr Node, env *Env) (Value, signal, *Error) {
	obj := self.(*Object)
	text, err := in.asStringOf(obj, env)
	if err != nil {
		return nil, sigNone, err
	}
	if _, werr := in.Stdout.Write([]byte(text + "\n")); werr != nil {
		return nil, sigNone, newErrorf(RuntimeError, Position{}, "write to stdout: %v", werr)
	}
	return self, sigNone, nil
}

// objectAsString generalizes spec.md §6's vm_print textual-form table into
// a reusable method, per SPEC_FULL.md's asString supplement. Bare Object
// instances fall back to an implementation-defined marker built from their
// type slot.
func objectAsString(in *Interpreter, self Value, args []Value, block, elseBlock *Block, condExpr Node, env *Env) (Value, signal, *Error) {
	obj, ok := self.(*Object)
	if !ok {
		return nil, sigNone, newErrorf(TypeError, Position{}, "asString sent to a raw value")
	}
	typeName := "Object"
	if tv, owner := getSlot(obj, "type"); owner != nil {
		if ts, ok := tv.(RawString); ok {
			typeName = string(ts)
		}
	}
	return RawString("a " + typeName), sigNone, nil
}
