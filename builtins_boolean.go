package mylang

// registerBooleanBuiltins installs ifTrue/ifFalse/whileTrue and asString.
// Grounded on spec.md §4.4's "Built-in block-accepting methods" paragraph;
// the block-argument plumbing (NativeFn's block/elseBlock/condExpr/env
// parameters) exists specifically to let these three live as ordinary
// slot methods dispatched the same way as +/-/etc., rather than as special
// cases baked into the evaluator.
func registerBooleanBuiltins(proto *Object) {
	proto.slots["type"] = RawString("Boolean")
	proto.slotOrder = append(proto.slotOrder, "type")

	proto.slots["ifTrue"] = &NativeMethod{N: 0, Fn: booleanIfTrue}
	proto.slotOrder = append(proto.slotOrder, "ifTrue")
	proto.slots["ifFalse"] = &NativeMethod{N: 0, Fn: booleanIfFalse}
	proto.slotOrder = append(proto.slotOrder, "ifFalse")
	proto.slots["whileTrue"] = &NativeMethod{N: 0, Fn: booleanWhileTrue}
	proto.slotOrder = append(proto.slotOrder, "whileTrue")
	proto.slots["asString"] = &NativeMethod{N: 0, Fn: booleanAsString}
	proto.slotOrder = append(proto.slotOrder, "asString")
}

// booleanIfTrue and booleanIfFalse both run their block (if taken) in the
// caller's own environment, not a fresh frame: blocks are not activations
// per spec.md §4.2, so assignments inside them are visible to the
// surrounding method or top-level scope.
func booleanIfTrue(in *Interpreter, self Value, args []Value, block, elseBlock *Block, condExpr Node, env *Env) (Value, signal, *Error) {
	pos := msgPos(condExpr)
	truth, err := in.truthy(self, pos)
	if err != nil {
		return nil, sigNone, err
	}
	if truth {
		if block == nil {
			return in.NilValue, sigNone, nil
		}
		return evalBlock(block, in, env)
	}
	if elseBlock != nil {
		return evalBlock(elseBlock, in, env)
	}
	return in.NilValue, sigNone, nil
}

func booleanIfFalse(in *Interpreter, self Value, args []Value, block, elseBlock *Block, condExpr Node, env *Env) (Value, signal, *Error) {
	pos := msgPos(condExpr)
	truth, err := in.truthy(self, pos)
	if err != nil {
		return nil, sigNone, err
	}
	if !truth {
		if block == nil {
			return in.NilValue, sigNone, nil
		}
		return evalBlock(block, in, env)
	}
	return in.NilValue, sigNone, nil
}

// booleanWhileTrue re-evaluates condExpr (the original, unevaluated
// condition AST) every iteration, per spec.md §4.4's whileTrue paragraph.
// Break terminates the loop normally; Continue re-enters the condition
// check; Return is not caught here and propagates to the enclosing method
// activation.
func booleanWhileTrue(in *Interpreter, self Value, args []Value, block, elseBlock *Block, condExpr Node, env *Env) (Value, signal, *Error) {
	for {
		condVal, sig, err := Eval(condExpr, in, env)
		if err != nil {
			return nil, sigNone, err
		}
		if sig != sigNone {
			return condVal, sig, nil
		}
		truth, err := in.truthy(condVal, condExpr.Position())
		if err != nil {
			return nil, sigNone, err
		}
		if !truth {
			return in.NilValue, sigNone, nil
		}
		if block == nil {
			continue
		}
		v, bodySig, err := evalBlock(block, in, env)
		if err != nil {
			return nil, sigNone, err
		}
		switch bodySig {
		case sigBreak:
			return in.NilValue, sigNone, nil
		case sigContinue, sigNone:
			continue
		case sigReturn:
			return v, sigReturn, nil
		}
	}
}

func booleanAsString(in *Interpreter, self Value, args []Value, block, elseBlock *Block, condExpr Node, env *Env) (Value, signal, *Error) {
	pos := msgPos(condExpr)
	truth, err := in.truthy(self, pos)
	if err != nil {
		return nil, sigNone, err
	}
	if truth {
		return RawString("true"), sigNone, nil
	}
	return RawString("false"), sigNone, nil
}
