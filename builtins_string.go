package mylang

import "strings"

// registerStringBuiltins installs String's equality, the supplemented
// contains predicate, and asString. Grounded on spec.md §4.5's "String
// equality ... compares .value lexicographically" and SPEC_FULL.md's
// contains supplement (implemented with strings.Contains, not
// zephyrtronium/contains, since this is a substring search rather than an
// identity-set membership check).
func registerStringBuiltins(proto *Object) {
	proto.slots["type"] = RawString("String")
	proto.slotOrder = append(proto.slotOrder, "type")

	proto.slots["=="] = &NativeMethod{N: 1, Fn: stringEquals}
	proto.slotOrder = append(proto.slotOrder, "==")
	proto.slots["contains"] = &NativeMethod{N: 1, Fn: stringContains}
	proto.slotOrder = append(proto.slotOrder, "contains")
	proto.slots["asString"] = &NativeMethod{N: 0, Fn: stringAsString}
	proto.slotOrder = append(proto.slotOrder, "asString")
}

func stringValue(v Value, pos Position) (string, *Error) {
	switch x := v.(type) {
	case RawString:
		return string(x), nil
	case *Object:
		raw, owner := getSlot(x, "value")
		if owner == nil {
			return "", newErrorf(TypeError, pos, "expected a String (missing .value slot)")
		}
		return stringValue(raw, pos)
	}
	return "", newErrorf(TypeError, pos, "expected a String")
}

func stringEquals(in *Interpreter, self Value, args []Value, block, elseBlock *Block, condExpr Node, env *Env) (Value, signal, *Error) {
	pos := msgPos(condExpr)
	a, err := stringValue(self, pos)
	if err != nil {
		return nil, sigNone, err
	}
	b, err := stringValue(args[0], pos)
	if err != nil {
		return nil, sigNone, err
	}
	return RawBool(a == b), sigNone, nil
}

func stringContains(in *Interpreter, self Value, args []Value, block, elseBlock *Block, condExpr Node, env *Env) (Value, signal, *Error) {
	pos := msgPos(condExpr)
	a, err := stringValue(self, pos)
	if err != nil {
		return nil, sigNone, err
	}
	b, err := stringValue(args[0], pos)
	if err != nil {
		return nil, sigNone, err
	}
	return RawBool(strings.Contains(a, b)), sigNone, nil
}

func stringAsString(in *Interpreter, self Value, args []Value, block, elseBlock *Block, condExpr Node, env *Env) (Value, signal, *Error) {
	pos := msgPos(condExpr)
	s, err := stringValue(self, pos)
	if err != nil {
		return nil, sigNone, err
	}
	return RawString(s), sigNone, nil
}
