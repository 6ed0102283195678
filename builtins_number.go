package mylang

// registerNumberBuiltins installs Number's arithmetic, comparison, and
// diagnostic slots. Grounded on iolang/number.go's NumberAdd/NumberSub/...
// family (self/other unboxed via CheckArgs or Number arg helpers, result
// rewrapped), scaled to spec.md §4.5's integer/float promotion rule.
func registerNumberBuiltins(proto *Object) {
	set := func(name string, n int, fn NativeFn) {
		proto.slots[name] = &NativeMethod{N: n, Fn: fn}
		proto.slotOrder = append(proto.slotOrder, name)
	}
	proto.slots["type"] = RawString("Number")
	proto.slotOrder = append(proto.slotOrder, "type")

	set("+", 1, numberArith(func(a, b float64) float64 { return a + b }))
	set("-", 1, numberArith(func(a, b float64) float64 { return a - b }))
	set("*", 1, numberArith(func(a, b float64) float64 { return a * b }))
	set("/", 1, numberDivide)
	set("%", 1, numberModulo)
	set("<", 1, numberCompare(func(a, b float64) bool { return a < b }))
	set("<=", 1, numberCompare(func(a, b float64) bool { return a <= b }))
	set("==", 1, numberCompare(func(a, b float64) bool { return a == b }))
	set(">=", 1, numberCompare(func(a, b float64) bool { return a >= b }))
	set(">", 1, numberCompare(func(a, b float64) bool { return a > b }))
	set("between", 2, numberBetween)
	set("asString", 0, numberAsString)
}

func msgPos(condExpr Node) Position {
	if condExpr != nil {
		return condExpr.Position()
	}
	return Position{}
}

// numberValue unwraps a raw or boxed Number down to its float64 payload
// and whether it is floating-point, per spec.md §4.5's ".value" extraction.
func numberValue(v Value, pos Position) (f float64, isFloat bool, err *Error) {
	switch x := v.(type) {
	case RawInt:
		return float64(x), false, nil
	case RawFloat:
		return float64(x), true, nil
	case *Object:
		raw, owner := getSlot(x, "value")
		if owner == nil {
			return 0, false, newErrorf(TypeError, pos, "expected a Number (missing .value slot)")
		}
		return numberValue(raw, pos)
	}
	return 0, false, newErrorf(TypeError, pos, "expected a Number")
}

func wrapNumber(f float64, isFloat bool) Value {
	if isFloat {
		return RawFloat(f)
	}
	return RawInt(int64(f))
}

func numberArith(op func(a, b float64) float64) NativeFn {
	return func(in *Interpreter, self Value, args []Value, block, elseBlock *Block, condExpr Node, env *Env) (Value, signal, *Error) {
		pos := msgPos(condExpr)
		a, aFloat, err := numberValue(self, pos)
		if err != nil {
			return nil, sigNone, err
		}
		b, bFloat, err := numberValue(args[0], pos)
		if err != nil {
			return nil, sigNone, err
		}
		return wrapNumber(op(a, b), aFloat || bFloat), sigNone, nil
	}
}

func numberCompare(cmp func(a, b float64) bool) NativeFn {
	return func(in *Interpreter, self Value, args []Value, block, elseBlock *Block, condExpr Node, env *Env) (Value, signal, *Error) {
		pos := msgPos(condExpr)
		a, _, err := numberValue(self, pos)
		if err != nil {
			return nil, sigNone, err
		}
		b, _, err := numberValue(args[0], pos)
		if err != nil {
			return nil, sigNone, err
		}
		return RawBool(cmp(a, b)), sigNone, nil
	}
}

func numberDivide(in *Interpreter, self Value, args []Value, block, elseBlock *Block, condExpr Node, env *Env) (Value, signal, *Error) {
	pos := msgPos(condExpr)
	a, aFloat, err := numberValue(self, pos)
	if err != nil {
		return nil, sigNone, err
	}
	b, bFloat, err := numberValue(args[0], pos)
	if err != nil {
		return nil, sigNone, err
	}
	if b == 0 {
		return nil, sigNone, newErrorf(DivisionByZero, pos, "division by zero")
	}
	return wrapNumber(a/b, aFloat || bFloat), sigNone, nil
}

func numberModulo(in *Interpreter, self Value, args []Value, block, elseBlock *Block, condExpr Node, env *Env) (Value, signal, *Error) {
	pos := msgPos(condExpr)
	a, aFloat, err := numberValue(self, pos)
	if err != nil {
		return nil, sigNone, err
	}
	b, bFloat, err := numberValue(args[0], pos)
	if err != nil {
		return nil, sigNone, err
	}
	if b == 0 {
		return nil, sigNone, newErrorf(DivisionByZero, pos, "modulo by zero")
	}
	if !aFloat && !bFloat {
		ai, bi := int64(a), int64(b)
		return RawInt(ai % bi), sigNone, nil
	}
	// Floating modulo: a - trunc(a/b)*b, the truncated-division remainder,
	// which takes the sign of a like the integer % above.
	q := float64(int64(a / b))
	return RawFloat(a - q*b), sigNone, nil
}

// numberBetween is the supplemented clamp-style predicate: true iff self
// lies within [low, high] inclusive.
func numberBetween(in *Interpreter, self Value, args []Value, block, elseBlock *Block, condExpr Node, env *Env) (Value, signal, *Error) {
	pos := msgPos(condExpr)
	v, _, err := numberValue(self, pos)
	if err != nil {
		return nil, sigNone, err
	}
	low, _, err := numberValue(args[0], pos)
	if err != nil {
		return nil, sigNone, err
	}
	high, _, err := numberValue(args[1], pos)
	if err != nil {
		return nil, sigNone, err
	}
	return RawBool(v >= low && v <= high), sigNone, nil
}

func numberAsString(in *Interpreter, self Value, args []Value, block, elseBlock *Block, condExpr Node, env *Env) (Value, signal, *Error) {
	pos := msgPos(condExpr)
	v, isFloat, err := numberValue(self, pos)
	if err != nil {
		return nil, sigNone, err
	}
	return RawString(formatNumber(v, isFloat)), sigNone, nil
}
