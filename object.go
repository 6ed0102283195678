package mylang

import (
	"unsafe"

	"github.com/zephyrtronium/contains"
)

// Method is a callable slot value: either a user-defined method (AST body
// plus declared parameter names) or a native one backing a built-in.
type Method interface {
	// Arity is the method's declared parameter count, fixed for the
	// lifetime of the method value per spec.md §3's invariants.
	Arity() int
}

// UserMethod is a method defined in MyLang source, per spec.md §4.3.
type UserMethod struct {
	Params []string
	Body   *Block
}

func (m *UserMethod) Arity() int { return len(m.Params) }

// NativeFn implements a built-in method. block is the block argument
// attached to the message, if any (needed by ifTrue/ifFalse/whileTrue);
// env is the caller's environment, needed by whileTrue to re-evaluate the
// original condition expression each iteration (spec.md §4.4).
type NativeFn func(in *Interpreter, self Value, args []Value, block, elseBlock *Block, condExpr Node, env *Env) (Value, signal, *Error)

// NativeMethod wraps a NativeFn with its declared arity.
type NativeMethod struct {
	N  int
	Fn NativeFn
}

func (m *NativeMethod) Arity() int { return m.N }

// Object is the heap entity behind every non-raw runtime value: a slot map
// with a single prototype reference, per spec.md §3.
type Object struct {
	proto *Object
	// slots holds the named values; order mirrors insertion, per spec.md's
	// "ordered mapping Ident -> Value" requirement.
	slots     map[string]Value
	slotOrder []string
	typeName  string // set on built-in roots and NilValue; read by describeChain for diagnostics
}

func (*Object) value() {}

// newObject creates a bare object with the given proto and no own slots.
func newObject(proto *Object) *Object {
	return &Object{proto: proto, slots: make(map[string]Value)}
}

// Clone produces a fresh object whose sole proto is the receiver, per
// spec.md §4.3. This is the language-level primitive behind both explicit
// `clone` sends and autoboxing.
func (o *Object) Clone() *Object {
	return newObject(o)
}

// id returns a stable identity for cycle-guarding the prototype walk.
// Grounded on iolang/internal/vm.go's protoSet contains.Set usage; see
// DESIGN.md.
func (o *Object) id() uintptr {
	return uintptr(unsafe.Pointer(o))
}

// getSlot walks obj's single-proto chain depth-first (trivially, since
// there is exactly one proto per object) looking for slot. It returns the
// value and the object that owns it, or (nil, nil) if absent. A
// contains.Set bounds the walk defensively even though spec.md §9 notes
// clone-only construction makes cycles impossible by construction.
func getSlot(obj *Object, slot string) (Value, *Object) {
	var seen contains.Set
	cur := obj
	for cur != nil {
		if !seen.Add(cur.id()) {
			// A cycle would mean a bug elsewhere in the implementation;
			// treat it as "not found" rather than looping forever.
			return nil, nil
		}
		if v, ok := cur.slots[slot]; ok {
			return v, cur
		}
		cur = cur.proto
	}
	return nil, nil
}

// setSlot always writes to obj itself, never to a prototype, per spec.md
// §4.3. spec.md §3 allows immutability of the built-in roots to be relaxed
// by implementations; this one relaxes it, since user method definitions
// on Number/Boolean/String/Object (spec.md §4.2's own factorial example)
// are exactly slot writes to those roots.
func setSlot(obj *Object, slot string, v Value) {
	if _, exists := obj.slots[slot]; !exists {
		obj.slotOrder = append(obj.slotOrder, slot)
	}
	obj.slots[slot] = v
}

// slotNames returns obj's own slot names in insertion order.
func (o *Object) slotNames() []string {
	out := make([]string, len(o.slotOrder))
	copy(out, o.slotOrder)
	return out
}

// hasLocalSlot reports whether obj itself (not its proto chain) has slot.
func (o *Object) hasLocalSlot(slot string) bool {
	_, ok := o.slots[slot]
	return ok
}
