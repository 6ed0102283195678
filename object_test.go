package mylang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneHasProtoButNoOwnSlots(t *testing.T) {
	base := newObject(nil)
	setSlot(base, "greeting", RawString("hi"))

	clone := base.Clone()
	assert.False(t, clone.hasLocalSlot("greeting"), "a fresh clone must not start with its proto's slots as its own")

	v, owner := getSlot(clone, "greeting")
	require.NotNil(t, owner, "clone must still see the prototype's slot through the chain")
	assert.Equal(t, RawString("hi"), v)
	assert.Same(t, base, owner)
}

func TestCloneIsIdentityDistinctFromItsProto(t *testing.T) {
	base := newObject(nil)
	clone := base.Clone()
	assert.NotSame(t, base, clone)
	assert.Same(t, base, clone.proto)
}

func TestSetSlotRoundTrips(t *testing.T) {
	obj := newObject(nil)
	setSlot(obj, "x", RawInt(7))
	v, owner := getSlot(obj, "x")
	require.NotNil(t, owner)
	assert.Equal(t, RawInt(7), v)
	assert.Same(t, obj, owner)
}

func TestSetSlotOverwriteKeepsInsertionOrder(t *testing.T) {
	obj := newObject(nil)
	setSlot(obj, "a", RawInt(1))
	setSlot(obj, "b", RawInt(2))
	setSlot(obj, "a", RawInt(99)) // overwrite, not a new slot
	assert.Equal(t, []string{"a", "b"}, obj.slotNames())
	v, _ := getSlot(obj, "a")
	assert.Equal(t, RawInt(99), v)
}

func TestGetSlotWalksProtoChain(t *testing.T) {
	grandparent := newObject(nil)
	setSlot(grandparent, "depth", RawInt(0))
	parent := grandparent.Clone()
	child := parent.Clone()

	v, owner := getSlot(child, "depth")
	require.NotNil(t, owner)
	assert.Equal(t, RawInt(0), v)
	assert.Same(t, grandparent, owner)
}

func TestGetSlotMissingReturnsNilOwner(t *testing.T) {
	obj := newObject(nil)
	v, owner := getSlot(obj, "nope")
	assert.Nil(t, v)
	assert.Nil(t, owner)
}

func TestLocalSlotShadowsProtoSlot(t *testing.T) {
	parent := newObject(nil)
	setSlot(parent, "name", RawString("parent"))
	child := parent.Clone()
	setSlot(child, "name", RawString("child"))

	v, owner := getSlot(child, "name")
	require.NotNil(t, owner)
	assert.Equal(t, RawString("child"), v)
	assert.Same(t, child, owner)
}

// TestAutoboxRoundTripPreservesPayload checks spec.md §8's universal
// invariant that autoboxing a raw value and reading its .value slot back
// out recovers the original payload unchanged.
func TestAutoboxRoundTripPreservesPayload(t *testing.T) {
	in := NewInterpreter(nil, nil, false)

	intObj, err := in.autobox(RawInt(42), Position{})
	require.Nil(t, err)
	v, owner := getSlot(intObj, "value")
	require.NotNil(t, owner)
	assert.Equal(t, RawInt(42), v)

	strObj, err := in.autobox(RawString("hey"), Position{})
	require.Nil(t, err)
	v, owner = getSlot(strObj, "value")
	require.NotNil(t, owner)
	assert.Equal(t, RawString("hey"), v)
	lv, lowner := getSlot(strObj, "length")
	require.NotNil(t, lowner)
	assert.Equal(t, RawInt(3), lv)
}

// TestAutoboxOfObjectIsPassthrough checks that an already-boxed receiver is
// never re-wrapped: autobox must return the identical *Object, per spec.md
// §4.5's "Object receivers pass through autobox unchanged."
func TestAutoboxOfObjectIsPassthrough(t *testing.T) {
	in := NewInterpreter(nil, nil, false)
	obj := newObject(in.ObjectProto)
	got, err := in.autobox(obj, Position{})
	require.Nil(t, err)
	assert.Same(t, obj, got)
}

func TestDistinctInterpretersDoNotSharePrototypes(t *testing.T) {
	a := NewInterpreter(nil, nil, false)
	b := NewInterpreter(nil, nil, false)
	assert.NotSame(t, a.ObjectProto, b.ObjectProto)
	assert.NotSame(t, a.NumberProto, b.NumberProto)
}
