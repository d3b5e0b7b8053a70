package xsettings

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// byteOrder is what the builder needs from both endiannesses.
type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// builder assembles _XSETTINGS_SETTINGS property bytes for tests.
type builder struct {
	bo   byteOrder
	big  bool
	body []byte
	n    uint32
}

func newBuilder(bo byteOrder) *builder {
	return &builder{bo: bo, big: bo.String() == "BigEndian"}
}

func (b *builder) u16(v uint16) {
	b.body = b.bo.AppendUint16(b.body, v)
}

func (b *builder) u32(v uint32) {
	b.body = b.bo.AppendUint32(b.body, v)
}

func (b *builder) padded(s string) {
	b.body = append(b.body, s...)
	for len(b.body)%4 != 0 {
		b.body = append(b.body, 0)
	}
}

func (b *builder) header(name string, typ byte) {
	b.body = append(b.body, typ, 0)
	b.u16(uint16(len(name)))
	b.padded(name)
	b.u32(1) // last-change serial
	b.n++
}

func (b *builder) addInt(name string, v int32) {
	b.header(name, 0)
	b.u32(uint32(v))
}

func (b *builder) addString(name, v string) {
	b.header(name, 1)
	b.u32(uint32(len(v)))
	b.padded(v)
}

func (b *builder) addColor(name string, c [4]uint16) {
	b.header(name, 2)
	for _, v := range c {
		b.u16(v)
	}
}

func (b *builder) bytes(serial uint32) []byte {
	order := byte(0)
	if b.big {
		order = 1
	}
	out := []byte{order, 0, 0, 0}
	out = b.bo.AppendUint32(out, serial)
	out = b.bo.AppendUint32(out, b.n)
	return append(out, b.body...)
}

func TestDecodeLittleEndian(t *testing.T) {
	b := newBuilder(binary.LittleEndian)
	b.addString("Gtk/FontName", "Sans 10")
	b.addInt("Xft/Antialias", 1)
	b.addInt("Xft/DPI", 98304)
	b.addColor("Net/Background", [4]uint16{1, 2, 3, 4})

	store, err := Decode(b.bytes(7))
	require.NoError(t, err)
	assert.Equal(t, uint32(7), store.Serial)
	assert.Equal(t, 4, store.Len())
	assert.Equal(t, []string{"Gtk/FontName", "Xft/Antialias", "Xft/DPI", "Net/Background"}, store.Names())

	v, ok := store.String("Gtk/FontName")
	require.True(t, ok)
	assert.Equal(t, "Sans 10", v)

	n, ok := store.Int("Xft/DPI")
	require.True(t, ok)
	assert.Equal(t, int32(98304), n)

	c, ok := store.Lookup("Net/Background")
	require.True(t, ok)
	assert.Equal(t, TypeColor, c.Type)
	assert.Equal(t, [4]uint16{1, 2, 3, 4}, c.Color)
}

func TestDecodeBigEndian(t *testing.T) {
	b := newBuilder(binary.BigEndian)
	b.addInt("Xft/Hinting", -1)
	b.addString("Xft/HintStyle", "hintslight")

	store, err := Decode(b.bytes(1))
	require.NoError(t, err)

	n, ok := store.Int("Xft/Hinting")
	require.True(t, ok)
	assert.Equal(t, int32(-1), n)

	v, ok := store.String("Xft/HintStyle")
	require.True(t, ok)
	assert.Equal(t, "hintslight", v)
}

func TestTypeMismatchLookups(t *testing.T) {
	b := newBuilder(binary.LittleEndian)
	b.addString("Gtk/FontName", "Sans 10")

	store, err := Decode(b.bytes(0))
	require.NoError(t, err)

	_, ok := store.Int("Gtk/FontName")
	assert.False(t, ok)
	_, ok = store.String("Xft/DPI")
	assert.False(t, ok)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(nil)
	assert.Error(t, err)

	_, err = Decode([]byte{9, 0, 0, 0})
	assert.Error(t, err, "invalid byte-order marker")

	b := newBuilder(binary.LittleEndian)
	b.addString("Gtk/FontName", "Sans 10")
	data := b.bytes(0)
	_, err = Decode(data[:len(data)-3])
	assert.Error(t, err, "truncated value")

	// Unknown setting types cannot be skipped.
	bad := newBuilder(binary.LittleEndian)
	bad.header("Weird/Setting", 9)
	bad.u32(0)
	_, err = Decode(bad.bytes(0))
	assert.Error(t, err)
}
