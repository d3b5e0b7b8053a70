// Package xsettings decodes the binary _XSETTINGS_SETTINGS property
// published by an XSETTINGS daemon (xsettingsd, gnome-settings-daemon,
// xfsettingsd). This property is the store GTK reads its global
// settings from on X11.
package xsettings

import (
	"encoding/binary"
	"fmt"
)

// Setting types on the wire.
const (
	typeInt    = 0
	typeString = 1
	typeColor  = 2
)

// Type identifies the value type of a Setting.
type Type int

const (
	TypeInt Type = iota
	TypeString
	TypeColor
)

// Setting is one decoded XSETTINGS entry.
type Setting struct {
	Name   string
	Type   Type
	Serial uint32

	Int   int32
	Str   string
	Color [4]uint16 // red, green, blue, alpha
}

// Store holds the decoded settings, preserving wire order.
type Store struct {
	Serial   uint32
	settings map[string]Setting
	order    []string
}

type cursor struct {
	data []byte
	off  int
	bo   binary.ByteOrder
}

func (c *cursor) need(n int) error {
	if c.off+n > len(c.data) {
		return fmt.Errorf("xsettings: truncated property (need %d bytes at offset %d, have %d)", n, c.off, len(c.data))
	}
	return nil
}

func (c *cursor) u8() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.data[c.off]
	c.off++
	return v, nil
}

func (c *cursor) u16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := c.bo.Uint16(c.data[c.off:])
	c.off += 2
	return v, nil
}

func (c *cursor) u32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := c.bo.Uint32(c.data[c.off:])
	c.off += 4
	return v, nil
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	v := c.data[c.off : c.off+n]
	c.off += n
	return v, nil
}

func (c *cursor) pad(n int) error {
	rem := n % 4
	if rem == 0 {
		return nil
	}
	return c.skip(4 - rem)
}

func (c *cursor) skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.off += n
	return nil
}

// Decode parses the raw property bytes. Settings of an unrecognized
// type cannot be skipped (their length is unknown) and fail the
// decode; within known types, decoding is tolerant of nothing.
func Decode(data []byte) (*Store, error) {
	c := &cursor{data: data}
	order, err := c.u8()
	if err != nil {
		return nil, err
	}
	switch order {
	case 0:
		c.bo = binary.LittleEndian
	case 1:
		c.bo = binary.BigEndian
	default:
		return nil, fmt.Errorf("xsettings: invalid byte-order marker %d", order)
	}
	if err := c.skip(3); err != nil {
		return nil, err
	}
	serial, err := c.u32()
	if err != nil {
		return nil, err
	}
	count, err := c.u32()
	if err != nil {
		return nil, err
	}

	store := &Store{Serial: serial, settings: make(map[string]Setting, count)}
	for i := uint32(0); i < count; i++ {
		s, err := c.setting()
		if err != nil {
			return nil, fmt.Errorf("xsettings: setting %d: %w", i, err)
		}
		if _, dup := store.settings[s.Name]; !dup {
			store.order = append(store.order, s.Name)
		}
		store.settings[s.Name] = s
	}
	return store, nil
}

func (c *cursor) setting() (Setting, error) {
	var s Setting
	typ, err := c.u8()
	if err != nil {
		return s, err
	}
	if err := c.skip(1); err != nil {
		return s, err
	}
	nameLen, err := c.u16()
	if err != nil {
		return s, err
	}
	name, err := c.bytes(int(nameLen))
	if err != nil {
		return s, err
	}
	if err := c.pad(int(nameLen)); err != nil {
		return s, err
	}
	serial, err := c.u32()
	if err != nil {
		return s, err
	}
	s.Name = string(name)
	s.Serial = serial

	switch typ {
	case typeInt:
		v, err := c.u32()
		if err != nil {
			return s, err
		}
		s.Type = TypeInt
		s.Int = int32(v)
	case typeString:
		strLen, err := c.u32()
		if err != nil {
			return s, err
		}
		str, err := c.bytes(int(strLen))
		if err != nil {
			return s, err
		}
		if err := c.pad(int(strLen)); err != nil {
			return s, err
		}
		s.Type = TypeString
		s.Str = string(str)
	case typeColor:
		for i := range s.Color {
			v, err := c.u16()
			if err != nil {
				return s, err
			}
			s.Color[i] = v
		}
		s.Type = TypeColor
	default:
		return s, fmt.Errorf("unknown setting type %d", typ)
	}
	return s, nil
}

// Len returns the number of decoded settings.
func (s *Store) Len() int { return len(s.order) }

// Names returns the setting names in wire order.
func (s *Store) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Lookup returns the named setting.
func (s *Store) Lookup(name string) (Setting, bool) {
	v, ok := s.settings[name]
	return v, ok
}

// Int returns the named setting's integer value, or false if it is
// absent or not integer-typed.
func (s *Store) Int(name string) (int32, bool) {
	v, ok := s.settings[name]
	if !ok || v.Type != TypeInt {
		return 0, false
	}
	return v.Int, true
}

// String returns the named setting's string value, or false if it is
// absent or not string-typed.
func (s *Store) String(name string) (string, bool) {
	v, ok := s.settings[name]
	if !ok || v.Type != TypeString {
		return "", false
	}
	return v.Str, true
}
