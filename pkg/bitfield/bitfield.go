// Package bitfield decodes named bit ranges out of little-endian 32-bit words.
package bitfield

import (
	"fmt"
)

// Unrecognized is reported for raw values that fall outside a field's
// description table.
const Unrecognized = "Unrecognized"

// Field names a bit range of one 32-bit word in a record.
type Field struct {
	Name string
	// Word is the index of the 32-bit word inside a multi-word record.
	Word   int
	Offset uint
	Width  uint
	// Decodable fields are shown to users, the rest are reserved bits.
	Decodable bool
	// Desc maps raw values to symbolic descriptions. A nil Desc means the
	// field is numeric.
	Desc []string
}

// Layout is an ordered list of fields. Decoding iterates in declaration order.
type Layout []Field

// Value is a field decoded out of a record.
type Value struct {
	Field       Field
	Raw         uint32
	Description string
	Recognized  bool
}

func mask(width uint) uint32 {
	if width >= 32 {
		return ^uint32(0)
	}
	return (uint32(1) << width) - 1
}

// Extract returns (word >> offset) & ((1 << width) - 1).
func Extract(word uint32, offset, width uint) uint32 {
	if offset >= 32 {
		return 0
	}
	return (word >> offset) & mask(width)
}

// Insert stores value into the given bit range of word. Bits of value above
// width are dropped.
func Insert(word uint32, offset, width uint, value uint32) uint32 {
	if offset >= 32 {
		return word
	}
	m := mask(width) << offset
	return (word &^ m) | ((value << offset) & m)
}

// Mask returns the field's bits in place.
func (f Field) Mask() uint32 {
	if f.Offset >= 32 {
		return 0
	}
	return mask(f.Width) << f.Offset
}

// Get extracts the field from a record. A word index outside the record
// reads as zero.
func (f Field) Get(words ...uint32) uint32 {
	if f.Word < 0 || f.Word >= len(words) {
		return 0
	}
	return (words[f.Word] & f.Mask()) >> f.Offset
}

// Describe looks raw up in the field's description table.
func (f Field) Describe(raw uint32) (string, bool) {
	if f.Desc == nil {
		return "", false
	}
	if uint64(raw) >= uint64(len(f.Desc)) {
		return Unrecognized, false
	}
	return f.Desc[raw], true
}

// Decode extracts and describes the field.
func (f Field) Decode(words ...uint32) Value {
	v := Value{Field: f, Raw: f.Get(words...)}
	v.Description, v.Recognized = f.Describe(v.Raw)
	return v
}

func (v Value) String() string {
	if v.Description == "" {
		return fmt.Sprintf("%s: 0x%x", v.Field.Name, v.Raw)
	}
	return fmt.Sprintf("%s: 0x%x (%s)", v.Field.Name, v.Raw, v.Description)
}

// Words returns the number of 32-bit words the layout spans.
func (l Layout) Words() int {
	n := 0
	for _, f := range l {
		if f.Word+1 > n {
			n = f.Word + 1
		}
	}
	return n
}

// Decode decodes every field of the layout in declaration order.
func (l Layout) Decode(words ...uint32) []Value {
	values := make([]Value, 0, len(l))
	for _, f := range l {
		values = append(values, f.Decode(words...))
	}
	return values
}

// Encode packs one raw value per field, positionally, into a record.
func (l Layout) Encode(values ...uint32) ([]uint32, error) {
	if len(values) != len(l) {
		return nil, fmt.Errorf("layout has %d fields, got %d values", len(l), len(values))
	}
	words := make([]uint32, l.Words())
	for i, f := range l {
		if f.Width < 32 && values[i] > mask(f.Width) {
			return nil, fmt.Errorf("value 0x%x overflows %d bit field %q", values[i], f.Width, f.Name)
		}
		words[f.Word] = Insert(words[f.Word], f.Offset, f.Width, values[i])
	}
	return words, nil
}
