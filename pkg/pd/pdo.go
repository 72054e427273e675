package pd

import (
	"fmt"

	"github.com/harvester/typec/pkg/bitfield"
)

// PDO is a raw power data object.
type PDO uint32

// PDOType is the supply type carried in bits 31:30 of every PDO.
type PDOType uint8

const (
	PDOFixed PDOType = iota
	PDOBattery
	PDOVariable
	PDOAugmented
)

func (t PDOType) String() string {
	switch t {
	case PDOFixed:
		return "Fixed Supply"
	case PDOBattery:
		return "Battery"
	case PDOVariable:
		return "Variable Supply"
	}
	return "Augmented"
}

// Category maps the supply type to its layout category.
func (t PDOType) Category() Category {
	switch t {
	case PDOFixed:
		return CategoryFixedSupply
	case PDOBattery:
		return CategoryBatterySupply
	case PDOVariable:
		return CategoryVariableSupply
	}
	return CategoryAugmented
}

func (p PDO) Type() PDOType {
	return PDOType(bitfield.Extract(uint32(p), 30, 2))
}

// DecodedObject is a 32-bit object decoded against a revision specific layout.
type DecodedObject struct {
	Category Category
	Role     Role
	Revision Revision
	Raw      uint32
	Values   []bitfield.Value
}

// DecodeObject decodes one word with the layout registered for the key.
func DecodeObject(rev Revision, category Category, role Role, raw uint32) (DecodedObject, error) {
	l, err := Lookup(rev, category, role)
	if err != nil {
		return DecodedObject{Category: category, Role: role, Revision: rev.Layout(), Raw: raw}, err
	}
	return DecodedObject{
		Category: category,
		Role:     role,
		Revision: rev.Layout(),
		Raw:      raw,
		Values:   l.Decode(raw),
	}, nil
}

// DecodePDO decodes a source or sink PDO. The revision must be the one
// negotiated with the party the PDO came from. Augmented PDOs do not exist
// before 3.0 and fail with ErrNoLayout.
func DecodePDO(rev Revision, role Role, p PDO) (DecodedObject, error) {
	if role != RoleSource && role != RoleSink {
		return DecodedObject{}, fmt.Errorf("pdo role must be source or sink, got %s", role)
	}
	return DecodeObject(rev, p.Type().Category(), role, uint32(p))
}

// EncodePDO packs raw field values, one per layout field, into a PDO. The
// type bits are always set from typ.
func EncodePDO(rev Revision, role Role, typ PDOType, values ...uint32) (PDO, error) {
	l, err := Lookup(rev, typ.Category(), role)
	if err != nil {
		return 0, err
	}
	words, err := l.Encode(values...)
	if err != nil {
		return 0, err
	}
	return PDO(bitfield.Insert(words[0], 30, 2, uint32(typ))), nil
}

// Supply is a power object in physical units, the form the kernel exposes
// it in under usb_power_delivery.
type Supply struct {
	Type PDOType
	// Millivolts is the fixed voltage, or the maximum of a range.
	Millivolts    uint32
	MinMillivolts uint32
	// Milliamps is the maximum current of a source or the operational
	// current of a sink.
	Milliamps uint32
	// Milliwatts applies to battery supplies only.
	Milliwatts uint32

	DualRolePower     bool
	USBSuspend        bool
	Unconstrained     bool
	USBCommunication  bool
	DualRoleData      bool
	UnchunkedExtended bool
	PPSPowerLimited   bool
	FastRoleSwap      uint8
}

// PDO packs the supply for the given role. Units follow the PD objects:
// 50mV and 10mA for fixed and variable, 250mW for battery, 100mV and 50mA
// for programmable supplies.
func (s Supply) PDO(role Role) PDO {
	w := bitfield.Insert(0, 30, 2, uint32(s.Type))
	switch s.Type {
	case PDOFixed:
		w = bitfield.Insert(w, 0, 10, s.Milliamps/10)
		w = bitfield.Insert(w, 10, 10, s.Millivolts/50)
		w = bitfield.Insert(w, 25, 1, b2u(s.DualRoleData))
		w = bitfield.Insert(w, 26, 1, b2u(s.USBCommunication))
		w = bitfield.Insert(w, 27, 1, b2u(s.Unconstrained))
		w = bitfield.Insert(w, 29, 1, b2u(s.DualRolePower))
		if role == RoleSource {
			w = bitfield.Insert(w, 24, 1, b2u(s.UnchunkedExtended))
			w = bitfield.Insert(w, 28, 1, b2u(s.USBSuspend))
		} else {
			w = bitfield.Insert(w, 23, 2, uint32(s.FastRoleSwap))
		}
	case PDOVariable:
		w = bitfield.Insert(w, 0, 10, s.Milliamps/10)
		w = bitfield.Insert(w, 10, 10, s.MinMillivolts/50)
		w = bitfield.Insert(w, 20, 10, s.Millivolts/50)
	case PDOBattery:
		w = bitfield.Insert(w, 0, 10, s.Milliwatts/250)
		w = bitfield.Insert(w, 10, 10, s.MinMillivolts/50)
		w = bitfield.Insert(w, 20, 10, s.Millivolts/50)
	case PDOAugmented:
		w = bitfield.Insert(w, 0, 7, s.Milliamps/50)
		w = bitfield.Insert(w, 8, 8, s.MinMillivolts/100)
		w = bitfield.Insert(w, 17, 8, s.Millivolts/100)
		if role == RoleSource {
			w = bitfield.Insert(w, 27, 1, b2u(s.PPSPowerLimited))
		}
	}
	return PDO(w)
}

// Supply unpacks the PDO into physical units.
func (p PDO) Supply(role Role) Supply {
	w := uint32(p)
	s := Supply{Type: p.Type()}
	switch s.Type {
	case PDOFixed:
		s.Milliamps = bitfield.Extract(w, 0, 10) * 10
		s.Millivolts = bitfield.Extract(w, 10, 10) * 50
		s.DualRoleData = bitfield.Extract(w, 25, 1) == 1
		s.USBCommunication = bitfield.Extract(w, 26, 1) == 1
		s.Unconstrained = bitfield.Extract(w, 27, 1) == 1
		s.DualRolePower = bitfield.Extract(w, 29, 1) == 1
		if role == RoleSource {
			s.UnchunkedExtended = bitfield.Extract(w, 24, 1) == 1
			s.USBSuspend = bitfield.Extract(w, 28, 1) == 1
		} else {
			s.FastRoleSwap = uint8(bitfield.Extract(w, 23, 2))
		}
	case PDOVariable:
		s.Milliamps = bitfield.Extract(w, 0, 10) * 10
		s.MinMillivolts = bitfield.Extract(w, 10, 10) * 50
		s.Millivolts = bitfield.Extract(w, 20, 10) * 50
	case PDOBattery:
		s.Milliwatts = bitfield.Extract(w, 0, 10) * 250
		s.MinMillivolts = bitfield.Extract(w, 10, 10) * 50
		s.Millivolts = bitfield.Extract(w, 20, 10) * 50
	case PDOAugmented:
		s.Milliamps = bitfield.Extract(w, 0, 7) * 50
		s.MinMillivolts = bitfield.Extract(w, 8, 8) * 100
		s.Millivolts = bitfield.Extract(w, 17, 8) * 100
		if role == RoleSource {
			s.PPSPowerLimited = bitfield.Extract(w, 27, 1) == 1
		}
	}
	return s
}
