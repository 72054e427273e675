package ucsi

import (
	"fmt"
	"strconv"

	"github.com/harvester/typec/pkg/bitfield"
	"github.com/harvester/typec/pkg/pd"
)

// Opcode is a UCSI command code.
type Opcode uint8

const (
	OpGetCapability          Opcode = 0x06
	OpGetConnectorCapability Opcode = 0x07
	OpGetAlternateModes      Opcode = 0x0c
	OpGetPDOs                Opcode = 0x10
	OpGetCableProperty       Opcode = 0x11
	OpGetConnectorStatus     Opcode = 0x12
)

var opcodeNames = map[Opcode]string{
	OpGetCapability:          "GET_CAPABILITY",
	OpGetConnectorCapability: "GET_CONNECTOR_CAPABILITY",
	OpGetAlternateModes:      "GET_ALTERNATE_MODES",
	OpGetPDOs:                "GET_PDOS",
	OpGetCableProperty:       "GET_CABLE_PROPERTY",
	OpGetConnectorStatus:     "GET_CONNECTOR_STATUS",
}

func (o Opcode) String() string {
	if s, ok := opcodeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("0x%02x", uint8(o))
}

// PDO source selection for GET_PDOS.
const (
	PDOTypeCurrentSupported uint8 = iota
	PDOTypeAdvertised
	PDOTypeMaximumSupported
)

// Command is the 64-bit control word: opcode in bits 0-7, data length in
// bits 8-15 and command specific parameters above.
type Command uint64

// Opcode returns the command code.
func (c Command) Opcode() Opcode {
	return Opcode(c & 0xff)
}

// String renders the command the way the debugfs command file expects it.
func (c Command) String() string {
	return strconv.FormatUint(uint64(c), 10)
}

func newCommand(op Opcode) Command {
	return Command(op)
}

// set packs a parameter; offsets count from bit 0 of the 64-bit word.
func (c Command) set(offset, width uint, v uint32) Command {
	lo, hi := uint32(c), uint32(c>>32)
	if offset >= 32 {
		hi = bitfield.Insert(hi, offset-32, width, v)
	} else {
		lo = bitfield.Insert(lo, offset, width, v)
	}
	return Command(uint64(hi)<<32 | uint64(lo))
}

// connectorNumber converts a zero based connector index into the one based
// number UCSI uses on the wire.
func connectorNumber(index uint8) uint32 {
	return uint32(index) + 1
}

// GetCapability asks for the platform capability record.
func GetCapability() Command {
	return newCommand(OpGetCapability)
}

// GetConnectorCapability asks for the capability of one connector.
func GetConnectorCapability(index uint8) Command {
	return newCommand(OpGetConnectorCapability).set(16, 7, connectorNumber(index))
}

// GetAlternateModes asks for one alternate mode of a recipient, starting at
// offset.
func GetAlternateModes(r pd.Recipient, index uint8, offset uint8) Command {
	return newCommand(OpGetAlternateModes).
		set(16, 8, uint32(r)).
		set(24, 8, connectorNumber(index)).
		set(32, 8, uint32(offset))
}

// GetPDOs asks for a single PDO at offset of the connector or its partner.
// num is the number of PDOs minus one.
func GetPDOs(index uint8, partner bool, offset, num uint8, source bool, pdoType uint8) Command {
	return newCommand(OpGetPDOs).
		set(16, 7, connectorNumber(index)).
		set(23, 1, b2u(partner)).
		set(24, 8, uint32(offset)).
		set(32, 2, uint32(num)).
		set(34, 1, b2u(source)).
		set(35, 2, uint32(pdoType))
}

// GetCableProperty asks for the properties of the cable on a connector.
func GetCableProperty(index uint8) Command {
	return newCommand(OpGetCableProperty).set(16, 7, connectorNumber(index))
}

// GetConnectorStatus asks for the status of a connector.
func GetConnectorStatus(index uint8) Command {
	return newCommand(OpGetConnectorStatus).set(16, 7, connectorNumber(index))
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
