package pd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCapability(t *testing.T) {
	assert := require.New(t)
	words := []uint32{0x00000044, 0x00003402, 0x01200003, 0x01200300}

	c := DecodeCapability(words...)
	assert.Equal(uint32(0x44), c.Attributes)
	assert.Equal(uint8(2), c.NumConnectors)
	assert.Equal(uint32(0x34), c.OptionalFeatures)
	assert.Equal(uint8(3), c.NumAltModes)
	assert.Equal(uint16(0x0120), c.BCVersion)
	assert.Equal(uint16(0x0300), c.PDVersion)
	assert.Equal(uint16(0x0120), c.TypeCVersion)
	assert.Equal(words, c.Words())

	layout, err := Lookup(Rev31, CategoryCapability, RoleAny)
	assert.NoError(err)
	assert.Equal(4, layout.Words())
}

func TestDecodeConnectorCapability(t *testing.T) {
	testcases := []struct {
		name     string
		word     uint32
		role     PowerRole
		revision Revision
	}{
		{"drp", uint32(OpModeDRP|OpModeUSB3) | 1<<8 | 1<<9 | 3<<27, DualRole, Rev31},
		{"rd only", uint32(OpModeRdOnly) | 1<<9 | 2<<27, SinkOnly, Rev30},
		{"rp only", uint32(OpModeRpOnly) | 1<<8 | 1<<27, SourceOnly, Rev20},
		{"rd and drp", uint32(OpModeRdOnly | OpModeDRP), DualRole, RevisionUnknown},
	}

	for _, tc := range testcases {
		c := DecodeConnectorCapability(tc.word)
		assert.Equal(t, tc.role, c.Role(), tc.name)
		assert.Equal(t, tc.revision, c.PartnerRevision, tc.name)
		assert.Equal(t, []uint32{tc.word}, c.Words(), tc.name)
	}

	c := DecodeConnectorCapability(uint32(OpModeDRP) | 0xf<<10)
	assert.True(t, c.SwapToDFP && c.SwapToUFP && c.SwapToSource && c.SwapToSink)
	assert.Equal(t, "DRP", c.OperationMode.String())
	assert.Equal(t, "Rd Only, USB2", (OpModeRdOnly | OpModeUSB2).String())
	assert.Equal(t, "None", OperationMode(0).String())
}

func TestConnectorStatusPower(t *testing.T) {
	assert := require.New(t)
	rdo := uint32(400<<10 | 300)
	assert.Equal(rdo, NewRDO(400, 300))

	s := DecodeConnectorStatus(1<<19|3<<16, rdo, 0x300<<6|1)
	assert.True(s.Connected)
	assert.Equal(uint8(3), s.PowerOperationMode)
	assert.Equal(uint32(100000), s.OperatingPowerMilliwatts())
	assert.Equal(uint32(75000), s.MaxPowerMilliwatts())
	assert.Equal(uint8(1), s.BatteryChargingStatus)
	assert.Equal(Rev30, s.PDRevision)
	assert.Equal([]uint32{1<<19 | 3<<16, rdo, 0x300<<6 | 1}, s.Words())
}

func TestDecodeConnectorStatusLayout(t *testing.T) {
	layout, err := Lookup(Rev20, CategoryConnectorStatus, RoleAny)
	require.NoError(t, err)

	values := layout.Decode(5<<29|1<<20|1<<19|4<<16, 0, 0)
	byName := map[string]string{}
	for _, v := range values {
		byName[v.Field.Name] = v.Description
	}
	assert.Equal(t, "Type-C 1.5A", byName["Power Operation Mode"])
	assert.Equal(t, "Yes", byName["Connect Status"])
	assert.Equal(t, "Provider", byName["Power Direction"])
	assert.Equal(t, "Debug Accessory", byName["Connector Partner Type"])
}

func TestDecodeCableProperty(t *testing.T) {
	assert := require.New(t)
	word0 := uint32(0x0010) | 60<<16 | 1<<24 | 1<<25 | 2<<27 | 1<<29
	c := DecodeCableProperty(word0, 0x3)
	assert.Equal(uint16(0x10), c.SpeedSupported)
	assert.Equal(uint8(60), c.CurrentCapability)
	assert.True(c.VBUSInCable)
	assert.Equal(CableActive, c.Type)
	assert.Equal(PlugTypeC, c.PlugEnd)
	assert.True(c.ModeSupport)
	assert.False(c.Directionality)
	assert.Equal(uint8(3), c.Latency)
	assert.Equal([]uint32{word0, 0x3}, c.Words())

	assert.Equal("USB Type-C", PlugTypeC.String())
	assert.Equal("Unknown", CableUnknown.String())
	assert.Equal(uint32(0), CableProperty{Type: CableUnknown}.Words()[0])
}
