package ucsi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harvester/typec/pkg/pd"
)

func Test_CommandEncoding(t *testing.T) {
	testcases := []struct {
		name     string
		cmd      Command
		expected uint64
		opcode   Opcode
	}{
		{
			name:     "capability",
			cmd:      GetCapability(),
			expected: 0x06,
			opcode:   OpGetCapability,
		},
		{
			name:     "connector capability uses one based connector numbers",
			cmd:      GetConnectorCapability(0),
			expected: 0x07 | 1<<16,
			opcode:   OpGetConnectorCapability,
		},
		{
			name:     "alternate modes",
			cmd:      GetAlternateModes(pd.RecipientSOP, 1, 2),
			expected: 0x0c | 1<<16 | 2<<24 | 2<<32,
			opcode:   OpGetAlternateModes,
		},
		{
			name:     "partner source pdos",
			cmd:      GetPDOs(0, true, 3, 0, true, PDOTypeAdvertised),
			expected: 0x10 | 1<<16 | 1<<23 | 3<<24 | 1<<34 | 1<<35,
			opcode:   OpGetPDOs,
		},
		{
			name:     "local sink pdos",
			cmd:      GetPDOs(1, false, 0, 3, false, PDOTypeCurrentSupported),
			expected: 0x10 | 2<<16 | 3<<32,
			opcode:   OpGetPDOs,
		},
		{
			name:     "cable property",
			cmd:      GetCableProperty(2),
			expected: 0x11 | 3<<16,
			opcode:   OpGetCableProperty,
		},
		{
			name:     "connector status",
			cmd:      GetConnectorStatus(0),
			expected: 0x12 | 1<<16,
			opcode:   OpGetConnectorStatus,
		},
	}

	for _, tc := range testcases {
		assert.Equal(t, tc.expected, uint64(tc.cmd), tc.name)
		assert.Equal(t, tc.opcode, tc.cmd.Opcode(), tc.name)
	}
}

func Test_CommandString(t *testing.T) {
	assert.Equal(t, "65543", GetConnectorCapability(0).String())
	assert.Equal(t, "6", GetCapability().String())
	assert.Equal(t, "GET_PDOS", OpGetPDOs.String())
	assert.Equal(t, "0x13", Opcode(0x13).String())
}

func Test_ConnectorNumberIsMasked(t *testing.T) {
	// connector numbers are 7 bits wide and must not spill into the partner flag
	cmd := GetPDOs(127, false, 0, 0, false, 0)
	assert.Zero(t, uint64(cmd)&(1<<23))
}
