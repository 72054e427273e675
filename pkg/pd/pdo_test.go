package pd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLayoutsCoverWholeWords(t *testing.T) {
	for key, layout := range registry {
		bits := make(map[int]uint32)
		for _, f := range layout {
			m := f.Mask()
			require.Zero(t, bits[f.Word]&m, "%v: field %q overlaps", key, f.Name)
			bits[f.Word] |= m
		}
		for word, covered := range bits {
			if key.Category == CategoryCableProperty && word == 1 {
				// only the latency nibble and its reserved pad are defined
				assert.Equal(t, uint32(0xff), covered, "%v word %d", key, word)
				continue
			}
			if key.Category == CategoryConnectorCapability || key.Category == CategoryConnectorStatus ||
				key.Category == CategoryCapability || key.Category == CategoryCableProperty {
				continue
			}
			assert.Equal(t, uint32(0xffffffff), covered, "%v word %d not fully described", key, word)
		}
	}
}

func TestPDOType(t *testing.T) {
	assert := require.New(t)
	assert.Equal(PDOFixed, PDO(0x0001912c).Type())
	assert.Equal(PDOBattery, PDO(0x40000000).Type())
	assert.Equal(PDOVariable, PDO(0x80000000).Type())
	assert.Equal(PDOAugmented, PDO(0xc0000000).Type())
}

func TestDecodePDO(t *testing.T) {
	assert := require.New(t)

	// 5V 3A fixed source, USB communications capable, dual role data
	pdo := PDO(0x0601912c)
	obj, err := DecodePDO(Rev30, RoleSource, pdo)
	assert.NoError(err)
	assert.Equal(CategoryFixedSupply, obj.Category)
	assert.Equal(Rev30, obj.Revision)

	values := map[string]uint32{}
	for _, v := range obj.Values {
		values[v.Field.Name] = v.Raw
	}
	assert.Equal(uint32(300), values["Maximum Current in 10mA units"])
	assert.Equal(uint32(100), values["Voltage in 50mV units"])
	assert.Equal(uint32(1), values["Dual-Role Data"])
	assert.Equal(uint32(1), values["USB Communications Capable"])
	assert.Equal(uint32(0), values["Fixed supply"])

	_, err = DecodePDO(Rev20, RoleSource, PDO(0xc0000000))
	assert.True(errors.Is(err, ErrNoLayout), "augmented PDOs do not exist in PD 2.0")

	_, err = DecodePDO(Rev30, RolePartner, pdo)
	assert.Error(err)
}

func TestEncodeDecodePDORoundTrip(t *testing.T) {
	revisions := []Revision{Rev20, Rev30, Rev31}
	types := []PDOType{PDOFixed, PDOBattery, PDOVariable, PDOAugmented}
	roles := []Role{RoleSource, RoleSink}

	for _, rev := range revisions {
		for _, typ := range types {
			for _, role := range roles {
				layout, err := Lookup(rev, typ.Category(), role)
				if typ == PDOAugmented && rev == Rev20 {
					require.ErrorIs(t, err, ErrNoLayout)
					continue
				}
				require.NoError(t, err, "%s %s %s", rev, typ, role)

				values := make([]uint32, len(layout))
				for i, f := range layout {
					if f.Offset == 30 {
						values[i] = uint32(typ)
						continue
					}
					// a recognisable value that fits every field width
					values[i] = uint32((i*7 + 3) & ((1 << f.Width) - 1))
				}

				pdo, err := EncodePDO(rev, role, typ, values...)
				require.NoError(t, err)
				require.Equal(t, typ, pdo.Type())

				obj, err := DecodePDO(rev, role, pdo)
				require.NoError(t, err)
				require.Len(t, obj.Values, len(values))
				for i, v := range obj.Values {
					assert.Equal(t, values[i], v.Raw, "%s %s %s field %q", rev, typ, role, v.Field.Name)
				}
			}
		}
	}
}

func TestSupplyRoundTrip(t *testing.T) {
	testcases := []struct {
		name   string
		role   Role
		supply Supply
	}{
		{
			name: "fixed source",
			role: RoleSource,
			supply: Supply{Type: PDOFixed, Millivolts: 5000, Milliamps: 3000, DualRolePower: true, USBSuspend: true,
				USBCommunication: true, DualRoleData: true, UnchunkedExtended: true},
		},
		{
			name:   "fixed sink",
			role:   RoleSink,
			supply: Supply{Type: PDOFixed, Millivolts: 9000, Milliamps: 2000, Unconstrained: true, FastRoleSwap: 2},
		},
		{
			name:   "variable",
			role:   RoleSource,
			supply: Supply{Type: PDOVariable, MinMillivolts: 5000, Millivolts: 12000, Milliamps: 1500},
		},
		{
			name:   "battery",
			role:   RoleSink,
			supply: Supply{Type: PDOBattery, MinMillivolts: 5000, Millivolts: 20000, Milliwatts: 45000},
		},
		{
			name:   "pps source",
			role:   RoleSource,
			supply: Supply{Type: PDOAugmented, MinMillivolts: 3300, Millivolts: 21000, Milliamps: 3000, PPSPowerLimited: true},
		},
	}

	for _, tc := range testcases {
		pdo := tc.supply.PDO(tc.role)
		assert.Equal(t, tc.supply, pdo.Supply(tc.role), tc.name)
	}

	pdo := Supply{Type: PDOFixed, Millivolts: 5000, Milliamps: 3000}.PDO(RoleSource)
	assert.Equal(t, PDO(0x0001912c), pdo)
}
