package typec

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harvester/typec/pkg/pd"
	"github.com/harvester/typec/pkg/util/testhelper"
)

func fakeSysfsBackend(t *testing.T, ports []testhelper.FakePort) (*SysfsBackend, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, testhelper.SetupFakeTypec(root, ports))
	s, err := NewSysfsBackend(root, "", false)
	require.NoError(t, err)
	return s, root
}

func Test_SysfsCapability(t *testing.T) {
	assert := require.New(t)
	s, _ := fakeSysfsBackend(t, testhelper.DefaultFakePorts)
	assert.Equal(BackendSysfs, s.Kind())

	c, err := s.GetCapability(context.TODO())
	assert.NoError(err)
	assert.Equal(uint8(2), c.NumConnectors, "partner and cable directories are not ports")
	assert.Equal(uint8(2), c.NumAltModes)
	assert.Equal(uint16(pd.Rev30), c.PDVersion)
	assert.Equal(uint16(0x0200), c.TypeCVersion)
}

func Test_SysfsConnectorCapability(t *testing.T) {
	assert := require.New(t)
	s, _ := fakeSysfsBackend(t, testhelper.DefaultFakePorts)

	c, err := s.GetConnectorCapability(context.TODO(), 0)
	assert.NoError(err)
	assert.Equal(pd.OpModeDRP, c.OperationMode)
	assert.True(c.Provider && c.Consumer)
	assert.Equal(pd.Rev30, c.PartnerRevision)
	assert.Equal(pd.Rev30, c.CableRevision)

	c, err = s.GetConnectorCapability(context.TODO(), 1)
	assert.NoError(err)
	assert.Equal(pd.SinkOnly, c.Role())
	assert.True(c.Consumer)
	assert.False(c.Provider)
	assert.Equal(pd.RevisionUnknown, c.PartnerRevision)

	_, err = s.GetConnectorCapability(context.TODO(), 5)
	assert.ErrorIs(err, ErrInvalidConnector)
}

func Test_OperationMode(t *testing.T) {
	assert.Equal(t, pd.OpModeDRP, operationMode("[source] sink"))
	assert.Equal(t, pd.OpModeRpOnly, operationMode("[source]"))
	assert.Equal(t, pd.OpModeRdOnly, operationMode("[sink]"))
	assert.Equal(t, pd.OpModeRdOnly, operationMode(""))
}

func Test_SysfsAlternateModes(t *testing.T) {
	assert := require.New(t)
	ports := []testhelper.FakePort{testhelper.DefaultFakePorts[0]}
	cable := *ports[0].Cable
	cable.PlugAltModes = []testhelper.FakeAltMode{{SVID: 0x8087, VDO: 0x00030001}}
	ports[0].Cable = &cable
	s, _ := fakeSysfsBackend(t, ports)

	modes, err := s.GetAlternateModes(context.TODO(), pd.RecipientConnector, 0)
	assert.NoError(err)
	assert.Equal([]pd.AltMode{{SVID: 0xff01, VDO: 0x001c0046}, {SVID: 0x8087, VDO: 1}}, modes)

	modes, err = s.GetAlternateModes(context.TODO(), pd.RecipientSOP, 0)
	assert.NoError(err)
	assert.Equal([]pd.AltMode{{SVID: 0xff01, VDO: 0x001c0045}}, modes)

	modes, err = s.GetAlternateModes(context.TODO(), pd.RecipientSOPPrime, 0)
	assert.NoError(err)
	assert.Equal([]pd.AltMode{{SVID: 0x8087, VDO: 0x00030001}}, modes)

	modes, err = s.GetAlternateModes(context.TODO(), pd.RecipientSOPDoublePrime, 0)
	assert.NoError(err)
	assert.Empty(modes, "a missing plug directory is an empty list")
}

func Test_SysfsCableProperty(t *testing.T) {
	assert := require.New(t)
	s, root := fakeSysfsBackend(t, testhelper.DefaultFakePorts)

	c, err := s.GetCableProperty(context.TODO(), 0)
	assert.NoError(err)
	assert.Equal(pd.CablePassive, c.Type)
	assert.Equal(pd.PlugTypeC, c.PlugEnd)
	assert.False(c.ModeSupport)

	_, err = s.GetCableProperty(context.TODO(), 1)
	assert.ErrorIs(err, ErrNotPresent)

	cable := filepath.Join(root, typecClassPath, "port0-cable")
	assert.NoError(os.WriteFile(filepath.Join(cable, "type"), []byte("unknown\n"), 0644))
	assert.NoError(os.WriteFile(filepath.Join(cable, "plug_type"), []byte("captive\n"), 0644))
	c, err = s.GetCableProperty(context.TODO(), 0)
	assert.NoError(err)
	assert.Equal(pd.CableUnknown, c.Type)
	assert.Equal(pd.PlugOther, c.PlugEnd)
}

func Test_SysfsConnectorStatus(t *testing.T) {
	assert := require.New(t)
	s, _ := fakeSysfsBackend(t, testhelper.DefaultFakePorts)

	st, err := s.GetConnectorStatus(context.TODO(), 0)
	assert.NoError(err)
	assert.True(st.Connected)
	assert.False(st.PowerProvider)
	assert.Equal(pd.Rev30, st.PDRevision)
	// 3A at 20V is 60W, 5A at 20V is 100W
	assert.Equal(uint32(60000), st.OperatingPowerMilliwatts())
	assert.Equal(uint32(100000), st.MaxPowerMilliwatts())

	st, err = s.GetConnectorStatus(context.TODO(), 1)
	assert.NoError(err, "a port without a ucsi power supply still reports status")
	assert.False(st.Connected)
	assert.Zero(st.RDO)
}

func Test_SysfsConnectorStatusOffline(t *testing.T) {
	ports := []testhelper.FakePort{testhelper.DefaultFakePorts[0]}
	psy := *ports[0].PowerSupply
	psy.Online = false
	ports[0].PowerSupply = &psy
	s, _ := fakeSysfsBackend(t, ports)

	st, err := s.GetConnectorStatus(context.TODO(), 0)
	require.NoError(t, err)
	assert.Zero(t, st.RDO)
}

func Test_SysfsDiscoveredIdentity(t *testing.T) {
	assert := require.New(t)
	s, _ := fakeSysfsBackend(t, testhelper.DefaultFakePorts)

	msg, err := s.GetPDMessage(context.TODO(), pd.RecipientSOP, 0, pd.IdentitySize, MessageDiscoverIdentity)
	assert.NoError(err)
	id, err := pd.ParseDiscoveredIdentity(msg)
	assert.NoError(err)
	assert.Equal(uint32(0x54000bda), id.IDHeader)
	assert.Equal(uint16(0x0bda), id.VendorID())
	assert.Equal(pd.ProductUFP, pd.ClassifyPartner(pd.Rev30, id.IDHeader))

	msg, err = s.GetPDMessage(context.TODO(), pd.RecipientSOPPrime, 0, 12, MessageDiscoverIdentity)
	assert.NoError(err)
	assert.Len(msg, 12)

	_, err = s.GetPDMessage(context.TODO(), pd.RecipientSOP, 1, pd.IdentitySize, MessageDiscoverIdentity)
	assert.ErrorIs(err, ErrNotPresent)

	_, err = s.GetPDMessage(context.TODO(), pd.RecipientSOP, 0, 4, MessageBatteryStatus)
	assert.ErrorIs(err, ErrUnsupported)

	_, err = s.GetPDMessage(context.TODO(), pd.RecipientConnector, 0, pd.IdentitySize, MessageDiscoverIdentity)
	assert.ErrorIs(err, ErrUnsupported)
}

func Test_SysfsPDOs(t *testing.T) {
	assert := require.New(t)
	s, _ := fakeSysfsBackend(t, testhelper.DefaultFakePorts)

	pdos, err := s.GetPDOs(context.TODO(), 0, true, 0, true, 0)
	assert.NoError(err)
	assert.Len(pdos, 4)

	first := pdos[0].Supply(pd.RoleSource)
	assert.Equal(pd.PDOFixed, first.Type)
	assert.Equal(uint32(5000), first.Millivolts)
	assert.Equal(uint32(3000), first.Milliamps)
	assert.True(first.USBCommunication)
	assert.True(first.Unconstrained)

	assert.Equal(uint32(20000), pdos[2].Supply(pd.RoleSource).Millivolts)
	pps := pdos[3].Supply(pd.RoleSource)
	assert.Equal(pd.PDOAugmented, pps.Type)
	assert.Equal(uint32(3300), pps.MinMillivolts)
	assert.Equal(uint32(21000), pps.Millivolts)

	obj, err := pd.DecodePDO(pd.Rev30, pd.RoleSource, pdos[3])
	assert.NoError(err)
	assert.Equal(pd.CategoryAugmented, obj.Category)

	pdos, err = s.GetPDOs(context.TODO(), 0, true, 2, true, 0)
	assert.NoError(err)
	assert.Len(pdos, 2, "offset skips leading PDOs")

	pdos, err = s.GetPDOs(context.TODO(), 0, false, 0, false, 0)
	assert.NoError(err)
	assert.Len(pdos, 2)
	sink := pdos[0].Supply(pd.RoleSink)
	assert.Equal(uint32(3000), sink.Milliamps)
	assert.True(sink.DualRolePower)

	_, err = s.GetPDOs(context.TODO(), 0, false, 0, true, 0)
	assert.ErrorIs(err, ErrNotPresent)

	pdos, err = s.GetPDOs(context.TODO(), 0, true, 9, true, 0)
	assert.NoError(err)
	assert.Empty(pdos)
}

func Test_SupplyFromDirFlags(t *testing.T) {
	assert := require.New(t)
	dir := filepath.Join(t.TempDir(), "1:fixed_supply")
	assert.NoError(os.Mkdir(dir, 0755))
	for name, value := range map[string]string{
		"voltage":                   "5000mV\n",
		"maximum_current":           "3000mA\n",
		"dual_role_power":           "1\n",
		"usb_suspend_supported":     "0\n",
		"unconstrained_power":       "1\n",
		"usb_communication_capable": "bogus\n",
	} {
		assert.NoError(os.WriteFile(filepath.Join(dir, name), []byte(value), 0644))
	}

	s, ok := supplyFromDir(dir, "fixed_supply", true)
	assert.True(ok)
	assert.Equal(uint32(5000), s.Millivolts)
	assert.Equal(uint32(3000), s.Milliamps)
	assert.True(s.DualRolePower)
	assert.True(s.Unconstrained)
	assert.False(s.USBSuspend)
	assert.False(s.USBCommunication, "unparsable flags read as unset")
	assert.False(s.DualRoleData, "missing flags read as unset")
}

func Test_NewSysfsBackend(t *testing.T) {
	_, err := NewSysfsBackend(t.TempDir(), "", false)
	assert.Error(t, err, "a tree without a typec class fails the probe")

	root := t.TempDir()
	require.NoError(t, testhelper.SetupFakeTypec(root, testhelper.DefaultFakePorts))
	_, err = NewSysfsBackend(root, "", true)
	assert.Error(t, err, "a temp dir is not a sysfs mount")
}
