package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harvester/typec/pkg/pd"
	"github.com/harvester/typec/pkg/typec"
	"github.com/harvester/typec/pkg/util/testhelper"
)

func sysfsSession(t *testing.T, ports []testhelper.FakePort) (*typec.Session, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, testhelper.SetupFakeTypec(root, ports))
	s := typec.NewSession(typec.WithSysfsRoot(root), typec.WithDebugfsRoot(t.TempDir()),
		typec.WithoutSysfsMagicCheck(), typec.WithOSReleasePath(filepath.Join(t.TempDir(), "os-release")))
	require.NoError(t, s.Initialize(context.TODO()))
	t.Cleanup(func() { s.Close() })
	return s, root
}

func fakeVendors(id uint16) string {
	switch id {
	case 0x0bda:
		return "Realtek Semiconductor Corp."
	case 0xff01:
		return "DisplayPort"
	}
	return ""
}

func Test_List(t *testing.T) {
	assert := require.New(t)
	s, _ := sysfsSession(t, testhelper.DefaultFakePorts)

	var out bytes.Buffer
	p := NewPrinter(s, &out)
	p.VendorName = fakeVendors
	assert.NoError(p.List(context.TODO()))

	report := out.String()
	assert.Contains(report, "Using typec "+typec.Version+" with the sysfs backend")
	assert.Contains(report, "On linux")
	assert.Contains(report, "Number of Connectors:\t\t2")
	assert.Contains(report, "USB Power Delivery Revision:\t3.0")
	assert.Contains(report, "Connector 0 Capability/Status")
	assert.Contains(report, "Connector 1 Capability/Status")
	assert.Contains(report, "Operation Mode:\t\tDRP")
	assert.Contains(report, "SVID:\t0xff01 (DisplayPort)")
	assert.Contains(report, "Vendor:\t\t0x0bda (Realtek Semiconductor Corp.)")
	assert.Contains(report, "Product Type:\tUFP")
	assert.Contains(report, "Product Type:\tPassive Cable")
	assert.Contains(report, "Type:\t\tPassive")
	assert.Contains(report, "Source Capabilities:")
	assert.Contains(report, "Fixed Supply 20.00V 4.50A")
	assert.Contains(report, "Augmented 3.30V-21.00V 3.00A")
	assert.Contains(report, "No partner connected")
	assert.NotContains(report, "Error:")
}

type fakeSession struct {
	capability pd.Capability
	connector  pd.ConnectorCapability
	status     pd.ConnectorStatus
	cable      *pd.CableProperty
	sourcePDOs []pd.PDO
}

func (f *fakeSession) Info() (typec.Info, error) {
	return typec.Info{Version: typec.Version, Backend: typec.BackendDebugfs}, nil
}

func (f *fakeSession) GetCapability(context.Context) (pd.Capability, error) {
	return f.capability, nil
}

func (f *fakeSession) GetConnectorCapability(context.Context, uint8) (pd.ConnectorCapability, error) {
	return f.connector, nil
}

func (f *fakeSession) GetAlternateModes(context.Context, pd.Recipient, uint8) ([]pd.AltMode, error) {
	return nil, nil
}

func (f *fakeSession) GetCableProperty(context.Context, uint8) (pd.CableProperty, error) {
	if f.cable == nil {
		return pd.CableProperty{}, typec.ErrNotPresent
	}
	return *f.cable, nil
}

func (f *fakeSession) GetConnectorStatus(context.Context, uint8) (pd.ConnectorStatus, error) {
	return f.status, nil
}

func (f *fakeSession) GetDiscoveredIdentity(context.Context, pd.Recipient, uint8) (pd.DiscoveredIdentity, error) {
	return pd.DiscoveredIdentity{}, typec.ErrNotPresent
}

func (f *fakeSession) GetPDOs(_ context.Context, _ uint8, partner bool, _ uint8, source bool, _ uint8) ([]pd.PDO, error) {
	if partner || !source {
		return nil, typec.ErrNotPresent
	}
	return f.sourcePDOs, nil
}

func Test_ListLocalPDOsUsePlatformRevision(t *testing.T) {
	assert := require.New(t)
	fixed := pd.Supply{Type: pd.PDOFixed, Millivolts: 5000, Milliamps: 3000}.PDO(pd.RoleSource)
	pps := pd.Supply{Type: pd.PDOAugmented, MinMillivolts: 3300, Millivolts: 21000, Milliamps: 3000}.PDO(pd.RoleSource)
	s := &fakeSession{
		capability: pd.Capability{NumConnectors: 1, PDVersion: 0x0300},
		sourcePDOs: []pd.PDO{fixed, pps},
	}

	var out bytes.Buffer
	p := NewPrinter(s, &out)
	p.VendorName = fakeVendors
	assert.NoError(p.List(context.TODO()))

	report := out.String()
	assert.Contains(report, "No partner connected")
	assert.Contains(report, "Augmented 3.30V-21.00V 3.00A")

	for _, pdo := range []pd.PDO{fixed, pps} {
		obj, err := pd.DecodePDO(pd.Rev30, pd.RoleSource, pdo)
		assert.NoError(err)
		assert.Equal(pd.Rev30, obj.Revision)
		decoded := 0
		for _, v := range obj.Values {
			if !v.Field.Decodable {
				continue
			}
			decoded++
			assert.Contains(report, "\t\t\t"+v.String()+"\n")
		}
		assert.NotZero(decoded, "PDO 0x%08x has no decoded fields", uint32(pdo))
	}
}

func Test_ListUnknownRevisions(t *testing.T) {
	assert := require.New(t)
	s := &fakeSession{
		capability: pd.Capability{NumConnectors: 1, PDVersion: 0x0300},
		status:     pd.ConnectorStatus{Connected: true},
		cable:      &pd.CableProperty{Type: pd.CablePassive},
	}

	var out bytes.Buffer
	assert.NoError(NewPrinter(s, &out).List(context.TODO()))

	report := out.String()
	assert.Contains(report, "\tCable:\n\t\tPD Revision:\tUnknown\n")
	assert.Contains(report, "\tPartner:\n\t\tPD Revision:\tUnknown\n")
	assert.NotContains(report, "0.0\n")
}

func Test_ListNotBound(t *testing.T) {
	s := typec.NewSession()
	err := NewPrinter(s, &bytes.Buffer{}).List(context.TODO())
	assert.ErrorIs(t, err, typec.ErrNotBound)
}

func Test_FormatSupply(t *testing.T) {
	testcases := []struct {
		supply   pd.Supply
		expected string
	}{
		{pd.Supply{Type: pd.PDOFixed, Millivolts: 5000, Milliamps: 3000}, "Fixed Supply 5.00V 3.00A"},
		{pd.Supply{Type: pd.PDOVariable, MinMillivolts: 5000, Millivolts: 12000, Milliamps: 1500}, "Variable Supply 5.00V-12.00V 1.50A"},
		{pd.Supply{Type: pd.PDOBattery, MinMillivolts: 5000, Millivolts: 20000, Milliwatts: 45000}, "Battery 5.00V-20.00V 45.00W"},
	}

	for _, tc := range testcases {
		assert.Equal(t, tc.expected, FormatSupply(tc.supply))
	}
}

func Test_Status(t *testing.T) {
	assert := require.New(t)
	s, root := sysfsSession(t, testhelper.DefaultFakePorts)
	assert.NoError(testhelper.SetupFakeRAPL(root, 28000000, 64000000))

	var out bytes.Buffer
	assert.NoError(NewPrinter(s, &out).Status(context.TODO(), root))
	assert.Equal(`USB-C Power Status
==================
	USB-C power contract Operating Power 60 W, with Max Power 100 W
	Charging System with TDP 28 W, with boost power requirement of 64 W
`, out.String())
}

func Test_StatusWithoutRAPL(t *testing.T) {
	assert := require.New(t)
	s, root := sysfsSession(t, testhelper.DefaultFakePorts)

	var out bytes.Buffer
	assert.NoError(NewPrinter(s, &out).Status(context.TODO(), root))
	assert.Contains(out.String(), "Operating Power 60 W")
	assert.NotContains(out.String(), "TDP")
}

func Test_StatusWithoutContract(t *testing.T) {
	assert := require.New(t)
	s, root := sysfsSession(t, testhelper.DefaultFakePorts)

	var out bytes.Buffer
	assert.NoError(NewPrinter(s, &out).StatusFor(context.TODO(), root, 1))
	assert.Empty(out.String())

	assert.ErrorIs(NewPrinter(s, &out).StatusFor(context.TODO(), root, 4), typec.ErrInvalidConnector)
}

func Test_ReadPowerLimits(t *testing.T) {
	root := t.TempDir()
	_, err := ReadPowerLimits(root)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, testhelper.SetupFakeRAPL(root, 15000000, 25000000))
	limits, err := ReadPowerLimits(root)
	assert.NoError(t, err)
	assert.Equal(t, PowerLimits{TDP: 15, Boost: 25}, limits)
}
