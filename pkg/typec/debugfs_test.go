package typec

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harvester/typec/pkg/pd"
	"github.com/harvester/typec/pkg/ucsi"
	"github.com/harvester/typec/pkg/util/testhelper"
)

// fakeUCSI answers commands with the words returned by respond.
type fakeUCSI struct {
	respond  func(cmd ucsi.Command) []uint32
	commands []ucsi.Command
	err      error
	closed   bool
}

func (f *fakeUCSI) Exchange(_ context.Context, cmd ucsi.Command) (ucsi.Response, error) {
	f.commands = append(f.commands, cmd)
	if f.err != nil {
		return ucsi.Response{}, f.err
	}
	return ucsi.ParseResponse(ucsi.FormatResponse(f.respond(cmd)...))
}

func (f *fakeUCSI) Close() error {
	f.closed = true
	return nil
}

func altModeOffset(cmd ucsi.Command) int {
	return int(uint64(cmd)>>32) & 0xff
}

func pdoOffset(cmd ucsi.Command) int {
	return int(uint64(cmd)>>24) & 0xff
}

// altModeWords lays a mode out the way GET_ALTERNATE_MODES returns it.
func altModeWords(m pd.AltMode) []uint32 {
	return []uint32{m.VDO<<16 | uint32(m.SVID), m.VDO >> 16}
}

func Test_DebugfsCapability(t *testing.T) {
	assert := require.New(t)
	f := &fakeUCSI{respond: func(cmd ucsi.Command) []uint32 {
		switch cmd.Opcode() {
		case ucsi.OpGetCapability:
			return pd.Capability{NumConnectors: 2, NumAltModes: 3, PDVersion: 0x0300, TypeCVersion: 0x0200}.Words()
		case ucsi.OpGetConnectorCapability:
			return pd.ConnectorCapability{OperationMode: pd.OpModeDRP, Provider: true, Consumer: true, PartnerRevision: pd.Rev30}.Words()
		case ucsi.OpGetConnectorStatus:
			return pd.ConnectorStatus{Connected: true, RDO: pd.NewRDO(400, 300)}.Words()
		case ucsi.OpGetCableProperty:
			return pd.CableProperty{Type: pd.CableActive, PlugEnd: pd.PlugTypeC, ModeSupport: true}.Words()
		}
		return nil
	}}
	d := &DebugfsBackend{ch: f}
	assert.Equal(BackendDebugfs, d.Kind())

	c, err := d.GetCapability(context.TODO())
	assert.NoError(err)
	assert.Equal(uint8(2), c.NumConnectors)
	assert.Equal(uint16(0x0300), c.PDVersion)

	cc, err := d.GetConnectorCapability(context.TODO(), 1)
	assert.NoError(err)
	assert.Equal(pd.DualRole, cc.Role())
	assert.Equal(pd.Rev30, cc.PartnerRevision)
	assert.Equal(ucsi.GetConnectorCapability(1), f.commands[len(f.commands)-1])

	st, err := d.GetConnectorStatus(context.TODO(), 0)
	assert.NoError(err)
	assert.True(st.Connected)
	assert.Equal(uint32(100000), st.OperatingPowerMilliwatts())

	cbl, err := d.GetCableProperty(context.TODO(), 0)
	assert.NoError(err)
	assert.Equal(pd.CableActive, cbl.Type)
	assert.Equal(pd.PlugTypeC, cbl.PlugEnd)

	_, err = d.GetPDMessage(context.TODO(), pd.RecipientSOP, 0, pd.IdentitySize, MessageDiscoverIdentity)
	assert.ErrorIs(err, ErrUnsupported)

	assert.NoError(d.Close())
	assert.True(f.closed)
}

func Test_DebugfsAlternateModes(t *testing.T) {
	dp := pd.AltMode{SVID: pd.SVIDDisplayPort, VDO: 0x001c0045}
	tbt := pd.AltMode{SVID: pd.SVIDThunderbolt3, VDO: 0x00000001}

	testcases := []struct {
		name     string
		stream   []pd.AltMode
		expected []pd.AltMode
		commands int
	}{
		{
			name:     "zero svid at index 0 is an empty list",
			stream:   []pd.AltMode{{}},
			expected: nil,
			commands: 1,
		},
		{
			name:     "repeat of the previous entry ends the list",
			stream:   []pd.AltMode{dp, tbt, tbt},
			expected: []pd.AltMode{dp, tbt},
			commands: 3,
		},
		{
			name:     "zero svid after entries ends the list",
			stream:   []pd.AltMode{dp, {VDO: 5}},
			expected: []pd.AltMode{dp},
			commands: 2,
		},
	}

	for _, tc := range testcases {
		f := &fakeUCSI{respond: func(cmd ucsi.Command) []uint32 {
			off := altModeOffset(cmd)
			if off >= len(tc.stream) {
				return nil
			}
			return altModeWords(tc.stream[off])
		}}
		d := &DebugfsBackend{ch: f}

		modes, err := d.GetAlternateModes(context.TODO(), pd.RecipientSOP, 0)
		assert.NoError(t, err, tc.name)
		assert.Equal(t, tc.expected, modes, tc.name)
		assert.Len(t, f.commands, tc.commands, tc.name)
	}
}

func Test_DebugfsAlternateModesTerminate(t *testing.T) {
	// never zero and never a repeat of the previous entry
	f := &fakeUCSI{respond: func(cmd ucsi.Command) []uint32 {
		off := altModeOffset(cmd)
		return altModeWords(pd.AltMode{SVID: uint16(0x1000 + off%2), VDO: 1})
	}}
	d := &DebugfsBackend{ch: f}

	modes, err := d.GetAlternateModes(context.TODO(), pd.RecipientConnector, 0)
	assert.NoError(t, err)
	assert.Len(t, modes, pd.MaxAltModes)
	assert.Len(t, f.commands, pd.MaxAltModes)
}

func Test_DebugfsPDOs(t *testing.T) {
	assert := require.New(t)
	stream := []pd.PDO{0x0801912c, 0x0002d12c, 0x0004b12c, 0}
	f := &fakeUCSI{respond: func(cmd ucsi.Command) []uint32 {
		off := pdoOffset(cmd)
		if off >= len(stream) {
			return nil
		}
		return []uint32{uint32(stream[off])}
	}}
	d := &DebugfsBackend{ch: f}

	pdos, err := d.GetPDOs(context.TODO(), 0, true, 0, true, ucsi.PDOTypeAdvertised)
	assert.NoError(err)
	assert.Equal(stream[:3], pdos)
	assert.Len(f.commands, 4)
	assert.Equal(ucsi.GetPDOs(0, true, 0, 0, true, ucsi.PDOTypeAdvertised), f.commands[0])

	f.commands = nil
	pdos, err = d.GetPDOs(context.TODO(), 0, true, 1, true, ucsi.PDOTypeAdvertised)
	assert.NoError(err)
	assert.Equal(stream[1:3], pdos, "reads start at the requested offset")

	// a PDO seen before ends the list
	f.respond = func(cmd ucsi.Command) []uint32 {
		return []uint32{uint32(stream[pdoOffset(cmd)%2])}
	}
	pdos, err = d.GetPDOs(context.TODO(), 0, false, 0, false, ucsi.PDOTypeCurrentSupported)
	assert.NoError(err)
	assert.Equal(stream[:2], pdos)

	// a stream without zero or repeats is bounded
	f.respond = func(cmd ucsi.Command) []uint32 {
		return []uint32{0x0001912c + uint32(pdoOffset(cmd))}
	}
	pdos, err = d.GetPDOs(context.TODO(), 0, false, 0, true, ucsi.PDOTypeAdvertised)
	assert.NoError(err)
	assert.Len(pdos, MaxPDOs)
}

func Test_DebugfsExchangeErrors(t *testing.T) {
	assert := require.New(t)
	f := &fakeUCSI{err: ucsi.ErrNoResponse}
	d := &DebugfsBackend{ch: f}

	_, err := d.GetCapability(context.TODO())
	assert.True(errors.Is(err, ucsi.ErrNoResponse))

	modes, err := d.GetAlternateModes(context.TODO(), pd.RecipientConnector, 0)
	assert.ErrorIs(err, ucsi.ErrNoResponse)
	assert.Empty(modes)

	// the backend stays usable after a failed exchange
	f.err = nil
	f.respond = func(_ ucsi.Command) []uint32 { return pd.Capability{NumConnectors: 1}.Words() }
	c, err := d.GetCapability(context.TODO())
	assert.NoError(err)
	assert.Equal(uint8(1), c.NumConnectors)
}

func Test_NewDebugfsBackend(t *testing.T) {
	assert := require.New(t)
	root := t.TempDir()
	_, err := testhelper.SetupFakeUCSI(root, testhelper.DefaultUCSIInstance, ucsi.FormatResponse(pd.Capability{NumConnectors: 2}.Words()...))
	assert.NoError(err)

	d, err := NewDebugfsBackend(root, "")
	assert.NoError(err)
	defer d.Close()

	c, err := d.GetCapability(context.TODO())
	assert.NoError(err)
	assert.Equal(uint8(2), c.NumConnectors)

	_, err = NewDebugfsBackend(root, "USBC000:07")
	assert.Error(err)
}
