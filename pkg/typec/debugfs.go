package typec

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/harvester/typec/pkg/bitfield"
	"github.com/harvester/typec/pkg/pd"
	"github.com/harvester/typec/pkg/ucsi"
)

// exchanger is the part of ucsi.Channel the debugfs backend needs.
type exchanger interface {
	Exchange(ctx context.Context, cmd ucsi.Command) (ucsi.Response, error)
	Close() error
}

// DebugfsBackend talks UCSI to the connector manager through the kernel
// debugfs command and response files.
type DebugfsBackend struct {
	ch exchanger
}

// NewDebugfsBackend opens the UCSI endpoints of one instance.
func NewDebugfsBackend(debugfsRoot, instance string, opts ...ucsi.Option) (*DebugfsBackend, error) {
	if instance == "" {
		instances, err := ucsi.Instances(debugfsRoot)
		if err != nil || len(instances) == 0 {
			instance = ucsi.DefaultInstance
		} else {
			instance = instances[0]
		}
	}

	ch, err := ucsi.Open(ucsi.Dir(debugfsRoot, instance), opts...)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("opened ucsi debugfs instance %s", instance)
	return &DebugfsBackend{ch: ch}, nil
}

func (d *DebugfsBackend) Kind() BackendKind {
	return BackendDebugfs
}

func (d *DebugfsBackend) exchange(ctx context.Context, cmd ucsi.Command) ([]uint32, error) {
	r, err := d.ch.Exchange(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return r.Words(), nil
}

func (d *DebugfsBackend) GetCapability(ctx context.Context) (pd.Capability, error) {
	words, err := d.exchange(ctx, ucsi.GetCapability())
	if err != nil {
		return pd.Capability{}, err
	}
	return pd.DecodeCapability(words...), nil
}

func (d *DebugfsBackend) GetConnectorCapability(ctx context.Context, index uint8) (pd.ConnectorCapability, error) {
	words, err := d.exchange(ctx, ucsi.GetConnectorCapability(index))
	if err != nil {
		return pd.ConnectorCapability{}, err
	}
	return pd.DecodeConnectorCapability(words...), nil
}

// Alternate mode responses carry the SVID in bits 0-15 and the mode VDO
// in bits 16-47.
var (
	altModeSVID   = bitfield.Field{Name: "SVID", Word: 0, Offset: 0, Width: 16}
	altModeVDOLow = bitfield.Field{Name: "VDO", Word: 0, Offset: 16, Width: 16}
	altModeVDOHi  = bitfield.Field{Name: "VDO", Word: 1, Offset: 0, Width: 16}
)

// GetAlternateModes reads one mode per command until the list ends.
func (d *DebugfsBackend) GetAlternateModes(ctx context.Context, r pd.Recipient, index uint8) ([]pd.AltMode, error) {
	var modes []pd.AltMode
	for offset := 0; offset < pd.MaxAltModes; offset++ {
		words, err := d.exchange(ctx, ucsi.GetAlternateModes(r, index, uint8(offset)))
		if err != nil {
			return modes, err
		}

		mode := pd.AltMode{
			SVID: uint16(altModeSVID.Get(words...)),
			VDO:  altModeVDOHi.Get(words...)<<16 | altModeVDOLow.Get(words...),
		}
		if pd.EndsAltModeList(modes, mode) {
			break
		}
		modes = append(modes, mode)
	}
	return modes, nil
}

func (d *DebugfsBackend) GetCableProperty(ctx context.Context, index uint8) (pd.CableProperty, error) {
	words, err := d.exchange(ctx, ucsi.GetCableProperty(index))
	if err != nil {
		return pd.CableProperty{}, err
	}
	return pd.DecodeCableProperty(words...), nil
}

func (d *DebugfsBackend) GetConnectorStatus(ctx context.Context, index uint8) (pd.ConnectorStatus, error) {
	words, err := d.exchange(ctx, ucsi.GetConnectorStatus(index))
	if err != nil {
		return pd.ConnectorStatus{}, err
	}
	return pd.DecodeConnectorStatus(words...), nil
}

func (d *DebugfsBackend) GetPDMessage(_ context.Context, _ pd.Recipient, _ uint8, _ int, _ MessageType) ([]byte, error) {
	return nil, fmt.Errorf("debugfs pd message: %w", ErrUnsupported)
}

// GetPDOs reads one PDO per command starting at offset until a zero or
// repeated PDO.
func (d *DebugfsBackend) GetPDOs(ctx context.Context, index uint8, partner bool, offset uint8, source bool, pdoType uint8) ([]pd.PDO, error) {
	var pdos []pd.PDO
	for i := int(offset); i < int(offset)+MaxPDOs && i <= 0xff; i++ {
		words, err := d.exchange(ctx, ucsi.GetPDOs(index, partner, uint8(i), 0, source, pdoType))
		if err != nil {
			return pdos, err
		}

		p := pd.PDO(words[0])
		if endsPDOList(pdos, p) {
			break
		}
		pdos = append(pdos, p)
	}
	return pdos, nil
}

func (d *DebugfsBackend) Close() error {
	return d.ch.Close()
}
