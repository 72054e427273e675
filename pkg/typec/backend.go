package typec

import (
	"context"

	"github.com/harvester/typec/pkg/pd"
)

// BackendKind names one of the OS interfaces a session can bind to.
type BackendKind string

const (
	BackendDebugfs BackendKind = "debugfs"
	BackendSysfs   BackendKind = "sysfs"
)

// DefaultBackendOrder is the probe order used unless overridden.
var DefaultBackendOrder = []BackendKind{BackendDebugfs, BackendSysfs}

// MessageType selects the PD message returned by GetPDMessage.
type MessageType uint8

const (
	MessageSinkCapabilitiesExtended MessageType = iota
	MessageSourceCapabilitiesExtended
	MessageBatteryCapabilities
	MessageBatteryStatus
	MessageDiscoverIdentity
	MessageRevision
)

// MaxPDOs bounds PDO list reads.
const MaxPDOs = 16

// Backend answers queries through one OS interface. Queries a backend
// cannot answer return ErrUnsupported.
type Backend interface {
	Kind() BackendKind
	GetCapability(ctx context.Context) (pd.Capability, error)
	GetConnectorCapability(ctx context.Context, index uint8) (pd.ConnectorCapability, error)
	GetAlternateModes(ctx context.Context, r pd.Recipient, index uint8) ([]pd.AltMode, error)
	GetCableProperty(ctx context.Context, index uint8) (pd.CableProperty, error)
	GetConnectorStatus(ctx context.Context, index uint8) (pd.ConnectorStatus, error)
	GetPDMessage(ctx context.Context, r pd.Recipient, index uint8, size int, typ MessageType) ([]byte, error)
	GetPDOs(ctx context.Context, index uint8, partner bool, offset uint8, source bool, pdoType uint8) ([]pd.PDO, error)
	Close() error
}

// endsPDOList reports whether cur terminates a PDO list read so far.
func endsPDOList(pdos []pd.PDO, cur pd.PDO) bool {
	if cur == 0 {
		return true
	}
	for _, p := range pdos {
		if p == cur {
			return true
		}
	}
	return false
}
