package pd

import (
	"strings"

	"github.com/harvester/typec/pkg/bitfield"
)

// UCSI GET_CAPABILITY data, four words.
var (
	capAttributes       = bitfield.Field{Name: "bmAttributes", Word: 0, Offset: 0, Width: 32, Decodable: true}
	capNumConnectors    = bitfield.Field{Name: "bNumConnectors", Word: 1, Offset: 0, Width: 7, Decodable: true}
	capOptionalFeatures = bitfield.Field{Name: "bmOptionalFeatures", Word: 1, Offset: 8, Width: 24, Decodable: true}
	capNumAltModes      = bitfield.Field{Name: "bNumAltModes", Word: 2, Offset: 0, Width: 8, Decodable: true}
	capBCVersion        = bitfield.Field{Name: "bcdBCVersion", Word: 2, Offset: 16, Width: 16, Decodable: true}
	capPDVersion        = bitfield.Field{Name: "bcdPDVersion", Word: 3, Offset: 0, Width: 16, Decodable: true}
	capTypeCVersion     = bitfield.Field{Name: "bcdTypeCVersion", Word: 3, Offset: 16, Width: 16, Decodable: true}

	capabilityLayout = bitfield.Layout{
		capAttributes,
		capNumConnectors,
		{Name: "Reserved", Word: 1, Offset: 7, Width: 1},
		capOptionalFeatures,
		capNumAltModes,
		{Name: "Reserved", Word: 2, Offset: 8, Width: 8},
		capBCVersion,
		capPDVersion,
		capTypeCVersion,
	}
)

// UCSI GET_CONNECTOR_CAPABILITY data.
var (
	connOpMode          = bitfield.Field{Name: "Operation Mode", Offset: 0, Width: 8, Decodable: true}
	connProvider        = bitfield.Field{Name: "Provider", Offset: 8, Width: 1, Decodable: true, Desc: noYes}
	connConsumer        = bitfield.Field{Name: "Consumer", Offset: 9, Width: 1, Decodable: true, Desc: noYes}
	connSwapToDFP       = bitfield.Field{Name: "Swap to DFP", Offset: 10, Width: 1, Decodable: true, Desc: noYes}
	connSwapToUFP       = bitfield.Field{Name: "Swap to UFP", Offset: 11, Width: 1, Decodable: true, Desc: noYes}
	connSwapToSource    = bitfield.Field{Name: "Swap to Source", Offset: 12, Width: 1, Decodable: true, Desc: noYes}
	connSwapToSink      = bitfield.Field{Name: "Swap to Sink", Offset: 13, Width: 1, Decodable: true, Desc: noYes}
	connPartnerRevision = bitfield.Field{Name: "Partner PD Revision", Offset: 27, Width: 2, Decodable: true,
		Desc: []string{"Unknown", "2.0", "3.0", "3.1"}}

	connectorCapabilityLayout = bitfield.Layout{
		connOpMode,
		connProvider,
		connConsumer,
		connSwapToDFP,
		connSwapToUFP,
		connSwapToSource,
		connSwapToSink,
		{Name: "Reserved", Offset: 14, Width: 13},
		connPartnerRevision,
		{Name: "Reserved", Offset: 29, Width: 3},
	}
)

// UCSI GET_CONNECTOR_STATUS data, three words.
var (
	stsChange         = bitfield.Field{Name: "Connector Status Change", Word: 0, Offset: 0, Width: 16, Decodable: true}
	stsPowerOpMode    = bitfield.Field{Name: "Power Operation Mode", Word: 0, Offset: 16, Width: 3, Decodable: true, Desc: powerOpModeNames}
	stsConnected      = bitfield.Field{Name: "Connect Status", Word: 0, Offset: 19, Width: 1, Decodable: true, Desc: noYes}
	stsPowerDirection = bitfield.Field{Name: "Power Direction", Word: 0, Offset: 20, Width: 1, Decodable: true, Desc: []string{"Consumer", "Provider"}}
	stsPartnerFlags   = bitfield.Field{Name: "Connector Partner Flags", Word: 0, Offset: 21, Width: 8, Decodable: true}
	stsPartnerType    = bitfield.Field{Name: "Connector Partner Type", Word: 0, Offset: 29, Width: 3, Decodable: true, Desc: partnerTypeNames}
	stsRDO            = bitfield.Field{Name: "Request Data Object", Word: 1, Offset: 0, Width: 32, Decodable: true}
	stsBatteryStatus  = bitfield.Field{Name: "Battery Charging Capability Status", Word: 2, Offset: 0, Width: 2, Decodable: true,
		Desc: []string{"Not Charging", "Nominal Charging", "Slow Charging", "Very Slow Charging"}}
	stsLimitedReason = bitfield.Field{Name: "Provider Capabilities Limited Reason", Word: 2, Offset: 2, Width: 4, Decodable: true}
	stsPDVersion     = bitfield.Field{Name: "bcdPDVersion Operation Mode", Word: 2, Offset: 6, Width: 16, Decodable: true}

	connectorStatusLayout = bitfield.Layout{
		stsChange,
		stsPowerOpMode,
		stsConnected,
		stsPowerDirection,
		stsPartnerFlags,
		stsPartnerType,
		stsRDO,
		stsBatteryStatus,
		stsLimitedReason,
		stsPDVersion,
		{Name: "Reserved", Word: 2, Offset: 22, Width: 10},
	}

	powerOpModeNames = []string{"Reserved", "USB Default", "BC", "PD", "Type-C 1.5A", "Type-C 3A", "Type-C 5A", "Reserved"}
	partnerTypeNames = []string{"Reserved", "DFP Attached", "UFP Attached", "Powered Cable, No UFP", "Powered Cable, UFP Attached",
		"Debug Accessory", "Audio Adapter Accessory", "Reserved"}
)

// UCSI GET_CABLE_PROPERTY data, two words.
var (
	cblSpeed          = bitfield.Field{Name: "bmSpeedSupported", Word: 0, Offset: 0, Width: 16, Decodable: true}
	cblCurrent        = bitfield.Field{Name: "bCurrentCapability", Word: 0, Offset: 16, Width: 8, Decodable: true}
	cblVBUS           = bitfield.Field{Name: "VBUSInCable", Word: 0, Offset: 24, Width: 1, Decodable: true, Desc: noYes}
	cblType           = bitfield.Field{Name: "CableType", Word: 0, Offset: 25, Width: 1, Decodable: true, Desc: []string{"Passive", "Active"}}
	cblDirectionality = bitfield.Field{Name: "Directionality", Word: 0, Offset: 26, Width: 1, Decodable: true, Desc: noYes}
	cblPlugEnd        = bitfield.Field{Name: "PlugEndType", Word: 0, Offset: 27, Width: 2, Decodable: true, Desc: plugEndNames}
	cblModeSupport    = bitfield.Field{Name: "ModeSupport", Word: 0, Offset: 29, Width: 1, Decodable: true, Desc: noYes}
	cblLatency        = bitfield.Field{Name: "Latency", Word: 1, Offset: 0, Width: 4, Decodable: true}

	cablePropertyLayout = bitfield.Layout{
		cblSpeed,
		cblCurrent,
		cblVBUS,
		cblType,
		cblDirectionality,
		cblPlugEnd,
		cblModeSupport,
		{Name: "Reserved", Word: 0, Offset: 30, Width: 2},
		cblLatency,
		{Name: "Reserved", Word: 1, Offset: 4, Width: 4},
	}

	plugEndNames = []string{"USB Type-A", "USB Type-B", "USB Type-C", "Other"}
)

// Capability describes the platform connector manager.
type Capability struct {
	Attributes       uint32
	NumConnectors    uint8
	OptionalFeatures uint32
	NumAltModes      uint8
	BCVersion        uint16
	PDVersion        uint16
	TypeCVersion     uint16
}

// DecodeCapability decodes GET_CAPABILITY data.
func DecodeCapability(words ...uint32) Capability {
	return Capability{
		Attributes:       capAttributes.Get(words...),
		NumConnectors:    uint8(capNumConnectors.Get(words...)),
		OptionalFeatures: capOptionalFeatures.Get(words...),
		NumAltModes:      uint8(capNumAltModes.Get(words...)),
		BCVersion:        uint16(capBCVersion.Get(words...)),
		PDVersion:        uint16(capPDVersion.Get(words...)),
		TypeCVersion:     uint16(capTypeCVersion.Get(words...)),
	}
}

// Words encodes the capability back into its wire layout.
func (c Capability) Words() []uint32 {
	words, _ := capabilityLayout.Encode(c.Attributes, uint32(c.NumConnectors&0x7f), 0, c.OptionalFeatures&0xffffff,
		uint32(c.NumAltModes), 0, uint32(c.BCVersion), uint32(c.PDVersion), uint32(c.TypeCVersion))
	return words
}

// OperationMode is the connector operation mode bitmap.
type OperationMode uint8

const (
	OpModeRpOnly OperationMode = 1 << iota
	OpModeRdOnly
	OpModeDRP
	OpModeAnalogAudio
	OpModeDebugAccessory
	OpModeUSB2
	OpModeUSB3
	OpModeAlternateMode
)

var opModeNames = []string{"Rp Only", "Rd Only", "DRP", "Analog Audio", "Debug Accessory", "USB2", "USB3", "Alternate Mode"}

func (m OperationMode) String() string {
	var names []string
	for i, n := range opModeNames {
		if m&(1<<i) != 0 {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, ", ")
}

// PowerRole classifies what a connector can do with VBUS.
type PowerRole uint8

const (
	SourceOnly PowerRole = iota
	SinkOnly
	DualRole
)

func (r PowerRole) String() string {
	switch r {
	case SinkOnly:
		return "Sink"
	case DualRole:
		return "DRP"
	}
	return "Source"
}

// ConnectorCapability describes one connector. It is not cached since a
// partner or cable may change between queries.
type ConnectorCapability struct {
	OperationMode   OperationMode
	Provider        bool
	Consumer        bool
	SwapToDFP       bool
	SwapToUFP       bool
	SwapToSource    bool
	SwapToSink      bool
	PartnerRevision Revision
	CableRevision   Revision
}

var partnerRevisions = []Revision{RevisionUnknown, Rev20, Rev30, Rev31}

// DecodeConnectorCapability decodes GET_CONNECTOR_CAPABILITY data.
func DecodeConnectorCapability(words ...uint32) ConnectorCapability {
	return ConnectorCapability{
		OperationMode:   OperationMode(connOpMode.Get(words...)),
		Provider:        connProvider.Get(words...) == 1,
		Consumer:        connConsumer.Get(words...) == 1,
		SwapToDFP:       connSwapToDFP.Get(words...) == 1,
		SwapToUFP:       connSwapToUFP.Get(words...) == 1,
		SwapToSource:    connSwapToSource.Get(words...) == 1,
		SwapToSink:      connSwapToSink.Get(words...) == 1,
		PartnerRevision: partnerRevisions[connPartnerRevision.Get(words...)],
	}
}

// Role classifies the connector: DRP wins over Rd only, anything else sources.
func (c ConnectorCapability) Role() PowerRole {
	switch {
	case c.OperationMode&OpModeDRP != 0:
		return DualRole
	case c.OperationMode&OpModeRdOnly != 0:
		return SinkOnly
	}
	return SourceOnly
}

// Words encodes the capability back into its wire layout.
func (c ConnectorCapability) Words() []uint32 {
	rev := uint32(0)
	for i, r := range partnerRevisions {
		if r == c.PartnerRevision.Layout() && c.PartnerRevision != RevisionUnknown {
			rev = uint32(i)
		}
	}
	words, _ := connectorCapabilityLayout.Encode(uint32(c.OperationMode), b2u(c.Provider), b2u(c.Consumer),
		b2u(c.SwapToDFP), b2u(c.SwapToUFP), b2u(c.SwapToSource), b2u(c.SwapToSink), 0, rev, 0)
	return words
}

// ConnectorStatus is the connector state. Partner fields only mean something
// while Connected is set.
type ConnectorStatus struct {
	Change             uint16
	PowerOperationMode uint8
	Connected          bool
	// PowerProvider is set while the connector sources VBUS.
	PowerProvider         bool
	PartnerFlags          uint8
	PartnerType           uint8
	RDO                   uint32
	BatteryChargingStatus uint8
	LimitedReason         uint8
	PDRevision            Revision
}

// DecodeConnectorStatus decodes GET_CONNECTOR_STATUS data.
func DecodeConnectorStatus(words ...uint32) ConnectorStatus {
	return ConnectorStatus{
		Change:                uint16(stsChange.Get(words...)),
		PowerOperationMode:    uint8(stsPowerOpMode.Get(words...)),
		Connected:             stsConnected.Get(words...) == 1,
		PowerProvider:         stsPowerDirection.Get(words...) == 1,
		PartnerFlags:          uint8(stsPartnerFlags.Get(words...)),
		PartnerType:           uint8(stsPartnerType.Get(words...)),
		RDO:                   stsRDO.Get(words...),
		BatteryChargingStatus: uint8(stsBatteryStatus.Get(words...)),
		LimitedReason:         uint8(stsLimitedReason.Get(words...)),
		PDRevision:            RevisionFromBCD(uint16(stsPDVersion.Get(words...))),
	}
}

// Words encodes the status back into its wire layout.
func (s ConnectorStatus) Words() []uint32 {
	words, _ := connectorStatusLayout.Encode(uint32(s.Change), uint32(s.PowerOperationMode&0x7), b2u(s.Connected),
		b2u(s.PowerProvider), uint32(s.PartnerFlags), uint32(s.PartnerType&0x7), s.RDO,
		uint32(s.BatteryChargingStatus&0x3), uint32(s.LimitedReason&0xf), uint32(s.PDRevision), 0)
	return words
}

// NewRDO packs operating and maximum power, in 250mW units, into the power
// fields of a request data object.
func NewRDO(operating, max uint32) uint32 {
	return (operating&0x3ff)<<10 | max&0x3ff
}

// OperatingPowerMilliwatts returns the negotiated operating power.
func (s ConnectorStatus) OperatingPowerMilliwatts() uint32 {
	return bitfield.Extract(s.RDO, 10, 10) * 250
}

// MaxPowerMilliwatts returns the negotiated maximum power.
func (s ConnectorStatus) MaxPowerMilliwatts() uint32 {
	return bitfield.Extract(s.RDO, 0, 10) * 250
}

// CableType is the construction of the attached cable.
type CableType uint8

const (
	CablePassive CableType = iota
	CableActive
	// CableUnknown is only reported when the kernel names no cable type.
	CableUnknown
)

func (t CableType) String() string {
	switch t {
	case CablePassive:
		return "Passive"
	case CableActive:
		return "Active"
	}
	return "Unknown"
}

// PlugEndType is the far end of the attached cable.
type PlugEndType uint8

const (
	PlugTypeA PlugEndType = iota
	PlugTypeB
	PlugTypeC
	PlugOther
)

func (p PlugEndType) String() string {
	if int(p) < len(plugEndNames) {
		return plugEndNames[p]
	}
	return bitfield.Unrecognized
}

// CableProperty describes the attached cable.
type CableProperty struct {
	SpeedSupported uint16
	// CurrentCapability is in 50mA units.
	CurrentCapability uint8
	VBUSInCable       bool
	Type              CableType
	Directionality    bool
	PlugEnd           PlugEndType
	ModeSupport       bool
	Latency           uint8
}

// DecodeCableProperty decodes GET_CABLE_PROPERTY data.
func DecodeCableProperty(words ...uint32) CableProperty {
	return CableProperty{
		SpeedSupported:    uint16(cblSpeed.Get(words...)),
		CurrentCapability: uint8(cblCurrent.Get(words...)),
		VBUSInCable:       cblVBUS.Get(words...) == 1,
		Type:              CableType(cblType.Get(words...)),
		Directionality:    cblDirectionality.Get(words...) == 1,
		PlugEnd:           PlugEndType(cblPlugEnd.Get(words...)),
		ModeSupport:       cblModeSupport.Get(words...) == 1,
		Latency:           uint8(cblLatency.Get(words...)),
	}
}

// Words encodes the cable property back into its wire layout. An unknown
// cable type has no wire form and encodes as passive.
func (c CableProperty) Words() []uint32 {
	t := uint32(0)
	if c.Type == CableActive {
		t = 1
	}
	words, _ := cablePropertyLayout.Encode(uint32(c.SpeedSupported), uint32(c.CurrentCapability), b2u(c.VBUSInCable), t,
		b2u(c.Directionality), uint32(c.PlugEnd&0x3), b2u(c.ModeSupport), 0, uint32(c.Latency&0xf), 0)
	return words
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
