package pd

import (
	"errors"
	"fmt"

	"github.com/harvester/typec/pkg/bitfield"
)

// ErrNoLayout is returned when no layout exists for a revision, category and role.
var ErrNoLayout = errors.New("no layout for object")

// Category identifies the kind of object a layout decodes.
type Category uint8

const (
	CategoryFixedSupply Category = iota
	CategoryBatterySupply
	CategoryVariableSupply
	CategoryAugmented
	CategoryIDHeader
	CategoryCertStat
	CategoryProduct
	CategoryPassiveCable
	CategoryActiveCableVDO1
	CategoryActiveCableVDO2
	CategoryAMA
	CategoryVPD
	CategoryUFPVDO1
	CategoryUFPVDO2
	CategoryDFP
	CategoryDisplayPortMode
	CategoryThunderboltMode
	CategoryCapability
	CategoryConnectorCapability
	CategoryConnectorStatus
	CategoryCableProperty
)

var categoryNames = map[Category]string{
	CategoryFixedSupply:         "Fixed Supply PDO",
	CategoryBatterySupply:       "Battery Supply PDO",
	CategoryVariableSupply:      "Variable Supply PDO",
	CategoryAugmented:           "Programmable Power Supply APDO",
	CategoryIDHeader:            "ID Header VDO",
	CategoryCertStat:            "Cert Stat VDO",
	CategoryProduct:             "Product VDO",
	CategoryPassiveCable:        "Passive Cable VDO",
	CategoryActiveCableVDO1:     "Active Cable VDO1",
	CategoryActiveCableVDO2:     "Active Cable VDO2",
	CategoryAMA:                 "Alternate Mode Adapter VDO",
	CategoryVPD:                 "Vconn Powered Device VDO",
	CategoryUFPVDO1:             "UFP VDO1",
	CategoryUFPVDO2:             "UFP VDO2",
	CategoryDFP:                 "DFP VDO",
	CategoryDisplayPortMode:     "DisplayPort Mode VDO",
	CategoryThunderboltMode:     "Thunderbolt 3 Mode VDO",
	CategoryCapability:          "Capability",
	CategoryConnectorCapability: "Connector Capability",
	CategoryConnectorStatus:     "Connector Status",
	CategoryCableProperty:       "Cable Property",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Category(%d)", c)
}

// Role narrows a category: source or sink for power objects, partner or
// cable plug for identity and mode objects.
type Role uint8

const (
	RoleAny Role = iota
	RoleSource
	RoleSink
	RolePartner
	RoleCable
)

func (r Role) String() string {
	switch r {
	case RoleSource:
		return "source"
	case RoleSink:
		return "sink"
	case RolePartner:
		return "partner"
	case RoleCable:
		return "cable"
	}
	return "any"
}

// Key selects a layout in the registry.
type Key struct {
	Revision Revision
	Category Category
	Role     Role
}

// revisionAny registers layouts that do not change across revisions.
const revisionAny Revision = 0xffff

var registry = map[Key]bitfield.Layout{
	{Rev20, CategoryIDHeader, RolePartner}:      pd20PartnerIDHeader,
	{Rev20, CategoryIDHeader, RoleCable}:        pd20CableIDHeader,
	{Rev20, CategoryCertStat, RoleAny}:          pd20CertStat,
	{Rev20, CategoryProduct, RoleAny}:           pd20Product,
	{Rev20, CategoryPassiveCable, RoleCable}:    pd20PassiveCable,
	{Rev20, CategoryActiveCableVDO1, RoleCable}: pd20ActiveCable,
	{Rev20, CategoryAMA, RolePartner}:           pd20AMA,
	{Rev20, CategoryFixedSupply, RoleSource}:    pd20FixedSource,
	{Rev20, CategoryVariableSupply, RoleSource}: pd20VariableSource,
	{Rev20, CategoryBatterySupply, RoleSource}:  pd20BatterySource,
	{Rev20, CategoryFixedSupply, RoleSink}:      pd20FixedSink,
	{Rev20, CategoryVariableSupply, RoleSink}:   pd20VariableSink,
	{Rev20, CategoryBatterySupply, RoleSink}:    pd20BatterySink,

	{Rev30, CategoryIDHeader, RolePartner}:      pd30PartnerIDHeader,
	{Rev30, CategoryIDHeader, RoleCable}:        pd30CableIDHeader,
	{Rev30, CategoryCertStat, RoleAny}:          pd30CertStat,
	{Rev30, CategoryProduct, RoleAny}:           pd30Product,
	{Rev30, CategoryPassiveCable, RoleCable}:    pd30PassiveCable,
	{Rev30, CategoryActiveCableVDO1, RoleCable}: pd30ActiveCableVDO1,
	{Rev30, CategoryActiveCableVDO2, RoleCable}: pd30ActiveCableVDO2,
	{Rev30, CategoryAMA, RolePartner}:           pd30AMA,
	{Rev30, CategoryVPD, RoleCable}:             pd30VPD,
	{Rev30, CategoryUFPVDO1, RolePartner}:       pd30UFPVDO1,
	{Rev30, CategoryUFPVDO2, RolePartner}:       pd30UFPVDO2,
	{Rev30, CategoryDFP, RolePartner}:           pd30DFP,
	{Rev30, CategoryFixedSupply, RoleSource}:    pd30FixedSource,
	{Rev30, CategoryVariableSupply, RoleSource}: pd30VariableSource,
	{Rev30, CategoryBatterySupply, RoleSource}:  pd30BatterySource,
	{Rev30, CategoryAugmented, RoleSource}:      pd30PPSSource,
	{Rev30, CategoryFixedSupply, RoleSink}:      pd30FixedSink,
	{Rev30, CategoryVariableSupply, RoleSink}:   pd30VariableSink,
	{Rev30, CategoryBatterySupply, RoleSink}:    pd30BatterySink,
	{Rev30, CategoryAugmented, RoleSink}:        pd30PPSSink,

	{Rev31, CategoryIDHeader, RolePartner}:      pd31PartnerIDHeader,
	{Rev31, CategoryIDHeader, RoleCable}:        pd31CableIDHeader,
	{Rev31, CategoryCertStat, RoleAny}:          pd31CertStat,
	{Rev31, CategoryProduct, RoleAny}:           pd31Product,
	{Rev31, CategoryPassiveCable, RoleCable}:    pd31PassiveCable,
	{Rev31, CategoryActiveCableVDO1, RoleCable}: pd31ActiveCableVDO1,
	{Rev31, CategoryActiveCableVDO2, RoleCable}: pd31ActiveCableVDO2,
	{Rev31, CategoryVPD, RoleCable}:             pd31VPD,
	{Rev31, CategoryUFPVDO1, RolePartner}:       pd31UFP,
	{Rev31, CategoryDFP, RolePartner}:           pd31DFP,
	{Rev31, CategoryFixedSupply, RoleSource}:    pd31FixedSource,
	{Rev31, CategoryVariableSupply, RoleSource}: pd31VariableSource,
	{Rev31, CategoryBatterySupply, RoleSource}:  pd31BatterySource,
	{Rev31, CategoryAugmented, RoleSource}:      pd31PPSSource,
	{Rev31, CategoryFixedSupply, RoleSink}:      pd31FixedSink,
	{Rev31, CategoryVariableSupply, RoleSink}:   pd31VariableSink,
	{Rev31, CategoryBatterySupply, RoleSink}:    pd31BatterySink,
	{Rev31, CategoryAugmented, RoleSink}:        pd31PPSSink,

	{revisionAny, CategoryDisplayPortMode, RolePartner}: dpAltModePartner,
	{revisionAny, CategoryDisplayPortMode, RoleCable}:   dpAltModeActiveCable,
	{revisionAny, CategoryThunderboltMode, RolePartner}: tbt3SOP,
	{revisionAny, CategoryThunderboltMode, RoleCable}:   tbt3SOPPrime,

	{revisionAny, CategoryCapability, RoleAny}:          capabilityLayout,
	{revisionAny, CategoryConnectorCapability, RoleAny}: connectorCapabilityLayout,
	{revisionAny, CategoryConnectorStatus, RoleAny}:     connectorStatusLayout,
	{revisionAny, CategoryCableProperty, RoleAny}:       cablePropertyLayout,
}

// Lookup returns the layout for an object. The revision is snapped to its
// table family first. Revision independent layouts match any revision.
func Lookup(rev Revision, category Category, role Role) (bitfield.Layout, error) {
	if l, ok := registry[Key{rev.Layout(), category, role}]; ok {
		return l, nil
	}
	if l, ok := registry[Key{revisionAny, category, role}]; ok {
		return l, nil
	}
	return nil, fmt.Errorf("%w: %s %s rev %s", ErrNoLayout, role, category, rev.Layout())
}
