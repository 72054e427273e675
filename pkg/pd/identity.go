package pd

import (
	"encoding/binary"
	"fmt"

	"github.com/harvester/typec/pkg/bitfield"
)

// IdentitySize is the wire size of a Discover Identity response body.
const IdentitySize = 24

// DiscoveredIdentity is the body of a Discover Identity ACK.
type DiscoveredIdentity struct {
	CertStat       uint32
	IDHeader       uint32
	Product        uint32
	ProductTypeVDO [3]uint32
}

// Bytes returns the little-endian wire form: Cert Stat, ID Header, Product,
// then the three product type VDOs.
func (id DiscoveredIdentity) Bytes() []byte {
	b := make([]byte, IdentitySize)
	binary.LittleEndian.PutUint32(b[0:], id.CertStat)
	binary.LittleEndian.PutUint32(b[4:], id.IDHeader)
	binary.LittleEndian.PutUint32(b[8:], id.Product)
	for i, vdo := range id.ProductTypeVDO {
		binary.LittleEndian.PutUint32(b[12+4*i:], vdo)
	}
	return b
}

// ParseDiscoveredIdentity reads the wire form. Missing trailing words read
// as zero, a response may carry fewer than three product type VDOs.
func ParseDiscoveredIdentity(b []byte) (DiscoveredIdentity, error) {
	if len(b) < 12 {
		return DiscoveredIdentity{}, fmt.Errorf("identity response too short: %d bytes", len(b))
	}
	padded := make([]byte, IdentitySize)
	copy(padded, b)

	id := DiscoveredIdentity{
		CertStat: binary.LittleEndian.Uint32(padded[0:]),
		IDHeader: binary.LittleEndian.Uint32(padded[4:]),
		Product:  binary.LittleEndian.Uint32(padded[8:]),
	}
	for i := range id.ProductTypeVDO {
		id.ProductTypeVDO[i] = binary.LittleEndian.Uint32(padded[12+4*i:])
	}
	return id, nil
}

// VendorID returns the USB vendor ID out of the ID header.
func (id DiscoveredIdentity) VendorID() uint16 {
	return uint16(bitfield.Extract(id.IDHeader, 0, 16))
}

// ProductID returns the USB product ID out of the Product VDO.
func (id DiscoveredIdentity) ProductID() uint16 {
	return uint16(bitfield.Extract(id.Product, 16, 16))
}

// ProductType is the derived kind of a cable or partner.
type ProductType uint8

const (
	ProductOther ProductType = iota
	ProductPassiveCable
	ProductActiveCable
	ProductAMA
	ProductVPD
	ProductUFP
	ProductDFP
	ProductDRD
)

func (p ProductType) String() string {
	switch p {
	case ProductPassiveCable:
		return "Passive Cable"
	case ProductActiveCable:
		return "Active Cable"
	case ProductAMA:
		return "Alternate Mode Adapter"
	case ProductVPD:
		return "Vconn Powered Device"
	case ProductUFP:
		return "UFP"
	case ProductDFP:
		return "DFP"
	case ProductDRD:
		return "Dual-Role-Data"
	}
	return "Other"
}

// ID header product type masks and values.
const (
	ufpProductTypeMask = 0x38000000
	dfpProductTypeMask = 0x03800000

	pd20PassiveCableType = 0x18000000
	pd20ActiveCableType  = 0x20000000
	pd20AMAType          = 0x28000000

	pd3PassiveCableType = 0x18000000
	pd3ActiveCableType  = 0x20000000
	pd30AMAType         = 0x28000000
	pd3VPDType          = 0x30000000
	pd3HubType          = 0x08000000
	pd3PeripheralType   = 0x10000000
	pd3DFPHubType       = 0x00800000
	pd3DFPHostType      = 0x01000000
	pd3PowerBrickType   = 0x01800000
)

// ClassifyCable derives the product type of a cable plug from its ID header.
func ClassifyCable(rev Revision, idHeader uint32) ProductType {
	ufp := idHeader & ufpProductTypeMask
	if rev.Layout() == Rev20 {
		switch ufp {
		case pd20PassiveCableType:
			return ProductPassiveCable
		case pd20ActiveCableType:
			return ProductActiveCable
		}
		return ProductOther
	}

	switch ufp {
	case pd3PassiveCableType:
		return ProductPassiveCable
	case pd3ActiveCableType:
		return ProductActiveCable
	case pd3VPDType:
		return ProductVPD
	}
	return ProductOther
}

// ClassifyPartner derives the product type of a port partner from its ID
// header. On 3.0 and later a partner advertising both a UFP and a DFP
// product type is Dual-Role-Data.
func ClassifyPartner(rev Revision, idHeader uint32) ProductType {
	ufp := idHeader & ufpProductTypeMask
	layout := rev.Layout()
	if layout == Rev20 {
		if ufp == pd20AMAType {
			return ProductAMA
		}
		return ProductOther
	}

	dfp := idHeader & dfpProductTypeMask
	ufpSupported := ufp == pd3HubType || ufp == pd3PeripheralType
	dfpSupported := dfp == pd3DFPHubType || dfp == pd3DFPHostType || dfp == pd3PowerBrickType

	switch {
	case ufpSupported && dfpSupported:
		return ProductDRD
	case ufpSupported:
		return ProductUFP
	case dfpSupported:
		return ProductDFP
	case layout == Rev30 && ufp == pd30AMAType:
		return ProductAMA
	case ufp == pd3VPDType:
		return ProductVPD
	}
	return ProductOther
}

// productVDOTables lists, per revision and product type, the category of
// each product type VDO.
var productVDOTables = map[Revision]map[ProductType][]Category{
	Rev20: {
		ProductPassiveCable: {CategoryPassiveCable},
		ProductActiveCable:  {CategoryActiveCableVDO1},
		ProductAMA:          {CategoryAMA},
	},
	Rev30: {
		ProductPassiveCable: {CategoryPassiveCable},
		ProductActiveCable:  {CategoryActiveCableVDO1, CategoryActiveCableVDO2},
		ProductAMA:          {CategoryAMA},
		ProductVPD:          {CategoryVPD},
		ProductUFP:          {CategoryUFPVDO1, CategoryUFPVDO2},
		ProductDFP:          {CategoryDFP},
		ProductDRD:          {CategoryUFPVDO1, CategoryUFPVDO2, CategoryDFP},
	},
	Rev31: {
		ProductPassiveCable: {CategoryPassiveCable},
		ProductActiveCable:  {CategoryActiveCableVDO1, CategoryActiveCableVDO2},
		ProductVPD:          {CategoryVPD},
		ProductUFP:          {CategoryUFPVDO1},
		ProductDFP:          {CategoryDFP},
		ProductDRD:          {CategoryUFPVDO1, padVDO, CategoryDFP},
	},
}

// padVDO marks a product type VDO slot that is defined as padding.
const padVDO Category = 0xff

// DecodedIdentity is a Discover Identity response decoded for one recipient.
type DecodedIdentity struct {
	Identity    DiscoveredIdentity
	Role        Role
	Revision    Revision
	ProductType ProductType
	IDHeader    DecodedObject
	CertStat    DecodedObject
	Product     DecodedObject
	// ProductTypeVDOs holds one entry per decoded VDO. Undecodable VDOs
	// carry only their raw value.
	ProductTypeVDOs []DecodedObject
}

// DecodeIdentity decodes a partner (RolePartner) or cable (RoleCable)
// identity with the revision negotiated with that recipient.
func DecodeIdentity(rev Revision, role Role, id DiscoveredIdentity) (DecodedIdentity, error) {
	if role != RolePartner && role != RoleCable {
		return DecodedIdentity{}, fmt.Errorf("identity role must be partner or cable, got %s", role)
	}

	d := DecodedIdentity{Identity: id, Role: role, Revision: rev.Layout()}
	if role == RoleCable {
		d.ProductType = ClassifyCable(rev, id.IDHeader)
	} else {
		d.ProductType = ClassifyPartner(rev, id.IDHeader)
	}

	var err error
	if d.IDHeader, err = DecodeObject(rev, CategoryIDHeader, role, id.IDHeader); err != nil {
		return d, err
	}
	if d.CertStat, err = DecodeObject(rev, CategoryCertStat, RoleAny, id.CertStat); err != nil {
		return d, err
	}
	if d.Product, err = DecodeObject(rev, CategoryProduct, RoleAny, id.Product); err != nil {
		return d, err
	}

	categories := productVDOTables[rev.Layout()][d.ProductType]
	for i, vdo := range id.ProductTypeVDO {
		if i >= len(categories) || categories[i] == padVDO {
			continue
		}
		obj, err := decodeProductVDO(rev, categories[i], role, vdo)
		if err != nil {
			return d, err
		}
		d.ProductTypeVDOs = append(d.ProductTypeVDOs, obj)
	}
	return d, nil
}

func decodeProductVDO(rev Revision, category Category, role Role, vdo uint32) (DecodedObject, error) {
	obj, err := DecodeObject(rev, category, role, vdo)
	if err == nil {
		return obj, nil
	}
	// partner product VDOs seen on a cable recipient and the reverse
	return DecodeObject(rev, category, otherRecipient(role), vdo)
}

func otherRecipient(role Role) Role {
	if role == RoleCable {
		return RolePartner
	}
	return RoleCable
}
