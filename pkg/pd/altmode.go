package pd

import (
	"fmt"
)

// Well known standard and vendor IDs.
const (
	SVIDDisplayPort  uint16 = 0xff01
	SVIDThunderbolt3 uint16 = 0x8087
)

// MaxAltModes bounds alternate mode list reads by the 8-bit offset space.
const MaxAltModes = 256

// Recipient selects whose alternate modes or identity are queried.
type Recipient uint8

const (
	RecipientConnector Recipient = iota
	RecipientSOP
	RecipientSOPPrime
	RecipientSOPDoublePrime
)

func (r Recipient) String() string {
	switch r {
	case RecipientConnector:
		return "Connector"
	case RecipientSOP:
		return "SOP"
	case RecipientSOPPrime:
		return "SOP'"
	case RecipientSOPDoublePrime:
		return "SOP''"
	}
	return fmt.Sprintf("Recipient(%d)", r)
}

// Role maps a recipient onto the layout role used to decode its objects.
func (r Recipient) Role() Role {
	switch r {
	case RecipientSOPPrime, RecipientSOPDoublePrime:
		return RoleCable
	}
	return RolePartner
}

// AltMode is one registered alternate mode.
type AltMode struct {
	SVID uint16
	VDO  uint32
}

// EndsAltModeList reports whether cur terminates a list read so far: a zero
// SVID or an exact repeat of the previous entry.
func EndsAltModeList(modes []AltMode, cur AltMode) bool {
	if cur.SVID == 0 {
		return true
	}
	return len(modes) > 0 && modes[len(modes)-1] == cur
}

// DecodeAltModeVDO decodes a mode VDO for the SVIDs with known layouts.
func DecodeAltModeVDO(mode AltMode, r Recipient) (DecodedObject, error) {
	switch mode.SVID {
	case SVIDDisplayPort:
		return DecodeObject(RevisionUnknown, CategoryDisplayPortMode, r.Role(), mode.VDO)
	case SVIDThunderbolt3:
		return DecodeObject(RevisionUnknown, CategoryThunderboltMode, r.Role(), mode.VDO)
	}
	return DecodedObject{Raw: mode.VDO, Role: r.Role()}, fmt.Errorf("%w: svid 0x%04x", ErrNoLayout, mode.SVID)
}
