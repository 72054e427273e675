package pd

import (
	"fmt"
	"strconv"
	"strings"
)

// Revision is a USB PD specification revision packed as major<<8 | minor<<4 | sub.
type Revision uint16

const (
	RevisionUnknown Revision = 0
	Rev20           Revision = 0x0200
	Rev30           Revision = 0x0300
	Rev31           Revision = 0x0310
)

// NewRevision packs a major.minor.sub triple.
func NewRevision(major, minor, sub uint8) Revision {
	return Revision(uint16(major)<<8 | uint16(minor&0xf)<<4 | uint16(sub&0xf))
}

// RevisionFromBCD converts a bcdPDVersion style value, major in the high byte
// and minor in the high nibble of the low byte.
func RevisionFromBCD(bcd uint16) Revision {
	return NewRevision(uint8(bcd>>8), uint8((bcd>>4)&0xf), uint8(bcd&0xf))
}

// ParseRevision parses "3", "3.1" or "3.1.2".
func ParseRevision(s string) (Revision, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) == 0 || len(parts) > 3 {
		return RevisionUnknown, fmt.Errorf("malformed revision %q", s)
	}

	var nums [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return RevisionUnknown, fmt.Errorf("malformed revision %q: %v", s, err)
		}
		if i > 0 && n > 0xf {
			return RevisionUnknown, fmt.Errorf("malformed revision %q: component %d out of range", s, n)
		}
		nums[i] = uint8(n)
	}

	return NewRevision(nums[0], nums[1], nums[2]), nil
}

func (r Revision) Major() uint8 {
	return uint8(r >> 8)
}

func (r Revision) Minor() uint8 {
	return uint8(r>>4) & 0xf
}

func (r Revision) Sub() uint8 {
	return uint8(r) & 0xf
}

func (r Revision) String() string {
	if r == RevisionUnknown {
		return "Unknown"
	}
	if r.Sub() != 0 {
		return fmt.Sprintf("%d.%d.%d", r.Major(), r.Minor(), r.Sub())
	}
	return fmt.Sprintf("%d.%d", r.Major(), r.Minor())
}

// Layout snaps the revision to the table family used to decode objects:
// anything below 3.0 decodes as 2.0, anything at or above 3.1 as 3.1.
func (r Revision) Layout() Revision {
	switch {
	case r < Rev30:
		return Rev20
	case r < Rev31:
		return Rev30
	default:
		return Rev31
	}
}
