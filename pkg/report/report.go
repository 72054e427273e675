// Package report renders session data as the text reports printed by the CLI.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/harvester/typec/pkg/bitfield"
	"github.com/harvester/typec/pkg/pd"
	"github.com/harvester/typec/pkg/typec"
	"github.com/harvester/typec/pkg/ucsi"
	"github.com/harvester/typec/pkg/util/gousb"
	"github.com/harvester/typec/pkg/util/gousb/usbid"
)

// Session is the part of typec.Session the reports query.
type Session interface {
	Info() (typec.Info, error)
	GetCapability(ctx context.Context) (pd.Capability, error)
	GetConnectorCapability(ctx context.Context, index uint8) (pd.ConnectorCapability, error)
	GetAlternateModes(ctx context.Context, r pd.Recipient, index uint8) ([]pd.AltMode, error)
	GetCableProperty(ctx context.Context, index uint8) (pd.CableProperty, error)
	GetConnectorStatus(ctx context.Context, index uint8) (pd.ConnectorStatus, error)
	GetDiscoveredIdentity(ctx context.Context, r pd.Recipient, index uint8) (pd.DiscoveredIdentity, error)
	GetPDOs(ctx context.Context, index uint8, partner bool, offset uint8, source bool, pdoType uint8) ([]pd.PDO, error)
}

// Printer writes reports for one session.
type Printer struct {
	s Session
	w io.Writer
	// VendorName resolves USB-IF vendor IDs. Defaults to the usb.ids database.
	VendorName func(id uint16) string
}

// NewPrinter returns a printer writing to w.
func NewPrinter(s Session, w io.Writer) *Printer {
	return &Printer{
		s: s,
		w: w,
		VendorName: func(id uint16) string {
			return usbid.VendorName(gousb.ID(id))
		},
	}
}

func (p *Printer) printf(indent int, format string, args ...interface{}) {
	fmt.Fprintf(p.w, strings.Repeat("\t", indent)+format+"\n", args...)
}

// List prints the session info, the platform capability and every connector.
// Per connector failures are printed and do not stop the report.
func (p *Printer) List(ctx context.Context) error {
	info, err := p.s.Info()
	if err != nil {
		return err
	}
	p.printSession(info)

	c, err := p.s.GetCapability(ctx)
	if err != nil {
		return fmt.Errorf("error querying platform capability: %w", err)
	}
	p.printCapability(c)

	for i := uint8(0); i < c.NumConnectors; i++ {
		p.printf(0, "")
		p.printf(0, "Connector %d Capability/Status", i)
		if err := p.connector(ctx, i, pd.RevisionFromBCD(c.PDVersion)); err != nil {
			logrus.Debugf("connector %d: %v", i, err)
			p.printf(1, "Error: %v", err)
		}
	}
	return nil
}

func (p *Printer) printSession(info typec.Info) {
	p.printf(0, "Session Info")
	p.printf(1, "Using typec %s with the %s backend", info.Version, info.Backend)
	p.printf(1, "On Kernel %s", info.Kernel)
	p.printf(1, "On %s", info.OS)
}

func (p *Printer) printCapability(c pd.Capability) {
	p.printf(0, "")
	p.printf(0, "USB-C Platform Policy Manager Capability")
	p.printf(1, "Number of Connectors:\t\t%d", c.NumConnectors)
	p.printf(1, "Number of Alternate Modes:\t%d", c.NumAltModes)
	p.printf(1, "USB Power Delivery Revision:\t%s", pd.RevisionFromBCD(c.PDVersion))
	p.printf(1, "USB Type-C Revision:\t\t%s", pd.RevisionFromBCD(c.TypeCVersion))
}

// connector prints one connector. Local PDOs are decoded with the platform
// revision, partner objects with the revision negotiated with the partner.
func (p *Printer) connector(ctx context.Context, index uint8, platform pd.Revision) error {
	cc, err := p.s.GetConnectorCapability(ctx, index)
	if err != nil {
		return err
	}
	p.printf(1, "Operation Mode:\t\t%s", cc.OperationMode)
	p.printf(1, "Power Role:\t\t%s", cc.Role())

	p.printf(1, "Alternate Modes Supported:")
	p.altModes(ctx, pd.RecipientConnector, index)

	p.sourceSink(ctx, index, false, platform)

	st, err := p.s.GetConnectorStatus(ctx, index)
	if err != nil {
		return err
	}
	if !st.Connected {
		p.printf(1, "No partner connected")
		return nil
	}

	p.cable(ctx, index, cc.CableRevision)

	p.printf(1, "Partner:")
	p.printf(2, "PD Revision:\t%s", cc.PartnerRevision)
	p.identity(ctx, pd.RecipientSOP, index, cc.PartnerRevision)
	p.printf(2, "Alternate Modes:")
	p.altModes(ctx, pd.RecipientSOP, index)
	p.sourceSink(ctx, index, true, cc.PartnerRevision)
	return nil
}

func (p *Printer) cable(ctx context.Context, index uint8, rev pd.Revision) {
	c, err := p.s.GetCableProperty(ctx, index)
	if errors.Is(err, typec.ErrNotPresent) {
		p.printf(1, "No cable detected")
		return
	}
	if err != nil {
		p.printf(1, "Cable: %v", err)
		return
	}

	p.printf(1, "Cable:")
	p.printf(2, "PD Revision:\t%s", rev)
	p.printf(2, "Type:\t\t%s", c.Type)
	p.printf(2, "Plug:\t\t%s", c.PlugEnd)
	p.printf(2, "Mode Support:\t%t", c.ModeSupport)
	p.identity(ctx, pd.RecipientSOPPrime, index, rev)
	if c.ModeSupport || c.Type == pd.CableActive {
		p.printf(2, "Alternate Modes:")
		p.altModes(ctx, pd.RecipientSOPPrime, index)
	}
}

func (p *Printer) altModes(ctx context.Context, r pd.Recipient, index uint8) {
	indent := 2
	if r != pd.RecipientConnector {
		indent = 3
	}

	modes, err := p.s.GetAlternateModes(ctx, r, index)
	if err != nil {
		p.printf(indent, "Error: %v", err)
		return
	}
	if len(modes) == 0 {
		p.printf(indent, "None")
		return
	}

	for i, m := range modes {
		name := p.VendorName(m.SVID)
		if name == "" {
			name = "Unknown"
		}
		p.printf(indent, "Mode %d:", i)
		p.printf(indent+1, "SVID:\t0x%04x (%s)", m.SVID, name)
		p.printf(indent+1, "VDO:\t0x%08x", m.VDO)
		if obj, err := pd.DecodeAltModeVDO(m, r); err == nil {
			p.values(indent+2, obj.Values)
		}
	}
}

func (p *Printer) identity(ctx context.Context, r pd.Recipient, index uint8, rev pd.Revision) {
	indent := 2
	id, err := p.s.GetDiscoveredIdentity(ctx, r, index)
	if err != nil {
		if !errors.Is(err, typec.ErrUnsupported) {
			p.printf(indent, "Identity: %v", err)
		}
		return
	}

	d, err := pd.DecodeIdentity(rev, r.Role(), id)
	p.printf(indent, "Identity:")
	vendor := p.VendorName(id.VendorID())
	if vendor == "" {
		vendor = "Unknown"
	}
	p.printf(indent+1, "Vendor:\t\t0x%04x (%s)", id.VendorID(), vendor)
	p.printf(indent+1, "Product:\t0x%04x", id.ProductID())
	p.printf(indent+1, "Product Type:\t%s", d.ProductType)
	if err != nil {
		p.printf(indent+1, "Error: %v", err)
		return
	}

	p.object(indent+1, d.IDHeader)
	p.object(indent+1, d.CertStat)
	p.object(indent+1, d.Product)
	for _, obj := range d.ProductTypeVDOs {
		p.object(indent+1, obj)
	}
}

func (p *Printer) sourceSink(ctx context.Context, index uint8, partner bool, rev pd.Revision) {
	indent := 1
	pdoType := ucsi.PDOTypeMaximumSupported
	if partner {
		indent = 2
		pdoType = ucsi.PDOTypeAdvertised
	}

	for _, source := range []bool{true, false} {
		role, title := pd.RoleSink, "Sink Capabilities:"
		if source {
			role, title = pd.RoleSource, "Source Capabilities:"
		}

		pdos, err := p.s.GetPDOs(ctx, index, partner, 0, source, pdoType)
		if err != nil || len(pdos) == 0 {
			if err != nil && !errors.Is(err, typec.ErrNotPresent) {
				logrus.Debugf("connector %d pdos: %v", index, err)
			}
			continue
		}

		p.printf(indent, title)
		for i, pdo := range pdos {
			p.printf(indent+1, "PDO %d: 0x%08x %s", i+1, uint32(pdo), FormatSupply(pdo.Supply(role)))
			if obj, err := pd.DecodePDO(rev, role, pdo); err == nil {
				p.values(indent+2, obj.Values)
			}
		}
	}
}

func (p *Printer) object(indent int, obj pd.DecodedObject) {
	p.printf(indent, "%s: 0x%08x", obj.Category, obj.Raw)
	p.values(indent+1, obj.Values)
}

func (p *Printer) values(indent int, values []bitfield.Value) {
	for _, v := range values {
		if !v.Field.Decodable {
			continue
		}
		p.printf(indent, "%s", v)
	}
}

// FormatSupply renders a supply in volts, amps and watts.
func FormatSupply(s pd.Supply) string {
	switch s.Type {
	case pd.PDOFixed:
		return fmt.Sprintf("%s %s %s", s.Type, volts(s.Millivolts), amps(s.Milliamps))
	case pd.PDOBattery:
		return fmt.Sprintf("%s %s-%s %s", s.Type, volts(s.MinMillivolts), volts(s.Millivolts), watts(s.Milliwatts))
	default:
		return fmt.Sprintf("%s %s-%s %s", s.Type, volts(s.MinMillivolts), volts(s.Millivolts), amps(s.Milliamps))
	}
}

func volts(mv uint32) string {
	return fmt.Sprintf("%.2fV", float64(mv)/1000)
}

func amps(ma uint32) string {
	return fmt.Sprintf("%.2fA", float64(ma)/1000)
}

func watts(mw uint32) string {
	return fmt.Sprintf("%.2fW", float64(mw)/1000)
}
