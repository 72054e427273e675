package testhelper

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultTypecPath       = "class/typec"
	defaultPowerSupplyPath = "class/power_supply"
	defaultRAPLPath        = "class/powercap/intel-rapl:0"
	defaultUCSIPath        = "usb/ucsi"
	DefaultUCSIInstance    = "USBC000:00"
)

type FakeAltMode struct {
	SVID uint16
	VDO  uint32
}

// FakeSupply is one <Index>:<Kind> capability directory, Kind being for
// example fixed_supply or programmable_supply.
type FakeSupply struct {
	Index      int
	Kind       string
	Attributes map[string]string
}

type FakeIdentity struct {
	CertStat uint32
	IDHeader uint32
	Product  uint32
	VDOs     [3]uint32
}

type FakePartner struct {
	PDRevision string
	AltModes   []FakeAltMode
	Identity   *FakeIdentity
	SourceCaps []FakeSupply
	SinkCaps   []FakeSupply
}

type FakeCable struct {
	PDRevision string
	PlugType   string
	Type       string
	Identity   *FakeIdentity
	// PlugAltModes are the SOP' modes, registered under plug0.
	PlugAltModes []FakeAltMode
}

// FakePowerSupply values are in microamps and microvolts.
type FakePowerSupply struct {
	Online     bool
	CurrentNow uint64
	VoltageNow uint64
	CurrentMax uint64
	VoltageMax uint64
}

type FakePort struct {
	Index         int
	PowerRole     string
	PDRevision    string
	TypeCRevision string
	AltModes      []FakeAltMode
	SourceCaps    []FakeSupply
	SinkCaps      []FakeSupply
	Partner       *FakePartner
	Cable         *FakeCable
	PowerSupply   *FakePowerSupply
}

var (
	// DefaultFakePorts mimics a laptop with a DRP port charging from a
	// PD 3.0 dock over an e-marked cable, and an idle sink-only port.
	DefaultFakePorts = []FakePort{
		{
			Index:         0,
			PowerRole:     "source [sink]",
			PDRevision:    "3.0",
			TypeCRevision: "2.0",
			AltModes: []FakeAltMode{
				{SVID: 0xff01, VDO: 0x001c0046},
				{SVID: 0x8087, VDO: 0x00000001},
			},
			SinkCaps: []FakeSupply{
				{Index: 1, Kind: "fixed_supply", Attributes: map[string]string{
					"voltage": "5000mV", "operational_current": "3000mA", "dual_role_power": "1",
					"usb_communication_capable": "1", "dual_role_data": "1",
				}},
				{Index: 2, Kind: "fixed_supply", Attributes: map[string]string{"voltage": "20000mV", "operational_current": "3250mA"}},
			},
			Partner: &FakePartner{
				PDRevision: "3.0",
				AltModes:   []FakeAltMode{{SVID: 0xff01, VDO: 0x001c0045}},
				Identity: &FakeIdentity{
					IDHeader: 0x54000bda,
					Product:  0x58200100,
					VDOs:     [3]uint32{0x60000002, 0, 0},
				},
				SourceCaps: []FakeSupply{
					{Index: 1, Kind: "fixed_supply", Attributes: map[string]string{
						"voltage": "5000mV", "maximum_current": "3000mA", "usb_communication_capable": "1",
						"dual_role_data": "1", "unconstrained_power": "1",
					}},
					{Index: 2, Kind: "fixed_supply", Attributes: map[string]string{"voltage": "9000mV", "maximum_current": "3000mA"}},
					{Index: 3, Kind: "fixed_supply", Attributes: map[string]string{"voltage": "20000mV", "maximum_current": "4500mA"}},
					{Index: 4, Kind: "programmable_supply", Attributes: map[string]string{
						"minimum_voltage": "3300mV", "maximum_voltage": "21000mV", "maximum_current": "3000mA",
					}},
				},
			},
			Cable: &FakeCable{
				PDRevision: "3.0",
				PlugType:   "type-c",
				Type:       "passive",
				Identity: &FakeIdentity{
					IDHeader: 0x18000000 | 0x05ac,
					Product:  0x00010000,
					VDOs:     [3]uint32{0x11082052, 0, 0},
				},
			},
			PowerSupply: &FakePowerSupply{
				Online:     true,
				CurrentNow: 3000000,
				VoltageNow: 20000000,
				CurrentMax: 5000000,
				VoltageMax: 20000000,
			},
		},
		{
			Index:         1,
			PowerRole:     "[sink]",
			PDRevision:    "3.0",
			TypeCRevision: "2.0",
		},
	}
)

func writeAttributes(dir string, attrs map[string]string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating %s: %v", dir, err)
	}
	for name, value := range attrs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(value+"\n"), 0644); err != nil {
			return fmt.Errorf("error writing %s in %s: %v", name, dir, err)
		}
	}
	return nil
}

func writeAltModes(dir, prefix string, modes []FakeAltMode) error {
	for i, m := range modes {
		err := writeAttributes(filepath.Join(dir, fmt.Sprintf("%s.%d", prefix, i)), map[string]string{
			"svid": fmt.Sprintf("%04x", m.SVID),
			"vdo":  fmt.Sprintf("0x%08x", m.VDO),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeIdentity(dir string, id *FakeIdentity) error {
	if id == nil {
		return nil
	}
	return writeAttributes(filepath.Join(dir, "identity"), map[string]string{
		"cert_stat":         fmt.Sprintf("0x%08x", id.CertStat),
		"id_header":         fmt.Sprintf("0x%08x", id.IDHeader),
		"product":           fmt.Sprintf("0x%08x", id.Product),
		"product_type_vdo1": fmt.Sprintf("0x%08x", id.VDOs[0]),
		"product_type_vdo2": fmt.Sprintf("0x%08x", id.VDOs[1]),
		"product_type_vdo3": fmt.Sprintf("0x%08x", id.VDOs[2]),
	})
}

func writeCapabilities(dir string, source, sink []FakeSupply) error {
	for name, supplies := range map[string][]FakeSupply{"source-capabilities": source, "sink-capabilities": sink} {
		if len(supplies) == 0 {
			continue
		}
		for _, s := range supplies {
			path := filepath.Join(dir, "usb_power_delivery", name, fmt.Sprintf("%d:%s", s.Index, s.Kind))
			if err := writeAttributes(path, s.Attributes); err != nil {
				return err
			}
		}
	}
	return nil
}

func revisions(pdRevision, typecRevision string) map[string]string {
	attrs := map[string]string{}
	if pdRevision != "" {
		attrs["usb_power_delivery_revision"] = pdRevision
	}
	if typecRevision != "" {
		attrs["usb_typec_revision"] = typecRevision
	}
	return attrs
}

// SetupFakeTypec writes a typec and power_supply class tree for ports
// under sysfsRoot.
func SetupFakeTypec(sysfsRoot string, ports []FakePort) error {
	typecRoot := filepath.Join(sysfsRoot, defaultTypecPath)
	if err := os.MkdirAll(typecRoot, 0755); err != nil {
		return fmt.Errorf("error creating typec class: %v", err)
	}

	for _, p := range ports {
		name := fmt.Sprintf("port%d", p.Index)
		portDir := filepath.Join(typecRoot, name)
		attrs := revisions(p.PDRevision, p.TypeCRevision)
		attrs["power_role"] = p.PowerRole
		if err := writeAttributes(portDir, attrs); err != nil {
			return err
		}
		if err := writeAltModes(portDir, name, p.AltModes); err != nil {
			return err
		}
		if err := writeCapabilities(portDir, p.SourceCaps, p.SinkCaps); err != nil {
			return err
		}

		if p.Partner != nil {
			partnerDir := filepath.Join(typecRoot, name+"-partner")
			if err := writeAttributes(partnerDir, revisions(p.Partner.PDRevision, "")); err != nil {
				return err
			}
			if err := writeAltModes(partnerDir, name+"-partner", p.Partner.AltModes); err != nil {
				return err
			}
			if err := writeIdentity(partnerDir, p.Partner.Identity); err != nil {
				return err
			}
			if err := writeCapabilities(partnerDir, p.Partner.SourceCaps, p.Partner.SinkCaps); err != nil {
				return err
			}
		}

		if p.Cable != nil {
			cableDir := filepath.Join(typecRoot, name+"-cable")
			attrs := revisions(p.Cable.PDRevision, "")
			attrs["plug_type"] = p.Cable.PlugType
			attrs["type"] = p.Cable.Type
			if err := writeAttributes(cableDir, attrs); err != nil {
				return err
			}
			if err := writeIdentity(cableDir, p.Cable.Identity); err != nil {
				return err
			}
			plugDir := filepath.Join(cableDir, name+"-plug0")
			plugAttrs := map[string]string{"number_of_alternate_modes": fmt.Sprintf("%d", len(p.Cable.PlugAltModes))}
			if err := writeAttributes(plugDir, plugAttrs); err != nil {
				return err
			}
			if err := writeAltModes(plugDir, name+"-plug0", p.Cable.PlugAltModes); err != nil {
				return err
			}
		}

		if p.PowerSupply != nil {
			psy := p.PowerSupply
			online := "0"
			if psy.Online {
				online = "1"
			}
			dir := filepath.Join(sysfsRoot, defaultPowerSupplyPath,
				fmt.Sprintf("ucsi-source-psy-%s%d", DefaultUCSIInstance, p.Index+1))
			err := writeAttributes(dir, map[string]string{
				"online":      online,
				"current_now": fmt.Sprintf("%d", psy.CurrentNow),
				"voltage_now": fmt.Sprintf("%d", psy.VoltageNow),
				"current_max": fmt.Sprintf("%d", psy.CurrentMax),
				"voltage_max": fmt.Sprintf("%d", psy.VoltageMax),
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// SetupFakeRAPL writes the package power limits, in microwatts, read by
// the power status report.
func SetupFakeRAPL(sysfsRoot string, tdp, boost uint64) error {
	return writeAttributes(filepath.Join(sysfsRoot, defaultRAPLPath), map[string]string{
		"constraint_0_power_limit_uw": fmt.Sprintf("%d", tdp),
		"constraint_1_power_limit_uw": fmt.Sprintf("%d", boost),
	})
}

// SetupFakeUCSI writes command and response files for an instance under
// debugfsRoot and returns the instance directory.
func SetupFakeUCSI(debugfsRoot, instance string, response []byte) (string, error) {
	dir := filepath.Join(debugfsRoot, defaultUCSIPath, instance)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating ucsi instance: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "command"), nil, 0644); err != nil {
		return "", fmt.Errorf("error creating command file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "response"), response, 0644); err != nil {
		return "", fmt.Errorf("error creating response file: %v", err)
	}
	return dir, nil
}
