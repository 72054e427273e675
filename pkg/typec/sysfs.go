package typec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/harvester/typec/pkg/pd"
	"github.com/harvester/typec/pkg/ucsi"
	"github.com/harvester/typec/pkg/util/common"
)

const (
	typecClassPath       = "class/typec"
	powerSupplyClassPath = "class/power_supply"

	sysfsMagic = 0x62656572

	pdRevisionFile    = "usb_power_delivery_revision"
	typecRevisionFile = "usb_typec_revision"
)

var (
	portPattern     = regexp.MustCompile(`^port[0-9]+$`)
	portModePattern = regexp.MustCompile(`^port[0-9]+\.[0-9]+$`)
)

// SysfsBackend answers queries from the typec and power_supply classes.
type SysfsBackend struct {
	typecRoot string
	psyRoot   string
	instance  string
}

// NewSysfsBackend checks that the typec class exists under sysfsRoot.
// With checkMagic set the directory must also live on a sysfs mount.
func NewSysfsBackend(sysfsRoot, instance string, checkMagic bool) (*SysfsBackend, error) {
	typecRoot := filepath.Join(sysfsRoot, typecClassPath)
	info, err := os.Stat(typecRoot)
	if err != nil {
		return nil, fmt.Errorf("error reading typec class: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("typec class %s is not a directory", typecRoot)
	}

	if checkMagic {
		var st unix.Statfs_t
		if err := unix.Statfs(typecRoot, &st); err != nil {
			return nil, fmt.Errorf("error checking filesystem of %s: %w", typecRoot, err)
		}
		if uint32(st.Type) != sysfsMagic {
			return nil, fmt.Errorf("%s is not on sysfs, filesystem magic 0x%x", typecRoot, st.Type)
		}
	}

	if instance == "" {
		instance = ucsi.DefaultInstance
	}
	return &SysfsBackend{
		typecRoot: typecRoot,
		psyRoot:   filepath.Join(sysfsRoot, powerSupplyClassPath),
		instance:  instance,
	}, nil
}

func (s *SysfsBackend) Kind() BackendKind {
	return BackendSysfs
}

func (s *SysfsBackend) portDir(index uint8) string {
	return filepath.Join(s.typecRoot, fmt.Sprintf("port%d", index))
}

func (s *SysfsBackend) partnerDir(index uint8) string {
	return filepath.Join(s.typecRoot, fmt.Sprintf("port%d-partner", index))
}

func (s *SysfsBackend) cableDir(index uint8) string {
	return filepath.Join(s.typecRoot, fmt.Sprintf("port%d-cable", index))
}

func (s *SysfsBackend) plugDir(index uint8, plug int) string {
	return filepath.Join(s.cableDir(index), fmt.Sprintf("port%d-plug%d", index, plug))
}

// checkPort fails for connector indexes without a port directory.
func (s *SysfsBackend) checkPort(index uint8) error {
	ok, err := common.Exists(s.portDir(index))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: no %s", ErrInvalidConnector, s.portDir(index))
	}
	return nil
}

// readRevision parses revision files such as "3.0". Missing or unreadable
// files leave the revision unknown.
func readRevision(path string) pd.Revision {
	contents, err := common.ReadAttribute(path)
	if err != nil {
		return pd.RevisionUnknown
	}
	rev, err := pd.ParseRevision(contents)
	if err != nil {
		logrus.Debugf("skipping revision %s: %v", path, err)
		return pd.RevisionUnknown
	}
	return rev
}

// GetCapability counts ports and their alternate modes. The revisions are
// the ones reported by the last port.
func (s *SysfsBackend) GetCapability(_ context.Context) (pd.Capability, error) {
	entries, err := os.ReadDir(s.typecRoot)
	if err != nil {
		return pd.Capability{}, fmt.Errorf("error reading typec class: %w", err)
	}

	var c pd.Capability
	for _, e := range entries {
		if !portPattern.MatchString(e.Name()) {
			continue
		}
		c.NumConnectors++

		portPath := filepath.Join(s.typecRoot, e.Name())
		modes, err := os.ReadDir(portPath)
		if err != nil {
			return c, fmt.Errorf("error reading port %s: %w", e.Name(), err)
		}
		for _, m := range modes {
			if portModePattern.MatchString(m.Name()) {
				c.NumAltModes++
			}
		}

		c.PDVersion = uint16(readRevision(filepath.Join(portPath, pdRevisionFile)))
		c.TypeCVersion = uint16(readRevision(filepath.Join(portPath, typecRevisionFile)))
	}
	return c, nil
}

// operationMode maps power_role contents, such as "[source] sink", onto
// the UCSI operation mode.
func operationMode(powerRole string) pd.OperationMode {
	switch {
	case strings.Contains(powerRole, "source") && strings.Contains(powerRole, "sink"):
		return pd.OpModeDRP
	case strings.Contains(powerRole, "source"):
		return pd.OpModeRpOnly
	}
	return pd.OpModeRdOnly
}

func (s *SysfsBackend) GetConnectorCapability(_ context.Context, index uint8) (pd.ConnectorCapability, error) {
	if err := s.checkPort(index); err != nil {
		return pd.ConnectorCapability{}, err
	}

	powerRole, err := common.ReadAttribute(filepath.Join(s.portDir(index), "power_role"))
	if err != nil {
		return pd.ConnectorCapability{}, fmt.Errorf("error reading power role of port %d: %w", index, err)
	}

	c := pd.ConnectorCapability{OperationMode: operationMode(powerRole)}
	switch c.OperationMode {
	case pd.OpModeDRP:
		c.Provider, c.Consumer = true, true
	case pd.OpModeRdOnly:
		c.Consumer = true
	default:
		c.Provider = true
	}

	c.PartnerRevision = readRevision(filepath.Join(s.partnerDir(index), pdRevisionFile))
	c.CableRevision = readRevision(filepath.Join(s.cableDir(index), pdRevisionFile))
	return c, nil
}

// altModeDir returns the directory holding the alternate modes of a
// recipient and the prefix of each mode directory in it.
func (s *SysfsBackend) altModeDir(r pd.Recipient, index uint8) (string, string, error) {
	switch r {
	case pd.RecipientConnector:
		return s.portDir(index), fmt.Sprintf("port%d", index), nil
	case pd.RecipientSOP:
		return s.partnerDir(index), fmt.Sprintf("port%d-partner", index), nil
	case pd.RecipientSOPPrime:
		return s.plugDir(index, 0), fmt.Sprintf("port%d-plug0", index), nil
	case pd.RecipientSOPDoublePrime:
		return s.plugDir(index, 1), fmt.Sprintf("port%d-plug1", index), nil
	}
	return "", "", fmt.Errorf("%w: recipient %s", ErrUnsupported, r)
}

// GetAlternateModes walks <dir>/<prefix>.N until a mode directory is
// missing.
func (s *SysfsBackend) GetAlternateModes(_ context.Context, r pd.Recipient, index uint8) ([]pd.AltMode, error) {
	if err := s.checkPort(index); err != nil {
		return nil, err
	}
	dir, prefix, err := s.altModeDir(r, index)
	if err != nil {
		return nil, err
	}

	var modes []pd.AltMode
	for i := 0; i < pd.MaxAltModes; i++ {
		modeDir := filepath.Join(dir, fmt.Sprintf("%s.%d", prefix, i))
		ok, err := common.Exists(modeDir)
		if err != nil {
			return modes, err
		}
		if !ok {
			break
		}

		svid, err := common.ReadHexAttribute(filepath.Join(modeDir, "svid"))
		if err != nil {
			return modes, err
		}
		vdo, err := common.ReadHexAttribute(filepath.Join(modeDir, "vdo"))
		if err != nil {
			return modes, err
		}
		modes = append(modes, pd.AltMode{SVID: uint16(svid), VDO: vdo})
	}
	return modes, nil
}

func plugEndType(plugType string) pd.PlugEndType {
	switch {
	case strings.Contains(plugType, "type-c"):
		return pd.PlugTypeC
	case strings.Contains(plugType, "type-a"):
		return pd.PlugTypeA
	case strings.Contains(plugType, "type-b"):
		return pd.PlugTypeB
	}
	return pd.PlugOther
}

func cableType(typ string) pd.CableType {
	switch {
	case strings.Contains(typ, "passive"):
		return pd.CablePassive
	case strings.Contains(typ, "active"):
		return pd.CableActive
	}
	return pd.CableUnknown
}

func (s *SysfsBackend) GetCableProperty(_ context.Context, index uint8) (pd.CableProperty, error) {
	cable := s.cableDir(index)
	ok, err := common.Exists(cable)
	if err != nil {
		return pd.CableProperty{}, err
	}
	if !ok {
		return pd.CableProperty{}, fmt.Errorf("cable on port %d: %w", index, ErrNotPresent)
	}

	c := pd.CableProperty{PlugEnd: pd.PlugOther, Type: pd.CableUnknown}
	if plugType, err := common.ReadAttribute(filepath.Join(cable, "plug_type")); err == nil {
		c.PlugEnd = plugEndType(plugType)
	}
	if typ, err := common.ReadAttribute(filepath.Join(cable, "type")); err == nil {
		c.Type = cableType(typ)
	}
	if n, err := common.ReadUintAttribute(filepath.Join(s.plugDir(index, 0), "number_of_alternate_modes")); err == nil {
		c.ModeSupport = n != 0
	}
	return c, nil
}

// powerSupplyDir is the UCSI power supply of a connector, numbered from 1
// after the instance name.
func (s *SysfsBackend) powerSupplyDir(index uint8) string {
	return filepath.Join(s.psyRoot, fmt.Sprintf("ucsi-source-psy-%s%d", s.instance, int(index)+1))
}

// powerUnits converts a microamp and microvolt pair into 250mW units.
func powerUnits(microamps, microvolts uint64) uint32 {
	return uint32((microamps / 1000) * (microvolts / 1000) / (250 * 1000))
}

// GetConnectorStatus reports attach state from the partner directory and
// synthesises the RDO power fields from the UCSI power supply, when there
// is one.
func (s *SysfsBackend) GetConnectorStatus(_ context.Context, index uint8) (pd.ConnectorStatus, error) {
	if err := s.checkPort(index); err != nil {
		return pd.ConnectorStatus{}, err
	}

	var st pd.ConnectorStatus
	connected, err := common.Exists(s.partnerDir(index))
	if err != nil {
		return st, err
	}
	st.Connected = connected

	if powerRole, err := common.ReadAttribute(filepath.Join(s.portDir(index), "power_role")); err == nil {
		st.PowerProvider = strings.Contains(powerRole, "[source]")
	}
	if connected {
		st.PDRevision = readRevision(filepath.Join(s.partnerDir(index), pdRevisionFile))
	}

	psy := s.powerSupplyDir(index)
	ok, err := common.Exists(psy)
	if err != nil {
		return st, err
	}
	if !ok {
		logrus.Debugf("no ucsi power supply %s for port %d", psy, index)
		return st, nil
	}

	online, err := common.ReadBoolAttribute(filepath.Join(psy, "online"))
	if err != nil || !online {
		return st, nil
	}

	read := func(name string) uint64 {
		v, err := common.ReadUintAttribute(filepath.Join(psy, name))
		if err != nil {
			logrus.Debugf("skipping %s: %v", filepath.Join(psy, name), err)
		}
		return v
	}
	operating := powerUnits(read("current_now"), read("voltage_now"))
	maximum := powerUnits(read("current_max"), read("voltage_max"))
	st.RDO = pd.NewRDO(operating, maximum)
	return st, nil
}

var identityFiles = []string{"cert_stat", "id_header", "product", "product_type_vdo1", "product_type_vdo2", "product_type_vdo3"}

func (s *SysfsBackend) discoveredIdentity(r pd.Recipient, index uint8) (pd.DiscoveredIdentity, error) {
	var dir string
	switch r {
	case pd.RecipientSOP:
		dir = filepath.Join(s.partnerDir(index), "identity")
	case pd.RecipientSOPPrime:
		dir = filepath.Join(s.cableDir(index), "identity")
	default:
		return pd.DiscoveredIdentity{}, fmt.Errorf("%s identity: %w", r, ErrUnsupported)
	}

	ok, err := common.Exists(dir)
	if err != nil {
		return pd.DiscoveredIdentity{}, err
	}
	if !ok {
		return pd.DiscoveredIdentity{}, fmt.Errorf("%s identity on port %d: %w", r, index, ErrNotPresent)
	}

	values := make([]uint32, len(identityFiles))
	for i, name := range identityFiles {
		v, err := common.ReadHexAttribute(filepath.Join(dir, name))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return pd.DiscoveredIdentity{}, err
		}
		values[i] = v
	}
	return pd.DiscoveredIdentity{
		CertStat:       values[0],
		IDHeader:       values[1],
		Product:        values[2],
		ProductTypeVDO: [3]uint32{values[3], values[4], values[5]},
	}, nil
}

// GetPDMessage only answers Discover Identity, read from the identity
// directory of the partner or cable.
func (s *SysfsBackend) GetPDMessage(_ context.Context, r pd.Recipient, index uint8, size int, typ MessageType) ([]byte, error) {
	if typ != MessageDiscoverIdentity {
		return nil, fmt.Errorf("sysfs pd message %d: %w", typ, ErrUnsupported)
	}
	if err := s.checkPort(index); err != nil {
		return nil, err
	}

	id, err := s.discoveredIdentity(r, index)
	if err != nil {
		return nil, err
	}
	b := id.Bytes()
	if size > 0 && size < len(b) {
		b = b[:size]
	}
	return b, nil
}

// supplyFromDir reads one <n>:<kind>_supply capability directory.
func supplyFromDir(dir, kind string, source bool) (pd.Supply, bool) {
	read := func(name string) uint32 {
		v, err := common.ReadUintAttribute(filepath.Join(dir, name))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			logrus.Debugf("skipping %s: %v", filepath.Join(dir, name), err)
		}
		return uint32(v)
	}
	flag := func(name string) bool {
		v, err := common.ReadBoolAttribute(filepath.Join(dir, name))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			logrus.Debugf("skipping %s: %v", filepath.Join(dir, name), err)
		}
		return v
	}

	var s pd.Supply
	switch {
	case strings.Contains(kind, "fixed"):
		s = pd.Supply{
			Type:             pd.PDOFixed,
			Millivolts:       read("voltage"),
			DualRolePower:    flag("dual_role_power"),
			Unconstrained:    flag("unconstrained_power"),
			USBCommunication: flag("usb_communication_capable"),
			DualRoleData:     flag("dual_role_data"),
		}
		if source {
			s.Milliamps = read("maximum_current")
			s.USBSuspend = flag("usb_suspend_supported")
			s.UnchunkedExtended = flag("unchunked_extended_messages_supported")
		} else {
			s.Milliamps = read("operational_current")
			s.FastRoleSwap = uint8(read("fast_role_swap_current"))
		}
	case strings.Contains(kind, "variable"):
		s = pd.Supply{Type: pd.PDOVariable, Millivolts: read("maximum_voltage"), MinMillivolts: read("minimum_voltage")}
		if source {
			s.Milliamps = read("maximum_current")
		} else {
			s.Milliamps = read("operational_current")
		}
	case strings.Contains(kind, "battery"):
		s = pd.Supply{Type: pd.PDOBattery, Millivolts: read("maximum_voltage"), MinMillivolts: read("minimum_voltage")}
		if source {
			s.Milliwatts = read("maximum_power")
		} else {
			s.Milliwatts = read("operational_power")
		}
	case strings.Contains(kind, "programmable"):
		s = pd.Supply{
			Type:          pd.PDOAugmented,
			Millivolts:    read("maximum_voltage"),
			MinMillivolts: read("minimum_voltage"),
			Milliamps:     read("maximum_current"),
		}
		if source {
			s.PPSPowerLimited = flag("pps_power_limited")
		}
	default:
		return s, false
	}
	return s, true
}

// GetPDOs builds PDOs from the usb_power_delivery capability directories,
// which sysfs names <n>:<kind>_supply. pdoType is ignored, sysfs only
// exposes the advertised capabilities.
func (s *SysfsBackend) GetPDOs(_ context.Context, index uint8, partner bool, offset uint8, source bool, _ uint8) ([]pd.PDO, error) {
	if err := s.checkPort(index); err != nil {
		return nil, err
	}

	base := s.portDir(index)
	if partner {
		base = s.partnerDir(index)
	}
	caps := "sink-capabilities"
	role := pd.RoleSink
	if source {
		caps = "source-capabilities"
		role = pd.RoleSource
	}

	dir := filepath.Join(base, "usb_power_delivery", caps)
	ok, err := common.Exists(dir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s of port %d: %w", caps, index, ErrNotPresent)
	}

	entries, err := common.GetIndexedEntries(dir, ":")
	if err != nil {
		return nil, err
	}

	var pdos []pd.PDO
	for _, e := range entries {
		supply, ok := supplyFromDir(e.Path, e.Name, source)
		if !ok {
			logrus.Debugf("skipping unknown capability %s", e.Path)
			continue
		}
		pdos = append(pdos, supply.PDO(role))
		if len(pdos) == MaxPDOs {
			break
		}
	}

	if int(offset) >= len(pdos) {
		return nil, nil
	}
	return pdos[offset:], nil
}

func (s *SysfsBackend) Close() error {
	return nil
}

