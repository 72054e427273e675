package report

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/harvester/typec/pkg/util/common"
)

const (
	// DefaultRAPLZone is the package power zone of the first CPU socket.
	DefaultRAPLZone = "class/powercap/intel-rapl:0"
	tdpConstraint   = "constraint_0_power_limit_uw"
	boostConstraint = "constraint_1_power_limit_uw"
)

// PowerLimits are the package power limits of the host in watts.
type PowerLimits struct {
	TDP   uint64
	Boost uint64
}

// ReadPowerLimits reads the long and short term RAPL limits under sysfsRoot.
func ReadPowerLimits(sysfsRoot string) (PowerLimits, error) {
	zone := filepath.Join(sysfsRoot, DefaultRAPLZone)
	tdp, err := common.ReadUintAttribute(filepath.Join(zone, tdpConstraint))
	if err != nil {
		return PowerLimits{}, fmt.Errorf("error reading tdp limit: %w", err)
	}
	boost, err := common.ReadUintAttribute(filepath.Join(zone, boostConstraint))
	if err != nil {
		return PowerLimits{}, fmt.Errorf("error reading boost limit: %w", err)
	}
	return PowerLimits{TDP: tdp / 1000000, Boost: boost / 1000000}, nil
}

// Status prints the power contract of connector 0 and, when one is in
// place, the host power limits read from sysfsRoot. Nothing is printed
// without a contract.
func (p *Printer) Status(ctx context.Context, sysfsRoot string) error {
	return p.StatusFor(ctx, sysfsRoot, 0)
}

// StatusFor is Status for the given connector.
func (p *Printer) StatusFor(ctx context.Context, sysfsRoot string, index uint8) error {
	st, err := p.s.GetConnectorStatus(ctx, index)
	if err != nil {
		return fmt.Errorf("error querying connector %d status: %w", index, err)
	}
	if st.RDO == 0 {
		return nil
	}

	p.printf(0, "USB-C Power Status")
	p.printf(0, "==================")
	p.printf(1, "USB-C power contract Operating Power %d W, with Max Power %d W",
		st.OperatingPowerMilliwatts()/1000, st.MaxPowerMilliwatts()/1000)

	limits, err := ReadPowerLimits(sysfsRoot)
	if err != nil {
		logrus.Debugf("no rapl limits: %v", err)
		return nil
	}
	p.printf(1, "Charging System with TDP %d W, with boost power requirement of %d W", limits.TDP, limits.Boost)
	return nil
}
