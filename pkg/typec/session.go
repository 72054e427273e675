package typec

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/harvester/typec/pkg/pd"
	"github.com/harvester/typec/pkg/ucsi"
)

// State is the binding state of a Session.
type State int

const (
	StateUnbound State = iota
	StateBound
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnbound:
		return "unbound"
	case StateBound:
		return "bound"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Session binds one backend and serialises queries against it.
type Session struct {
	mu  sync.Mutex
	cfg config

	state      State
	backend    Backend
	capability pd.Capability
	info       Info

	// open is swapped in tests to bind fake backends.
	open func(ctx context.Context, kind BackendKind) (Backend, error)
}

// NewSession returns an unbound session.
func NewSession(opts ...Option) *Session {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Session{cfg: cfg}
	s.open = s.openBackend
	return s
}

func (s *Session) openBackend(_ context.Context, kind BackendKind) (Backend, error) {
	switch kind {
	case BackendDebugfs:
		return NewDebugfsBackend(s.cfg.debugfsRoot, s.cfg.instance, ucsi.WithResponseTimeout(s.cfg.responseTimeout))
	case BackendSysfs:
		return NewSysfsBackend(s.cfg.sysfsRoot, s.cfg.instance, s.cfg.checkSysfsMagic)
	}
	return nil, fmt.Errorf("unknown backend %q", kind)
}

// Initialize probes the configured backends in order and binds the first
// one that opens and answers a capability query.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateBound {
		return ErrAlreadyBound
	}

	var errs []error
	for _, kind := range s.cfg.order {
		b, err := s.open(ctx, kind)
		if err != nil {
			logrus.Debugf("skipping %s backend: %v", kind, err)
			errs = append(errs, fmt.Errorf("%s: %w", kind, err))
			continue
		}

		capability, err := b.GetCapability(ctx)
		if err != nil {
			logrus.Debugf("skipping %s backend, capability query failed: %v", kind, err)
			errs = append(errs, fmt.Errorf("%s capability: %w", kind, err))
			if cerr := b.Close(); cerr != nil {
				logrus.Warnf("error closing %s backend: %v", kind, cerr)
			}
			continue
		}

		s.backend = b
		s.capability = capability
		s.state = StateBound
		s.info = Info{
			Version: Version,
			Kernel:  kernelRelease(),
			OS:      osRelease(s.cfg.osReleasePath),
			Backend: kind,
		}
		logrus.Debugf("bound %s backend with %d connectors", kind, capability.NumConnectors)
		return nil
	}

	s.state = StateFailed
	return fmt.Errorf("%w: %w", ErrNoBackend, errors.Join(errs...))
}

// State returns the binding state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Info returns the session strings. It is only valid while bound.
func (s *Session) Info() (Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateBound {
		return Info{}, ErrNotBound
	}
	return s.info, nil
}

// Close releases the backend and returns the session to unbound.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateBound {
		s.state = StateUnbound
		return nil
	}
	err := s.backend.Close()
	s.backend = nil
	s.capability = pd.Capability{}
	s.info = Info{}
	s.state = StateUnbound
	return err
}

// bound runs fn against the backend with the session locked.
func (s *Session) bound(fn func(b Backend) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateBound {
		return ErrNotBound
	}
	return fn(s.backend)
}

// connector is bound with the connector index validated against the
// connector count read at Initialize.
func (s *Session) connector(index uint8, fn func(b Backend) error) error {
	return s.bound(func(b Backend) error {
		if index >= s.capability.NumConnectors {
			return fmt.Errorf("%w: %d, platform has %d connectors", ErrInvalidConnector, index, s.capability.NumConnectors)
		}
		return fn(b)
	})
}

// GetCapability queries the platform capability.
func (s *Session) GetCapability(ctx context.Context) (c pd.Capability, err error) {
	err = s.bound(func(b Backend) error {
		c, err = b.GetCapability(ctx)
		return err
	})
	return c, err
}

// NumConnectors returns the connector count read at Initialize.
func (s *Session) NumConnectors() (uint8, error) {
	var n uint8
	err := s.bound(func(_ Backend) error {
		n = s.capability.NumConnectors
		return nil
	})
	return n, err
}

func (s *Session) GetConnectorCapability(ctx context.Context, index uint8) (c pd.ConnectorCapability, err error) {
	err = s.connector(index, func(b Backend) error {
		c, err = b.GetConnectorCapability(ctx, index)
		return err
	})
	return c, err
}

// GetAlternateModes returns the alternate modes of a recipient on a
// connector. An empty list is not an error.
func (s *Session) GetAlternateModes(ctx context.Context, r pd.Recipient, index uint8) (modes []pd.AltMode, err error) {
	err = s.connector(index, func(b Backend) error {
		modes, err = b.GetAlternateModes(ctx, r, index)
		return err
	})
	return modes, err
}

func (s *Session) GetCableProperty(ctx context.Context, index uint8) (c pd.CableProperty, err error) {
	err = s.connector(index, func(b Backend) error {
		c, err = b.GetCableProperty(ctx, index)
		return err
	})
	return c, err
}

func (s *Session) GetConnectorStatus(ctx context.Context, index uint8) (st pd.ConnectorStatus, err error) {
	err = s.connector(index, func(b Backend) error {
		st, err = b.GetConnectorStatus(ctx, index)
		return err
	})
	return st, err
}

// GetPDMessage returns up to size bytes of a PD message received from a
// recipient.
func (s *Session) GetPDMessage(ctx context.Context, r pd.Recipient, index uint8, size int, typ MessageType) (msg []byte, err error) {
	err = s.connector(index, func(b Backend) error {
		msg, err = b.GetPDMessage(ctx, r, index, size, typ)
		return err
	})
	return msg, err
}

// GetDiscoveredIdentity fetches and parses the Discover Identity response
// of the partner (SOP) or cable (SOP').
func (s *Session) GetDiscoveredIdentity(ctx context.Context, r pd.Recipient, index uint8) (pd.DiscoveredIdentity, error) {
	msg, err := s.GetPDMessage(ctx, r, index, pd.IdentitySize, MessageDiscoverIdentity)
	if err != nil {
		return pd.DiscoveredIdentity{}, err
	}
	return pd.ParseDiscoveredIdentity(msg)
}

// GetPDOs returns the source or sink PDOs of the connector or its partner,
// starting at offset.
func (s *Session) GetPDOs(ctx context.Context, index uint8, partner bool, offset uint8, source bool, pdoType uint8) (pdos []pd.PDO, err error) {
	err = s.connector(index, func(b Backend) error {
		pdos, err = b.GetPDOs(ctx, index, partner, offset, source, pdoType)
		return err
	})
	return pdos, err
}
