package typec

import (
	"time"

	"github.com/harvester/typec/pkg/ucsi"
)

const (
	DefaultSysfsRoot     = "/sys"
	DefaultOSReleasePath = "/etc/os-release"
)

type config struct {
	sysfsRoot       string
	debugfsRoot     string
	instance        string
	responseTimeout time.Duration
	order           []BackendKind
	osReleasePath   string
	checkSysfsMagic bool
}

func defaultConfig() config {
	return config{
		sysfsRoot:       DefaultSysfsRoot,
		debugfsRoot:     ucsi.DefaultDebugfsRoot,
		responseTimeout: ucsi.DefaultResponseTimeout,
		order:           DefaultBackendOrder,
		osReleasePath:   DefaultOSReleasePath,
		checkSysfsMagic: true,
	}
}

// Option configures a Session.
type Option func(*config)

// WithSysfsRoot sets where sysfs is mounted.
func WithSysfsRoot(root string) Option {
	return func(c *config) {
		c.sysfsRoot = root
	}
}

// WithDebugfsRoot sets where debugfs is mounted.
func WithDebugfsRoot(root string) Option {
	return func(c *config) {
		c.debugfsRoot = root
	}
}

// WithUCSIInstance selects the connector manager instance, such as
// USBC000:00. By default the first instance found is used.
func WithUCSIInstance(instance string) Option {
	return func(c *config) {
		c.instance = instance
	}
}

// WithResponseTimeout bounds the wait for a debugfs response. Zero waits
// indefinitely.
func WithResponseTimeout(d time.Duration) Option {
	return func(c *config) {
		c.responseTimeout = d
	}
}

// WithBackendOrder overrides which backends are probed and in what order.
func WithBackendOrder(kinds ...BackendKind) Option {
	return func(c *config) {
		c.order = kinds
	}
}

// WithOSReleasePath sets the os-release file used for session info.
func WithOSReleasePath(path string) Option {
	return func(c *config) {
		c.osReleasePath = path
	}
}

// WithoutSysfsMagicCheck skips the filesystem type check of the typec
// class directory, for trees that are not mounted sysfs.
func WithoutSysfsMagicCheck() Option {
	return func(c *config) {
		c.checkSysfsMagic = false
	}
}
