// Package watch reports Type-C partners attaching to and detaching from
// connectors by watching the typec class directory.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

const (
	typecClassPath = "class/typec"
	// DefaultResyncInterval bounds how late a change is seen when the
	// filesystem does not deliver notifications, as sysfs often does not.
	DefaultResyncInterval = 2 * time.Second
)

var partnerPattern = regexp.MustCompile(`^port([0-9]+)-partner$`)

// Kind is the kind of change seen on a connector.
type Kind int

const (
	Attached Kind = iota
	Detached
)

func (k Kind) String() string {
	if k == Detached {
		return "detached"
	}
	return "attached"
}

// Event is a partner change on one connector.
type Event struct {
	Connector uint8
	Kind      Kind
}

func (e Event) String() string {
	return fmt.Sprintf("connector %d: partner %s", e.Connector, e.Kind)
}

// Watcher tracks partner directories under <sysfsRoot>/class/typec.
type Watcher struct {
	dir      string
	interval time.Duration
	partners map[uint8]bool
}

// NewWatcher returns a watcher for the typec class under sysfsRoot. A
// non-positive interval uses DefaultResyncInterval.
func NewWatcher(sysfsRoot string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultResyncInterval
	}
	return &Watcher{
		dir:      filepath.Join(sysfsRoot, typecClassPath),
		interval: interval,
	}
}

// Partners returns the connectors that have a partner attached.
func (w *Watcher) Partners() ([]uint8, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, err
	}

	var ports []uint8
	for _, e := range entries {
		m := partnerPattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.ParseUint(m[1], 10, 8)
		if err != nil {
			logrus.Debugf("skipping partner %s: %v", e.Name(), err)
			continue
		}
		ports = append(ports, uint8(n))
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i] < ports[j] })
	return ports, nil
}

// Run calls fn for every partner change until ctx is done. Partners present
// at the first scan are not reported. fn runs on the watching goroutine.
func (w *Watcher) Run(ctx context.Context, fn func(Event)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create a fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to add %s to the watcher: %w", w.dir, err)
	}

	if w.partners == nil {
		w.partners = make(map[uint8]bool)
		if _, err := w.resync(); err != nil {
			return err
		}
	}
	logrus.Debugf("watching %s with %d partners attached", w.dir, len(w.partners))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.Errorf("error watching %s: %v", w.dir, err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			logrus.Debugf("typec event: %v", event)
			if !partnerPattern.MatchString(filepath.Base(event.Name)) {
				continue
			}
			if err := w.dispatch(fn); err != nil {
				return err
			}
		case <-ticker.C:
			if err := w.dispatch(fn); err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) dispatch(fn func(Event)) error {
	events, err := w.resync()
	if err != nil {
		return err
	}
	for _, e := range events {
		fn(e)
	}
	return nil
}

// resync rescans the class directory and returns the changes since the
// previous scan.
func (w *Watcher) resync() ([]Event, error) {
	ports, err := w.Partners()
	if err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", w.dir, err)
	}

	current := make(map[uint8]bool, len(ports))
	var events []Event
	for _, p := range ports {
		current[p] = true
		if !w.partners[p] {
			events = append(events, Event{Connector: p, Kind: Attached})
		}
	}
	for p := range w.partners {
		if !current[p] {
			events = append(events, Event{Connector: p, Kind: Detached})
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Connector < events[j].Connector })

	w.partners = current
	return events, nil
}
