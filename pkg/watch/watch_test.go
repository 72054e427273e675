package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harvester/typec/pkg/util/testhelper"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) get() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func Test_Partners(t *testing.T) {
	assert := require.New(t)
	root := t.TempDir()
	assert.NoError(testhelper.SetupFakeTypec(root, testhelper.DefaultFakePorts))

	w := NewWatcher(root, 0)
	assert.Equal(DefaultResyncInterval, w.interval)

	ports, err := w.Partners()
	assert.NoError(err)
	assert.Equal([]uint8{0}, ports, "only port0 has a partner")

	_, err = NewWatcher(t.TempDir(), 0).Partners()
	assert.ErrorIs(err, os.ErrNotExist)
}

func Test_Resync(t *testing.T) {
	assert := require.New(t)
	root := t.TempDir()
	assert.NoError(testhelper.SetupFakeTypec(root, testhelper.DefaultFakePorts))
	w := NewWatcher(root, 0)
	w.partners = map[uint8]bool{}

	events, err := w.resync()
	assert.NoError(err)
	assert.Equal([]Event{{Connector: 0, Kind: Attached}}, events)

	events, err = w.resync()
	assert.NoError(err)
	assert.Empty(events)

	dir := filepath.Join(root, typecClassPath)
	assert.NoError(os.RemoveAll(filepath.Join(dir, "port0-partner")))
	assert.NoError(os.Mkdir(filepath.Join(dir, "port1-partner"), 0755))
	events, err = w.resync()
	assert.NoError(err)
	assert.Equal([]Event{{Connector: 0, Kind: Detached}, {Connector: 1, Kind: Attached}}, events)
	assert.Equal("connector 0: partner detached", events[0].String())
}

func Test_Run(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, testhelper.SetupFakeTypec(root, testhelper.DefaultFakePorts))
	dir := filepath.Join(root, typecClassPath)

	w := NewWatcher(root, 50*time.Millisecond)
	w.partners = map[uint8]bool{}
	_, err := w.resync()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	r := &recorder{}
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, r.record)
	}()

	require.NoError(t, os.Mkdir(filepath.Join(dir, "port1-partner"), 0755))
	assert.Eventually(t, func() bool {
		return len(r.get()) == 1
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.RemoveAll(filepath.Join(dir, "port1-partner")))
	assert.Eventually(t, func() bool {
		return len(r.get()) == 2
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
	assert.Equal(t, []Event{{Connector: 1, Kind: Attached}, {Connector: 1, Kind: Detached}}, r.get())
}

func Test_RunMissingClass(t *testing.T) {
	err := NewWatcher(t.TempDir(), 0).Run(context.TODO(), func(Event) {})
	assert.Error(t, err)
}
