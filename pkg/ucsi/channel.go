package ucsi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

const (
	// DefaultDebugfsRoot is where debugfs is conventionally mounted.
	DefaultDebugfsRoot = "/sys/kernel/debug"
	// DefaultInstance is the connector manager instance most platforms expose.
	DefaultInstance = "USBC000:00"
	// DefaultResponseTimeout bounds the wait for a response.
	DefaultResponseTimeout = 5 * time.Second

	commandFile  = "command"
	responseFile = "response"
)

// ErrNoResponse is returned when the response endpoint does not become
// readable within the response timeout.
var ErrNoResponse = errors.New("no ucsi response")

// Dir returns the directory holding the command and response endpoints of
// instance.
func Dir(debugfsRoot, instance string) string {
	return filepath.Join(debugfsRoot, "usb", "ucsi", instance)
}

// Instances lists the connector manager instances found under debugfsRoot.
func Instances(debugfsRoot string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(debugfsRoot, "usb", "ucsi"))
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Option configures a Channel.
type Option func(*Channel)

// WithResponseTimeout sets how long Exchange waits for a response. A zero
// or negative timeout waits until the context is done.
func WithResponseTimeout(d time.Duration) Option {
	return func(c *Channel) {
		c.timeout = d
	}
}

// Channel is an open pair of UCSI debugfs endpoints. Only one exchange is
// in flight at a time.
type Channel struct {
	mu       sync.Mutex
	dir      string
	command  *os.File
	response *os.File
	timeout  time.Duration
}

// Open opens the command and response endpoints in dir.
func Open(dir string, opts ...Option) (*Channel, error) {
	command, err := os.OpenFile(filepath.Join(dir, commandFile), os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("error opening ucsi command endpoint: %w", err)
	}

	response, err := os.Open(filepath.Join(dir, responseFile))
	if err != nil {
		command.Close()
		return nil, fmt.Errorf("error opening ucsi response endpoint: %w", err)
	}

	c := &Channel{
		dir:      dir,
		command:  command,
		response: response,
		timeout:  DefaultResponseTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Dir returns the directory the channel was opened from.
func (c *Channel) Dir() string {
	return c.dir
}

// Exchange sends cmd and returns the parsed response. A failed exchange
// leaves the channel usable.
func (c *Channel) Exchange(ctx context.Context, cmd Command) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.command == nil || c.response == nil {
		return Response{}, os.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	if _, err := c.command.WriteAt([]byte(cmd.String()), 0); err != nil {
		return Response{}, fmt.Errorf("error writing %s command: %w", cmd.Opcode(), err)
	}

	if err := c.wait(ctx); err != nil {
		return Response{}, fmt.Errorf("%s: %w", cmd.Opcode(), err)
	}

	raw, err := c.read()
	if err != nil {
		return Response{}, fmt.Errorf("error reading %s response: %w", cmd.Opcode(), err)
	}
	logrus.Debugf("ucsi %s %s -> %q", cmd.Opcode(), cmd, raw)

	r, err := ParseResponse(raw)
	if err != nil {
		return Response{}, fmt.Errorf("%s: %w", cmd.Opcode(), err)
	}
	return r, nil
}

// pollTimeout returns the poll(2) timeout in milliseconds, -1 meaning no
// limit.
func (c *Channel) pollTimeout(ctx context.Context) (int, error) {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, ErrNoResponse
		}
		if timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}

	if timeout <= 0 {
		return -1, nil
	}
	ms := int(timeout / time.Millisecond)
	if ms == 0 {
		ms = 1
	}
	return ms, nil
}

func (c *Channel) wait(ctx context.Context) error {
	fds := []unix.PollFd{{Fd: int32(c.response.Fd()), Events: unix.POLLIN | unix.POLLPRI}}
	for {
		ms, err := c.pollTimeout(ctx)
		if err != nil {
			return err
		}

		n, err := unix.Poll(fds, ms)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return fmt.Errorf("error polling ucsi response: %w", err)
		}
		if n == 0 {
			return ErrNoResponse
		}
		if fds[0].Revents&(unix.POLLERR|unix.POLLNVAL) != 0 {
			return fmt.Errorf("ucsi response endpoint error, revents 0x%x", fds[0].Revents)
		}
		return nil
	}
}

// read reads one response and rewinds the endpoint for the next poll.
func (c *Channel) read() ([]byte, error) {
	buf := make([]byte, MaxResponseSize)
	n, err := c.response.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if _, err := c.response.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// Close releases both endpoints. Calling it again is a no-op.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	if c.command != nil {
		errs = append(errs, c.command.Close())
		c.command = nil
	}
	if c.response != nil {
		errs = append(errs, c.response.Close())
		c.response = nil
	}
	return errors.Join(errs...)
}
