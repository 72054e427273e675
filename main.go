package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/harvester/typec/pkg/report"
	"github.com/harvester/typec/pkg/typec"
	"github.com/harvester/typec/pkg/ucsi"
	"github.com/harvester/typec/pkg/util/gousb/usbid"
	"github.com/harvester/typec/pkg/watch"
)

const (
	VERSION = typec.Version
	appName = "typec"
)

type options struct {
	sysfsRoot       string
	debugfsRoot     string
	instance        string
	usbIDs          string
	backend         string
	responseTimeout time.Duration
	debug           bool
}

func init() {
	if debug := os.Getenv("DEBUG_LOGGING"); debug == "true" {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

func main() {
	var opts options
	app := cli.NewApp()
	app.Name = appName
	app.Version = VERSION
	app.Usage = "Lists USB Type-C connectors, alternate modes, cables, partners and power contracts."
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "sysfs-root",
			EnvVars:     []string{"TYPEC_SYSFS_ROOT"},
			Value:       typec.DefaultSysfsRoot,
			Destination: &opts.sysfsRoot,
			Usage:       "Mount point of sysfs",
		},
		&cli.StringFlag{
			Name:        "debugfs-root",
			EnvVars:     []string{"TYPEC_DEBUGFS_ROOT"},
			Value:       ucsi.DefaultDebugfsRoot,
			Destination: &opts.debugfsRoot,
			Usage:       "Mount point of debugfs",
		},
		&cli.StringFlag{
			Name:        "ucsi-instance",
			EnvVars:     []string{"TYPEC_UCSI_INSTANCE"},
			Destination: &opts.instance,
			Usage:       "UCSI instance to use, the first one found by default",
		},
		&cli.StringFlag{
			Name:        "backend",
			EnvVars:     []string{"TYPEC_BACKEND"},
			Destination: &opts.backend,
			Usage:       "Only try the given backend (debugfs or sysfs)",
		},
		&cli.DurationFlag{
			Name:        "response-timeout",
			EnvVars:     []string{"TYPEC_RESPONSE_TIMEOUT"},
			Value:       ucsi.DefaultResponseTimeout,
			Destination: &opts.responseTimeout,
			Usage:       "How long to wait for a UCSI response",
		},
		&cli.StringFlag{
			Name:        "usb-ids",
			EnvVars:     []string{"TYPEC_USB_IDS"},
			Destination: &opts.usbIDs,
			Usage:       "usb.ids file used for vendor names",
		},
		&cli.BoolFlag{
			Name:        "debug",
			EnvVars:     []string{"DEBUG_LOGGING"},
			Destination: &opts.debug,
			Usage:       "Enable debug logging",
		},
	}

	app.Before = func(_ *cli.Context) error {
		if opts.debug {
			logrus.SetLevel(logrus.DebugLevel)
		}
		if opts.usbIDs != "" {
			if err := usbid.Load(opts.usbIDs); err != nil {
				logrus.Warnf("failed to load %s: %v", opts.usbIDs, err)
			}
		}
		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:  "list",
			Usage: "Print platform, connector, cable and partner details",
			Action: func(c *cli.Context) error {
				return withSession(c.Context, opts, func(ctx context.Context, s *typec.Session) error {
					return report.NewPrinter(s, os.Stdout).List(ctx)
				})
			},
		},
		{
			Name:  "status",
			Usage: "Print the power contract of a connector and the host power limits",
			Flags: []cli.Flag{
				&cli.UintFlag{
					Name:  "connector",
					Value: 0,
					Usage: "Connector to report",
				},
			},
			Action: func(c *cli.Context) error {
				index := c.Uint("connector")
				if index > 0xff {
					return fmt.Errorf("%w: %d", typec.ErrInvalidConnector, index)
				}
				return withSession(c.Context, opts, func(ctx context.Context, s *typec.Session) error {
					return report.NewPrinter(s, os.Stdout).StatusFor(ctx, opts.sysfsRoot, uint8(index))
				})
			},
		},
		{
			Name:  "watch",
			Usage: "Print connector status whenever a partner attaches or detaches",
			Flags: []cli.Flag{
				&cli.DurationFlag{
					Name:  "interval",
					Value: watch.DefaultResyncInterval,
					Usage: "Rescan interval when no change notification arrives",
				},
			},
			Action: func(c *cli.Context) error {
				return runWatch(c.Context, opts, c.Duration("interval"))
			},
		},
	}
	app.Action = func(c *cli.Context) error {
		return cli.ShowAppHelp(c)
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func (o options) sessionOptions() []typec.Option {
	opts := []typec.Option{
		typec.WithSysfsRoot(o.sysfsRoot),
		typec.WithDebugfsRoot(o.debugfsRoot),
		typec.WithUCSIInstance(o.instance),
		typec.WithResponseTimeout(o.responseTimeout),
	}
	if o.backend != "" {
		opts = append(opts, typec.WithBackendOrder(typec.BackendKind(o.backend)))
	}
	return opts
}

func withSession(ctx context.Context, o options, fn func(context.Context, *typec.Session) error) error {
	s := typec.NewSession(o.sessionOptions()...)
	if err := s.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize session: %w", err)
	}
	defer s.Close()
	return fn(ctx, s)
}

func runWatch(ctx context.Context, o options, interval time.Duration) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withSession(ctx, o, func(ctx context.Context, s *typec.Session) error {
		events := make(chan watch.Event, 16)
		eg, egctx := errgroup.WithContext(ctx)

		eg.Go(func() error {
			defer close(events)
			return watch.NewWatcher(o.sysfsRoot, interval).Run(egctx, func(e watch.Event) {
				select {
				case events <- e:
				case <-egctx.Done():
				}
			})
		})

		eg.Go(func() error {
			p := report.NewPrinter(s, os.Stdout)
			for e := range events {
				fmt.Fprintln(os.Stdout, e)
				if e.Kind == watch.Detached {
					continue
				}
				if err := p.StatusFor(egctx, o.sysfsRoot, e.Connector); err != nil {
					logrus.Errorf("connector %d: %v", e.Connector, err)
				}
			}
			return nil
		})

		return eg.Wait()
	})
}
