package hotplug

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/pilebones/go-udev/netlink"
	"github.com/rs/zerolog"
)

const devRoot = "/dev"

// CheckSupported reports whether Watch can run on this host.
func CheckSupported() error { return nil }

// Watch listens on the udev netlink socket and calls handle for every tty
// add or remove event until ctx is cancelled.
func Watch(ctx context.Context, logger zerolog.Logger, handle Handler) error {
	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return fmt.Errorf("connecting to udev netlink socket: %w", err)
	}
	defer conn.Close()

	queue := make(chan netlink.UEvent)
	errs := make(chan error)
	quit := conn.Monitor(queue, errs, ttyMatcher())
	defer close(quit)

	logger.Debug().Msg("hotplug monitor started")

	for {
		select {
		case <-ctx.Done():
			logger.Debug().Msg("hotplug monitor stopped")
			return nil
		case uevent := <-queue:
			ev, ok := toEvent(uevent)
			if !ok {
				logger.Debug().Str("kobj", uevent.KObj).Msg("ignoring event without device name")
				continue
			}
			handle(ctx, ev)
		case err := <-errs:
			logger.Warn().Err(err).Msg("hotplug monitor error")
		}
	}
}

// ttyMatcher accepts add and remove events of the tty subsystem.
func ttyMatcher() netlink.Matcher {
	action := "add|remove"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "^tty$",
		},
	})
	return rules
}

func toEvent(uevent netlink.UEvent) (Event, bool) {
	var action Action
	switch uevent.Action {
	case netlink.ADD:
		action = ActionAdd
	case netlink.REMOVE:
		action = ActionRemove
	default:
		return Event{}, false
	}

	name := uevent.Env["DEVNAME"]
	if name == "" {
		devpath := uevent.Env["DEVPATH"]
		if devpath == "" {
			return Event{}, false
		}
		name = path.Base(devpath)
	}
	if !strings.HasPrefix(name, "/") {
		name = path.Join(devRoot, name)
	}
	return Event{Action: action, Path: name}, true
}
