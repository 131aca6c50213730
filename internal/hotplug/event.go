// Package hotplug reports serial device nodes as they appear and disappear.
package hotplug

import "context"

type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

// Event is a tty node added to or removed from the system.
type Event struct {
	Action Action
	Path   string
}

// Handler is invoked sequentially for every event.
type Handler func(ctx context.Context, ev Event)
