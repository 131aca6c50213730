/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/allbin/boardfinder"
	"github.com/allbin/boardfinder/internal/hotplug"
	"github.com/allbin/boardfinder/internal/logger"
	"github.com/allbin/boardfinder/internal/tui/styles"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Report development boards as they are plugged in and removed",
	Long: `Print the currently attached boards, then keep listening for udev
events and report every matching board that is plugged in or removed.

Only available on Linux. Stop with Ctrl+C.

Example usage:
  boardfinder watch
  boardfinder watch -d Arduino ESP`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.watch(cmd.Context())
	},
}

// hotplug entry points, replaced in tests
var (
	hotplugSupported = hotplug.CheckSupported
	hotplugWatch     = hotplug.Watch
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

// watch prints the attached boards and then follows hotplug events. It
// fails before touching any device when the host cannot deliver events.
func (a *application) watch(ctx context.Context) error {
	if err := hotplugSupported(); err != nil {
		return err
	}
	w := newWatcher(a)
	w.seed(ctx)
	fmt.Fprintln(a.stdout, styles.MutedStyle.Render("Watching for devices, press Ctrl+C to stop..."))
	return hotplugWatch(ctx, logger.WithComponent(a.logger, "hotplug"), w.handle)
}

// watcher prints hotplug events for devices that pass the family filter.
type watcher struct {
	app    *application
	engine *boardfinder.Engine
	seen   map[string]boardfinder.DeviceRecord
}

func newWatcher(a *application) *watcher {
	return &watcher{
		app:    a,
		engine: a.engine(),
		seen:   make(map[string]boardfinder.DeviceRecord),
	}
}

// seed prints and remembers the devices already attached.
func (w *watcher) seed(ctx context.Context) {
	for _, r := range w.engine.Discover(ctx, w.app.filter) {
		w.seen[r.Path] = r
		w.print("=", r)
	}
}

func (w *watcher) handle(ctx context.Context, ev hotplug.Event) {
	switch ev.Action {
	case hotplug.ActionAdd:
		record, ok := w.engine.Inspect(ctx, boardfinder.Candidate(ev.Path), w.app.filter)
		if !ok {
			return
		}
		w.seen[record.Path] = record
		w.print("+", record)
	case hotplug.ActionRemove:
		record, ok := w.seen[ev.Path]
		if !ok {
			return
		}
		delete(w.seen, ev.Path)
		w.print("-", record)
	}
}

func (w *watcher) print(marker string, r boardfinder.DeviceRecord) {
	line := fmt.Sprintf("%s %s - Family: %s", marker, r.Path, r.Family)
	if r.HasVendor() || r.HasProduct() {
		line += fmt.Sprintf(" [%s:%s]", r.VendorID, r.ProductID)
	}
	style := styles.FamilyStyle(w.app.table, r.Family)
	if marker == "-" {
		style = styles.MutedStyle
	}
	fmt.Fprintln(w.app.stdout, style.Render(line))
}
