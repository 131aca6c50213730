/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/allbin/boardfinder"
	"github.com/allbin/boardfinder/internal/tui/components"
	"github.com/allbin/boardfinder/internal/tui/models"
	"github.com/allbin/boardfinder/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type discoverOptions struct {
	enablePort string // "all", a path substring, or empty
	table      bool
	progress   bool
}

func runDiscover(cmd *cobra.Command, _ []string) error {
	var opts discoverOptions
	opts.enablePort, _ = cmd.Flags().GetString("enable-port")
	opts.table, _ = cmd.Flags().GetBool("table")
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	opts.progress = !noProgress && app.interactive()

	app.discover(cmd.Context(), opts, newTerminalCredential(app))
	return nil
}

// discover runs one discovery pass, prints the result and grants access
// when requested. Failures are reported but never change the exit status.
func (a *application) discover(ctx context.Context, opts discoverOptions, credentials boardfinder.CredentialProvider) {
	fmt.Fprintln(a.stdout, styles.InfoStyle.Render("Searching for USB devices..."))

	records := a.scan(ctx, opts.progress)

	switch {
	case len(records) == 0:
		fmt.Fprintln(a.stdout, "No devices found.")
	case opts.table:
		fmt.Fprintln(a.stdout)
		fmt.Fprintln(a.stdout, components.NewDeviceTable(a.table, records).View())
	default:
		a.printListing(records)
	}

	if opts.enablePort != "" {
		a.enable(ctx, records, opts.enablePort, credentials)
	}

	fmt.Fprintln(a.stdout)
	fmt.Fprintln(a.stdout, "Operation completed!")
}

// scan runs discovery, rendering a progress bar on stderr when enabled.
func (a *application) scan(ctx context.Context, progress bool) []boardfinder.DeviceRecord {
	if !progress {
		return a.engine().Discover(ctx, a.filter)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := models.NewScanModel(a.platform.Name(), cancel)
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(a.stdin),
		tea.WithOutput(a.stderr),
	)

	results := make(chan []boardfinder.DeviceRecord, 1)
	engine := a.engine(boardfinder.WithProgress(models.Reporter{Send: p.Send}))
	go func() {
		results <- engine.Discover(ctx, a.filter)
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		a.logger.Warn().Err(err).Msg("progress display failed")
	}
	if model.Aborted() {
		a.logger.Warn().Msg("scan aborted, results are incomplete")
	}
	return <-results
}

func (a *application) printListing(records []boardfinder.DeviceRecord) {
	fmt.Fprintln(a.stdout)
	fmt.Fprintln(a.stdout, styles.TitleStyle.Render("Devices found:"))
	for _, r := range records {
		fmt.Fprintf(a.stdout, "  %s - Family: %s\n",
			styles.PathStyle.Render(r.Path),
			styles.FamilyStyle(a.table, r.Family).Render(r.Family))
		if r.HasVendor() {
			fmt.Fprintf(a.stdout, "    Vendor ID: %s\n", r.VendorID)
		}
		if r.HasProduct() {
			fmt.Fprintf(a.stdout, "    Product ID: %s\n", r.ProductID)
		}
		fmt.Fprintln(a.stdout, "    ---")
	}
}

// enable grants access to every record ("all") or to the first record whose
// path contains target.
func (a *application) enable(ctx context.Context, records []boardfinder.DeviceRecord, target string, credentials boardfinder.CredentialProvider) {
	var targets []boardfinder.DeviceRecord
	fmt.Fprintln(a.stdout)
	if target == "all" {
		fmt.Fprintln(a.stdout, "Enabling all found ports...")
		targets = records
	} else {
		record, err := boardfinder.Select(records, target)
		if err != nil {
			fmt.Fprintln(a.stdout, styles.ErrorStyle.Render(fmt.Sprintf("Device %s not found.", target)))
			return
		}
		fmt.Fprintf(a.stdout, "Enabling port %s...\n", record.Path)
		targets = []boardfinder.DeviceRecord{record}
	}

	grantor, err := a.grantor(credentials)
	if err != nil {
		fmt.Fprintln(a.stderr, styles.ErrorStyle.Render(err.Error()))
		return
	}

	for _, r := range targets {
		outcome, err := grantor.Grant(ctx, r.Path)
		a.reportGrant(r.Path, outcome, err)
		if errors.Is(err, boardfinder.ErrCredentialCancelled) || ctx.Err() != nil {
			return
		}
	}
}

func (a *application) reportGrant(device string, outcome boardfinder.GrantOutcome, err error) {
	style := styles.OutcomeStyle(outcome)
	switch {
	case errors.Is(err, boardfinder.ErrCredentialCancelled):
		fmt.Fprintln(a.stderr, style.Render("Permission change cancelled for "+device))
	case err != nil:
		fmt.Fprintln(a.stderr, style.Render("Error "+err.Error()))
	case outcome == boardfinder.GrantNotRequired:
		fmt.Fprintln(a.stdout, style.Render(fmt.Sprintf("No need to set permissions on %s for %s", a.platform.Name(), device)))
	case outcome == boardfinder.GrantAlreadyAccessible:
		fmt.Fprintln(a.stdout, style.Render(fmt.Sprintf("%s is already readable and writable", device)))
	default:
		fmt.Fprintln(a.stdout, style.Render("Permissions set successfully for "+device))
	}
}
