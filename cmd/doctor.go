/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/allbin/boardfinder/internal/doctor"
	"github.com/allbin/boardfinder/internal/tui/styles"
	"github.com/spf13/cobra"
)

var errMissingRequirements = errors.New("required utilities are missing")

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the utilities used for discovery are installed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := doctor.Run(cmd.Context(), app.platform, app.settings.Elevation.Command)
		if report.HostErr != nil {
			app.logger.Warn().Err(report.HostErr).Msg("host information unavailable")
		}
		printDoctorReport(app.stdout, report)
		if !report.OK() {
			return errMissingRequirements
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func printDoctorReport(w io.Writer, report doctor.Report) {
	h := report.Host
	fmt.Fprintln(w, styles.TitleStyle.Render("boardfinder doctor"))
	fmt.Fprintf(w, "Platform: %s\n", report.Platform)
	if report.HostErr == nil {
		fmt.Fprintf(w, "Host:     %s (%s %s, kernel %s, %s)\n", h.Hostname, h.Platform, h.PlatformVersion, h.KernelVersion, h.Arch)
	}
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(report.Checks))
	for _, s := range report.Checks {
		status := "ok"
		detail := s.Path
		if !s.Available {
			status = "missing"
			if s.Optional {
				status = "missing (optional)"
			}
			detail = s.Detail
		}
		rows = append(rows, []string{s.Name, status, strings.TrimSpace(s.Description), detail})
	}
	fmt.Fprintln(w, renderTable([]string{"Utility", "Status", "Used for", "Detail"}, rows))
}
