/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/allbin/boardfinder/internal/tui/styles"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "boardfinder",
	Short: "Find USB development boards and serial adapters",
	Long: `Find USB-attached development boards and USB-serial bridges.

boardfinder lists the serial devices of this machine, classifies each one
into a device family and prints those that match:

  Arduino    Arduino boards
  ESP        ESP32 and ESP8266 boards
  Raspberry  Raspberry Pi devices
  FTDI       FT232R USB UART bridges
  CH340      USB-SERIAL CH340 bridges
  CP210x     Silicon Labs CP210x UART bridges

On Linux and macOS --enable-port makes matched device nodes readable and
writable by all local users through sudo.

Example usage:
  boardfinder
  boardfinder -d Arduino ESP
  boardfinder --device CP210x --enable-port ttyUSB0
  boardfinder -ep`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	},
	RunE: runDiscover,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("Error: "+err.Error()))
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	addPersistentFlags(rootCmd.PersistentFlags())

	rootCmd.Flags().StringP("enable-port", "e", "", "Grant read/write access to a found device (all devices if no value is given)")
	rootCmd.Flags().Lookup("enable-port").NoOptDefVal = "all"
	rootCmd.Flags().BoolP("table", "t", false, "Display results in a styled table")
	rootCmd.Flags().Bool("no-progress", false, "Disable the progress bar")

	if runtime.GOOS == "windows" {
		_ = rootCmd.Flags().MarkHidden("enable-port")
	}
}

// addPersistentFlags registers the flags shared by every subcommand.
func addPersistentFlags(pf *pflag.FlagSet) {
	pf.StringVar(&cfgFile, "config", "", "Config file (default $XDG_CONFIG_HOME/boardfinder/config.yaml)")
	pf.StringSliceP("device", "d", nil, "Filter by device family (repeatable, e.g. -d Arduino ESP)")
	pf.String("log-level", "", "Log level: trace, debug, info, warn, error (default warn)")
	pf.String("log-format", "", "Log format: auto, console, json (default auto)")
	pf.Duration("timeout", 0, "Timeout for each external command (default 15s)")
}
