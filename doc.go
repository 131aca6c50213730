// Package boardfinder discovers USB-attached development boards and classifies
// them into known device families.
//
// Boards are found through the operating system's own tooling: udevadm on
// Linux, system_profiler on macOS and the PnP entity list on Windows. Each
// candidate device is described, matched against an ordered signature table
// and turned into a DeviceRecord. On POSIX systems the device node can then be
// opened up for the invoking user with a Grantor.
//
// # Basic Usage
//
// Detect the platform once and run a discovery pass:
//
//	platform, err := boardfinder.DetectPlatform()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine := boardfinder.NewEngine(platform, boardfinder.DefaultTable())
//	for _, rec := range engine.Discover(ctx, nil) {
//	    fmt.Printf("%s: %s (VID=%s PID=%s)\n", rec.Path, rec.Family, rec.VendorID, rec.ProductID)
//	}
//
// # Family Signatures
//
// The built-in table, in match order:
//
//   - Arduino: "Arduino"
//   - ESP: "ESP32", "ESP8266"
//   - Raspberry: "Raspberry Pi"
//   - FTDI: "FT232R USB UART"
//   - CH340: "USB-SERIAL CH340"
//   - CP210x: "CP210x UART Bridge"
//
// Matching is a case-sensitive substring search and the first matching family
// wins. Extra signatures can be appended with Table.Extend:
//
//	table, err := boardfinder.DefaultTable().Extend(boardfinder.Signature{
//	    Family:   "Pico",
//	    Keywords: []string{"RP2040"},
//	})
//
// # Filtering
//
// Pass family names to Discover to keep only matching boards. Validate user
// input first:
//
//	families, err := table.ParseFamilies([]string{"Arduino", "ESP"})
//	if errors.Is(err, boardfinder.ErrUnknownFamily) {
//	    // reject before any discovery work
//	}
//	records := engine.Discover(ctx, families)
//
// # Permissions
//
// Widen a device node's access mode through sudo:
//
//	grantor := boardfinder.NewGrantor(platform,
//	    boardfinder.WithCredentials(provider),
//	)
//	outcome, err := grantor.Grant(ctx, "ttyUSB0") // becomes /dev/ttyUSB0
//
// On Windows Grant returns GrantNotRequired without prompting.
//
// # Error Handling
//
// External command failures never abort discovery; they are logged and the
// affected candidate is skipped. Errors returned to callers wrap sentinel
// values for errors.Is:
//
//	var (
//	    ErrCommandFailed       // external utility failed or timed out
//	    ErrElevationFailed     // elevated chmod failed
//	    ErrCredentialCancelled // password prompt cancelled
//	    ErrDeviceNotFound      // no record matched a selection
//	    ErrUnknownFamily       // filter value not in the table
//	    // ... and more
//	)
//
// Every external command runs with a timeout (DefaultCommandTimeout unless
// configured with WithCommandTimeout).
package boardfinder
