package boardfinder

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPlatform serves fixed candidates and descriptions.
type stubPlatform struct {
	name         string
	candidates   []Candidate
	listErr      error
	descriptions map[Candidate]string
	describeErrs map[Candidate]error
	usbIDs       bool
	described    []Candidate
}

func (s *stubPlatform) Name() string { return s.name }

func (s *stubPlatform) ListCandidates(context.Context) ([]Candidate, error) {
	return s.candidates, s.listErr
}

func (s *stubPlatform) Describe(_ context.Context, c Candidate) (string, error) {
	s.described = append(s.described, c)
	if err := s.describeErrs[c]; err != nil {
		return "", err
	}
	return s.descriptions[c], nil
}

func (s *stubPlatform) ReportsUSBIDs() bool        { return s.usbIDs }
func (s *stubPlatform) NeedsPermissionGrant() bool { return s.usbIDs }
func (s *stubPlatform) Requirements() []Utility    { return nil }

// recordingProgress captures progress callbacks.
type recordingProgress struct {
	total int
	steps []Candidate
	found []string
	done  int
}

func (r *recordingProgress) Start(total int) { r.total = total }

func (r *recordingProgress) Step(c Candidate, rec *DeviceRecord) {
	r.steps = append(r.steps, c)
	if rec != nil {
		r.found = append(r.found, rec.Path)
	}
}

func (r *recordingProgress) Done(found int) { r.done = found }

func mixedPlatform() *stubPlatform {
	return &stubPlatform{
		name:       "Linux",
		usbIDs:     true,
		candidates: []Candidate{"/dev/ttyACM0", "/dev/ttyS0", "/dev/ttyUSB0", "/dev/ttyUSB1"},
		descriptions: map[Candidate]string{
			"/dev/ttyACM0": udevDump("Arduino Uno", "2341", "0043"),
			"/dev/ttyS0":   "looking at device '/devices/platform/serial8250/tty/ttyS0'",
			"/dev/ttyUSB0": udevDump("USB-SERIAL CH340", "1a86", "7523"),
			"/dev/ttyUSB1": udevDump("FT232R USB UART", "0403", "6001"),
		},
	}
}

func TestDiscoverLinuxScenario(t *testing.T) {
	dir := makeDevTree(t, "ttyUSB0", "ttyUSB1")
	usb0 := filepath.Join(dir, "ttyUSB0")
	usb1 := filepath.Join(dir, "ttyUSB1")

	runner := newFakeRunner().
		on(udevDump("CP210x UART Bridge", "10c4", "ea60"), "udevadm", "info", "-a", "-n", usb0).
		on("looking at device '/devices/virtual/tty/ttyUSB1'\n    KERNEL==\"ttyUSB1\"\n", "udevadm", "info", "-a", "-n", usb1)

	platform, err := DetectPlatform(WithGOOS("linux"), WithDevDir(dir), WithRunner(runner))
	require.NoError(t, err)

	records := NewEngine(platform, DefaultTable()).Discover(context.Background(), nil)

	require.Len(t, records, 1)
	assert.Equal(t, DeviceRecord{Path: usb0, Family: "CP210x", VendorID: "10c4", ProductID: "ea60"}, records[0])
}

func TestDiscoverPreservesEnumerationOrder(t *testing.T) {
	records := NewEngine(mixedPlatform(), DefaultTable()).Discover(context.Background(), nil)

	require.Len(t, records, 3)
	assert.Equal(t, "/dev/ttyACM0", records[0].Path)
	assert.Equal(t, "Arduino", records[0].Family)
	assert.Equal(t, "2341", records[0].VendorID)
	assert.Equal(t, "/dev/ttyUSB0", records[1].Path)
	assert.Equal(t, "CH340", records[1].Family)
	assert.Equal(t, "/dev/ttyUSB1", records[2].Path)
	assert.Equal(t, "FTDI", records[2].Family)

	for _, r := range records {
		assert.NotEqual(t, Unknown, r.Family)
	}
}

func TestDiscoverFilter(t *testing.T) {
	engine := NewEngine(mixedPlatform(), DefaultTable())

	records := engine.Discover(context.Background(), []string{"FTDI", "CH340"})
	require.Len(t, records, 2)
	assert.Equal(t, "/dev/ttyUSB0", records[0].Path)
	assert.Equal(t, "/dev/ttyUSB1", records[1].Path)

	records = engine.Discover(context.Background(), []string{"Arduino", "ESP"})
	require.Len(t, records, 1)
	assert.Equal(t, "Arduino", records[0].Family)

	assert.Empty(t, engine.Discover(context.Background(), []string{"ESP", "Raspberry"}))
}

func TestDiscoverEmptyFilterEqualsAllFamilies(t *testing.T) {
	engine := NewEngine(mixedPlatform(), DefaultTable())

	none := engine.Discover(context.Background(), nil)
	empty := engine.Discover(context.Background(), []string{})
	all := engine.Discover(context.Background(), DefaultTable().Families())

	assert.Equal(t, none, empty)
	assert.Equal(t, none, all)
}

func TestDiscoverFilterMatchesAnyKeywordButClassifiesByTableOrder(t *testing.T) {
	platform := &stubPlatform{
		name:         "Linux",
		candidates:   []Candidate{"/dev/ttyUSB0"},
		descriptions: map[Candidate]string{"/dev/ttyUSB0": "FT232R USB UART on an Arduino shield"},
	}

	records := NewEngine(platform, DefaultTable()).Discover(context.Background(), []string{"FTDI"})

	require.Len(t, records, 1)
	assert.Equal(t, "Arduino", records[0].Family)
}

func TestDiscoverExcludesUndescribableCandidates(t *testing.T) {
	platform := mixedPlatform()
	platform.describeErrs = map[Candidate]error{
		"/dev/ttyUSB0": &CommandError{Name: "udevadm", Err: errors.New("exit status 2")},
	}

	var logs bytes.Buffer
	engine := NewEngine(platform, DefaultTable(), WithLogger(zerolog.New(&logs)))
	records := engine.Discover(context.Background(), nil)

	require.Len(t, records, 2)
	for _, r := range records {
		assert.NotEqual(t, "/dev/ttyUSB0", r.Path)
	}
	assert.Contains(t, logs.String(), "describing candidate failed")
	assert.Contains(t, logs.String(), "run_id")
}

func TestDiscoverListingFailureYieldsNoRecords(t *testing.T) {
	platform := &stubPlatform{name: "Windows", listErr: &CommandError{Name: "wmic", Err: errors.New("exit status 1")}}

	var logs bytes.Buffer
	records := NewEngine(platform, DefaultTable(), WithLogger(zerolog.New(&logs))).Discover(context.Background(), nil)

	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Contains(t, logs.String(), "listing candidate devices failed")
}

func TestDiscoverWindowsRecordsCarryNoUSBIDs(t *testing.T) {
	platform := &stubPlatform{
		name:       "Windows",
		candidates: []Candidate{"USB Root Hub", "USB-SERIAL CH340 (COM3)"},
		descriptions: map[Candidate]string{
			"USB Root Hub":            "USB Root Hub",
			"USB-SERIAL CH340 (COM3)": "USB-SERIAL CH340 (COM3) idVendor 1a86",
		},
	}

	records := NewEngine(platform, nil).Discover(context.Background(), nil)

	require.Len(t, records, 1)
	assert.Equal(t, DeviceRecord{
		Path:      "USB-SERIAL CH340 (COM3)",
		Family:    "CH340",
		VendorID:  NotAvailable,
		ProductID: NotAvailable,
	}, records[0])
}

func TestDiscoverSkipsDuplicateCandidates(t *testing.T) {
	platform := mixedPlatform()
	platform.candidates = append(platform.candidates, "/dev/ttyACM0")

	records := NewEngine(platform, DefaultTable()).Discover(context.Background(), nil)

	assert.Len(t, records, 3)
	assert.Len(t, platform.described, 4)
}

func TestDiscoverReportsProgress(t *testing.T) {
	progress := &recordingProgress{}
	records := NewEngine(mixedPlatform(), DefaultTable(), WithProgress(progress)).Discover(context.Background(), nil)

	assert.Equal(t, 4, progress.total)
	assert.Len(t, progress.steps, 4)
	assert.Equal(t, []string{"/dev/ttyACM0", "/dev/ttyUSB0", "/dev/ttyUSB1"}, progress.found)
	assert.Equal(t, len(records), progress.done)
}

func TestDiscoverStopsWhenCancelled(t *testing.T) {
	platform := mixedPlatform()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := NewEngine(platform, DefaultTable()).Discover(ctx, nil)

	assert.Empty(t, records)
	assert.Empty(t, platform.described)
}

func TestDiscoverWithExtendedTable(t *testing.T) {
	table, err := DefaultTable().Extend(Signature{Family: "Pico", Keywords: []string{"RP2040"}})
	require.NoError(t, err)

	platform := &stubPlatform{
		name:         "Linux",
		usbIDs:       true,
		candidates:   []Candidate{"/dev/ttyACM0"},
		descriptions: map[Candidate]string{"/dev/ttyACM0": udevDump("RP2040", "2e8a", "000a")},
	}

	records := NewEngine(platform, table).Discover(context.Background(), []string{"Pico"})
	require.Len(t, records, 1)
	assert.Equal(t, "Pico", records[0].Family)
	assert.Equal(t, "2e8a", records[0].VendorID)
}

func TestInspect(t *testing.T) {
	engine := NewEngine(mixedPlatform(), DefaultTable())

	rec, ok := engine.Inspect(context.Background(), "/dev/ttyUSB1", nil)
	require.True(t, ok)
	assert.Equal(t, "FTDI", rec.Family)

	_, ok = engine.Inspect(context.Background(), "/dev/ttyUSB1", []string{"Arduino"})
	assert.False(t, ok)

	_, ok = engine.Inspect(context.Background(), "/dev/ttyS0", nil)
	assert.False(t, ok)
}
