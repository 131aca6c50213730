package boardfinder

import (
	"fmt"
	"regexp"
	"strings"
)

// NotAvailable marks vendor/product fields the platform does not report.
const NotAvailable = "N/A"

// Candidate is a raw device identifier reported by the OS: a device path on
// POSIX systems, a PnP caption on Windows.
type Candidate string

// DeviceRecord is the classified result of inspecting one candidate.
type DeviceRecord struct {
	Path      string
	Family    string
	VendorID  string
	ProductID string
}

// HasVendor reports whether a vendor ID was extracted.
func (r DeviceRecord) HasVendor() bool {
	return r.VendorID != "" && r.VendorID != NotAvailable
}

// HasProduct reports whether a product ID was extracted.
func (r DeviceRecord) HasProduct() bool {
	return r.ProductID != "" && r.ProductID != NotAvailable
}

func (r DeviceRecord) String() string {
	return fmt.Sprintf("%s - Family: %s", r.Path, r.Family)
}

var (
	vendorPattern  = regexp.MustCompile(`(?m)idVendor\b[^\w\n]*(?:0x)?(\w+)`)
	productPattern = regexp.MustCompile(`(?m)idProduct\b[^\w\n]*(?:0x)?(\w+)`)
)

// extractUSBID returns the value following the first key occurrence, e.g.
// `ATTRS{idVendor}=="10c4"` yields "10c4".
func extractUSBID(pattern *regexp.Regexp, description string) string {
	m := pattern.FindStringSubmatch(description)
	if m == nil {
		return NotAvailable
	}
	return m[1]
}

// Select returns the first record whose path contains query.
func Select(records []DeviceRecord, query string) (DeviceRecord, error) {
	for _, r := range records {
		if strings.Contains(r.Path, query) {
			return r, nil
		}
	}
	return DeviceRecord{}, fmt.Errorf("%w: %s", ErrDeviceNotFound, query)
}
