package boardfinder

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// fakeRunner answers commands from a table keyed by "name arg1 arg2 ...".
// Unknown commands fail like a missing binary.
type fakeRunner struct {
	mu      sync.Mutex
	outputs map[string]string
	errs    map[string]error
	calls   []string
	stdin   []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		outputs: make(map[string]string),
		errs:    make(map[string]error),
	}
}

func (f *fakeRunner) on(output string, name string, args ...string) *fakeRunner {
	f.outputs[commandKey(name, args)] = output
	return f
}

func (f *fakeRunner) fail(err error, name string, args ...string) *fakeRunner {
	f.errs[commandKey(name, args)] = err
	return f
}

func (f *fakeRunner) Run(_ context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := commandKey(name, args)
	f.calls = append(f.calls, key)
	if stdin != nil {
		b, _ := io.ReadAll(stdin)
		f.stdin = append(f.stdin, string(b))
	}
	if err, ok := f.errs[key]; ok {
		return nil, &CommandError{Name: name, Args: args, Err: err}
	}
	if out, ok := f.outputs[key]; ok {
		return []byte(out), nil
	}
	return nil, &CommandError{Name: name, Args: args, Err: errors.New("executable file not found in $PATH")}
}

func (f *fakeRunner) callCount(name string, args ...string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := commandKey(name, args)
	n := 0
	for _, c := range f.calls {
		if c == key {
			n++
		}
	}
	return n
}

func commandKey(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

// udevDump builds a trimmed `udevadm info -a` style attribute walk.
func udevDump(product, vendor, productID string) string {
	return `
Udevadm info starts with the device specified by the devpath and then
walks up the chain of parent devices.

  looking at device '/devices/pci0000:00/0000:00:14.0/usb1/1-2/1-2:1.0/ttyUSB0/tty/ttyUSB0':
    KERNEL=="ttyUSB0"
    SUBSYSTEM=="tty"

  looking at parent device '/devices/pci0000:00/0000:00:14.0/usb1/1-2':
    ATTRS{idProduct}=="` + productID + `"
    ATTRS{idVendor}=="` + vendor + `"
    ATTRS{product}=="` + product + `"

  looking at parent device '/devices/pci0000:00/0000:00:14.0/usb1':
    ATTRS{idProduct}=="0002"
    ATTRS{idVendor}=="1d6b"
    ATTRS{product}=="xHCI Host Controller"
`
}
