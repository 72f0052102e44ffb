package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/runZeroInc/runzero-tools/pkg/inventory"
)

// Bridge is the classification of one asset's IPv4 addresses against the
// critical networks.
type Bridge struct {
	Primary     string
	Critical    []string
	NonCritical []string
}

// IsBridge reports whether the asset has addresses on both sides.
func (b Bridge) IsBridge() bool {
	return len(b.Critical) > 0 && len(b.NonCritical) > 0
}

func (b Bridge) String() string {
	return fmt.Sprintf(" * %s bridges non-critical networks (%s) to critical networks via %s",
		b.Primary, strings.Join(b.NonCritical, ", "), strings.Join(b.Critical, ", "))
}

// Classify sorts the asset's primary and extra addresses into critical and
// non-critical. Addresses containing ":" are IPv6 and are ignored. Both
// address lists must be present, even if empty.
func Classify(a inventory.Asset, nets NetworkSet) (Bridge, error) {
	if a.Addresses == nil {
		return Bridge{}, &inventory.FieldError{Field: "addresses"}
	}
	if a.AddressesExtra == nil {
		return Bridge{}, &inventory.FieldError{Field: "addresses_extra"}
	}

	var b Bridge
	if len(a.Addresses) > 0 {
		b.Primary = a.Addresses[0]
	}
	for _, addr := range a.AllAddresses() {
		if strings.Contains(addr, ":") {
			continue
		}
		critical, err := nets.Contains(addr)
		if err != nil {
			return Bridge{}, err
		}
		if critical {
			b.Critical = append(b.Critical, addr)
		} else {
			b.NonCritical = append(b.NonCritical, addr)
		}
	}
	return b, nil
}

// BridgeDetector reports assets that bridge critical and non-critical
// networks. Each report is followed by a blank line.
type BridgeDetector struct {
	Networks NetworkSet
	Out      io.Writer
	stats    Stats
}

// NewBridgeDetector creates a detector for the given critical networks.
func NewBridgeDetector(nets NetworkSet, out io.Writer) *BridgeDetector {
	return &BridgeDetector{Networks: nets, Out: out}
}

// Process classifies the asset and reports it if it is a bridge.
func (d *BridgeDetector) Process(a inventory.Asset) error {
	d.stats.Assets++
	b, err := Classify(a, d.Networks)
	if err != nil {
		return err
	}
	if !b.IsBridge() {
		return nil
	}
	if _, err := fmt.Fprintf(d.Out, "%s\n\n", b); err != nil {
		return err
	}
	d.stats.Emitted++
	return nil
}

// Stats returns the counters for the run so far.
func (d *BridgeDetector) Stats() Stats { return d.stats }
