package engine

import (
	"fmt"
	"io"

	"github.com/runZeroInc/runzero-tools/pkg/inventory"
)

const tlsCipherAttribute = "tls.cipher"

// ServiceURL builds the URL for an HTTP service. The boolean is false for
// services whose protocol is not exactly "http"; those are skipped, even if
// TLS is negotiated at another layer.
func ServiceURL(svc inventory.Service) (string, bool, error) {
	if svc.Attributes.Protocol() != "http" {
		return "", false, nil
	}
	key, err := inventory.ParseServiceKey(svc.Key)
	if err != nil {
		return "", false, err
	}
	scheme := "http"
	if svc.Attributes.Has(tlsCipherAttribute) {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%s", scheme, key.Address, key.Port), true, nil
}

// AssetURLs returns the URLs of every HTTP service on the asset, in the
// order the services appear in the export.
func AssetURLs(a inventory.Asset) ([]string, error) {
	if a.Services == nil {
		return nil, &inventory.FieldError{Field: "services"}
	}
	var urls []string
	for _, svc := range a.Services {
		u, ok, err := ServiceURL(svc)
		if err != nil {
			return nil, err
		}
		if ok {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// URLExtractor writes one URL per line for each HTTP service it sees.
type URLExtractor struct {
	Out   io.Writer
	stats Stats
}

// NewURLExtractor creates an extractor writing to out.
func NewURLExtractor(out io.Writer) *URLExtractor {
	return &URLExtractor{Out: out}
}

// Process emits the asset's URLs.
func (e *URLExtractor) Process(a inventory.Asset) error {
	e.stats.Assets++
	urls, err := AssetURLs(a)
	if err != nil {
		return err
	}
	for _, u := range urls {
		if _, err := fmt.Fprintln(e.Out, u); err != nil {
			return err
		}
		e.stats.Emitted++
	}
	return nil
}

// Stats returns the counters for the run so far.
func (e *URLExtractor) Stats() Stats { return e.stats }
