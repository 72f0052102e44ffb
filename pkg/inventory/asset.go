package inventory

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

// Asset is one host record from a runZero asset export.
//
// A nil slice means the field was absent (or null) in the export, an empty
// non-nil slice means it was present but empty.
type Asset struct {
	Addresses      []string `json:"addresses"`
	AddressesExtra []string `json:"addresses_extra"`
	Services       Services `json:"services"`
}

// AllAddresses returns the primary addresses followed by the extra addresses.
func (a Asset) AllAddresses() []string {
	out := make([]string, 0, len(a.Addresses)+len(a.AddressesExtra))
	out = append(out, a.Addresses...)
	return append(out, a.AddressesExtra...)
}

// Service is one entry of an asset's service mapping.
type Service struct {
	Key        string
	Attributes Attributes
}

// Services keeps the export's service mapping in document order.
type Services []Service

// UnmarshalJSON decodes the services object token by token so the order of
// keys survives the round trip through Go. A repeated key keeps the position
// of its first occurrence and the value of its last.
func (s *Services) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.Newf("services: expected object, got %v", tok)
	}

	out := Services{}
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return errors.Newf("services: unexpected key %v", tok)
		}
		var attrs Attributes
		if err := dec.Decode(&attrs); err != nil {
			return errors.Wrapf(err, "service %q", key)
		}
		if i, ok := seen[key]; ok {
			out[i].Attributes = attrs
			continue
		}
		seen[key] = len(out)
		out = append(out, Service{Key: key, Attributes: attrs})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = out
	return nil
}

// Attributes holds the raw attribute values of a service.
type Attributes map[string]json.RawMessage

// Has reports whether the attribute key is present, whatever its value.
func (a Attributes) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// String returns the attribute as a string. Missing keys and non-string
// values report false.
func (a Attributes) String(key string) (string, bool) {
	raw, ok := a[key]
	if !ok {
		return "", false
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	return v, true
}

// Protocol returns the service protocol, or "" when it is not set.
func (a Attributes) Protocol() string {
	p, _ := a.String("protocol")
	return p
}

// ServiceKey is the parsed form of an "address/port/name" service key.
type ServiceKey struct {
	Address string
	Port    string
	Name    string
}

// ParseServiceKey splits a service key on "/". The name part is optional.
func ParseServiceKey(key string) (ServiceKey, error) {
	parts := strings.SplitN(key, "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return ServiceKey{}, &ServiceKeyError{Key: key}
	}
	sk := ServiceKey{Address: parts[0], Port: parts[1]}
	if len(parts) == 3 {
		sk.Name = parts[2]
	}
	return sk, nil
}
