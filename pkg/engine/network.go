package engine

import (
	"encoding/binary"
	"net/netip"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrUnsupportedNetwork is returned for networks that are not IPv4.
var ErrUnsupportedNetwork = errors.New("only IPv4 networks are supported")

// Network is a critical network expanded to its inclusive numeric bounds.
type Network struct {
	Prefix netip.Prefix
	First  uint32
	Last   uint32
}

// ParseNetwork parses "a.b.c.d/n" or a bare "a.b.c.d" (taken as a /32).
// Host bits are masked off, so 10.0.0.5/24 covers 10.0.0.0-10.0.0.255.
func ParseNetwork(s string) (Network, error) {
	s = strings.TrimSpace(s)

	var prefix netip.Prefix
	if strings.Contains(s, "/") {
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return Network{}, errors.Wrapf(err, "invalid network %q", s)
		}
		prefix = p
	} else {
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return Network{}, errors.Wrapf(err, "invalid network %q", s)
		}
		prefix = netip.PrefixFrom(addr, addr.BitLen())
	}

	if !prefix.Addr().Is4() {
		return Network{}, errors.Wrapf(ErrUnsupportedNetwork, "network %q", s)
	}

	prefix = prefix.Masked()
	first := addrToUint32(prefix.Addr())
	return Network{
		Prefix: prefix,
		First:  first,
		Last:   first | ^uint32(0)>>prefix.Bits(),
	}, nil
}

// Contains reports whether ip falls within [First, Last].
func (n Network) Contains(ip uint32) bool {
	return ip >= n.First && ip <= n.Last
}

func (n Network) String() string { return n.Prefix.String() }

// NetworkSet is the set of critical networks for one run.
type NetworkSet []Network

// ParseNetworks parses every entry, failing on the first bad one.
func ParseNetworks(cidrs []string) (NetworkSet, error) {
	set := make(NetworkSet, 0, len(cidrs))
	for _, s := range cidrs {
		n, err := ParseNetwork(s)
		if err != nil {
			return nil, err
		}
		set = append(set, n)
	}
	return set, nil
}

// Contains reports whether the dotted-quad address is inside any network.
func (s NetworkSet) Contains(addr string) (bool, error) {
	ip, err := ParseIPv4(addr)
	if err != nil {
		return false, err
	}
	for _, n := range s {
		if n.Contains(ip) {
			return true, nil
		}
	}
	return false, nil
}

// ParseIPv4 converts a dotted-quad address to its 32-bit value.
func ParseIPv4(s string) (uint32, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid address %q", s)
	}
	if !addr.Is4() {
		return 0, errors.Newf("invalid address %q: not IPv4", s)
	}
	return addrToUint32(addr), nil
}

func addrToUint32(addr netip.Addr) uint32 {
	b := addr.As4()
	return binary.BigEndian.Uint32(b[:])
}
