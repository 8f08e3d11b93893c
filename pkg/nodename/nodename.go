// Package nodename maps infrastructure node names such as
// "rpc-asset-hub-kusama-01" to a deterministic port and private address.
//
// A name is {role}-[chain-]{network}-{instance}. The chain is optional and
// defaults to the relay chain. Ports use five decimal digits:
//
//	3 N C C S
//	| | |   +-- slot: role and instance (boot 0, rpc 1-3, val 4-9)
//	| | +------ chain offset (00-19 system, 20+ custom parachain)
//	| +-------- network digit (1-4 system, 5-8 custom parachain)
//	+---------- always 3
//
// Addresses are 192.168.{role*100 + network*10 + instance}.{offset + 10}.
package nodename

import (
	"fmt"
	"net/netip"
	"path"
	"strconv"
	"strings"
)

const (
	portPrefix = 30000
	minPort    = 30000
	maxPort    = 39999

	addrOffset = 10
)

// Node is a parsed node name.
type Node struct {
	Role     Role
	Chain    Chain
	Network  Network
	Instance int
}

// Parse resolves a node name. Matching is case-insensitive, and a leading
// directory or a trailing .yaml/.yml extension is ignored so manifest file
// names can be passed directly. A trailing slash names a directory and is
// rejected.
func Parse(name string) (Node, error) {
	if strings.HasSuffix(name, "/") {
		return Node{}, newParseError(name, "", ErrMalformedName)
	}
	trimmed := path.Base(name)
	for _, ext := range []string{".yaml", ".yml"} {
		if strings.HasSuffix(strings.ToLower(trimmed), ext) {
			trimmed = trimmed[:len(trimmed)-len(ext)]
			break
		}
	}

	tokens := strings.Split(trimmed, "-")
	if len(tokens) < 3 {
		return Node{}, newParseError(name, "", ErrMalformedName)
	}
	for _, tok := range tokens {
		if tok == "" {
			return Node{}, newParseError(name, "", ErrMalformedName)
		}
	}

	var n Node
	var ok bool

	if n.Role, ok = ParseRole(tokens[0]); !ok {
		return Node{}, newParseError(name, tokens[0], ErrUnknownRole)
	}

	last := tokens[len(tokens)-1]
	instance, err := parseDigits(last)
	if err != nil {
		return Node{}, newParseError(name, last, ErrInvalidInstance)
	}

	netTok := tokens[len(tokens)-2]
	if n.Network, ok = ParseNetwork(netTok); !ok {
		return Node{}, newParseError(name, netTok, ErrUnknownNetwork)
	}

	n.Chain = Relay
	if middle := tokens[1 : len(tokens)-2]; len(middle) > 0 {
		chainTok := strings.Join(middle, "-")
		if n.Chain, ok = ParseChain(chainTok, n.Network); !ok {
			return Node{}, newParseError(name, chainTok, ErrUnknownChain)
		}
	}

	lo, hi := n.Role.InstanceRange()
	if instance < lo || instance > hi {
		pe := newParseError(name, last, ErrInvalidInstance)
		pe.Detail = fmt.Sprintf("%s accepts %d-%d", n.Role, lo, hi)
		return Node{}, pe
	}
	n.Instance = instance

	return n, nil
}

// parseDigits accepts decimal digits only, so "01" and "1" are equal
// while "+1" and "0x1" are rejected.
func parseDigits(tok string) (int, error) {
	for _, r := range tok {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(tok)
}

// Validate checks that every field of n is in range.
func (n Node) Validate() error {
	if !n.Role.valid() {
		return fmt.Errorf("%w: role %d", ErrUnknownRole, int(n.Role))
	}
	if !n.Network.valid() {
		return fmt.Errorf("%w: network %d", ErrUnknownNetwork, int(n.Network))
	}
	if !n.Chain.valid() || !n.Chain.ValidOn(n.Network) {
		return fmt.Errorf("%w: chain %d on %s", ErrUnknownChain, int(n.Chain), n.Network)
	}
	lo, hi := n.Role.InstanceRange()
	if n.Instance < lo || n.Instance > hi {
		return fmt.Errorf("%w: %s instance %d outside %d-%d", ErrInvalidInstance, n.Role, n.Instance, lo, hi)
	}
	return nil
}

// Name returns the canonical name of n. The relay chain is omitted and the
// instance is zero-padded to two digits.
func (n Node) Name() string {
	if n.Chain == Relay {
		return fmt.Sprintf("%s-%s-%02d", n.Role, n.Network, n.Instance)
	}
	return fmt.Sprintf("%s-%s-%s-%02d", n.Role, n.Chain, n.Network, n.Instance)
}

// String implements fmt.Stringer.
func (n Node) String() string {
	return n.Name()
}

// slot returns the final port digit.
func (n Node) slot() int {
	info := roleTable[n.Role]
	return info.slotBase + n.Instance - info.firstInstance
}

func (n Node) networkDigit() int {
	if n.Chain.IsCustom() {
		return networkTable[n.Network].customDigit
	}
	return networkTable[n.Network].systemDigit
}

// Port returns the port of n. n must be valid.
func (n Node) Port() int {
	return portPrefix + n.networkDigit()*1000 + n.Chain.Offset()*10 + n.slot()
}

// Addr returns the private IPv4 address of n. n must be valid.
func (n Node) Addr() netip.Addr {
	third := roleTable[n.Role].code*100 + networkTable[n.Network].systemDigit*10 + n.Instance
	fourth := n.Chain.Offset() + addrOffset
	return netip.AddrFrom4([4]byte{192, 168, byte(third), byte(fourth)})
}

// AddrPort returns Addr and Port combined.
func (n Node) AddrPort() netip.AddrPort {
	return netip.AddrPortFrom(n.Addr(), uint16(n.Port()))
}
