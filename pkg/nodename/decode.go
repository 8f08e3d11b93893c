package nodename

import (
	"fmt"
	"net/netip"
	"slices"
)

// ParsePort reads a port number written in decimal digits only, the same
// rule Parse applies to instances. The range is checked by DecodePort.
func ParsePort(tok string) (int, error) {
	port, err := parseDigits(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidPort, tok)
	}
	return port, nil
}

// DecodePort reverses Port.
func DecodePort(port int) (Node, error) {
	if port < minPort || port > maxPort {
		return Node{}, fmt.Errorf("%w: %d is outside %d-%d", ErrInvalidPort, port, minPort, maxPort)
	}

	digit := (port / 1000) % 10
	offset := (port / 10) % 100
	slot := port % 10

	var n Node
	network, custom, ok := networkForDigit(digit)
	if !ok {
		return Node{}, fmt.Errorf("%w: %d: no network uses digit %d", ErrInvalidPort, port, digit)
	}
	n.Network = network

	if n.Chain, ok = chainAt(network, offset, custom); !ok {
		return Node{}, fmt.Errorf("%w: %d: no chain at offset %02d on %s", ErrInvalidPort, port, offset, network)
	}

	if n.Role, n.Instance, ok = roleForSlot(slot); !ok {
		return Node{}, fmt.Errorf("%w: %d: no role owns slot %d", ErrInvalidPort, port, slot)
	}

	if err := n.Validate(); err != nil {
		return Node{}, fmt.Errorf("%w: %d: %v", ErrInvalidPort, port, err)
	}
	return n, nil
}

// DecodeAddr reverses Addr.
func DecodeAddr(addr netip.Addr) (Node, error) {
	if !addr.Is4() {
		return Node{}, fmt.Errorf("%w: %s is not IPv4", ErrInvalidAddr, addr)
	}
	b := addr.As4()
	if b[0] != 192 || b[1] != 168 {
		return Node{}, fmt.Errorf("%w: %s is outside 192.168.0.0/16", ErrInvalidAddr, addr)
	}

	code := int(b[2]) / 100
	digit := (int(b[2]) / 10) % 10
	instance := int(b[2]) % 10
	offset := int(b[3]) - addrOffset

	var n Node
	var ok bool
	if n.Role, ok = roleForCode(code); !ok {
		return Node{}, fmt.Errorf("%w: %s: no role has code %d", ErrInvalidAddr, addr, code)
	}
	network, custom, ok := networkForDigit(digit)
	if !ok || custom {
		return Node{}, fmt.Errorf("%w: %s: no network uses digit %d", ErrInvalidAddr, addr, digit)
	}
	n.Network = network

	if offset < 0 || offset > maxOffset {
		return Node{}, fmt.Errorf("%w: %s: last octet must be %d-%d", ErrInvalidAddr, addr, addrOffset, maxOffset+addrOffset)
	}
	if n.Chain, ok = chainAt(network, offset, offset > maxSystemOffset); !ok {
		return Node{}, fmt.Errorf("%w: %s: no chain at offset %02d on %s", ErrInvalidAddr, addr, offset, network)
	}

	lo, hi := n.Role.InstanceRange()
	if instance < lo || instance > hi {
		return Node{}, fmt.Errorf("%w: %s: %s instance %d outside %d-%d", ErrInvalidAddr, addr, n.Role, instance, lo, hi)
	}
	n.Instance = instance

	if err := n.Validate(); err != nil {
		return Node{}, fmt.Errorf("%w: %s: %v", ErrInvalidAddr, addr, err)
	}
	return n, nil
}

func networkForDigit(digit int) (n Network, custom bool, ok bool) {
	for i, info := range networkTable {
		switch digit {
		case info.systemDigit:
			return Network(i), false, true
		case info.customDigit:
			return Network(i), true, true
		}
	}
	return 0, false, false
}

func roleForSlot(slot int) (Role, int, bool) {
	for i, info := range roleTable {
		if slot >= info.slotBase && slot < info.slotBase+info.slots {
			return Role(i), info.firstInstance + slot - info.slotBase, true
		}
	}
	return 0, 0, false
}

func roleForCode(code int) (Role, bool) {
	for i, info := range roleTable {
		if info.code == code {
			return Role(i), true
		}
	}
	return 0, false
}

// ForNetwork returns every valid node on n, ordered by port.
func ForNetwork(n Network) []Node {
	var nodes []Node
	for _, c := range ChainsFor(n) {
		for _, r := range Roles() {
			lo, hi := r.InstanceRange()
			for i := lo; i <= hi; i++ {
				nodes = append(nodes, Node{Role: r, Chain: c, Network: n, Instance: i})
			}
		}
	}
	slices.SortFunc(nodes, func(a, b Node) int {
		return a.Port() - b.Port()
	})
	return nodes
}

// All returns every valid node on every network, ordered by port.
func All() []Node {
	var nodes []Node
	for _, n := range Networks() {
		nodes = append(nodes, ForNetwork(n)...)
	}
	slices.SortFunc(nodes, func(a, b Node) int {
		return a.Port() - b.Port()
	})
	return nodes
}
