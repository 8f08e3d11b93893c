package nodename

import (
	"slices"
	"strings"
)

// Role is the function a node serves on its chain.
type Role int

const (
	// Bootnode serves peer discovery only
	Bootnode Role = iota
	// RPC serves public or internal JSON-RPC
	RPC
	// Validator takes part in consensus
	Validator
)

// roleInfo describes how a role is encoded.
//
// A role owns the port slot digits [slotBase, slotBase+slots) and accepts the
// instance numbers [firstInstance, firstInstance+slots).
type roleInfo struct {
	token         string
	code          int
	slotBase      int
	firstInstance int
	slots         int
}

var roleTable = [...]roleInfo{
	Bootnode:  {token: "boot", code: 0, slotBase: 0, firstInstance: 0, slots: 1},
	RPC:       {token: "rpc", code: 1, slotBase: 1, firstInstance: 1, slots: 3},
	Validator: {token: "val", code: 2, slotBase: 4, firstInstance: 1, slots: 6},
}

var roleTokens = map[string]Role{
	"boot":      Bootnode,
	"bootnode":  Bootnode,
	"rpc":       RPC,
	"val":       Validator,
	"validator": Validator,
}

// String returns the canonical name token of the role
func (r Role) String() string {
	if r < 0 || int(r) >= len(roleTable) {
		return "unknown"
	}
	return roleTable[r].token
}

// InstanceRange returns the lowest and highest instance number the role accepts.
func (r Role) InstanceRange() (lo, hi int) {
	info := roleTable[r]
	return info.firstInstance, info.firstInstance + info.slots - 1
}

func (r Role) valid() bool {
	return r >= 0 && int(r) < len(roleTable)
}

// Roles returns every role in encoding order.
func Roles() []Role {
	return []Role{Bootnode, RPC, Validator}
}

// ParseRole resolves a role token, case-insensitively.
func ParseRole(token string) (Role, bool) {
	r, ok := roleTokens[strings.ToLower(token)]
	return r, ok
}

// Network is a relay-chain network.
type Network int

const (
	Polkadot Network = iota
	Kusama
	Westend
	Paseo
)

// networkInfo holds the leading port digits of a network. System chains
// use systemDigit, custom parachains use customDigit.
type networkInfo struct {
	token       string
	systemDigit int
	customDigit int
}

var networkTable = [...]networkInfo{
	Polkadot: {token: "polkadot", systemDigit: 1, customDigit: 5},
	Kusama:   {token: "kusama", systemDigit: 2, customDigit: 6},
	Westend:  {token: "westend", systemDigit: 3, customDigit: 7},
	Paseo:    {token: "paseo", systemDigit: 4, customDigit: 8},
}

var networkTokens = map[string]Network{
	"polkadot": Polkadot,
	"kusama":   Kusama,
	"westend":  Westend,
	"paseo":    Paseo,
}

func (n Network) String() string {
	if n < 0 || int(n) >= len(networkTable) {
		return "unknown"
	}
	return networkTable[n].token
}

func (n Network) valid() bool {
	return n >= 0 && int(n) < len(networkTable)
}

// Networks returns every network in digit order.
func Networks() []Network {
	return []Network{Polkadot, Kusama, Westend, Paseo}
}

// ParseNetwork resolves a network token, case-insensitively.
func ParseNetwork(token string) (Network, bool) {
	n, ok := networkTokens[strings.ToLower(token)]
	return n, ok
}

// Chain is the relay chain itself or one of its parachains.
type Chain int

const (
	Relay Chain = iota
	AssetHub
	BridgeHub
	Collectives
	People
	Coretime
	Encointer
	Moonbeam
	Hyperbridge
	Interlay
	Acala
	Kilt
	Kintsugi
	Karura
	Gargantua
)

// Offsets 00-19 are system chains, valid on every network. Offsets 20 and
// up are custom parachains, valid only on their home network.
const (
	maxSystemOffset = 19
	maxOffset       = 99
)

type chainInfo struct {
	token  string
	offset int
	custom bool
	home   Network
}

var chainTable = [...]chainInfo{
	Relay:       {token: "relay", offset: 0},
	AssetHub:    {token: "asset-hub", offset: 1},
	BridgeHub:   {token: "bridge-hub", offset: 2},
	Collectives: {token: "collectives", offset: 3},
	People:      {token: "people", offset: 4},
	Coretime:    {token: "coretime", offset: 5},
	Encointer:   {token: "encointer", offset: 6},
	Moonbeam:    {token: "moonbeam", offset: 20, custom: true, home: Polkadot},
	Hyperbridge: {token: "hyperbridge", offset: 21, custom: true, home: Polkadot},
	Interlay:    {token: "interlay", offset: 22, custom: true, home: Polkadot},
	Acala:       {token: "acala", offset: 23, custom: true, home: Polkadot},
	Kilt:        {token: "kilt", offset: 24, custom: true, home: Polkadot},
	Kintsugi:    {token: "kintsugi", offset: 22, custom: true, home: Kusama},
	Karura:      {token: "karura", offset: 23, custom: true, home: Kusama},
	Gargantua:   {token: "gargantua", offset: 21, custom: true, home: Paseo},
}

var chainTokens = func() map[string]Chain {
	m := make(map[string]Chain, len(chainTable))
	for c, info := range chainTable {
		m[info.token] = Chain(c)
	}
	return m
}()

func (c Chain) String() string {
	if c < 0 || int(c) >= len(chainTable) {
		return "unknown"
	}
	return chainTable[c].token
}

// Offset returns the two-digit chain offset.
func (c Chain) Offset() int {
	return chainTable[c].offset
}

// IsCustom reports whether c is a third-party parachain.
func (c Chain) IsCustom() bool {
	return chainTable[c].custom
}

// ValidOn reports whether c can run on network n.
func (c Chain) ValidOn(n Network) bool {
	info := chainTable[c]
	return !info.custom || info.home == n
}

func (c Chain) valid() bool {
	return c >= 0 && int(c) < len(chainTable)
}

// ParseChain resolves a (possibly hyphenated) chain token on network n.
// Custom parachains only resolve on their home network.
func ParseChain(token string, n Network) (Chain, bool) {
	c, ok := chainTokens[strings.ToLower(token)]
	if !ok || !c.ValidOn(n) {
		return 0, false
	}
	return c, true
}

// ChainsFor returns the chains valid on n, ordered by offset.
func ChainsFor(n Network) []Chain {
	var chains []Chain
	for c := range chainTable {
		if Chain(c).ValidOn(n) {
			chains = append(chains, Chain(c))
		}
	}
	// chainTable lists custom chains grouped by network, not by offset
	slices.SortFunc(chains, func(a, b Chain) int {
		return a.Offset() - b.Offset()
	})
	return chains
}

// chainAt finds the chain with the given offset on n.
func chainAt(n Network, offset int, custom bool) (Chain, bool) {
	for c, info := range chainTable {
		if info.offset == offset && info.custom == custom && Chain(c).ValidOn(n) {
			return Chain(c), true
		}
	}
	return 0, false
}
