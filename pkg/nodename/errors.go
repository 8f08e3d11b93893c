package nodename

import (
	"errors"
	"fmt"
)

// Expected is the name layout quoted in parse errors.
const Expected = "{role}-[chain-]{network}-{instance}"

// Parse error kinds
var (
	ErrMalformedName   = errors.New("malformed name")
	ErrUnknownRole     = errors.New("unknown role")
	ErrUnknownNetwork  = errors.New("unknown network")
	ErrUnknownChain    = errors.New("unknown chain")
	ErrInvalidInstance = errors.New("invalid instance")
)

// Decode errors
var (
	ErrInvalidPort = errors.New("invalid port")
	ErrInvalidAddr = errors.New("invalid address")
)

// ParseError describes why a node name could not be resolved.
type ParseError struct {
	Name   string // Full input name
	Token  string // Offending token, empty when the name as a whole is malformed
	Kind   error  // One of the ErrXxx parse sentinels
	Detail string // Optional extra context, e.g. the accepted range
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := e.Kind.Error()
	if e.Token != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Token)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Detail)
	}
	return fmt.Sprintf("%s in %q: expected %s", msg, e.Name, Expected)
}

// Unwrap returns the kind sentinel so errors.Is matches it.
func (e *ParseError) Unwrap() error {
	return e.Kind
}

func newParseError(name, token string, kind error) *ParseError {
	return &ParseError{Name: name, Token: token, Kind: kind}
}

// KindName returns the short taxonomy name of a parse error kind,
// e.g. "UnknownChain". It returns "" for errors that are not parse errors.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrMalformedName):
		return "MalformedName"
	case errors.Is(err, ErrUnknownRole):
		return "UnknownRole"
	case errors.Is(err, ErrUnknownNetwork):
		return "UnknownNetwork"
	case errors.Is(err, ErrUnknownChain):
		return "UnknownChain"
	case errors.Is(err, ErrInvalidInstance):
		return "InvalidInstance"
	default:
		return ""
	}
}

// IsParseError returns true if err came from Parse.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
