// Package render writes resolved nodes in the output formats of the portgen
// command line.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/portgen/pkg/metrics"
	"github.com/dd0wney/portgen/pkg/nodename"
	"github.com/dd0wney/portgen/pkg/validation"
)

// Format selects how nodes are written.
type Format string

const (
	FormatName  Format = "name"
	FormatPort  Format = "port"
	FormatAddr  Format = "addr"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
	FormatProm  Format = "prom"
)

// Formats lists every accepted format name.
func Formats() []string {
	return []string{string(FormatName), string(FormatPort), string(FormatAddr), string(FormatJSON), string(FormatYAML), string(FormatTable), string(FormatProm)}
}

// Endpoint is the structured record emitted by the json and yaml formats.
type Endpoint struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	Role     string `json:"role" yaml:"role" validate:"oneof=boot rpc val"`
	Chain    string `json:"chain" yaml:"chain" validate:"required"`
	Network  string `json:"network" yaml:"network" validate:"oneof=polkadot kusama westend paseo"`
	Instance int    `json:"instance" yaml:"instance" validate:"min=0,max=9"`
	Port     int    `json:"port" yaml:"port" validate:"nodeport"`
	IP       string `json:"ip" yaml:"ip" validate:"ip4_addr"`
	Addr     string `json:"addr" yaml:"addr" validate:"hostname_port"`
}

// NewEndpoint builds the record for n.
func NewEndpoint(n nodename.Node) Endpoint {
	return Endpoint{
		Name:     n.Name(),
		Role:     n.Role.String(),
		Chain:    n.Chain.String(),
		Network:  n.Network.String(),
		Instance: n.Instance,
		Port:     n.Port(),
		IP:       n.Addr().String(),
		Addr:     n.AddrPort().String(),
	}
}

// Write renders nodes to w. A single node in json or yaml is written as an
// object, several as a list.
func Write(w io.Writer, format Format, nodes ...nodename.Node) error {
	switch format {
	case FormatName:
		for _, n := range nodes {
			if _, err := fmt.Fprintln(w, n.Name()); err != nil {
				return err
			}
		}
		return nil

	case FormatPort:
		for _, n := range nodes {
			if _, err := fmt.Fprintln(w, n.Port()); err != nil {
				return err
			}
		}
		return nil

	case FormatAddr:
		for _, n := range nodes {
			if _, err := fmt.Fprintln(w, n.AddrPort()); err != nil {
				return err
			}
		}
		return nil

	case FormatJSON, FormatYAML:
		records, err := endpoints(nodes)
		if err != nil {
			return err
		}
		var v any = records
		if len(records) == 1 {
			v = records[0]
		}
		if format == FormatJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()

	case FormatTable:
		_, err := io.WriteString(w, Table(w, nodes)+"\n")
		return err

	case FormatProm:
		reg := metrics.NewRegistry()
		reg.RecordNodes(nodes...)
		return reg.WriteText(w)

	default:
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats(), ", "))
	}
}

func endpoints(nodes []nodename.Node) ([]Endpoint, error) {
	records := make([]Endpoint, 0, len(nodes))
	for _, n := range nodes {
		rec := NewEndpoint(n)
		if err := validation.Struct(rec); err != nil {
			return nil, fmt.Errorf("endpoint %s: %w", rec.Name, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
