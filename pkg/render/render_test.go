package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/portgen/pkg/nodename"
)

func mustParse(t *testing.T, name string) nodename.Node {
	t.Helper()
	n, err := nodename.Parse(name)
	require.NoError(t, err)
	return n
}

func TestWrite_Port(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPort, mustParse(t, "boot-polkadot-00")))
	assert.Equal(t, "31000\n", buf.String())
}

func TestWrite_Name(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatName, mustParse(t, "Validator-Kusama-2.yaml")))
	assert.Equal(t, "val-kusama-02\n", buf.String())
}

func TestWrite_Addr(t *testing.T) {
	var buf bytes.Buffer
	nodes := []nodename.Node{
		mustParse(t, "rpc-asset-hub-kusama-01"),
		mustParse(t, "val-people-westend-01"),
	}
	require.NoError(t, Write(&buf, FormatAddr, nodes...))
	assert.Equal(t, "192.168.121.11:32011\n192.168.231.14:33044\n", buf.String())
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, mustParse(t, "val-kilt-polkadot-01")))

	var got Endpoint
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, Endpoint{
		Name:     "val-kilt-polkadot-01",
		Role:     "val",
		Chain:    "kilt",
		Network:  "polkadot",
		Instance: 1,
		Port:     35244,
		IP:       "192.168.211.34",
		Addr:     "192.168.211.34:35244",
	}, got)
}

func TestWrite_JSONList(t *testing.T) {
	var buf bytes.Buffer
	nodes := nodename.ForNetwork(nodename.Paseo)
	require.NoError(t, Write(&buf, FormatJSON, nodes...))

	var got []Endpoint
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, len(nodes))
	assert.Equal(t, "boot-paseo-00", got[0].Name)
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, mustParse(t, "rpc-polkadot-02")))
	assert.Contains(t, buf.String(), "name: rpc-polkadot-02\n")

	var got Endpoint
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, NewEndpoint(mustParse(t, "rpc-polkadot-02")), got)
}

func TestWrite_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, mustParse(t, "rpc-polkadot-01"), mustParse(t, "val-karura-kusama-03")))

	out := buf.String()
	for _, want := range append(TableHeaders, "rpc-polkadot-01", "31001", "192.168.111.10", "val-karura-kusama-03", "36236") {
		assert.Contains(t, out, want)
	}
}

func TestWrite_Prom(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatProm, mustParse(t, "rpc-asset-hub-kusama-01")))
	out := buf.String()
	assert.Contains(t, out, "# HELP portgen_node_port")
	assert.Contains(t, out, `name="rpc-asset-hub-kusama-01"`)
	assert.Contains(t, out, `address="192.168.121.11"`)
	assert.Contains(t, out, "} 32011\n")
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Format("xml"), mustParse(t, "rpc-polkadot-01"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"xml"`)
	assert.Empty(t, buf.String())
}

func TestWrite_InvalidNodeRejected(t *testing.T) {
	var buf bytes.Buffer
	bad := nodename.Node{Role: nodename.Validator, Network: nodename.Kusama, Instance: 12}
	err := Write(&buf, FormatJSON, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Instance")
	assert.Empty(t, buf.String())
}

func TestError(t *testing.T) {
	_, err := nodename.Parse("rpc-nonexistent-polkadot-01")
	require.Error(t, err)

	var buf bytes.Buffer
	Error(&buf, err)

	out := buf.String()
	assert.Contains(t, out, "error[UnknownChain]:")
	assert.Contains(t, out, `unknown chain "nonexistent"`)
	assert.Contains(t, out, nodename.Expected)
	assert.Contains(t, out, "example:")
}

func TestError_Plain(t *testing.T) {
	var buf bytes.Buffer
	Error(&buf, errors.New("boom"))
	assert.Equal(t, "error: boom", strings.TrimSpace(buf.String()))
}
