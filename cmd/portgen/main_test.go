package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_Resolve(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"boot-polkadot-00"}, "31000\n"},
		{[]string{"rpc-asset-hub-kusama-01"}, "32011\n"},
		{[]string{"val-people-westend-01"}, "33044\n"},
		{[]string{"val-kilt-polkadot-01"}, "35244\n"},
		{[]string{"rpc-polkadot-1"}, "31001\n"},
		{[]string{"-format", "addr", "rpc-asset-hub-kusama-01"}, "192.168.121.11:32011\n"},
		{[]string{"rpc-asset-hub-kusama-01", "-format=addr"}, "192.168.121.11:32011\n"},
		{[]string{"-format", "name", "Validator-Kusama-2.yaml"}, "val-kusama-02\n"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			code, stdout, stderr := runCLI(tt.args...)
			assert.Equal(t, exitOK, code)
			assert.Equal(t, tt.want, stdout)
			assert.Empty(t, stderr)
		})
	}
}

func TestRun_ResolveJSON(t *testing.T) {
	code, stdout, _ := runCLI("-format", "json", "val-people-westend-01")
	require.Equal(t, exitOK, code)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "val-people-westend-01", got["name"])
	assert.Equal(t, float64(33044), got["port"])
	assert.Equal(t, "192.168.231.14", got["ip"])
}

func TestRun_ResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		kind string
	}{
		{"foo", "MalformedName"},
		{"rpc-nonexistent-polkadot-01", "UnknownChain"},
		{"collator-polkadot-01", "UnknownRole"},
		{"rpc-rococo-01", "UnknownNetwork"},
		{"rpc-polkadot-zz", "InvalidInstance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(tt.name)
			assert.Equal(t, exitFailure, code)
			assert.Empty(t, stdout, "no partial output on error")
			assert.Contains(t, stderr, "error["+tt.kind+"]")
			assert.Contains(t, stderr, "{role}-[chain-]{network}-{instance}")
			assert.NotContains(t, stderr, `"level"`, "no log lines without -v")
		})
	}
}

func TestRun_VerboseLogs(t *testing.T) {
	code, stdout, stderr := runCLI("-v", "rpc-polkadot-02")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "31002\n", stdout)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(stderr)), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "resolve", entry["msg"])

	fields, ok := entry["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "rpc-polkadot-02", fields["node_name"])
	assert.Equal(t, float64(31002), fields["port"])
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no args", nil, exitUsage},
		{"two names", []string{"rpc-polkadot-01", "rpc-kusama-01"}, exitUsage},
		{"bad format", []string{"-format", "xml", "rpc-polkadot-01"}, exitUsage},
		{"bad flag", []string{"-nope", "rpc-polkadot-01"}, exitUsage},
		{"bad network flag", []string{"list", "-network", "rococo"}, exitUsage},
		{"list with args", []string{"list", "extra"}, exitUsage},
		{"flag help", []string{"-h"}, exitOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, _ := runCLI(tt.args...)
			assert.Equal(t, tt.code, code)
			if tt.code != exitOK {
				assert.Empty(t, stdout)
			}
		})
	}
}

func TestRun_HelpAndVersion(t *testing.T) {
	code, stdout, _ := runCLI("help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "portgen decode")

	code, stdout, _ = runCLI("version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, version+"\n", stdout)
}

func TestRun_AddrOutputDecodes(t *testing.T) {
	for _, n := range []string{"boot-polkadot-00", "val-kilt-polkadot-01", "rpc-karura-kusama-03"} {
		code, addr, _ := runCLI("-format", "addr", n)
		require.Equal(t, exitOK, code)

		code, name, stderr := runCLI("decode", strings.TrimSpace(addr))
		require.Equal(t, exitOK, code, stderr)
		assert.Equal(t, n+"\n", name)
	}
}

func TestRun_DoubleDash(t *testing.T) {
	code, stdout, _ := runCLI("-format", "name", "--", "rpc-polkadot-01")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "rpc-polkadot-01\n", stdout)

	// after "--" a flag-like token is an argument, not a flag
	code, stdout, _ = runCLI("rpc-polkadot-01", "--", "-format", "json")
	assert.Equal(t, exitUsage, code)
	assert.Empty(t, stdout)

	code, stdout, stderr := runCLI("--", "-v")
	assert.Equal(t, exitFailure, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "error[MalformedName]")
}

func TestRun_Decode(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"decode", "31000"}, "boot-polkadot-00\n"},
		{[]string{"decode", "32011"}, "rpc-asset-hub-kusama-01\n"},
		{[]string{"decode", "192.168.231.14"}, "val-people-westend-01\n"},
		{[]string{"decode", "-format", "addr", "35244"}, "192.168.211.34:35244\n"},
		{[]string{"decode", "192.168.121.11:32011"}, "rpc-asset-hub-kusama-01\n"},
		{[]string{"decode", "032011"}, "rpc-asset-hub-kusama-01\n"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			code, stdout, stderr := runCLI(tt.args...)
			assert.Equal(t, exitOK, code, stderr)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestRun_DecodeErrors(t *testing.T) {
	for _, input := range []string{"8080", "abc", "31070", "10.0.0.1", "192.168.x.1", "+32011", "192.168.121.11:32012", "192.168.121.11:0"} {
		t.Run(input, func(t *testing.T) {
			code, stdout, stderr := runCLI("decode", input)
			assert.Equal(t, exitFailure, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "error:")
		})
	}
}

func TestRun_List(t *testing.T) {
	code, stdout, _ := runCLI("list", "-network", "westend", "-format", "port")
	require.Equal(t, exitOK, code)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 70)
	assert.Equal(t, "33000", lines[0])
	assert.Equal(t, "33069", lines[len(lines)-1])
}

func TestRun_ListTable(t *testing.T) {
	code, stdout, _ := runCLI("list", "-network", "paseo")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "NETWORK")
	assert.Contains(t, stdout, "val-gargantua-paseo-06")
	assert.NotContains(t, stdout, "kusama")
}

func TestRun_ListProm(t *testing.T) {
	code, stdout, _ := runCLI("list", "-network", "kusama", "-format", "prom")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, `portgen_nodes_total{network="kusama",role="rpc"} 27`)
	assert.Contains(t, stdout, `portgen_chains_total{kind="custom",network="kusama"} 2`)
}

func TestRun_ListAll(t *testing.T) {
	code, stdout, _ := runCLI("list", "-format", "name")
	require.Equal(t, exitOK, code)
	assert.Len(t, strings.Split(strings.TrimSpace(stdout), "\n"), 360)
}
