package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServeCmdProperties(t *testing.T) {
	cmd := newServeCmd()

	assert.Equal(t, "serve", cmd.Use)
	assert.Equal(t, "Start the MCP EKS server", cmd.Short)
	assert.True(t, strings.Contains(cmd.Long, "Model Context Protocol"))
	assert.True(t, strings.Contains(cmd.Long, "stdio"))
	assert.True(t, strings.Contains(cmd.Long, "sse"))
	assert.True(t, strings.Contains(cmd.Long, "streamable-http"))
}

func TestServeCmdFlags(t *testing.T) {
	cmd := newServeCmd()

	// Test that all expected flags exist
	flagNames := []string{
		"region",
		"kubectl-path",
		"api-key",
		"debug",
		"transport",
		"http-addr",
		"sse-endpoint",
		"message-endpoint",
		"http-endpoint",
		"credential-cache-ttl",
		"credential-cache-max-entries",
		"credential-cache-sweep-interval",
		"enable-metrics-server",
		"metrics-addr",
	}

	for _, flagName := range flagNames {
		flag := cmd.Flags().Lookup(flagName)
		assert.NotNil(t, flag, "Flag %s should exist", flagName)
	}
}

func TestServeCmdFlagDefaults(t *testing.T) {
	cmd := newServeCmd()

	// Test flag default values
	tests := []struct {
		flagName string
		expected string
	}{
		{"region", "us-east-1"},
		{"debug", "false"},
		{"transport", "stdio"},
		{"http-addr", ":8080"},
		{"sse-endpoint", "/sse"},
		{"message-endpoint", "/message"},
		{"http-endpoint", "/mcp"},
		{"enable-metrics-server", "false"},
		{"metrics-addr", ":9090"},
	}

	for _, test := range tests {
		flag := cmd.Flags().Lookup(test.flagName)
		assert.Equal(t, test.expected, flag.DefValue,
			"Flag %s should have default value %s", test.flagName, test.expected)
	}
}

func TestServeCmdFlagUsage(t *testing.T) {
	cmd := newServeCmd()

	// Test that help text contains transport information
	usage := cmd.UsageString()
	assert.Contains(t, usage, "--transport")
	assert.Contains(t, usage, "stdio, sse, or streamable-http")
}

func TestServeCmdTransportSpecificFlags(t *testing.T) {
	cmd := newServeCmd()

	// Test that HTTP-related flags have appropriate descriptions
	httpAddrFlag := cmd.Flags().Lookup("http-addr")
	assert.Contains(t, httpAddrFlag.Usage, "HTTP server address")
	assert.Contains(t, httpAddrFlag.Usage, "sse and streamable-http")

	sseEndpointFlag := cmd.Flags().Lookup("sse-endpoint")
	assert.Contains(t, sseEndpointFlag.Usage, "SSE endpoint path")
	assert.Contains(t, sseEndpointFlag.Usage, "sse transport")

	messageEndpointFlag := cmd.Flags().Lookup("message-endpoint")
	assert.Contains(t, messageEndpointFlag.Usage, "Message endpoint path")
	assert.Contains(t, messageEndpointFlag.Usage, "sse transport")

	httpEndpointFlag := cmd.Flags().Lookup("http-endpoint")
	assert.Contains(t, httpEndpointFlag.Usage, "HTTP endpoint path")
	assert.Contains(t, httpEndpointFlag.Usage, "streamable-http transport")
}

func TestRunServeRejectsInvalidTransport(t *testing.T) {
	err := runServe(ServeConfig{
		Transport:     "invalid",
		DefaultRegion: "us-east-1",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported transport type")
}
