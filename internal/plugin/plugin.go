// Package plugin lets external processes supply scoring logic. A
// program may ship its own evaluation engine as a binary; the host
// loads it over go-plugin's net/rpc transport and uses it like any
// in-process scorer.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

// HandshakeConfig is used to handshake between host and plugin.
var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "APEXMIND_PLUGIN_MAGIC_COOKIE",
	MagicCookieValue: "apexmind-coach",
}

// ScorerPluginName is the key a scorer registers under in the plugin
// map on both sides of the connection.
const ScorerPluginName = "scorer"

// PluginMap is the set of plugins the host can serve or dispense.
var PluginMap = map[string]plugin.Plugin{
	ScorerPluginName: &ScorerPlugin{},
}
