// SPDX-License-Identifier: MIT
package validate

import (
	"slices"

	"github.com/openapia/apai/pkg/document"
)

var (
	transportTypes = []string{"stdio", "sse", "websocket"}
	authTypes      = []string{"none", "api_key", "oauth", "custom"}
)

func checkContext(n *document.Node, d *Diagnostics) {
	if n.Kind() != document.KindMapping {
		d.errorf("context must be an object")
		return
	}
	if !n.Has("memory") {
		d.warnf("context.memory is recommended")
	}
	if servers, ok := n.Get("mcp_servers"); ok {
		checkMCPServers(servers, d)
	}
}

func checkMCPServers(n *document.Node, d *Diagnostics) {
	rule := listRule{
		section:  "mcp_servers",
		elemNoun: "MCP server",
		idNoun:   "MCP server",
		required: []string{"id", "name", "description", "version", "transport", "capabilities", "authentication"},
	}
	checkList(n, rule, d, func(i int, server *document.Node) {
		if transport, ok := server.Get("transport"); ok {
			checkMCPTransport(transport, i, d)
		}
		if auth, ok := server.Get("authentication"); ok {
			checkMCPAuthentication(auth, i, d)
		}
	})
}

func checkMCPTransport(n *document.Node, server int, d *Diagnostics) {
	if n.Kind() != document.KindMapping {
		d.errorf("MCP server %d transport must be an object", server)
		return
	}
	transportType, ok := n.StringAt("type")
	if !ok {
		d.errorf("MCP server %d transport missing required field: type", server)
		return
	}
	if !slices.Contains(transportTypes, transportType) {
		d.errorf("MCP server %d invalid transport type: %s", server, transportType)
	}
	switch transportType {
	case "stdio":
		if !n.Has("command") {
			d.errorf("MCP server %d stdio transport missing command", server)
		}
	case "sse", "websocket":
		if !n.Has("url") {
			d.errorf("MCP server %d %s transport missing url", server, transportType)
		}
	}
}

func checkMCPAuthentication(n *document.Node, server int, d *Diagnostics) {
	if n.Kind() != document.KindMapping {
		d.errorf("MCP server %d authentication must be an object", server)
		return
	}
	authType, ok := n.StringAt("type")
	if !ok {
		d.errorf("MCP server %d authentication missing required field: type", server)
		return
	}
	if !slices.Contains(authTypes, authType) {
		d.errorf("MCP server %d invalid authentication type: %s", server, authType)
	}
	// Missing credentials warn rather than error: they may be supplied
	// out-of-band at deployment time.
	switch authType {
	case "api_key":
		if !n.Has("api_key") {
			d.warnf("MCP server %d api_key authentication missing api_key field", server)
		}
	case "oauth":
		if !n.Has("token") {
			d.warnf("MCP server %d oauth authentication missing token field", server)
		}
	}
}
