// SPDX-License-Identifier: MIT
package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/openapia/apai/pkg/document"
)

// validDoc is a minimal document that passes every check with no warnings.
const validDoc = `
openapia: 0.1.0
info:
  title: Support Bot
  version: 1.0.0
  description: Customer support assistant
  author: Platform Team
  license: MIT
  ai_metadata:
    domain: customer-support
    complexity: medium
models:
  - id: m1
    type: LLM
    provider: anthropic
    name: claude-sonnet
    purpose: conversation
prompts:
  - id: p1
    role: system
    template: You are a support assistant.
constraints:
  - id: c1
    rule: no personal data retention
    severity: high
tasks:
  - id: t1
    description: answer customer questions
    steps:
      - name: draft
        action: generate
        model: m1
        prompt: p1
context:
  memory:
    type: session
  mcp_servers:
    - id: s1
      name: kb
      description: knowledge base server
      version: 1.0.0
      transport:
        type: stdio
        command: kb-server
      capabilities:
        tools: true
      authentication:
        type: none
evaluation:
  metrics:
    - accuracy
`

func docFromYAML(t *testing.T, src string) *document.Node {
	t.Helper()
	var raw any
	require.NoError(t, yaml.Unmarshal([]byte(src), &raw))
	return document.FromGo(raw)
}

// editedDoc parses validDoc and applies edits to the tree before validation.
func editedDoc(t *testing.T, edit func(doc *document.Node)) *document.Node {
	t.Helper()
	doc := docFromYAML(t, validDoc)
	edit(doc)
	return doc
}

func section(t *testing.T, doc *document.Node, key string) *document.Node {
	t.Helper()
	n, ok := doc.Get(key)
	require.True(t, ok)
	return n
}

func TestValidDocumentPasses(t *testing.T) {
	d := Document(docFromYAML(t, validDoc))
	assert.Empty(t, d.Errors)
	assert.Empty(t, d.Warnings)
	assert.True(t, d.OK())
}

func TestNonMappingDocument(t *testing.T) {
	d := Document(document.NewScalar("not a document"))
	assert.Equal(t, []string{"document must be a mapping"}, d.Errors)
}

func TestMissingSectionsReportedInFixedOrder(t *testing.T) {
	doc := docFromYAML(t, `
openapia: 0.1.0
info:
  title: T
  version: "1.0"
  description: D
  author: A
  license: MIT
  ai_metadata:
    domain: x
models:
  - id: m1
    type: LLM
    provider: p
    name: n
    purpose: x
prompts: []
constraints: []
tasks: []
`)
	d := Document(doc)
	assert.Equal(t, []string{
		"Missing required section: context",
		"Missing required section: evaluation",
	}, d.Errors)
}

func TestVersionChecks(t *testing.T) {
	t.Run("non-string version", func(t *testing.T) {
		doc := editedDoc(t, func(doc *document.Node) {
			doc.Set("openapia", document.NewScalar(1))
		})
		d := Document(doc)
		assert.Contains(t, d.Errors, "openapia version must be a string")
	})

	t.Run("unsupported version warns", func(t *testing.T) {
		doc := editedDoc(t, func(doc *document.Node) {
			doc.Set("openapia", document.NewScalar("2.0.0"))
		})
		d := Document(doc)
		assert.True(t, d.OK())
		assert.Contains(t, d.Warnings, "Version 2.0.0 may not be supported")
	})
}

func TestInfoChecks(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		doc := editedDoc(t, func(doc *document.Node) {
			doc.Set("info", document.FromGo(map[string]any{"title": "T"}))
		})
		d := Document(doc)
		assert.Contains(t, d.Errors, "Missing required field in info: version")
		assert.Contains(t, d.Errors, "Missing required field in info: license")
	})

	t.Run("missing domain warns", func(t *testing.T) {
		doc := editedDoc(t, func(doc *document.Node) {
			section(t, doc, "info").Set("ai_metadata", document.NewMapping())
		})
		d := Document(doc)
		assert.True(t, d.OK())
		assert.Contains(t, d.Warnings, "ai_metadata.domain is recommended")
	})

	t.Run("invalid complexity", func(t *testing.T) {
		doc := editedDoc(t, func(doc *document.Node) {
			meta, _ := section(t, doc, "info").Get("ai_metadata")
			meta.Set("complexity", document.NewScalar("extreme"))
		})
		d := Document(doc)
		assert.Contains(t, d.Errors, "Invalid complexity: extreme")
	})
}

func TestModelChecks(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		doc := editedDoc(t, func(doc *document.Node) {
			doc.Set("models", document.NewSequence())
		})
		d := Document(doc)
		assert.Contains(t, d.Errors, "At least one model is required")
	})

	t.Run("not an array", func(t *testing.T) {
		doc := editedDoc(t, func(doc *document.Node) {
			doc.Set("models", document.NewMapping())
		})
		d := Document(doc)
		assert.Contains(t, d.Errors, "models must be an array")
	})

	t.Run("missing fields", func(t *testing.T) {
		doc := editedDoc(t, func(doc *document.Node) {
			doc.Set("models", document.FromGo([]any{map[string]any{"id": "m1"}}))
		})
		d := Document(doc)
		assert.Contains(t, d.Errors, "Model 0 missing required field: type")
		assert.Contains(t, d.Errors, "Model 0 missing required field: purpose")
	})

	t.Run("unknown type warns but stays valid", func(t *testing.T) {
		doc := editedDoc(t, func(doc *document.Node) {
			model := section(t, doc, "models").Items()[0]
			model.Set("type", document.NewScalar("Robot"))
		})
		d := Document(doc)
		assert.True(t, d.OK())
		assert.Contains(t, d.Warnings, "Unknown model type: Robot")
	})
}

func TestPromptRoleEnum(t *testing.T) {
	doc := editedDoc(t, func(doc *document.Node) {
		prompt := section(t, doc, "prompts").Items()[0]
		prompt.Set("role", document.NewScalar("narrator"))
	})
	d := Document(doc)
	assert.Contains(t, d.Errors, "Invalid prompt role: narrator")
}

func TestConstraintSeverityEnum(t *testing.T) {
	doc := editedDoc(t, func(doc *document.Node) {
		constraint := section(t, doc, "constraints").Items()[0]
		constraint.Set("severity", document.NewScalar("extreme"))
	})
	d := Document(doc)
	assert.False(t, d.OK())
	assert.Contains(t, d.Errors, "Invalid constraint severity: extreme")
}

func TestDuplicateIDs(t *testing.T) {
	doc := editedDoc(t, func(doc *document.Node) {
		doc.Set("models", document.FromGo([]any{
			map[string]any{"id": "m1", "type": "LLM", "provider": "a", "name": "x", "purpose": "p"},
			map[string]any{"id": "m1", "type": "LLM", "provider": "b", "name": "y", "purpose": "q"},
		}))
	})
	d := Document(doc)

	assert.Contains(t, d.Errors, "Duplicate model ID: m1")
	// The duplicated ID still satisfies the task step's model reference.
	for _, e := range d.Errors {
		assert.NotContains(t, e, "unknown model")
	}
}

func TestTaskStepChecks(t *testing.T) {
	t.Run("invalid action", func(t *testing.T) {
		doc := editedDoc(t, func(doc *document.Node) {
			step := stepAt(t, doc, 0, 0)
			step.Set("action", document.NewScalar("daydream"))
		})
		d := Document(doc)
		assert.Contains(t, d.Errors, "Task 0 step 0 invalid action: daydream")
	})

	t.Run("steps not an array", func(t *testing.T) {
		doc := editedDoc(t, func(doc *document.Node) {
			task := section(t, doc, "tasks").Items()[0]
			task.Set("steps", document.NewScalar("nope"))
		})
		d := Document(doc)
		assert.Contains(t, d.Errors, "Task 0 steps must be an array")
	})

	t.Run("mcp_tool step requires server and tool", func(t *testing.T) {
		doc := editedDoc(t, func(doc *document.Node) {
			task := section(t, doc, "tasks").Items()[0]
			task.Set("steps", document.FromGo([]any{
				map[string]any{"name": "call", "action": "mcp_tool"},
			}))
		})
		d := Document(doc)
		assert.Contains(t, d.Errors, "Task 0 step 0 MCP action missing mcp_server field")
		assert.Contains(t, d.Errors, "Task 0 step 0 mcp_tool action missing mcp_tool field")
	})

	t.Run("mcp_resource step requires resource", func(t *testing.T) {
		doc := editedDoc(t, func(doc *document.Node) {
			task := section(t, doc, "tasks").Items()[0]
			task.Set("steps", document.FromGo([]any{
				map[string]any{"name": "read", "action": "mcp_resource", "mcp_server": "s1"},
			}))
		})
		d := Document(doc)
		assert.Contains(t, d.Errors, "Task 0 step 0 mcp_resource action missing mcp_resource field")
	})
}

func stepAt(t *testing.T, doc *document.Node, task, step int) *document.Node {
	t.Helper()
	steps, ok := section(t, doc, "tasks").Items()[task].Get("steps")
	require.True(t, ok)
	return steps.Items()[step]
}

func TestMCPServerChecks(t *testing.T) {
	serverWith := func(t *testing.T, edit func(server *document.Node)) *document.Node {
		return editedDoc(t, func(doc *document.Node) {
			servers, ok := section(t, doc, "context").Get("mcp_servers")
			require.True(t, ok)
			edit(servers.Items()[0])
		})
	}

	t.Run("invalid transport type", func(t *testing.T) {
		doc := serverWith(t, func(server *document.Node) {
			server.Set("transport", document.FromGo(map[string]any{"type": "carrier-pigeon"}))
		})
		d := Document(doc)
		assert.Contains(t, d.Errors, "MCP server 0 invalid transport type: carrier-pigeon")
	})

	t.Run("stdio requires command", func(t *testing.T) {
		doc := serverWith(t, func(server *document.Node) {
			server.Set("transport", document.FromGo(map[string]any{"type": "stdio"}))
		})
		d := Document(doc)
		assert.Contains(t, d.Errors, "MCP server 0 stdio transport missing command")
	})

	t.Run("network transports require url", func(t *testing.T) {
		for _, transport := range []string{"sse", "websocket"} {
			doc := serverWith(t, func(server *document.Node) {
				server.Set("transport", document.FromGo(map[string]any{"type": transport}))
			})
			d := Document(doc)
			assert.Contains(t, d.Errors, "MCP server 0 "+transport+" transport missing url")
		}
	})

	t.Run("transport missing type", func(t *testing.T) {
		doc := serverWith(t, func(server *document.Node) {
			server.Set("transport", document.NewMapping())
		})
		d := Document(doc)
		assert.Contains(t, d.Errors, "MCP server 0 transport missing required field: type")
	})

	t.Run("credential fields warn only", func(t *testing.T) {
		doc := serverWith(t, func(server *document.Node) {
			server.Set("authentication", document.FromGo(map[string]any{"type": "api_key"}))
		})
		d := Document(doc)
		assert.True(t, d.OK())
		assert.Contains(t, d.Warnings, "MCP server 0 api_key authentication missing api_key field")

		doc = serverWith(t, func(server *document.Node) {
			server.Set("authentication", document.FromGo(map[string]any{"type": "oauth"}))
		})
		d = Document(doc)
		assert.True(t, d.OK())
		assert.Contains(t, d.Warnings, "MCP server 0 oauth authentication missing token field")
	})

	t.Run("invalid authentication type", func(t *testing.T) {
		doc := serverWith(t, func(server *document.Node) {
			server.Set("authentication", document.FromGo(map[string]any{"type": "psychic"}))
		})
		d := Document(doc)
		assert.Contains(t, d.Errors, "MCP server 0 invalid authentication type: psychic")
	})

	t.Run("duplicate server IDs", func(t *testing.T) {
		doc := editedDoc(t, func(doc *document.Node) {
			servers, ok := section(t, doc, "context").Get("mcp_servers")
			require.True(t, ok)
			clone := servers.Items()[0].Clone()
			section(t, doc, "context").Set("mcp_servers", document.NewSequence(servers.Items()[0], clone))
		})
		d := Document(doc)
		assert.Contains(t, d.Errors, "Duplicate MCP server ID: s1")
	})
}
