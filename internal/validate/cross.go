// SPDX-License-Identifier: MIT
package validate

import "github.com/openapia/apai/pkg/document"

// crossReferences checks that every symbolic reference made by a task step
// resolves to an ID declared in the referenced section. It runs against
// whatever section data is present, independent of earlier structural
// errors; a reference check is skipped only when the whole target section is
// absent. References are many-to-one: any number of steps may name the same
// ID, and a duplicated ID still satisfies references to it.
func crossReferences(doc *document.Node, d *Diagnostics) {
	tasks, ok := doc.Get("tasks")
	if !ok || tasks.Kind() != document.KindSequence {
		return
	}

	modelIDs, modelsPresent := sectionIDs(doc, "models")
	promptIDs, promptsPresent := sectionIDs(doc, "prompts")
	serverIDs, serversPresent := mcpServerIDs(doc)

	for _, task := range tasks.Items() {
		steps, ok := task.Get("steps")
		if !ok {
			continue
		}
		for _, step := range steps.Items() {
			if step.Kind() != document.KindMapping {
				continue
			}
			if model, ok := step.StringAt("model"); ok && modelsPresent && !modelIDs[model] {
				d.errorf("Task references unknown model: %s", model)
			}
			if prompt, ok := step.StringAt("prompt"); ok && promptsPresent && !promptIDs[prompt] {
				d.errorf("Task references unknown prompt: %s", prompt)
			}
			if server, ok := step.StringAt("mcp_server"); ok && serversPresent && !serverIDs[server] {
				d.errorf("Task references unknown MCP server: %s", server)
			}
		}
	}
}

// sectionIDs collects the declared string IDs of a list section. The second
// result reports whether the section exists at all; an existing but
// malformed section yields an empty set, so references into it fail.
func sectionIDs(doc *document.Node, section string) (map[string]bool, bool) {
	n, ok := doc.Get(section)
	if !ok {
		return nil, false
	}
	ids := make(map[string]bool)
	for _, item := range n.Items() {
		if id, ok := item.StringAt("id"); ok {
			ids[id] = true
		}
	}
	return ids, true
}

// mcpServerIDs collects MCP server IDs from the context section.
func mcpServerIDs(doc *document.Node) (map[string]bool, bool) {
	ctx, ok := doc.Get("context")
	if !ok || ctx.Kind() != document.KindMapping {
		return nil, false
	}
	servers, ok := ctx.Get("mcp_servers")
	if !ok {
		return nil, false
	}
	ids := make(map[string]bool)
	for _, item := range servers.Items() {
		if id, ok := item.StringAt("id"); ok {
			ids[id] = true
		}
	}
	return ids, true
}
