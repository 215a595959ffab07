// SPDX-License-Identifier: MIT
package validate

import (
	"slices"

	"github.com/openapia/apai/pkg/document"
)

var (
	modelTypes  = []string{"LLM", "Vision", "Audio", "Multimodal", "Classification", "Embedding"}
	promptRoles = []string{"system", "user", "assistant"}
	severities  = []string{"low", "medium", "high", "critical"}
	stepActions = []string{"analyze", "generate", "validate", "search", "escalate", "classify", "mcp_tool", "mcp_resource"}
)

// listRule describes the shared shape of a list section: a sequence of
// objects, each carrying a fixed required-field set and an id unique within
// the section.
type listRule struct {
	section  string   // section key, used in "must be an array"
	elemNoun string   // noun for positional messages, e.g. "Model 0 ..."
	idNoun   string   // noun for duplicate-ID messages
	required []string // required fields per element
}

// checkList validates a list section against rule and invokes extra, when
// given, for each well-formed element. ID uniqueness is scoped to the
// section: the first occurrence establishes the ID, each later duplicate is
// one error.
func checkList(n *document.Node, rule listRule, d *Diagnostics, extra func(i int, elem *document.Node)) {
	if n.Kind() != document.KindSequence {
		d.errorf("%s must be an array", rule.section)
		return
	}
	seen := make(map[string]bool)
	for i, item := range n.Items() {
		if item.Kind() != document.KindMapping {
			d.errorf("%s %d must be an object", rule.elemNoun, i)
			continue
		}
		for _, field := range rule.required {
			if !item.Has(field) {
				d.errorf("%s %d missing required field: %s", rule.elemNoun, i, field)
			}
		}
		if id, ok := item.StringAt("id"); ok {
			if seen[id] {
				d.errorf("Duplicate %s ID: %s", rule.idNoun, id)
			}
			seen[id] = true
		}
		if extra != nil {
			extra(i, item)
		}
	}
}

func checkModels(n *document.Node, d *Diagnostics) {
	if n.Kind() == document.KindSequence && n.Len() == 0 {
		d.errorf("At least one model is required")
		return
	}
	rule := listRule{
		section:  "models",
		elemNoun: "Model",
		idNoun:   "model",
		required: []string{"id", "type", "provider", "name", "purpose"},
	}
	checkList(n, rule, d, func(i int, model *document.Node) {
		// Unknown model types are a warning, not an error: new types are
		// expected to appear faster than the validator is updated.
		if modelType, ok := model.StringAt("type"); ok {
			if !slices.Contains(modelTypes, modelType) {
				d.warnf("Unknown model type: %s", modelType)
			}
		}
	})
}

func checkPrompts(n *document.Node, d *Diagnostics) {
	rule := listRule{
		section:  "prompts",
		elemNoun: "Prompt",
		idNoun:   "prompt",
		required: []string{"id", "role", "template"},
	}
	checkList(n, rule, d, func(i int, prompt *document.Node) {
		if role, ok := prompt.StringAt("role"); ok {
			if !slices.Contains(promptRoles, role) {
				d.errorf("Invalid prompt role: %s", role)
			}
		}
	})
}

func checkConstraints(n *document.Node, d *Diagnostics) {
	rule := listRule{
		section:  "constraints",
		elemNoun: "Constraint",
		idNoun:   "constraint",
		required: []string{"id", "rule", "severity"},
	}
	checkList(n, rule, d, func(i int, constraint *document.Node) {
		if severity, ok := constraint.StringAt("severity"); ok {
			if !slices.Contains(severities, severity) {
				d.errorf("Invalid constraint severity: %s", severity)
			}
		}
	})
}

func checkTasks(n *document.Node, d *Diagnostics) {
	rule := listRule{
		section:  "tasks",
		elemNoun: "Task",
		idNoun:   "task",
		required: []string{"id", "description"},
	}
	checkList(n, rule, d, func(i int, task *document.Node) {
		if steps, ok := task.Get("steps"); ok {
			checkTaskSteps(steps, i, d)
		}
	})
}

func checkTaskSteps(n *document.Node, task int, d *Diagnostics) {
	if n.Kind() != document.KindSequence {
		d.errorf("Task %d steps must be an array", task)
		return
	}
	for i, step := range n.Items() {
		if step.Kind() != document.KindMapping {
			d.errorf("Task %d step %d must be an object", task, i)
			continue
		}
		for _, field := range []string{"name", "action"} {
			if !step.Has(field) {
				d.errorf("Task %d step %d missing required field: %s", task, i, field)
			}
		}
		action, ok := step.StringAt("action")
		if !ok {
			continue
		}
		if !slices.Contains(stepActions, action) {
			d.errorf("Task %d step %d invalid action: %s", task, i, action)
		}
		if action == "mcp_tool" || action == "mcp_resource" {
			if !step.Has("mcp_server") {
				d.errorf("Task %d step %d MCP action missing mcp_server field", task, i)
			}
			// The action name doubles as the payload field name.
			if !step.Has(action) {
				d.errorf("Task %d step %d %s action missing %s field", task, i, action, action)
			}
		}
	}
}
