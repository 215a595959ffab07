// SPDX-License-Identifier: MIT
package validate

import (
	"regexp"
	"slices"

	"github.com/openapia/apai/pkg/document"
)

// requiredSections lists the eight top-level sections in their fixed check
// order. Presence errors are reported in this order, one per absent
// section.
var requiredSections = []string{
	"openapia", "info", "models", "prompts",
	"constraints", "tasks", "context", "evaluation",
}

var supportedVersion = regexp.MustCompile(`^0\.1\.\d+$`)

// Document validates doc against the fixed schema and returns the
// accumulated diagnostics. Check order: section presence first, then each
// section in the fixed order, then cross-references.
func Document(doc *document.Node) *Diagnostics {
	d := &Diagnostics{}

	if doc == nil || doc.Kind() != document.KindMapping {
		d.errorf("document must be a mapping")
		return d
	}

	for _, section := range requiredSections {
		if !doc.Has(section) {
			d.errorf("Missing required section: %s", section)
		}
	}

	if n, ok := doc.Get("openapia"); ok {
		checkVersion(n, d)
	}
	if n, ok := doc.Get("info"); ok {
		checkInfo(n, d)
	}
	if n, ok := doc.Get("models"); ok {
		checkModels(n, d)
	}
	if n, ok := doc.Get("prompts"); ok {
		checkPrompts(n, d)
	}
	if n, ok := doc.Get("constraints"); ok {
		checkConstraints(n, d)
	}
	if n, ok := doc.Get("tasks"); ok {
		checkTasks(n, d)
	}
	if n, ok := doc.Get("context"); ok {
		checkContext(n, d)
	}
	if n, ok := doc.Get("evaluation"); ok {
		checkEvaluation(n, d)
	}

	crossReferences(doc, d)
	return d
}

func checkVersion(n *document.Node, d *Diagnostics) {
	version, ok := n.Str()
	if !ok {
		d.errorf("openapia version must be a string")
		return
	}
	if !supportedVersion.MatchString(version) {
		d.warnf("Version %s may not be supported", version)
	}
}

func checkInfo(n *document.Node, d *Diagnostics) {
	if n.Kind() != document.KindMapping {
		d.errorf("info must be an object")
		return
	}
	for _, field := range []string{"title", "version", "description", "author", "license"} {
		if !n.Has(field) {
			d.errorf("Missing required field in info: %s", field)
		}
	}
	if meta, ok := n.Get("ai_metadata"); ok {
		checkAIMetadata(meta, d)
	}
}

func checkAIMetadata(n *document.Node, d *Diagnostics) {
	if n.Kind() != document.KindMapping {
		return
	}
	if !n.Has("domain") {
		d.warnf("ai_metadata.domain is recommended")
	}
	if complexity, ok := n.StringAt("complexity"); ok {
		if !slices.Contains([]string{"low", "medium", "high"}, complexity) {
			d.errorf("Invalid complexity: %s", complexity)
		}
	}
}

func checkEvaluation(n *document.Node, d *Diagnostics) {
	if n.Kind() != document.KindMapping {
		d.errorf("evaluation must be an object")
		return
	}
	if !n.Has("metrics") {
		d.warnf("evaluation.metrics is recommended")
	}
}
