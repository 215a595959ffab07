// SPDX-License-Identifier: MIT
package apai

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/openapia/apai/internal/loader"
	"github.com/openapia/apai/pkg/document"
)

// HierarchyTree renders the inheritance hierarchy rooted at path as an
// indented listing: one line per document with its title and hierarchy
// metadata, followed by its resolved path, then its parents one level
// deeper. Documents already seen on the current branch are marked as cycles
// instead of being descended into.
func (v *Validator) HierarchyTree(path string) (string, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	writeTree(&b, key, 0, map[string]bool{})
	return b.String(), nil
}

func writeTree(b *strings.Builder, key string, level int, visiting map[string]bool) {
	indent := strings.Repeat("  ", level)

	if visiting[key] {
		fmt.Fprintf(b, "%s! cycle: %s\n", indent, key)
		return
	}

	doc, err := loader.Load(key)
	if err != nil {
		fmt.Fprintf(b, "%s! error loading %s: %v\n", indent, key, err)
		return
	}

	fmt.Fprintf(b, "%s- %s (%s)\n", indent, docTitle(doc), hierarchyLabel(doc))
	fmt.Fprintf(b, "%s  path: %s\n", indent, key)

	visiting[key] = true
	defer delete(visiting, key)

	inherits, ok := doc.Get("inherits")
	if !ok {
		return
	}
	for _, item := range inherits.Items() {
		rel, ok := item.Str()
		if !ok {
			continue
		}
		writeTree(b, filepath.Join(filepath.Dir(key), rel), level+1, visiting)
	}
}

func docTitle(doc *document.Node) string {
	if info, ok := doc.Get("info"); ok {
		if title, ok := info.StringAt("title"); ok {
			return title
		}
	}
	return "Unknown"
}

// hierarchyLabel reads the optional level/scope pair from
// info.ai_metadata.hierarchy_info.
func hierarchyLabel(doc *document.Node) string {
	level, scope := "unknown", "unknown"
	if info, ok := doc.Get("info"); ok {
		if meta, ok := info.Get("ai_metadata"); ok {
			if hier, ok := meta.Get("hierarchy_info"); ok {
				if s, ok := hier.StringAt("level"); ok {
					level = s
				}
				if s, ok := hier.StringAt("scope"); ok {
					scope = s
				}
			}
		}
	}
	return level + "/" + scope
}
