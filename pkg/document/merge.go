// SPDX-License-Identifier: MIT
package document

// Merge combines base and override into a freshly built tree. When both
// sides are mappings the merge recurses key by key: keys present on only
// one side are kept, keys present on both are merged. In every other case
// the override value replaces the base value wholesale; sequences are
// replaced, never concatenated.
//
// The result shares no nodes with either input, so operands stay valid for
// further merges.
func Merge(base, override *Node) *Node {
	if override == nil {
		return base.Clone()
	}
	if base == nil {
		return override.Clone()
	}
	if base.kind == KindMapping && override.kind == KindMapping {
		out := NewMapping()
		for k, child := range base.mapping {
			out.mapping[k] = child.Clone()
		}
		for k, child := range override.mapping {
			if baseChild, ok := base.mapping[k]; ok {
				out.mapping[k] = Merge(baseChild, child)
			} else {
				out.mapping[k] = child.Clone()
			}
		}
		return out
	}
	return override.Clone()
}

// MergeAll folds Merge over docs strictly left to right, so later documents
// take precedence over earlier ones. Right-biased merging is not
// associative; the fold order is the contract, not an implementation
// detail.
func MergeAll(docs []*Node) *Node {
	merged := NewMapping()
	for _, d := range docs {
		merged = Merge(merged, d)
	}
	return merged
}
