// SPDX-License-Identifier: MIT

// Package inherit resolves the hierarchical inherits mechanism: a document
// may declare an ordered list of parent documents whose content it extends
// and overrides. Resolution loads every ancestor exactly once, detects
// inheritance cycles, and produces a fully merged effective document.
package inherit

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/openapia/apai/pkg/document"
)

// ErrCycle is returned when a document inherits, directly or transitively,
// from itself.
var ErrCycle = errors.New("inheritance cycle detected")

// Loader supplies raw documents by path.
type Loader interface {
	Load(path string) (*document.Node, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(path string) (*document.Node, error)

func (f LoaderFunc) Load(path string) (*document.Node, error) { return f(path) }

// Context carries the per-call state of one resolution: a cache of raw
// documents, a cache of resolved effective documents, the set of keys
// currently being resolved (the cycle guard), and the resolution errors
// discovered along the way. A Context must not be shared between
// independent top-level calls.
type Context struct {
	raw       map[string]*document.Node
	resolved  map[string]*document.Node
	resolving map[string]struct{}
	errs      []string
}

// NewContext returns an empty resolution context.
func NewContext() *Context {
	return &Context{
		raw:       make(map[string]*document.Node),
		resolved:  make(map[string]*document.Node),
		resolving: make(map[string]struct{}),
	}
}

// Errors returns the resolution errors recorded so far, in discovery order.
func (c *Context) Errors() []string { return c.errs }

func (c *Context) errorf(format string, args ...any) {
	c.errs = append(c.errs, fmt.Sprintf(format, args...))
}

// Resolver turns a raw document into its effective document by folding in
// all inherited ancestors. A Resolver holds no per-call state and may be
// reused across calls.
type Resolver struct {
	loader Loader
}

// NewResolver returns a Resolver that loads parent documents through l.
func NewResolver(l Loader) *Resolver {
	return &Resolver{loader: l}
}

// Resolve computes the effective document for root, identified by key (its
// cleaned absolute path). Parents named in the inherits list are resolved
// relative to the declaring document's own directory, each loaded exactly
// once per Context, and folded in declared order; the declaring document is
// merged on top. Later-declared parents therefore override earlier ones,
// and the child overrides all parents.
//
// Missing parents and inheritance cycles are recorded on ctx and skipped;
// resolution of the remaining parents continues. Resolve returns ErrCycle
// only when re-entered for a key that is still being resolved.
func (r *Resolver) Resolve(root *document.Node, key string, ctx *Context) (*document.Node, error) {
	key = filepath.Clean(key)

	if effective, ok := ctx.resolved[key]; ok {
		return effective, nil
	}
	if _, busy := ctx.resolving[key]; busy {
		return nil, fmt.Errorf("%w: %s", ErrCycle, key)
	}
	ctx.resolving[key] = struct{}{}
	defer delete(ctx.resolving, key)

	parents := inheritsList(root)
	log.Debug().Str("key", key).Int("parents", len(parents)).Msg("resolving document")

	var effective *document.Node
	if len(parents) == 0 {
		effective = root.Clone()
	} else {
		merged := document.NewMapping()
		for _, rel := range parents {
			parentKey := filepath.Join(filepath.Dir(key), rel)
			parentRaw, err := r.loadRaw(parentKey, ctx)
			if err != nil {
				ctx.errorf("Inherited document not found: %s", rel)
				continue
			}
			parentEffective, err := r.Resolve(parentRaw, parentKey, ctx)
			if err != nil {
				if errors.Is(err, ErrCycle) {
					ctx.errorf("Inheritance cycle detected: %s", parentKey)
					continue
				}
				return nil, err
			}
			merged = document.Merge(merged, parentEffective)
		}
		effective = document.Merge(merged, root)
	}

	ctx.resolved[key] = effective
	return effective, nil
}

// loadRaw fetches a raw document through the context cache so every
// ancestor is read at most once per call.
func (r *Resolver) loadRaw(key string, ctx *Context) (*document.Node, error) {
	if doc, ok := ctx.raw[key]; ok {
		return doc, nil
	}
	doc, err := r.loader.Load(key)
	if err != nil {
		return nil, err
	}
	ctx.raw[key] = doc
	return doc, nil
}

// inheritsList reads the declared parent paths. A missing or malformed
// inherits field means no parents; non-string entries are ignored.
func inheritsList(doc *document.Node) []string {
	field, ok := doc.Get("inherits")
	if !ok {
		return nil
	}
	var parents []string
	for _, item := range field.Items() {
		if path, ok := item.Str(); ok {
			parents = append(parents, path)
		}
	}
	return parents
}
