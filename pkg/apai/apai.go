// SPDX-License-Identifier: MIT

// Package apai is the public entry point for validating OpenAPIA documents:
// declarative YAML/JSON descriptions of AI-system configurations. It ties
// together document loading, inheritance resolution and schema validation.
package apai

import (
	"errors"
	"path/filepath"

	"github.com/openapia/apai/internal/inherit"
	"github.com/openapia/apai/internal/loader"
	"github.com/openapia/apai/internal/validate"
	"github.com/openapia/apai/pkg/document"
)

// ValidationResult is the complete outcome of one validation call. Errors
// and Warnings are in discovery order; Warnings never affect Valid.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validator validates OpenAPIA documents. It holds no per-call state, so a
// single instance is safe for concurrent use; every call builds its own
// resolution context and diagnostics.
type Validator struct {
	resolver *inherit.Resolver
}

// New returns a ready-to-use Validator backed by the file loader.
func New() *Validator {
	return &Validator{
		resolver: inherit.NewResolver(inherit.LoaderFunc(loader.Load)),
	}
}

// ValidateDocument validates an already-parsed document against the fixed
// schema, without resolving inheritance.
func (v *Validator) ValidateDocument(doc *document.Node) ValidationResult {
	return resultOf(nil, validate.Document(doc))
}

// ValidateFile loads the document at path and validates it without
// resolving inheritance. Load failures are returned as the error.
func (v *Validator) ValidateFile(path string) (ValidationResult, error) {
	doc, err := loader.Load(path)
	if err != nil {
		return ValidationResult{}, err
	}
	return v.ValidateDocument(doc), nil
}

// ValidateWithInheritance loads the document at path, resolves its full
// inheritance chain, and validates the effective document. Failure to load
// the root document is fatal and returned as the error; missing parents and
// inheritance cycles become diagnostics, reported ahead of the validation
// findings.
func (v *Validator) ValidateWithInheritance(path string) (ValidationResult, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return ValidationResult{}, err
	}
	root, err := loader.Load(key)
	if err != nil {
		return ValidationResult{}, err
	}

	ctx := inherit.NewContext()
	effective, err := v.resolver.Resolve(root, key, ctx)
	if err != nil {
		// The cycle guard can only trip on re-entry, never on the fresh
		// top-level key.
		return ValidationResult{}, err
	}

	return resultOf(ctx.Errors(), validate.Document(effective)), nil
}

// MergeDocuments folds the documents left to right into one merged
// document, later entries taking precedence. It is exposed for tooling that
// wants the merged tree without validating it.
func MergeDocuments(docs []*document.Node) *document.Node {
	return document.MergeAll(docs)
}

// MergeFiles loads each input path, merges them left to right, and writes
// the result to out in the format implied by out's extension.
func (v *Validator) MergeFiles(paths []string, out string) error {
	if len(paths) == 0 {
		return errors.New("no documents to merge")
	}
	docs := make([]*document.Node, 0, len(paths))
	for _, p := range paths {
		doc, err := loader.Load(p)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}
	return loader.Save(out, document.MergeAll(docs))
}

func resultOf(resolutionErrs []string, d *validate.Diagnostics) ValidationResult {
	errs := make([]string, 0, len(resolutionErrs)+len(d.Errors))
	errs = append(errs, resolutionErrs...)
	errs = append(errs, d.Errors...)
	warnings := make([]string, 0, len(d.Warnings))
	warnings = append(warnings, d.Warnings...)
	return ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}
