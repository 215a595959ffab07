// SPDX-License-Identifier: MIT

// Package loader reads OpenAPIA documents from disk and parses them into
// document trees. The format is picked from the file extension: YAML for
// .yaml/.yml, JSON for .json.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/openapia/apai/pkg/document"
)

var (
	// ErrNotFound means the document path does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrUnreadable means the path exists but could not be read.
	ErrUnreadable = errors.New("document not readable")
	// ErrUnsupported means the file extension names no known format.
	ErrUnsupported = errors.New("unsupported document format")
)

// ParseError reports a syntactically invalid document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads and parses the document at path. The top-level value must be a
// mapping. Loading has no side effects and is idempotent: loading the same
// path twice yields structurally equal trees.
func Load(path string) (*document.Node, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	var raw any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	case ".json":
		if err := json.Unmarshal(content, &raw); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}

	doc := document.FromGo(raw)
	if doc.Kind() != document.KindMapping {
		return nil, &ParseError{Path: path, Err: errors.New("top-level value must be a mapping")}
	}

	log.Debug().Str("path", path).Msg("loaded document")
	return doc, nil
}
