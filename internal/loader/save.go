// SPDX-License-Identifier: MIT
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/openapia/apai/pkg/document"
)

// Save marshals doc to path, choosing YAML or JSON by the output
// extension. The write is atomic: content goes to a temp file in the target
// directory which is then renamed into place.
func Save(path string, doc *document.Node) error {
	var (
		content []byte
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		content, err = yaml.Marshal(doc.ToGo())
	case ".json":
		content, err = json.MarshalIndent(doc.ToGo(), "", "  ")
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "apai-tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("moving temp file to %s: %w", path, err)
	}
	return nil
}
