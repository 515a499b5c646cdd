package output

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/menupix/menupix/internal/models"
)

// Marshal renders the document the way the dashboard consumes it:
// 2-space indent, non-ASCII preserved, trailing newline.
func Marshal(doc *models.MenuDocument) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write persists the document to path, creating parent directories as
// needed.
func Write(path string, doc *models.MenuDocument) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Echo prints the same serialized form to w for external consumption.
func Echo(w io.Writer, doc *models.MenuDocument) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
