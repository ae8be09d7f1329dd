package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// utf8BOM matches the editor's file encoding: UTF-8 with a byte order mark.
var utf8BOM = unicode.UTF8BOM

// ReadFile loads a project document, tolerating a leading byte order mark.
func ReadFile(path string) (*Project, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	data, _, err := transform.Bytes(utf8BOM.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	var doc Project
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	return &doc, nil
}

// WriteFile serializes the document the way the editor saves it: UTF-8 with
// a byte order mark, two-space indent, raw (unescaped) non-ASCII text.
func WriteFile(path string, doc *Project) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	data, _, err := transform.Bytes(utf8BOM.NewEncoder(), buf.Bytes())
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	return nil
}

// WindowsFilePath joins root and rel with backslash separators. The editor
// runs on Windows and stores item file paths in that form regardless of
// where the converter runs.
func WindowsFilePath(root, rel string) string {
	joined := path.Join(filepath.ToSlash(root), filepath.ToSlash(rel))
	return strings.ReplaceAll(joined, "/", `\`)
}
