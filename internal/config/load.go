package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a schema document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format by file extension; anything other than
// .yaml/.yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads, decodes and normalizes the document at path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	doc, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return Document{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes data in the given format and normalizes it. Unknown fields
// are rejected so that typos such as "not_nul" do not silently drop a
// constraint.
func Parse(data []byte, f Format) (Document, error) {
	var doc Document
	switch f {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		// Defaults keep their numeric text; float64 would round large integers.
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("decode json: %w", err)
		}
	default:
		return Document{}, fmt.Errorf("unknown format %q", f)
	}
	doc.normalize()
	return doc, nil
}

// normalize trims identifiers and keywords and puts identifiers in Unicode
// NFC so that visually identical names compare equal.
func (d *Document) normalize() {
	d.Job = strings.TrimSpace(d.Job)
	d.Storage.Kind = strings.ToLower(strings.TrimSpace(d.Storage.Kind))
	for i := range d.Tables {
		t := &d.Tables[i]
		t.Name = ident(t.Name)
		for j := range t.Columns {
			c := &t.Columns[j]
			c.Name = ident(c.Name)
			c.Type = strings.TrimSpace(c.Type)
			c.Collate = strings.TrimSpace(c.Collate)
			if c.References != nil {
				c.References.Table = ident(c.References.Table)
				c.References.Column = ident(c.References.Column)
			}
		}
	}
}

func ident(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
