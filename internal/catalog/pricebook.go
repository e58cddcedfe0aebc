package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// PriceBook is the on-disk representation of a catalog and its assemblies.
type PriceBook struct {
	Version    string     `json:"version" yaml:"version"`
	Currency   string     `json:"currency" yaml:"currency"`
	Items      []Item     `json:"items" yaml:"items"`
	Assemblies []Assembly `json:"assemblies" yaml:"assemblies"`
}

// Tables is a validated catalog/registry pair.
type Tables struct {
	Version    string
	Currency   string
	Catalog    *Catalog
	Assemblies *Registry
}

// LoadPriceBook reads a JSON or YAML price book; the extension picks the
// format.
func LoadPriceBook(path string) (*Tables, error) {
	var pb PriceBook
	if err := ReadPriceBook(path, &pb); err != nil {
		return nil, err
	}
	return pb.Tables()
}

// ParsePriceBook decodes and validates a price book. format is "json" or "yaml".
func ParsePriceBook(data []byte, format string) (*Tables, error) {
	var pb PriceBook
	if err := DecodePriceBook(data, format, &pb); err != nil {
		return nil, err
	}
	return pb.Tables()
}

// ReadPriceBook decodes the file at path into v, which may embed PriceBook
// to carry extra sections.
func ReadPriceBook(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read price book: %w", err)
	}
	return DecodePriceBook(data, FormatOf(path), v)
}

// FormatOf returns "yaml" for .yaml/.yml paths and "json" otherwise.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

// DecodePriceBook unmarshals data in the given format into v.
func DecodePriceBook(data []byte, format string, v any) error {
	switch format {
	case "json":
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse price book json: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse price book yaml: %w", err)
		}
	default:
		return fmt.Errorf("unsupported price book format %q", format)
	}
	return nil
}

// Tables validates the book into a catalog and an assembly registry.
func (pb PriceBook) Tables() (*Tables, error) {
	if len(pb.Items) == 0 {
		return nil, fmt.Errorf("price book has no items")
	}

	cat, err := NewCatalog(pb.Items...)
	if err != nil {
		return nil, fmt.Errorf("price book catalog: %w", err)
	}
	reg, err := NewRegistry(pb.Assemblies...)
	if err != nil {
		return nil, fmt.Errorf("price book assemblies: %w", err)
	}

	return &Tables{
		Version:    pb.Version,
		Currency:   pb.Currency,
		Catalog:    cat,
		Assemblies: reg,
	}, nil
}
