package importer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/SortRoom/internal/model"
)

// yamlCatalog is the on-disk catalog layout. Kinds are implied by the
// section an entry appears in, so entries carry no kind field.
type yamlCatalog struct {
	Bins   []yamlType `yaml:"bins"`
	Doors  []yamlType `yaml:"doors"`
	Others []yamlType `yaml:"others"`
}

type yamlType struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Color  string  `yaml:"color"`
}

// ImportCatalogYAML imports object types from a YAML file with bins, doors
// and others sections.
func ImportCatalogYAML(path string) CatalogResult {
	result := CatalogResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	var raw yamlCatalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot parse YAML: %v", err))
		return result
	}

	sections := []struct {
		kind    model.Kind
		section string
		entries []yamlType
	}{
		{model.KindBin, "bins", raw.Bins},
		{model.KindDoor, "doors", raw.Doors},
		{model.KindOther, "others", raw.Others},
	}
	for _, s := range sections {
		for i, e := range s.entries {
			label := fmt.Sprintf("%s[%d]", s.section, i)
			if strings.TrimSpace(e.Name) == "" {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: Missing name", label))
				continue
			}
			if e.Width <= 0 || e.Height <= 0 {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: Width and height must be positive", label))
				continue
			}
			color := strings.TrimSpace(e.Color)
			if color != "" && !validColor(color) {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Invalid color '%s', ignored", label, color))
				color = ""
			}
			result.Catalog.Add(model.TypeDescriptor{
				Kind:   s.kind,
				Name:   strings.TrimSpace(e.Name),
				Width:  e.Width,
				Height: e.Height,
				Color:  color,
			})
		}
	}

	if result.Catalog.Len() == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No object types found")
	}
	return result
}

// ImportCatalog picks the importer from the file extension.
func ImportCatalog(path string) CatalogResult {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		return ImportCatalogCSV(path)
	case ".xlsx", ".xlsm":
		return ImportCatalogExcel(path)
	case ".yaml", ".yml":
		return ImportCatalogYAML(path)
	default:
		return CatalogResult{Errors: []string{fmt.Sprintf("Unsupported catalog format '%s'", ext)}}
	}
}
