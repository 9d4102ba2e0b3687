// Package importer reads object catalogs from CSV, Excel and YAML files and
// room outlines from DXF drawings. CSV import detects the delimiter and
// maps columns by header name in English or Norwegian.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/SortRoom/internal/model"
)

// CatalogResult holds the results of a catalog import.
type CatalogResult struct {
	Catalog  model.Catalog
	Errors   []string
	Warnings []string
}

// ColumnMapping holds the index of each catalog column, or -1 when the
// column is absent.
type ColumnMapping struct {
	Kind   int
	Name   int
	Width  int
	Height int
	Color  int
}

// positionalColumns is assumed when the first row carries no known header.
var positionalColumns = ColumnMapping{Kind: 0, Name: 1, Width: 2, Height: 3, Color: 4}

// catalogColumns lists each column with the lowercase headers it is known by.
var catalogColumns = []struct {
	title   string
	slot    func(*ColumnMapping) *int
	headers []string
}{
	{"Kind", func(m *ColumnMapping) *int { return &m.Kind }, []string{"kind", "kategori", "category", "group", "gruppe"}},
	{"Name", func(m *ColumnMapping) *int { return &m.Name }, []string{"name", "navn", "type", "fraction", "fraksjon", "label", "description"}},
	{"Width", func(m *ColumnMapping) *int { return &m.Width }, []string{"width", "bredde", "w", "length", "lengde"}},
	{"Height", func(m *ColumnMapping) *int { return &m.Height }, []string{"height", "dybde", "depth", "h", "d"}},
	{"Color", func(m *ColumnMapping) *int { return &m.Color }, []string{"color", "colour", "farge", "fill"}},
}

var requiredColumns = []string{"Name", "Width", "Height"}

// kindAliases maps accepted kind values (lowercase) to object kinds.
var kindAliases = map[string]model.Kind{
	"bin":      model.KindBin,
	"bins":     model.KindBin,
	"dunk":     model.KindBin,
	"beholder": model.KindBin,
	"door":     model.KindDoor,
	"doors":    model.KindDoor,
	"dør":      model.KindDoor,
	"other":    model.KindOther,
	"object":   model.KindOther,
	"objekt":   model.KindOther,
	"annet":    model.KindOther,
	"møbel":    model.KindOther,
}

// ParseKind converts a kind name to a model.Kind. It returns the kind and a
// boolean indicating whether the string was recognized.
func ParseKind(s string) (model.Kind, bool) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}

var delimiterNames = map[rune]string{',': "comma", ';': "semicolon", '\t': "tab", '|': "pipe"}

// DetectCSVDelimiter picks the delimiter among comma, semicolon, tab and
// pipe that splits data into the most consistent rows of at least two
// columns. Comma is returned when none qualifies.
func DetectCSVDelimiter(data []byte) rune {
	best, bestScore := ',', 0
	for _, d := range []rune{',', ';', '\t', '|'} {
		if score := delimiterScore(data, d); score > bestScore {
			best, bestScore = d, score
		}
	}
	return best
}

// delimiterScore counts rows as wide as the first one, weighted above the
// width itself. It is 0 when d yields fewer than two columns.
func delimiterScore(data []byte, d rune) int {
	records, err := newCSVReader(bytes.NewReader(data), d).ReadAll()
	if err != nil || len(records) == 0 || len(records[0]) < 2 {
		return 0
	}
	width := len(records[0])
	consistent := 0
	for _, row := range records {
		if len(row) == width {
			consistent++
		}
	}
	return consistent*10 + width
}

func newCSVReader(r io.Reader, d rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = d
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

// DetectColumns matches the cells of row against the known headers, case
// insensitively. When no cell matches it returns the positional layout
// (kind, name, width, height, color) and false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	m := ColumnMapping{Kind: -1, Name: -1, Width: -1, Height: -1, Color: -1}
	found := false
	for i, cell := range row {
		header := strings.ToLower(strings.TrimSpace(cell))
		for _, col := range catalogColumns {
			if slot := col.slot(&m); *slot == -1 && slices.Contains(col.headers, header) {
				*slot = i
				found = true
			}
		}
	}
	if !found {
		return positionalColumns, false
	}
	return m, true
}

// missingColumns names the required columns a detected header lacks.
func missingColumns(m ColumnMapping) []string {
	var missing []string
	for _, col := range catalogColumns {
		if slices.Contains(requiredColumns, col.title) && *col.slot(&m) == -1 {
			missing = append(missing, col.title)
		}
	}
	return missing
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseSize accepts both decimal points and decimal commas.
func parseSize(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

func sizeCell(row []string, idx int, name string) (float64, error) {
	s := cell(row, idx)
	if s == "" {
		return 0, fmt.Errorf("Missing %s value", name)
	}
	v, err := parseSize(s)
	if err != nil {
		return 0, fmt.Errorf("Invalid %s '%s'", name, s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive", strings.ToUpper(name[:1])+name[1:])
	}
	return v, nil
}

// parseRow reads one catalog entry. A non-empty warning reports a value that
// was defaulted or dropped; an error rejects the row.
func parseRow(row []string, m ColumnMapping) (desc model.TypeDescriptor, warning string, err error) {
	desc.Kind = model.KindBin
	if s := cell(row, m.Kind); s != "" {
		k, ok := ParseKind(s)
		if !ok {
			return desc, "", fmt.Errorf("Unknown kind '%s'", s)
		}
		desc.Kind = k
	} else if m.Kind >= 0 {
		warning = "Missing kind, defaulting to Bin"
	}

	if desc.Name = cell(row, m.Name); desc.Name == "" {
		return desc, "", errors.New("Missing name")
	}
	if desc.Width, err = sizeCell(row, m.Width, "width"); err != nil {
		return desc, "", err
	}
	if desc.Height, err = sizeCell(row, m.Height, "height"); err != nil {
		return desc, "", err
	}

	if desc.Color = cell(row, m.Color); desc.Color != "" && !validColor(desc.Color) {
		warning = fmt.Sprintf("Invalid color '%s', ignored", desc.Color)
		desc.Color = ""
	}
	return desc, warning, nil
}

// validColor accepts #rgb and #rrggbb hex colors.
func validColor(s string) bool {
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}

func blankRow(row []string) bool {
	return !slices.ContainsFunc(row, func(c string) bool { return strings.TrimSpace(c) != "" })
}

// ImportCatalogCSV imports object types from a CSV file, detecting the
// delimiter and the column layout.
func ImportCatalogCSV(path string) CatalogResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return CatalogResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return CatalogResult{Errors: []string{"File is empty"}}
	}

	var warnings []string
	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimiterNames[delimiter]))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		return CatalogResult{Errors: []string{err.Error()}, Warnings: warnings}
	}
	return importFromRows(records, "Line", warnings)
}

// ImportCatalogCSVFromReader imports object types from a CSV reader with a
// known delimiter.
func ImportCatalogCSVFromReader(reader io.Reader, delimiter rune) CatalogResult {
	records, err := readCSV(reader, delimiter)
	if err != nil {
		return CatalogResult{Errors: []string{err.Error()}}
	}
	return importFromRows(records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	records, err := newCSVReader(r, delimiter).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("Cannot read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("File is empty")
	}
	return records, nil
}

// ImportCatalogExcel imports object types from the first sheet of an
// Excel (.xlsx) workbook.
func ImportCatalogExcel(path string) CatalogResult {
	rows, err := firstSheetRows(path)
	if err != nil {
		return CatalogResult{Errors: []string{err.Error()}}
	}
	return importFromRows(rows, "Row", nil)
}

func firstSheetRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("Cannot read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("Sheet %q is empty", sheets[0])
	}
	return rows, nil
}

// columnLayout decides how to read rows: the column mapping, and whether
// the first row is a header to skip. A row whose width cell is not a
// number is treated as an unrecognized header.
func columnLayout(first []string) (m ColumnMapping, skipFirst bool, err error) {
	m, header := DetectColumns(first)
	if header {
		if missing := missingColumns(m); len(missing) > 0 {
			return m, true, fmt.Errorf("Required columns not found in header: %s", strings.Join(missing, ", "))
		}
		return m, true, nil
	}
	if len(first) > m.Width {
		if _, perr := parseSize(cell(first, m.Width)); perr != nil {
			return m, true, nil
		}
	}
	return m, false, nil
}

// importFromRows parses CSV or Excel rows into a catalog. Bad rows are
// reported per row and skipped; a repeated kind and name keeps the first.
func importFromRows(rows [][]string, rowPrefix string, warnings []string) CatalogResult {
	result := CatalogResult{Warnings: warnings}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, skipFirst, err := columnLayout(rows[0])
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	start := 0
	if skipFirst {
		start = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	seen := map[string]bool{}
	for i := start; i < len(rows); i++ {
		if blankRow(rows[i]) {
			continue
		}
		label := fmt.Sprintf("%s %d", rowPrefix, i+1)

		desc, warning, err := parseRow(rows[i], mapping)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", label, err))
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", label, warning))
		}

		key := desc.Kind.String() + "/" + strings.ToLower(desc.Name)
		if seen[key] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Duplicate %s '%s' skipped", label, strings.ToLower(desc.Kind.String()), desc.Name))
			continue
		}
		seen[key] = true
		result.Catalog.Add(desc)
	}

	if result.Catalog.Len() == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No object types found")
	}
	return result
}
