// Package importer provides CSV and Excel import functionality for
// requirement lists. It supports automatic delimiter detection, flexible
// column mapping, and case-insensitive header recognition. Imported rows
// name parts by label and are resolved against a part catalog.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/GridFit/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Requirements []model.Requirement
	Errors       []string
	Warnings     []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Part        int
	Quantity    int
	Compressed  int
	CommandLine int
	MinBugs     int
	MaxBugs     int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"part":        {"part", "part name", "name", "label", "piece", "item"},
	"quantity":    {"quantity", "qty", "count", "num", "amount", "instances"},
	"compressed":  {"compressed", "compress", "compact", "variant"},
	"commandline": {"command line", "commandline", "on command line", "cmdline", "line"},
	"minbugs":     {"min bugs", "minbugs", "min bug level", "min_bug_level", "bugs min"},
	"maxbugs":     {"max bugs", "maxbugs", "max bug level", "max_bug_level", "bugs max"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Score: count how many rows have the same column count as the first row.
		// Only consider delimiters that produce more than 1 column.
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Part:        -1,
		Quantity:    -1,
		Compressed:  -1,
		CommandLine: -1,
		MinBugs:     -1,
		MaxBugs:     -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "part":
						if mapping.Part == -1 {
							mapping.Part = i
						}
					case "quantity":
						if mapping.Quantity == -1 {
							mapping.Quantity = i
						}
					case "compressed":
						if mapping.Compressed == -1 {
							mapping.Compressed = i
						}
					case "commandline":
						if mapping.CommandLine == -1 {
							mapping.CommandLine = i
						}
					case "minbugs":
						if mapping.MinBugs == -1 {
							mapping.MinBugs = i
						}
					case "maxbugs":
						if mapping.MaxBugs == -1 {
							mapping.MaxBugs = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping:
		// Part, Quantity, Compressed, CommandLine, MinBugs, MaxBugs
		return ColumnMapping{
			Part:        0,
			Quantity:    1,
			Compressed:  2,
			CommandLine: 3,
			MinBugs:     4,
			MaxBugs:     5,
		}, false
	}

	return mapping, true
}

// parseTri converts a tri-state string to a model.Tri value.
// It returns the value and a boolean indicating whether the string was recognized.
func parseTri(s string) (model.Tri, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "must", "1":
		return model.TriYes, true
	case "no", "n", "false", "must not", "0":
		return model.TriNo, true
	case "", "either", "any", "-", "-1":
		return model.TriEither, true
	default:
		return model.TriEither, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a requirement (and its instance count) from a row using
// the given column mapping. Returns the requirement, the quantity, any error
// message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, catalog model.Catalog, rowLabel string) (model.Requirement, int, string, []string) {
	var warnings []string

	label := getCell(row, mapping.Part)
	if label == "" {
		return model.Requirement{}, 0, fmt.Sprintf("%s: Missing part name", rowLabel), nil
	}
	partIdx := catalog.FindByLabel(label)
	if partIdx < 0 {
		return model.Requirement{}, 0, fmt.Sprintf("%s: Unknown part '%s'", rowLabel, label), nil
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		parsed, err := strconv.Atoi(qtyStr)
		if err != nil || parsed <= 0 {
			return model.Requirement{}, 0, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
		}
		qty = parsed
	}

	constraint := model.Unconstrained()

	if s := getCell(row, mapping.Compressed); s != "" {
		tri, ok := parseTri(s)
		if ok {
			constraint.Compressed = tri
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown compressed value '%s', defaulting to Either", rowLabel, s))
		}
	}

	if s := getCell(row, mapping.CommandLine); s != "" {
		tri, ok := parseTri(s)
		if ok {
			constraint.OnCommandLine = tri
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown command line value '%s', defaulting to Either", rowLabel, s))
		}
	}

	if s := getCell(row, mapping.MinBugs); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return model.Requirement{}, 0, fmt.Sprintf("%s: Invalid min bugs '%s'", rowLabel, s), nil
		}
		constraint.MinBugLevel = v
	}

	if s := getCell(row, mapping.MaxBugs); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < model.UnboundedBugLevel {
			return model.Requirement{}, 0, fmt.Sprintf("%s: Invalid max bugs '%s'", rowLabel, s), nil
		}
		constraint.MaxBugLevel = v
	}

	if constraint.MaxBugLevel != model.UnboundedBugLevel && constraint.MinBugLevel > constraint.MaxBugLevel {
		return model.Requirement{}, 0, fmt.Sprintf("%s: Min bugs exceeds max bugs", rowLabel), nil
	}

	return model.Requirement{PartIndex: partIdx, Constraint: constraint}, qty, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports requirements from a CSV file, resolving part names
// against the catalog. It automatically detects the delimiter and maps
// columns by header names. Supports comma, semicolon, tab, and pipe
// delimiters.
func ImportCSV(path string, catalog model.Catalog) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, catalog, "Line", result.Warnings)
}

// ImportCSVFromReader imports requirements from a CSV reader with a specific
// delimiter. This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune, catalog model.Catalog) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, catalog, "Line", nil)
}

// ImportExcel imports requirements from an Excel (.xlsx, .xls) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string, catalog model.Catalog) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, catalog, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into requirements.
// A row's quantity expands into that many independent requirement instances.
func importFromRows(rows [][]string, catalog model.Catalog, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	// Detect columns from first row
	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Part == -1 {
			result.Errors = append(result.Errors, "Required column not found in header: Part")
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		req, qty, errMsg, warnings := parseRow(row, mapping, catalog, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)

		for n := 0; n < qty; n++ {
			result.Requirements = append(result.Requirements, req)
		}
	}

	return result
}
