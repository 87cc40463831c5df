package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// Table is the tabular content shared by all exporters. Summary is rendered
// after the rows as a separate two column block.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Summary []SummaryItem
}

// SummaryItem is one labelled figure of a table summary.
type SummaryItem struct {
	Label string
	Value string
}

func (t Table) validate() error {
	if len(t.Headers) == 0 {
		return fmt.Errorf("export requires at least one header")
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return fmt.Errorf("row %d has %d cells, expected %d", i, len(row), len(t.Headers))
		}
	}
	return nil
}

// CSVExporter renders tables as RFC 4180 CSV.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// ContentType reports the MIME type of rendered output.
func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

// Extension reports the file extension of rendered output.
func (e *CSVExporter) Extension() string { return "csv" }

// Render produces CSV encoded bytes for the table. The title is not written.
func (e *CSVExporter) Render(table Table) ([]byte, error) {
	if err := table.validate(); err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(escapeRecord(table.Headers)); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range table.Rows {
		if err := writer.Write(escapeRecord(row)); err != nil {
			return nil, fmt.Errorf("write csv rows: %w", err)
		}
	}
	if len(table.Summary) > 0 {
		// blank line separates the summary block
		if err := writer.Write(nil); err != nil {
			return nil, fmt.Errorf("write csv summary: %w", err)
		}
		if err := writer.Write([]string{"Metric", "Value"}); err != nil {
			return nil, fmt.Errorf("write csv summary: %w", err)
		}
		for _, item := range table.Summary {
			if err := writer.Write(escapeRecord([]string{item.Label, item.Value})); err != nil {
				return nil, fmt.Errorf("write csv summary: %w", err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// escapeRecord neutralises cells a spreadsheet would evaluate as formulas.
func escapeRecord(record []string) []string {
	out := make([]string, len(record))
	for i, cell := range record {
		if cell != "" && strings.ContainsRune("=+-@\t\r", rune(cell[0])) {
			cell = "'" + cell
		}
		out[i] = cell
	}
	return out
}
