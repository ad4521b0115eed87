package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// render writes rows in the given format: table, json, csv or markdown.
func render(w io.Writer, format string, header []string, rows [][]any) error {
	if format == "json" {
		return renderJSON(w, header, rows)
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)
	for _, r := range rows {
		t.AppendRow(table.Row(r))
	}

	switch format {
	case "csv":
		t.RenderCSV()
	case "markdown", "md":
		t.RenderMarkdown()
	case "table", "":
		t.Render()
		_, _ = fmt.Fprintf(w, "(%d rows)\n", len(rows))
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}

func renderJSON(w io.Writer, header []string, rows [][]any) error {
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		m := make(map[string]any, len(header))
		for j, h := range header {
			if j < len(r) {
				m[h] = r[j]
			}
		}
		out[i] = m
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}
