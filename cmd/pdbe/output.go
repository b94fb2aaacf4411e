package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fakhrymubarak/pdbe-client/internal/table"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printRows prints rows as JSON or as a table with the given columns. No
// columns means every field that appears in rows.
func printRows[M ~map[string]any](w io.Writer, title string, rows []M, columns []string) error {
	if jsonOutput {
		return printJSON(w, rows)
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	flat := table.FlattenLists(rows)
	if len(columns) == 0 {
		columns = table.Columns(flat)
	}
	_, err := fmt.Fprint(w, table.FromMaps(title, columns, flat).Render())
	return err
}

// toRows converts structs to generic rows through their JSON form.
func toRows(v any) ([]map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
