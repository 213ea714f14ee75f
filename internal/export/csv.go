package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
)

// DefaultKeySeparator joins nested object keys in flattened rows.
const DefaultKeySeparator = "."

// RowsFromJSON normalises a decoded JSON document into flattened rows:
// a top-level list yields one row per item, an object with a top-level
// 'results' list (the common paginated-API shape) yields one row per
// result, and any other object yields a single row.
func RowsFromJSON(data interface{}, sep string) ([]map[string]string, error) {
	switch typed := data.(type) {
	case []interface{}:
		rows := make([]map[string]string, 0, len(typed))
		for _, item := range typed {
			rows = append(rows, Flatten(item, "", sep))
		}
		return rows, nil
	case map[string]interface{}:
		if results, ok := typed["results"].([]interface{}); ok {
			rows := make([]map[string]string, 0, len(results))
			for _, item := range results {
				rows = append(rows, Flatten(item, "", sep))
			}
			return rows, nil
		}
		return []map[string]string{Flatten(typed, "", sep)}, nil
	default:
		return nil, fmt.Errorf("unexpected JSON top-level type %T", data)
	}
}

// WriteRowsCSV writes the rows with a header made from the sorted union
// of every row's keys; cells missing from a row are left empty.
func WriteRowsCSV(w io.Writer, rows []map[string]string) error {
	keySet := make(map[string]struct{})
	for _, row := range rows {
		for key := range row {
			keySet[key] = struct{}{}
		}
	}

	keys := make([]string, 0, len(keySet))
	for key := range keySet {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	writer := csv.NewWriter(w)
	if err := writer.Write(keys); err != nil {
		return err
	}

	record := make([]string, len(keys))
	for _, row := range rows {
		for i, key := range keys {
			record[i] = row[key]
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
