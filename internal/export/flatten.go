package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Flatten collapses a decoded JSON value into a single-level map with
// dot-joined keys. Lists of primitives are joined with '|' (nulls become
// empty), lists containing objects are JSON-encoded per cell, and scalar
// nulls become the empty string.
func Flatten(value interface{}, parentKey string, sep string) map[string]string {
	items := make(map[string]string)
	flattenInto(items, value, parentKey, sep)
	return items
}

func flattenInto(items map[string]string, value interface{}, parentKey string, sep string) {
	switch typed := value.(type) {
	case map[string]interface{}:
		for key, child := range typed {
			childKey := key
			if parentKey != "" {
				childKey = parentKey + sep + key
			}
			flattenInto(items, child, childKey, sep)
		}
	case []interface{}:
		if allPrimitive(typed) {
			parts := make([]string, len(typed))
			for i, element := range typed {
				parts[i] = stringify(element)
			}
			items[parentKey] = strings.Join(parts, "|")
		} else {
			encoded, err := json.Marshal(typed)
			if err != nil {
				// Values decoded from JSON always re-encode; guard anyway.
				items[parentKey] = fmt.Sprintf("%v", typed)
				return
			}
			items[parentKey] = string(encoded)
		}
	default:
		items[parentKey] = stringify(typed)
	}
}

func allPrimitive(list []interface{}) bool {
	for _, element := range list {
		switch element.(type) {
		case nil, string, bool, float64, json.Number:
		default:
			return false
		}
	}

	return true
}

func stringify(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case json.Number:
		return typed.String()
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", typed)
	}
}
