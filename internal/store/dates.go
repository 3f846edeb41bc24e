package store

import (
	"encoding/json"
	"fmt"
)

// DecodeDates turns whatever a backend holds in the dates attribute into a
// slice. Older records stored the list as a JSON-encoded string; newer ones
// store a native array. Undecodable input yields an empty slice.
func DecodeDates(v any) []string {
	switch d := v.(type) {
	case nil:
		return []string{}
	case []string:
		out := make([]string, len(d))
		copy(out, d)
		return out
	case []any:
		out := make([]string, 0, len(d))
		for _, item := range d {
			switch s := item.(type) {
			case string:
				out = append(out, s)
			case nil:
			default:
				out = append(out, fmt.Sprint(s))
			}
		}
		return out
	case string:
		if d == "" {
			return []string{}
		}
		return DecodeDates([]byte(d))
	case json.RawMessage:
		return DecodeDates([]byte(d))
	case []byte:
		if len(d) == 0 {
			return []string{}
		}
		var decoded any
		if err := json.Unmarshal(d, &decoded); err != nil {
			return []string{}
		}
		// A JSON string holding an array: decode once more.
		if s, ok := decoded.(string); ok {
			var inner any
			if err := json.Unmarshal([]byte(s), &inner); err != nil {
				return []string{}
			}
			return DecodeDates(inner)
		}
		return DecodeDates(decoded)
	}
	return []string{}
}
