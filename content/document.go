package content

import (
	"encoding/json"
	"fmt"
)

// ToDocument converts a typed record into the generic document form used
// by the validator, the editor and storage.
func ToDocument(record any) (map[string]any, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("content: encode document: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("content: decode document: %w", err)
	}
	return doc, nil
}

// FromDocument decodes doc into target, which must be a pointer.
func FromDocument(doc map[string]any, target any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("content: encode document: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("content: decode %T: %w", target, err)
	}
	return nil
}

// CloneDocument returns a deep copy of doc.
func CloneDocument(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc))
	for key, value := range doc {
		out[key] = CloneValue(value)
	}
	return out
}

// CloneValue deep-copies maps and slices found in decoded JSON values.
func CloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return CloneDocument(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = CloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), typed...)
	default:
		return typed
	}
}
