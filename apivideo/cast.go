package apivideo

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var jsonNull = []byte("null")

// cast decodes one raw object into T. Empty input and JSON null yield nil;
// fields outside T's JSON tags are dropped by the decoder.
func cast[T any](raw []byte) (*T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		return nil, nil
	}

	var v T
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return &v, nil
}

// castAll maps cast over a collection, keeping order.
func castAll[T any](collection []json.RawMessage) ([]*T, error) {
	out := make([]*T, 0, len(collection))
	for i, raw := range collection {
		v, err := cast[T](raw)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
