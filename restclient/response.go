package restclient

import (
	"encoding/json"
	"fmt"

	"github.com/mkaraca/restkit/transport"
)

// ParseResponseBody decodes a JSON body and unwraps the conventional
// single-key envelope: when the decoded document is a mapping with exactly
// one key whose value is itself a mapping or a list, the inner value is
// returned. Every other shape, including single-key mappings wrapping a
// scalar, is returned as decoded.
func ParseResponseBody(raw []byte) (any, error) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("restclient: parse response body: %w", err)
	}
	m, ok := decoded.(map[string]any)
	if !ok || len(m) != 1 {
		return decoded, nil
	}
	for _, v := range m {
		switch v.(type) {
		case map[string]any, []any:
			return v, nil
		}
	}
	return m, nil
}

// Body is a parsed response payload carrying its originating response
// descriptor, so callers can inspect status and headers alongside the data.
type Body interface {
	fmt.Stringer
	Descriptor() *transport.Response
}

// MappingBody holds a JSON object payload.
type MappingBody struct {
	*transport.Response
	Data map[string]any
}

// Descriptor returns the originating response.
func (b *MappingBody) Descriptor() *transport.Response { return b.Response }

func (b *MappingBody) String() string {
	return fmt.Sprintf("response: %d, body: %v", b.Status, b.Data)
}

// ListBody holds a JSON array payload.
type ListBody struct {
	*transport.Response
	Items []any
}

// Descriptor returns the originating response.
func (b *ListBody) Descriptor() *transport.Response { return b.Response }

func (b *ListBody) String() string {
	return fmt.Sprintf("response: %d, body: %v", b.Status, b.Items)
}

// ScalarBody holds an opaque payload: raw text or a JSON scalar.
type ScalarBody struct {
	*transport.Response
	Value string
}

// Descriptor returns the originating response.
func (b *ScalarBody) Descriptor() *transport.Response { return b.Response }

func (b *ScalarBody) String() string {
	return fmt.Sprintf("response: %d, body: %s", b.Status, b.Value)
}

// Wrap pairs a response with its parsed body in the container matching the
// payload shape. Bodies that do not decode as JSON become a ScalarBody
// holding the raw text.
func Wrap(resp *transport.Response, raw []byte) Body {
	parsed, err := ParseResponseBody(raw)
	if err != nil {
		return &ScalarBody{Response: resp, Value: string(raw)}
	}
	switch v := parsed.(type) {
	case map[string]any:
		return &MappingBody{Response: resp, Data: v}
	case []any:
		return &ListBody{Response: resp, Items: v}
	default:
		return &ScalarBody{Response: resp, Value: fmt.Sprintf("%v", v)}
	}
}
