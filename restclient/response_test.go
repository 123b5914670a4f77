package restclient

import (
	"reflect"
	"strings"
	"testing"

	"github.com/mkaraca/restkit/transport"
)

func TestParseResponseBody(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{
			name: "single-key mapping envelope unwraps",
			raw:  `{"server": {"id": "42"}}`,
			want: map[string]any{"id": "42"},
		},
		{
			name: "single-key list envelope unwraps",
			raw:  `{"servers": [{"id": "42"}]}`,
			want: []any{map[string]any{"id": "42"}},
		},
		{
			name: "single-key scalar stays wrapped",
			raw:  `{"count": 3}`,
			want: map[string]any{"count": float64(3)},
		},
		{
			name: "multi-key mapping stays whole",
			raw:  `{"a": {"x": 1}, "b": {"y": 2}}`,
			want: map[string]any{
				"a": map[string]any{"x": float64(1)},
				"b": map[string]any{"y": float64(2)},
			},
		},
		{
			name: "top-level list passes through",
			raw:  `[1, 2]`,
			want: []any{float64(1), float64(2)},
		},
		{
			name: "top-level scalar passes through",
			raw:  `"ready"`,
			want: "ready",
		},
		{
			name: "empty mapping stays whole",
			raw:  `{}`,
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResponseBody([]byte(tt.raw))
			if err != nil {
				t.Fatalf("ParseResponseBody failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseResponseBodyInvalid(t *testing.T) {
	if _, err := ParseResponseBody([]byte("not json")); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestWrap(t *testing.T) {
	resp := transport.NewResponse(200, map[string]string{"X-Openstack-Request-Id": "req-1"})

	t.Run("mapping", func(t *testing.T) {
		b := Wrap(resp, []byte(`{"server": {"id": "42"}}`))
		mb, ok := b.(*MappingBody)
		if !ok {
			t.Fatalf("got %T, want *MappingBody", b)
		}
		if mb.Data["id"] != "42" {
			t.Errorf("data = %v", mb.Data)
		}
		if mb.Descriptor().Status != 200 {
			t.Error("descriptor lost")
		}
		if !mb.Has("x-openstack-request-id") {
			t.Error("headers must be reachable through the container")
		}
	})

	t.Run("list", func(t *testing.T) {
		b := Wrap(resp, []byte(`{"servers": [{"id": "1"}, {"id": "2"}]}`))
		lb, ok := b.(*ListBody)
		if !ok {
			t.Fatalf("got %T, want *ListBody", b)
		}
		if len(lb.Items) != 2 {
			t.Errorf("items = %v", lb.Items)
		}
	})

	t.Run("scalar for non-json", func(t *testing.T) {
		b := Wrap(resp, []byte("plain text"))
		sb, ok := b.(*ScalarBody)
		if !ok {
			t.Fatalf("got %T, want *ScalarBody", b)
		}
		if sb.Value != "plain text" {
			t.Errorf("value = %q", sb.Value)
		}
	})

	t.Run("string output names the status", func(t *testing.T) {
		b := Wrap(resp, []byte(`{"server": {"id": "42"}}`))
		if got := b.String(); !strings.Contains(got, "200") {
			t.Errorf("String() = %q", got)
		}
	})
}
