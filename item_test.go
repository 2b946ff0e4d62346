package schemascan_test

import (
	"testing"

	"github.com/fwojciec/schemascan"
	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		obj  map[string]any
		want string
	}{
		{"string", map[string]any{"@type": "Product"}, "Product"},
		{"empty string", map[string]any{"@type": ""}, "Unknown"},
		{"missing", map[string]any{"name": "x"}, "Unknown"},
		{"array", map[string]any{"@type": []any{"", 3.0, "LocalBusiness", "Store"}}, "LocalBusiness"},
		{"array without strings", map[string]any{"@type": []any{1.0}}, "Unknown"},
		{"number", map[string]any{"@type": 42.0}, "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, schemascan.TypeOf(tt.obj, schemascan.TypeUnknown))
		})
	}
}

func TestItem_Kind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		item schemascan.Item
		want schemascan.Kind
	}{
		{schemascan.Item{Type: "Product", Format: schemascan.FormatJSONLD}, schemascan.KindJSONLD},
		{schemascan.Item{Type: schemascan.TypeOpenGraph, Format: schemascan.FormatRDFa}, schemascan.KindOpenGraph},
		{schemascan.Item{Type: schemascan.TypeTwitterCard, Format: schemascan.FormatRDFa}, schemascan.KindTwitterCard},
		{schemascan.Item{Type: "https://schema.org/Person", Format: schemascan.FormatMicrodata}, schemascan.KindMicrodata},
		{schemascan.Item{Type: "Other", Format: schemascan.FormatRDFa}, schemascan.KindUnknown},
		{schemascan.Item{}, schemascan.KindUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.item.Kind(), "%+v", tt.item)
	}
}

func TestItem_Object(t *testing.T) {
	t.Parallel()

	_, ok := schemascan.Item{Data: "text"}.Object()
	assert.False(t, ok)

	_, ok = schemascan.Item{Data: map[string]any(nil)}.Object()
	assert.False(t, ok)

	m, ok := schemascan.Item{Data: map[string]any{"a": "b"}}.Object()
	assert.True(t, ok)
	assert.Equal(t, "b", m["a"])
}
