package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "basic", in: "a, b, c", want: []string{"a", "b", "c"}},
		{name: "order kept", in: "zero waste,recycling , e-waste", want: []string{"zero waste", "recycling", "e-waste"}},
		{name: "empty tokens dropped", in: " ,a,, ,b, ", want: []string{"a", "b"}},
		{name: "empty text", in: "", want: []string{}},
		{name: "only separators", in: ",,,", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTags(tt.in)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatTags(t *testing.T) {
	assert.Equal(t, "a, b, c", FormatTags([]string{"a", "b", "c"}))
	assert.Equal(t, "", FormatTags(nil))
	assert.Equal(t, []string{"x", "y"}, ParseTags(FormatTags([]string{"x", "y"})))
}
