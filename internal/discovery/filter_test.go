package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		modules  []string
		pattern  string
		expected int
	}{
		{
			name:     "empty pattern returns all",
			modules:  []string{"test_define", "test_include", "test_if"},
			pattern:  "",
			expected: 3,
		},
		{
			name:     "anchored wildcard",
			modules:  []string{"test_define", "test_define_args", "test_include"},
			pattern:  "test_define*",
			expected: 2,
		},
		{
			name:     "wildcard substring",
			modules:  []string{"test_define", "test_include", "test_include_path"},
			pattern:  "*include*",
			expected: 2,
		},
		{
			name:     "simple contains match",
			modules:  []string{"test_define", "test_include"},
			pattern:  "incl",
			expected: 1,
		},
		{
			name:     "no matches",
			modules:  []string{"test_define", "test_include"},
			pattern:  "*missing*",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(tt.modules, tt.pattern)
			assert.Len(t, result, tt.expected)
		})
	}
}

func TestFilter_Exclude(t *testing.T) {
	filter := NewFilter()

	assert.Equal(t, []string{"test_foo"}, filter.Exclude([]string{"test_foo", "test_bar"}, []string{"test_bar"}))
	assert.Equal(t, []string{"test_foo", "test_bar"}, filter.Exclude([]string{"test_foo", "test_bar"}, nil))
	assert.Equal(t, []string{"test_foo"}, filter.Exclude([]string{"test_foo", "test_bar"}, []string{"test_bar", "test_unknown"}))
	assert.Empty(t, filter.Exclude([]string{"test_foo"}, []string{"test_foo"}))
}

func TestFilter_Normalize(t *testing.T) {
	filter := NewFilter()

	got := filter.Normalize([]string{"test_foo.yaml", "test_bar", "test_foo", "sub/test_baz.yaml"}, ".yaml")
	assert.Equal(t, []string{"test_foo", "test_bar", "test_baz"}, got)
}

func TestFilter_Merge(t *testing.T) {
	filter := NewFilter()

	got := filter.Merge([]string{"test_b"}, []string{"test_a", "test_b", "helper"}, "test_")
	assert.Equal(t, []string{"test_b", "test_a"}, got)
}
