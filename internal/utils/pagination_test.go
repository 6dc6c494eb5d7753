package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name string
		page string
		size string
		want []int
	}{
		{"no_params_returns_all", "", "", []int{1, 2, 3, 4, 5}},
		{"first_page", "1", "2", []int{1, 2}},
		{"middle_page", "2", "2", []int{3, 4}},
		{"short_last_page", "3", "2", []int{5}},
		{"page_past_end", "4", "2", []int{}},
		{"invalid_page_returns_all", "abc", "2", []int{1, 2, 3, 4, 5}},
		{"zero_size_returns_all", "1", "0", []int{1, 2, 3, 4, 5}},
		{"missing_size_returns_all", "2", "", []int{1, 2, 3, 4, 5}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Paginate(items, tc.page, tc.size))
		})
	}
}
