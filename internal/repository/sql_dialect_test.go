package repository

import "testing"

func TestBuildLikeConditionByDialect(t *testing.T) {
	cases := []struct {
		dialect  string
		columns  []string
		expected string
		count    int
	}{
		{"sqlite", []string{"title", "description"}, "(title LIKE ? OR description LIKE ?)", 2},
		{"postgres", []string{"title"}, "(title ILIKE ?)", 1},
		{"mysql", []string{" ", "label"}, "(label LIKE ?)", 1},
		{"sqlite", nil, "", 0},
	}
	for _, tc := range cases {
		got, count := buildLikeConditionByDialect(tc.dialect, tc.columns...)
		if got != tc.expected || count != tc.count {
			t.Fatalf("%s %v: got %q/%d, expected %q/%d", tc.dialect, tc.columns, got, count, tc.expected, tc.count)
		}
	}
}

func TestApplyPaginationNilQuery(t *testing.T) {
	if applyPagination(nil, 1, 10) != nil {
		t.Fatalf("expected nil query passthrough")
	}
}
