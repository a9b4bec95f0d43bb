package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractIssueNumbers(t *testing.T) {
	tests := []struct {
		name  string
		title string
		body  string
		want  []int
	}{
		{
			name:  "bare reference in title",
			title: "Handle timeouts for #42",
			want:  []int{42},
		},
		{
			name:  "closing keyword with hash",
			title: "Fixes #42: add retry logic",
			want:  []int{42},
		},
		{
			name:  "same number via multiple patterns counts once",
			title: "Fixes #12",
			body:  "See #12 for background. Closes #12.",
			want:  []int{12},
		},
		{
			name: "closing keyword without hash",
			body: "This resolves 311 at last.",
			want: []int{311},
		},
		{
			name:  "mixed forms keep first-appearance order",
			title: "Touches #5",
			body:  "fixes 3 and closes #9",
			want:  []int{5, 9, 3},
		},
		{
			name: "keywords are case-insensitive",
			body: "FIXES #12 and Resolves 7",
			want: []int{12, 7},
		},
		{
			name:  "plural verb forms",
			title: "closes #1",
			body:  "resolve #2, fix 4",
			want:  []int{1, 2, 4},
		},
		{
			name: "no references",
			body: "Refactor only, no tracked issue. See v1.2 release notes.",
			want: nil,
		},
		{
			name: "number without hash or keyword is ignored",
			body: "Bumps the limit to 500.",
			want: nil,
		},
		{
			name: "zero is not a valid issue number",
			body: "fixes #0",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractIssueNumbers(tt.title, tt.body))
		})
	}
}
