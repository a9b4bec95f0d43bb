package analyzer

import (
	"regexp"
	"strconv"
)

// The reference shapes PR authors actually write: a bare "#42", a closing
// keyword with "#42", and a closing keyword with the bare number. A number
// reachable through more than one shape counts once.
var issueRefPatterns = []*regexp.Regexp{
	regexp.MustCompile(`#(\d+)`),
	regexp.MustCompile(`(?i)\b(?:fix(?:es)?|close(?:s)?|resolve(?:s)?)\s+#(\d+)`),
	regexp.MustCompile(`(?i)\b(?:fix(?:es)?|close(?:s)?|resolve(?:s)?)\s+(\d+)\b`),
}

// ExtractIssueNumbers scans the PR title and description for issue
// references and returns the deduplicated numbers in order of first
// appearance.
func ExtractIssueNumbers(title, body string) []int {
	text := title + "\n" + body

	seen := make(map[int]struct{})
	var numbers []int
	for _, pattern := range issueRefPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			n, err := strconv.Atoi(match[1])
			if err != nil || n <= 0 {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			numbers = append(numbers, n)
		}
	}
	return numbers
}
