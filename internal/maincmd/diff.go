package maincmd

import (
	"fmt"
	"strings"
)

// unifiedDiff renders a minimal line-oriented unified diff of before versus
// after, standard-library only: no diff library in the examples pack is
// grounded for this purpose, so the -dry-run convenience stays stdlib.
func unifiedDiff(path, before, after string) string {
	if before == after {
		return ""
	}
	a := strings.Split(before, "\n")
	b := strings.Split(after, "\n")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", path, path)

	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			i++
			j++
		case i < len(a) && (j >= len(b) || !contains(b[j:], a[i])):
			fmt.Fprintf(&sb, "-%s\n", a[i])
			i++
		case j < len(b):
			fmt.Fprintf(&sb, "+%s\n", b[j])
			j++
		default:
			i++
		}
	}
	return sb.String()
}

func contains(lines []string, s string) bool {
	for _, l := range lines {
		if l == s {
			return true
		}
	}
	return false
}
