// Package label normalizes descriptive photo labels regardless of their
// source (operator-supplied tags, detector output, end-user terms).
package label

import (
	"sort"
	"strings"
)

// Normalize merges any number of raw label sources into a single deduplicated
// slice of non-empty, trimmed, lower-cased labels. A comma inside a raw entry
// acts as a separator, matching the storage representation where labels are
// comma-joined, so no normalized label ever contains one. The result is sorted
// so the operation is order-independent and idempotent; absent or empty
// sources contribute nothing.
func Normalize(sources ...[]string) []string {
	seen := make(map[string]struct{})
	for _, source := range sources {
		for _, raw := range source {
			for _, part := range strings.Split(raw, ",") {
				l := strings.ToLower(strings.TrimSpace(part))
				if l == "" {
					continue
				}
				seen[l] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// SplitCSV splits a comma-separated label field into raw entries. Entries are
// not normalized here; pass the result through Normalize.
func SplitCSV(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
