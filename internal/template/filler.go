// Package template substitutes resolved placeholder values into the raw
// template text. Substitution is literal string replacement: no escaping,
// no recursive re-scan of inserted values.
package template

import (
	"regexp"
	"sort"
	"strings"
)

// placeholderPattern matches placeholder-shaped tokens for reporting. The
// bare derived keys (LTE_cellidA, N00XA, ...) do not carry the xx wrapper
// and are intentionally not scanned.
var placeholderPattern = regexp.MustCompile(`xx[A-Za-z0-9_]+xx`)

// Scan returns the unique placeholder tokens present in the template, in
// first-occurrence order.
func Scan(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range placeholderPattern.FindAllString(text, -1) {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// Fill replaces every occurrence of each resolved placeholder and returns
// the filled text with a per-placeholder occurrence count. Placeholders are
// applied longest key first so a key that is a literal prefix of a longer
// key (xxLTE_Site_IDxx vs xxLTE_Site_IDxx_XA_1) never clobbers it; equal
// lengths are ordered lexicographically for determinism. Keys with zero
// occurrences are omitted from the count map.
func Fill(text string, replacements map[string]string) (string, map[string]int) {
	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	counts := make(map[string]int)
	for _, key := range keys {
		n := strings.Count(text, key)
		if n == 0 {
			continue
		}
		text = strings.ReplaceAll(text, key, replacements[key])
		counts[key] = n
	}
	return text, counts
}
