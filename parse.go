// FILE: bbconfig/parse.go
package config

import "strings"

// minLineLength is the shortest trimmed line that may hold an entry.
const minLineLength = 4

// ParseLines turns raw configuration lines into a table of raw string values.
//
// Lines are trimmed; lines shorter than four characters and lines starting with
// '#' are skipped. Remaining lines are split at the first '=' with both sides
// trimmed. Lines without '=' are ignored. Later duplicates win.
func ParseLines(lines []string) map[string]Value {
	table := make(map[string]Value, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < minLineLength || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}
		table[key] = StringValue(value)
	}
	return table
}
