// FILE: bbconfig/resolve.go
package config

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderPattern matches {$identifier} tokens; the identifier is captured.
var placeholderPattern = regexp.MustCompile(`\{\$(\w+)\}`)

// lookupFunc resolves and coerces a referenced key, threading the active set through.
type lookupFunc func(key string, active map[string]struct{}) (Value, error)

// expand substitutes every placeholder in raw, repeating passes until no token
// remains so that substituted text may itself contain further placeholders.
//
// active holds the keys of the current expansion branch. A key is added only while
// its own expansion runs, so sibling placeholders may name the same key.
func expand(raw string, active map[string]struct{}, lookup lookupFunc) (string, error) {
	for {
		matches := placeholderPattern.FindAllStringSubmatchIndex(raw, -1)
		if len(matches) == 0 {
			return raw, nil
		}

		var b strings.Builder
		last := 0
		for _, m := range matches {
			key := raw[m[2]:m[3]]
			if _, seen := active[key]; seen {
				return "", fmt.Errorf("%w for key: %s", ErrCircularReference, key)
			}

			active[key] = struct{}{}
			value, err := lookup(key, active)
			delete(active, key)
			if err != nil {
				return "", err
			}

			b.WriteString(raw[last:m[0]])
			b.WriteString(value.String())
			last = m[1]
		}
		b.WriteString(raw[last:])
		raw = b.String()
	}
}
