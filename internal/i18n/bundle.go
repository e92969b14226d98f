package i18n

import "strings"

// Bundle is a nested message document decoded from a locale JSON file.
// Branch nodes are map[string]any, leaves are strings.
type Bundle map[string]any

// Lookup resolves a dotted key path inside the bundle. The boolean result is
// an explicit not-found signal: it is false when a path segment is missing,
// when the path ends on a branch node, or when the leaf is an empty string.
func Lookup(bundle Bundle, key string) (string, bool) {
	var current any = map[string]any(bundle)
	for _, segment := range strings.Split(key, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return "", false
		}
		current, ok = node[segment]
		if !ok {
			return "", false
		}
	}

	value, ok := current.(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
