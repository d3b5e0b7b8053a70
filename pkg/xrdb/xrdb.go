// Package xrdb parses the X resource-manager string (the
// RESOURCE_MANAGER property of the root window, as maintained by
// xrdb) into a lookup database.
//
// Lookup values are truncated to 255 bytes. The bound is inherited
// from the original resource readers and kept rather than silently
// lifted; values longer than this are rare in practice.
package xrdb

import "strings"

// MaxValueLen bounds the length of a value returned by Get.
const MaxValueLen = 255

type entry struct {
	key   string
	value string
}

// Database is an ordered set of resource entries. Later entries
// override earlier ones with the same key, matching xrdb semantics.
type Database struct {
	entries []entry
}

// Parse builds a Database from a resource-manager string. Lines are
// "key: value" pairs; lines starting with '!' or '#' are comments and
// a trailing backslash continues the value on the next line. Malformed
// lines are skipped.
func Parse(data string) *Database {
	db := &Database{}
	lines := strings.Split(data, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		for strings.HasSuffix(line, "\\") && i+1 < len(lines) {
			i++
			line = strings.TrimSuffix(line, "\\") + lines[i]
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "!") || strings.HasPrefix(trimmed, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		// Only the whitespace separating the colon from the value is
		// stripped; embedded and trailing whitespace is significant.
		value = strings.TrimLeft(value, " \t")
		db.entries = append(db.entries, entry{key: key, value: value})
	}
	return db
}

// Len returns the number of entries in the database.
func (db *Database) Len() int { return len(db.entries) }

// Get looks up name with loose wildcard matching: an entry matches if
// its key equals name exactly, or if a '*'-prefixed key matches a tail
// of name's component path (so "*dpi" and "*.dpi" both match
// "Xft.dpi"). The last matching entry wins. Values are truncated to
// MaxValueLen bytes.
func (db *Database) Get(name string) (string, bool) {
	value := ""
	found := false
	for _, e := range db.entries {
		if keyMatches(e.key, name) {
			value = e.value
			found = true
		}
	}
	if !found {
		return "", false
	}
	if len(value) > MaxValueLen {
		value = value[:MaxValueLen]
	}
	return value, true
}

func keyMatches(key, name string) bool {
	if key == name {
		return true
	}
	if !strings.HasPrefix(key, "*") {
		return false
	}
	tail := strings.TrimLeft(key, "*.")
	if tail == "" {
		return false
	}
	return name == tail || strings.HasSuffix(name, "."+tail)
}
