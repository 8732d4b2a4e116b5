package objmodel

import "strings"

const whitespace = " \t\r\n"

// directive returns the leading keyword of a line, or "" for a blank line.
func directive(line string) string {
	start := strings.IndexFunc(line, notBlank)
	if start < 0 {
		return ""
	}
	rest := line[start:]
	if end := strings.IndexAny(rest, whitespace); end >= 0 {
		return rest[:end]
	}
	return rest
}

// payload returns everything after the directive keyword, with surrounding
// whitespace removed. Returns "" when the line has no payload.
func payload(line string) string {
	start := strings.IndexFunc(line, notBlank)
	if start < 0 {
		return ""
	}
	rest := line[start:]
	end := strings.IndexAny(rest, whitespace)
	if end < 0 {
		return ""
	}
	return strings.TrimRight(strings.TrimLeft(rest[end:], whitespace), whitespace)
}

// split cuts s at every occurrence of sep. Empty fields between two
// separators are kept so "1//3" yields ["1" "" "3"]; a trailing separator
// does not produce a trailing empty field.
func split(s string, sep byte) []string {
	if s == "" {
		return nil
	}
	fields := strings.Split(s, string(sep))
	if fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

func notBlank(r rune) bool {
	return !strings.ContainsRune(whitespace, r)
}
