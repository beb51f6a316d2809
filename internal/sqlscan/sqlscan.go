// Package sqlscan finds "?" placeholders in SQL text.
//
// This is not a SQL parser; it only knows enough lexing to tell whether a
// byte is inside a string literal, a quoted identifier, a dollar-quoted
// string, or a comment, so that question marks in those positions are
// never mistaken for placeholders.
package sqlscan

import "strings"

// Placeholders returns the byte offset of every "?" placeholder in query,
// in order. Question marks inside '…', "…", `…`, $tag$…$tag$, -- and
// /* … */ are skipped.
func Placeholders(query string) []int {
	var pos []int
	for i := 0; i < len(query); {
		switch c := query[i]; c {
		case '?':
			pos = append(pos, i)
			i++
		case '\'', '"', '`':
			i = skipQuoted(query, i)
		case '-':
			if i+1 < len(query) && query[i+1] == '-' {
				i = skipLine(query, i+2)
			} else {
				i++
			}
		case '/':
			if i+1 < len(query) && query[i+1] == '*' {
				i = skipBlockComment(query, i+2)
			} else {
				i++
			}
		case '$':
			if tag, ok := dollarTag(query[i:]); ok {
				i = skipDollarQuoted(query, i, tag)
			} else {
				i++
			}
		default:
			i++
		}
	}
	return pos
}

// HasKeyword reports whether word appears as a standalone word in query,
// outside string literals, quoted identifiers, dollar-quoted strings,
// and comments. The match is case-insensitive.
func HasKeyword(query, word string) bool {
	for i := 0; i < len(query); {
		switch c := query[i]; c {
		case '\'', '"', '`':
			i = skipQuoted(query, i)
		case '-':
			if i+1 < len(query) && query[i+1] == '-' {
				i = skipLine(query, i+2)
			} else {
				i++
			}
		case '/':
			if i+1 < len(query) && query[i+1] == '*' {
				i = skipBlockComment(query, i+2)
			} else {
				i++
			}
		case '$':
			if tag, ok := dollarTag(query[i:]); ok {
				i = skipDollarQuoted(query, i, tag)
			} else {
				i++
			}
		default:
			if !wordByte(c) {
				i++
				continue
			}
			j := i + 1
			for j < len(query) && wordByte(query[j]) {
				j++
			}
			if strings.EqualFold(query[i:j], word) {
				return true
			}
			i = j
		}
	}
	return false
}

func wordByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// skipQuoted returns the offset just past the literal or identifier
// opened by the quote at query[start]. Doubled quotes ('') and
// backslash-escaped quotes are part of the literal. Unterminated
// literals run to the end of the string.
func skipQuoted(query string, start int) int {
	q := query[start]
	for i := start + 1; i < len(query); i++ {
		switch query[i] {
		case '\\':
			if q != '`' { // No backslash escapes in quoted identifiers.
				i++
			}
		case q:
			if i+1 < len(query) && query[i+1] == q {
				i++ // '' inside '…'
				continue
			}
			return i + 1
		}
	}
	return len(query)
}

func skipLine(query string, i int) int {
	for ; i < len(query); i++ {
		if query[i] == '\n' {
			return i + 1
		}
	}
	return len(query)
}

func skipBlockComment(query string, i int) int {
	for ; i+1 < len(query); i++ {
		if query[i] == '*' && query[i+1] == '/' {
			return i + 2
		}
	}
	return len(query)
}

// dollarTag reports whether s starts a PostgreSQL dollar-quote opener
// such as $$ or $tag$, returning the full opener.
func dollarTag(s string) (string, bool) {
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c == '$' {
			return s[:i+1], true
		}
		if !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return "", false
		}
	}
	return "", false
}

func skipDollarQuoted(query string, start int, tag string) int {
	for i := start + len(tag); i+len(tag) <= len(query); i++ {
		if query[i:i+len(tag)] == tag {
			return i + len(tag)
		}
	}
	return len(query)
}
