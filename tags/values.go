// Package tags parses comma separated key=value struct tag literals.
//
// Values may be wrapped in {...} or '...' when they contain a coma, e.g.
//
//	csv:"name=amount,null={NULL|N/A},format='%.2f'"
package tags

import (
	"bytes"
	"strings"

	"github.com/viant/parsly"
)

// ListSeparator separates list elements within a single tag value
const ListSeparator = '|'

// Values represents tag values
type Values string

// MatchPairs match pairs separated by ,
// An element without = is reported as key with empty value.
func (v Values) MatchPairs(onMatch func(key, value string) error) error {
	cursor := parsly.NewCursor("", []byte(v), 0)
	for cursor.Pos < len(cursor.Input) {
		key, value := matchPair(cursor)
		if key == "" {
			continue
		}
		if err := onMatch(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Elements splits value into ListSeparator separated, trimmed, non empty elements
func Elements(value string) []string {
	value = unwrap(strings.TrimSpace(value))
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, string(ListSeparator))
	var result = make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part == "" {
			continue
		}
		result = append(result, part)
	}
	return result
}

// Sentinels splits value into ListSeparator separated, trimmed elements keeping empty ones,
// so that {|NULL} declares both an empty string and NULL, and an empty value declares the empty string
func Sentinels(value string) []string {
	parts := strings.Split(unwrap(strings.TrimSpace(value)), string(ListSeparator))
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

func matchPair(cursor *parsly.Cursor) (string, string) {
	key := ""
	value := ""
	var tokens = []*parsly.Token{scopeBlockMatcher, quotedMatcher}

	eqIndex := bytes.IndexByte(cursor.Input[cursor.Pos:], '=')
	comaIndex := bytes.IndexByte(cursor.Input[cursor.Pos:], ',')
	if eqIndex == -1 || (comaIndex != -1 && comaIndex < eqIndex) {
		tokens = append(tokens, comaTerminatorMatcher)
	} else {
		tokens = append(tokens, eqTerminatorMatcher)
	}

	match := cursor.MatchAfterOptional(whitespaceMatcher, tokens...)
	switch match.Code {
	case scopeBlockToken, quotedToken:
		value = match.Text(cursor)
		cursor.MatchAny(comaTerminatorMatcher)
		return strings.TrimSpace(unwrap(value)), ""
	case comaTerminatorToken:
		value = match.Text(cursor)
		value = value[:len(value)-1] //exclude ,
	case eqTerminatorToken:
		key = match.Text(cursor)
		key = strings.TrimSpace(key[:len(key)-1])
		value = matchValue(cursor)
		return key, value
	default:
		if cursor.Pos < len(cursor.Input) {
			value = string(cursor.Input[cursor.Pos:])
			cursor.Pos = len(cursor.Input)
		}
	}
	value = strings.TrimSpace(value)
	if index := strings.Index(value, "="); index != -1 {
		return value[:index], value[index+1:]
	}
	return value, ""
}

func matchValue(cursor *parsly.Cursor) string {
	value := ""
	match := cursor.MatchAfterOptional(whitespaceMatcher, scopeBlockMatcher, quotedMatcher, comaTerminatorMatcher)
	switch match.Code {
	case scopeBlockToken, quotedToken:
		value = unwrap(match.Text(cursor))
		cursor.MatchAny(comaTerminatorMatcher)
		return value
	case comaTerminatorToken:
		value = match.Text(cursor)
		value = value[:len(value)-1]
	default:
		if cursor.Pos < len(cursor.Input) {
			value = string(cursor.Input[cursor.Pos:])
			cursor.Pos = len(cursor.Input)
		}
	}
	return strings.TrimSpace(value)
}

func unwrap(value string) string {
	if len(value) < 2 {
		return value
	}
	switch {
	case value[0] == '{' && value[len(value)-1] == '}':
		return value[1 : len(value)-1]
	case value[0] == '\'' && value[len(value)-1] == '\'':
		return value[1 : len(value)-1]
	}
	return value
}
