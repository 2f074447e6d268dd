package conv

import (
	"fmt"
	"strings"
)

// NumberStyles controls permissiveness of numeric parsing
type NumberStyles int

const (
	NumberStyleNone                NumberStyles = 0
	NumberStyleAllowLeadingWhite   NumberStyles = 1 << (iota - 1)
	NumberStyleAllowTrailingWhite
	NumberStyleAllowLeadingSign
	NumberStyleAllowTrailingSign
	NumberStyleAllowParentheses
	NumberStyleAllowDecimalPoint
	NumberStyleAllowThousands
	NumberStyleAllowExponent
	NumberStyleAllowCurrencySymbol
	NumberStyleAllowHexSpecifier

	NumberStyleInteger   = NumberStyleAllowLeadingWhite | NumberStyleAllowTrailingWhite | NumberStyleAllowLeadingSign
	NumberStyleHexNumber = NumberStyleAllowLeadingWhite | NumberStyleAllowTrailingWhite | NumberStyleAllowHexSpecifier
	NumberStyleNumber    = NumberStyleInteger | NumberStyleAllowTrailingSign | NumberStyleAllowDecimalPoint | NumberStyleAllowThousands
	NumberStyleFloat     = NumberStyleInteger | NumberStyleAllowDecimalPoint | NumberStyleAllowExponent
	NumberStyleCurrency  = NumberStyleNumber | NumberStyleAllowParentheses | NumberStyleAllowCurrencySymbol
	NumberStyleAny       = NumberStyleCurrency | NumberStyleAllowExponent
)

// DateTimeStyles controls permissiveness of date/time parsing
type DateTimeStyles int

const (
	DateTimeStyleNone               DateTimeStyles = 0
	DateTimeStyleAllowLeadingWhite  DateTimeStyles = 1 << (iota - 1)
	DateTimeStyleAllowTrailingWhite
	DateTimeStyleAllowInnerWhite
	DateTimeStyleAdjustToUniversal
	DateTimeStyleAssumeLocal
	DateTimeStyleAssumeUniversal

	DateTimeStyleAllowWhiteSpaces = DateTimeStyleAllowLeadingWhite | DateTimeStyleAllowTrailingWhite | DateTimeStyleAllowInnerWhite
)

type styleName[T ~int] struct {
	name  string
	value T
}

// composites go first so that String prefers them
var numberStyleNames = []styleName[NumberStyles]{
	{"Any", NumberStyleAny},
	{"Currency", NumberStyleCurrency},
	{"Number", NumberStyleNumber},
	{"Float", NumberStyleFloat},
	{"HexNumber", NumberStyleHexNumber},
	{"Integer", NumberStyleInteger},
	{"AllowLeadingWhite", NumberStyleAllowLeadingWhite},
	{"AllowTrailingWhite", NumberStyleAllowTrailingWhite},
	{"AllowLeadingSign", NumberStyleAllowLeadingSign},
	{"AllowTrailingSign", NumberStyleAllowTrailingSign},
	{"AllowParentheses", NumberStyleAllowParentheses},
	{"AllowDecimalPoint", NumberStyleAllowDecimalPoint},
	{"AllowThousands", NumberStyleAllowThousands},
	{"AllowExponent", NumberStyleAllowExponent},
	{"AllowCurrencySymbol", NumberStyleAllowCurrencySymbol},
	{"AllowHexSpecifier", NumberStyleAllowHexSpecifier},
}

var dateTimeStyleNames = []styleName[DateTimeStyles]{
	{"AllowWhiteSpaces", DateTimeStyleAllowWhiteSpaces},
	{"AllowLeadingWhite", DateTimeStyleAllowLeadingWhite},
	{"AllowTrailingWhite", DateTimeStyleAllowTrailingWhite},
	{"AllowInnerWhite", DateTimeStyleAllowInnerWhite},
	{"AdjustToUniversal", DateTimeStyleAdjustToUniversal},
	{"AssumeLocal", DateTimeStyleAssumeLocal},
	{"AssumeUniversal", DateTimeStyleAssumeUniversal},
}

// Has returns true if all flags are set
func (s NumberStyles) Has(flags NumberStyles) bool {
	return s&flags == flags
}

// String returns | separated style names
func (s NumberStyles) String() string {
	return styleString(s, numberStyleNames)
}

// Has returns true if all flags are set
func (s DateTimeStyles) Has(flags DateTimeStyles) bool {
	return s&flags == flags
}

// String returns | separated style names
func (s DateTimeStyles) String() string {
	return styleString(s, dateTimeStyleNames)
}

// ParseNumberStyles parses | or , separated style names, i.e. "Integer|AllowThousands"
func ParseNumberStyles(text string) (NumberStyles, error) {
	return parseStyles(text, numberStyleNames)
}

// ParseDateTimeStyles parses | or , separated style names, i.e. "AllowWhiteSpaces|AssumeUniversal"
func ParseDateTimeStyles(text string) (DateTimeStyles, error) {
	return parseStyles(text, dateTimeStyleNames)
}

func styleString[T ~int](s T, names []styleName[T]) string {
	if s == 0 {
		return "None"
	}
	var parts []string
	rest := s
	for _, candidate := range names {
		if rest&candidate.value == candidate.value {
			parts = append(parts, candidate.name)
			rest &^= candidate.value
		}
		if rest == 0 {
			break
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", int(rest)))
	}
	return strings.Join(parts, "|")
}

func parseStyles[T ~int](text string, names []styleName[T]) (T, error) {
	var result T
	for _, part := range strings.FieldsFunc(text, func(r rune) bool { return r == '|' || r == ',' }) {
		part = strings.TrimSpace(part)
		if part == "" || strings.EqualFold(part, "None") {
			continue
		}
		matched := false
		for _, candidate := range names {
			if strings.EqualFold(candidate.name, part) {
				result |= candidate.value
				matched = true
				break
			}
		}
		if !matched {
			return result, fmt.Errorf("unknown style: %v", part)
		}
	}
	return result, nil
}
