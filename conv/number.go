package conv

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/viant/recordmap/internal/cache"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// separators represents locale specific number symbols
type separators struct {
	decimal string
	group   string
	digits  map[rune]byte
}

var separatorCache = cache.NewSyncMap[string, *separators]()

// sampleNumber contains every digit, a group and a decimal separator once printed
const sampleNumber = 1234567890.5

func localeSeparators(tag language.Tag) *separators {
	return separatorCache.GetOrCreate(tag.String(), func() *separators {
		p := message.NewPrinter(tag)
		return newSeparators(p.Sprintf("%v", number.Decimal(sampleNumber)))
	})
}

func newSeparators(sample string) *separators {
	ret := &separators{decimal: ".", group: ",", digits: map[rune]byte{}}
	var runs []string
	var run strings.Builder
	digitCount := 0
	for _, r := range sample {
		if unicode.IsDigit(r) {
			if digitCount > 0 && run.Len() > 0 {
				runs = append(runs, run.String())
			}
			run.Reset()
			if digitCount < 10 {
				ret.digits[r] = byte('0' + (digitCount+1)%10)
			}
			digitCount++
			continue
		}
		if digitCount > 0 {
			run.WriteRune(r)
		}
	}
	switch len(runs) {
	case 0:
	case 1:
		ret.decimal = runs[0]
		ret.group = ""
	default:
		ret.decimal = runs[len(runs)-1]
		ret.group = runs[0]
	}
	return ret
}

func (s *separators) digit(r rune) (byte, bool) {
	if r >= '0' && r <= '9' {
		return byte(r), true
	}
	d, ok := s.digits[r]
	return d, ok
}

func (s *separators) hasGroup(text string) (int, bool) {
	if s.group == "" {
		return 0, false
	}
	if strings.HasPrefix(text, s.group) {
		return len(s.group), true
	}
	r, size := utf8.DecodeRuneInString(s.group)
	if size == len(s.group) && isSpaceSeparator(r) {
		candidate, candidateSize := utf8.DecodeRuneInString(text)
		if isSpaceSeparator(candidate) {
			return candidateSize, true
		}
	}
	return 0, false
}

func isSpaceSeparator(r rune) bool {
	return r == ' ' || r == '\u00a0' || r == '\u202f'
}

func isSign(r rune) (negative bool, ok bool) {
	switch r {
	case '-', '\u2212':
		return true, true
	case '+':
		return false, true
	}
	return false, false
}

func isCurrencyOrSpace(r rune) bool {
	return unicode.Is(unicode.Sc, r) || unicode.IsSpace(r)
}

// numberText represents normalized number: ASCII digits with optional '.' and exponent
type numberText struct {
	negative bool
	hex      bool
	body     string
}

func (n numberText) String() string {
	if n.negative {
		return "-" + n.body
	}
	return n.body
}

func (n numberText) isIntegral() bool {
	return !strings.ContainsAny(n.body, ".e")
}

// integral returns n without a zero only fraction, e.g. 12.000 as 12
func (n numberText) integral() (numberText, bool) {
	if n.isIntegral() {
		return n, true
	}
	if strings.Contains(n.body, "e") {
		return n, false
	}
	whole, fraction, _ := strings.Cut(n.body, ".")
	if strings.Trim(fraction, "0") != "" {
		return n, false
	}
	if whole == "" {
		whole = "0"
	}
	n.body = whole
	return n, true
}

func parseNumberText(text string, style NumberStyles, seps *separators) (numberText, error) {
	ret := numberText{}
	s := text
	if style.Has(NumberStyleAllowLeadingWhite) {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
	}
	if style.Has(NumberStyleAllowTrailingWhite) {
		s = strings.TrimRightFunc(s, unicode.IsSpace)
	}
	if s == "" {
		return ret, fmt.Errorf("%w: %q", ErrInvalidNumber, text)
	}
	if style.Has(NumberStyleAllowHexSpecifier) {
		hex := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		if hex == "" || strings.IndexFunc(hex, func(r rune) bool { return !isHexDigit(r) }) != -1 {
			return ret, fmt.Errorf("%w: %q is not hex", ErrInvalidNumber, text)
		}
		ret.hex = true
		ret.body = hex
		return ret, nil
	}
	currency := style.Has(NumberStyleAllowCurrencySymbol)
	if currency {
		s = strings.TrimFunc(s, isCurrencyOrSpace)
	}
	parentheses := false
	if style.Has(NumberStyleAllowParentheses) && strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		parentheses = true
		ret.negative = true
		s = s[1 : len(s)-1]
		if currency {
			s = strings.TrimFunc(s, isCurrencyOrSpace)
		}
	}
	signed := false
	if r, size := utf8.DecodeRuneInString(s); style.Has(NumberStyleAllowLeadingSign) {
		if negative, ok := isSign(r); ok {
			signed = true
			ret.negative = ret.negative || negative
			s = s[size:]
		}
	}
	if currency {
		s = strings.TrimFunc(s, isCurrencyOrSpace)
	}
	if r, size := utf8.DecodeLastRuneInString(s); !signed && style.Has(NumberStyleAllowTrailingSign) {
		if negative, ok := isSign(r); ok {
			signed = true
			ret.negative = ret.negative || negative
			s = s[:len(s)-size]
		}
	}
	if signed && parentheses {
		return ret, fmt.Errorf("%w: %q has both sign and parentheses", ErrInvalidNumber, text)
	}
	body, err := normalizeDigits(s, style, seps)
	if err != nil {
		return ret, fmt.Errorf("%w: %q %v", ErrInvalidNumber, text, err)
	}
	ret.body = body
	return ret, nil
}

func normalizeDigits(s string, style NumberStyles, seps *separators) (string, error) {
	builder := strings.Builder{}
	mantissaDigits := 0
	exponentDigits := 0
	hasDecimal := false
	hasExponent := false
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if d, ok := seps.digit(r); ok {
			builder.WriteByte(d)
			if hasExponent {
				exponentDigits++
			} else {
				mantissaDigits++
			}
			i += size
			continue
		}
		rest := s[i:]
		if !hasDecimal && !hasExponent && style.Has(NumberStyleAllowDecimalPoint) && strings.HasPrefix(rest, seps.decimal) {
			builder.WriteByte('.')
			hasDecimal = true
			i += len(seps.decimal)
			continue
		}
		if !hasDecimal && !hasExponent && mantissaDigits > 0 && style.Has(NumberStyleAllowThousands) {
			if groupSize, ok := seps.hasGroup(rest); ok {
				i += groupSize
				continue
			}
		}
		if (r == 'e' || r == 'E') && !hasExponent && mantissaDigits > 0 && style.Has(NumberStyleAllowExponent) {
			builder.WriteByte('e')
			hasExponent = true
			i += size
			if i < len(s) && (s[i] == '+' || s[i] == '-') {
				builder.WriteByte(s[i])
				i++
			}
			continue
		}
		return "", fmt.Errorf("unexpected %q", r)
	}
	if mantissaDigits == 0 {
		return "", fmt.Errorf("no digits")
	}
	if hasExponent && exponentDigits == 0 {
		return "", fmt.Errorf("missing exponent digits")
	}
	return builder.String(), nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func parseInt(text string, bitSize int, opts *Options) (int64, error) {
	n, err := parseNumberText(text, opts.numberStyle(), localeSeparators(opts.locale()))
	if err != nil {
		return 0, err
	}
	if n.hex {
		u, err := strconv.ParseUint(n.body, 16, bitSize)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidNumber, err)
		}
		return signExtend(u, bitSize), nil
	}
	if exact, ok := n.integral(); ok {
		v, err := strconv.ParseInt(exact.String(), 10, bitSize)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidNumber, err)
		}
		return v, nil
	}
	f, err := integralFloat(n)
	if err != nil {
		return 0, err
	}
	limit := math.Ldexp(1, bitSize-1)
	if f < -limit || f >= limit {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidNumber, text)
	}
	return int64(f), nil
}

func parseUint(text string, bitSize int, opts *Options) (uint64, error) {
	n, err := parseNumberText(text, opts.numberStyle(), localeSeparators(opts.locale()))
	if err != nil {
		return 0, err
	}
	if n.hex {
		u, err := strconv.ParseUint(n.body, 16, bitSize)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidNumber, err)
		}
		return u, nil
	}
	if exact, ok := n.integral(); ok {
		if exact.negative && strings.Trim(exact.body, "0") != "" {
			return 0, fmt.Errorf("%w: %q is negative", ErrInvalidNumber, text)
		}
		v, err := strconv.ParseUint(exact.body, 10, bitSize)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidNumber, err)
		}
		return v, nil
	}
	f, err := integralFloat(n)
	if err != nil {
		return 0, err
	}
	if f < 0 || f >= math.Ldexp(1, bitSize) {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidNumber, text)
	}
	return uint64(f), nil
}

func parseFloat(text string, bitSize int, opts *Options) (float64, error) {
	n, err := parseNumberText(text, opts.numberStyle(), localeSeparators(opts.locale()))
	if err != nil {
		return 0, err
	}
	if n.hex {
		return 0, fmt.Errorf("%w: hex is not supported for floats", ErrInvalidNumber)
	}
	f, err := strconv.ParseFloat(n.String(), bitSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidNumber, err)
	}
	return f, nil
}

// maxExactFloatInt is the largest integer float64 holds without rounding
const maxExactFloatInt = 1 << 53

func integralFloat(n numberText) (float64, error) {
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidNumber, err)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %v has fractional part", ErrInvalidNumber, n.String())
	}
	if math.Abs(f) > maxExactFloatInt {
		return 0, fmt.Errorf("%w: %v exceeds exactly representable integer range", ErrInvalidNumber, n.String())
	}
	return f, nil
}

func signExtend(u uint64, bitSize int) int64 {
	if bitSize < 64 && u&(1<<(bitSize-1)) != 0 {
		return int64(u) - int64(1)<<bitSize
	}
	return int64(u)
}

func formatInt(v int64, opts *Options) string {
	if format := opts.format(); strings.Contains(format, "%") {
		return fmt.Sprintf(format, v)
	}
	return strconv.FormatInt(v, 10)
}

func formatUint(v uint64, opts *Options) string {
	if format := opts.format(); strings.Contains(format, "%") {
		return fmt.Sprintf(format, v)
	}
	return strconv.FormatUint(v, 10)
}

func formatFloat(v float64, bitSize int, opts *Options) string {
	var text string
	if format := opts.format(); strings.Contains(format, "%") {
		text = fmt.Sprintf(format, v)
	} else {
		text = strconv.FormatFloat(v, 'f', -1, bitSize)
	}
	if seps := localeSeparators(opts.locale()); seps.decimal != "." {
		text = strings.Replace(text, ".", seps.decimal, 1)
	}
	return text
}
