package conv

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	ftime "github.com/viant/tagly/format/time"
)

// DefaultDateLayout is the default layout used for time parsing when no layout is specified
const DefaultDateLayout = "2006-01-02 15:04:05.000"

var defaultTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	DefaultDateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// TimeLayout returns go time layout for format, ISO date formats like YYYY-MM-DD hh:mm:ss are converted
func TimeLayout(format string) string {
	if isDateFormat(format) {
		return ftime.DateFormatToTimeLayout(format)
	}
	return format
}

func isDateFormat(format string) bool {
	for _, fragment := range []string{"YYYY", "MM", "DD", "hh", "ss"} {
		if strings.Contains(format, fragment) {
			return true
		}
	}
	return false
}

func parseTime(text string, opts *Options) (time.Time, error) {
	style := opts.dateTimeStyle()
	value := text
	if style.Has(DateTimeStyleAllowLeadingWhite) {
		value = strings.TrimLeftFunc(value, unicode.IsSpace)
	}
	if style.Has(DateTimeStyleAllowTrailingWhite) {
		value = strings.TrimRightFunc(value, unicode.IsSpace)
	}
	if style.Has(DateTimeStyleAllowInnerWhite) {
		value = collapseInnerWhite(value)
	}
	location := time.UTC
	if style.Has(DateTimeStyleAssumeLocal) && !style.Has(DateTimeStyleAssumeUniversal) {
		location = time.Local
	}
	layouts := opts.Formats
	if len(layouts) == 0 {
		layouts = defaultTimeLayouts
	}
	var err error
	for _, format := range layouts {
		var ts time.Time
		if ts, err = time.ParseInLocation(TimeLayout(format), value, location); err == nil {
			if style.Has(DateTimeStyleAdjustToUniversal) {
				ts = ts.UTC()
			}
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidTime, text, err)
}

func formatTime(ts time.Time, opts *Options) string {
	if opts.dateTimeStyle().Has(DateTimeStyleAdjustToUniversal) {
		ts = ts.UTC()
	}
	if format := opts.format(); format != "" {
		return ts.Format(TimeLayout(format))
	}
	return ts.Format(time.RFC3339)
}

// collapseInnerWhite replaces inner white space runs with a single space, edges are kept
func collapseInnerWhite(value string) string {
	start := len(value) - len(strings.TrimLeftFunc(value, unicode.IsSpace))
	end := len(strings.TrimRightFunc(value, unicode.IsSpace))
	if start >= end {
		return value
	}
	return value[:start] + strings.Join(strings.Fields(value[start:end]), " ") + value[end:]
}
