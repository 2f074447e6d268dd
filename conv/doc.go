// Package conv converts field text to typed values and back.
//
// Conversion is driven by Options: an optional locale, number and date/time
// parsing styles, ordered format patterns and boolean/null sentinel strings.
// Field level Options are merged over a global set; unset values inherit.
package conv
