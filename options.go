package recordmap

import (
	"reflect"

	"github.com/viant/recordmap/conv"
	"github.com/viant/tagly/format/text"
)

// Option represents class map option
type Option func(c *ClassMap)

// Options represents class map options
type Options []Option

// Apply applies options
func (o Options) Apply(c *ClassMap) {
	for _, opt := range o {
		opt(c)
	}
}

// WithTagName sets mapping tag name, csv by default
func WithTagName(name string) Option {
	return func(c *ClassMap) {
		c.tagName = name
	}
}

// WithCaseFormat derives default column names from field names with supplied case format
func WithCaseFormat(caseFormat text.CaseFormat) Option {
	return func(c *ClassMap) {
		c.caseFormat = caseFormat
	}
}

// WithOptions sets global type conversion options
func WithOptions(options *conv.Options) Option {
	return func(c *ClassMap) {
		if options != nil {
			c.options = options
		}
	}
}

// WithTypeConverter registers converter for supplied type
func WithTypeConverter(t reflect.Type, converter conv.TypeConverter) Option {
	return func(c *ClassMap) {
		c.converters[t] = converter
	}
}

// WithHeader controls whether the first record is a header
func WithHeader(hasHeader bool) Option {
	return func(c *ClassMap) {
		c.hasHeader = hasHeader
	}
}

// WithConcurrency limits number of records decoded in parallel
func WithConcurrency(concurrency int) Option {
	return func(c *ClassMap) {
		if concurrency > 0 {
			c.concurrency = concurrency
		}
	}
}
