package config

import "github.com/francoispqt/gojay"

type (
	fieldList  []*Field
	stringList []string
)

// UnmarshalJSONObject decodes config
func (c *Config) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "global":
		c.Global = &Options{}
		return dec.Object(c.Global)
	case "fields":
		fields := fieldList{}
		if err := dec.Array(&fields); err != nil {
			return err
		}
		c.Fields = fields
	}
	return nil
}

// NKeys returns number of keys, 0 decodes all keys
func (c *Config) NKeys() int {
	return 0
}

// UnmarshalJSONObject decodes field mapping
func (f *Field) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "field":
		return dec.String(&f.Field)
	case "names":
		return decodeStrings(dec, &f.Names)
	case "index":
		return dec.IntNull(&f.Index)
	case "nameIndex":
		return dec.IntNull(&f.NameIndex)
	case "ignore":
		return dec.Bool(&f.Ignore)
	case "default":
		return dec.StringNull(&f.Default)
	case "optional":
		return dec.Bool(&f.Optional)
	case "options":
		f.Options = &Options{}
		return dec.Object(f.Options)
	}
	return nil
}

// NKeys returns number of keys, 0 decodes all keys
func (f *Field) NKeys() int {
	return 0
}

// UnmarshalJSONObject decodes type conversion options
func (o *Options) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "locale":
		return dec.String(&o.Locale)
	case "numberStyles":
		return dec.String(&o.NumberStyles)
	case "dateTimeStyles":
		return dec.String(&o.DateTimeStyles)
	case "formats":
		return decodeStrings(dec, &o.Formats)
	case "trueValues":
		return decodeStrings(dec, &o.TrueValues)
	case "falseValues":
		return decodeStrings(dec, &o.FalseValues)
	case "nullValues":
		return decodeStrings(dec, &o.NullValues)
	case "appendValues":
		return dec.Bool(&o.AppendValues)
	}
	return nil
}

// NKeys returns number of keys, 0 decodes all keys
func (o *Options) NKeys() int {
	return 0
}

func (l *fieldList) UnmarshalJSONArray(dec *gojay.Decoder) error {
	field := &Field{}
	if err := dec.Object(field); err != nil {
		return err
	}
	*l = append(*l, field)
	return nil
}

func (l *stringList) UnmarshalJSONArray(dec *gojay.Decoder) error {
	var value string
	if err := dec.String(&value); err != nil {
		return err
	}
	*l = append(*l, value)
	return nil
}

// decodeStrings decodes array keeping an empty array distinct from a missing one
func decodeStrings(dec *gojay.Decoder, target *[]string) error {
	values := stringList{}
	if err := dec.Array(&values); err != nil {
		return err
	}
	*target = values
	return nil
}
