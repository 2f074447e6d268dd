package recordmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/recordmap/conv"
	"golang.org/x/text/language"
)

type invoice struct {
	Number string
	Amount float64
	Paid   bool
	Note   *string
}

func newInvoiceMap(t *testing.T) *ClassMap {
	classMap, err := NewClassMapFor[invoice]()
	require.NoError(t, err)
	return classMap
}

func TestTypeConverterOption_ChainIdentity(t *testing.T) {
	classMap := newInvoiceMap(t)
	field := classMap.Map("Amount")

	var testCases = []struct {
		description string
		set         func(o *TypeConverterOption) *FieldMap
	}{
		{description: "locale", set: func(o *TypeConverterOption) *FieldMap { return o.Locale(language.German) }},
		{description: "date time styles", set: func(o *TypeConverterOption) *FieldMap { return o.DateTimeStyles(conv.DateTimeStyleAssumeLocal) }},
		{description: "number styles", set: func(o *TypeConverterOption) *FieldMap { return o.NumberStyles(conv.NumberStyleCurrency) }},
		{description: "formats", set: func(o *TypeConverterOption) *FieldMap { return o.Formats("%.2f") }},
		{description: "boolean values", set: func(o *TypeConverterOption) *FieldMap { return o.BooleanValues(true, false, "Y") }},
		{description: "true values", set: func(o *TypeConverterOption) *FieldMap { return o.TrueValues("T") }},
		{description: "false values", set: func(o *TypeConverterOption) *FieldMap { return o.FalseValues("F") }},
		{description: "null values", set: func(o *TypeConverterOption) *FieldMap { return o.NullValues("NULL") }},
		{description: "null values with", set: func(o *TypeConverterOption) *FieldMap { return o.NullValuesWith(false, "N/A") }},
	}
	for _, testCase := range testCases {
		assert.Same(t, field, testCase.set(field.TypeConverterOption()), testCase.description)
	}
}

func TestTypeConverterOption_Fluent(t *testing.T) {
	classMap := newInvoiceMap(t)
	classMap.Map("Amount").
		Name("amount", "total").
		TypeConverterOption().Locale(language.German).
		TypeConverterOption().NumberStyles(conv.NumberStyleNumber).
		TypeConverterOption().Formats("%.2f").
		Default("0")

	data := classMap.Field("Amount").Data()
	assert.Equal(t, []string{"amount", "total"}, data.Names)
	assert.Equal(t, language.German, *data.TypeConverterOptions.Locale)
	assert.Equal(t, conv.NumberStyleNumber, *data.TypeConverterOptions.NumberStyle)
	assert.Equal(t, []string{"%.2f"}, data.TypeConverterOptions.Formats)
	assert.Equal(t, "0", *data.Default)
	assert.Nil(t, data.TypeConverterOptions.DateTimeStyle)
}

func TestTypeConverterOption_Values(t *testing.T) {
	var testCases = []struct {
		description string
		configure   func(o *TypeConverterOption)
		expectTrue  []string
		expectFalse []string
		expectNull  []string
	}{
		{
			description: "accumulate without clearing",
			configure: func(o *TypeConverterOption) {
				o.BooleanValues(true, false, "Y")
				o.BooleanValues(true, false, "Yes")
			},
			expectTrue:  []string{"Y", "Yes"},
			expectFalse: []string{},
			expectNull:  []string{},
		},
		{
			description: "clear replaces",
			configure: func(o *TypeConverterOption) {
				o.BooleanValues(true, true, "Y")
				o.BooleanValues(true, true, "T")
			},
			expectTrue:  []string{"T"},
			expectFalse: []string{},
			expectNull:  []string{},
		},
		{
			description: "duplicates kept",
			configure: func(o *TypeConverterOption) {
				o.BooleanValues(false, false, "N", "N")
			},
			expectTrue:  []string{},
			expectFalse: []string{"N", "N"},
			expectNull:  []string{},
		},
		{
			description: "clear without replacement",
			configure: func(o *TypeConverterOption) {
				o.FalseValues("N")
				o.BooleanValues(false, true)
			},
			expectTrue:  []string{},
			expectFalse: []string{},
			expectNull:  []string{},
		},
		{
			description: "sequence",
			configure: func(o *TypeConverterOption) {
				o.BooleanValues(true, true, "Y")
				o.BooleanValues(true, false, "Yes")
				o.BooleanValues(false, true, "N")
				o.NullValues("NULL")
				o.NullValuesWith(false, "N/A")
			},
			expectTrue:  []string{"Y", "Yes"},
			expectFalse: []string{"N"},
			expectNull:  []string{"NULL", "N/A"},
		},
	}
	for _, testCase := range testCases {
		classMap := newInvoiceMap(t)
		field := classMap.Map("Paid")
		testCase.configure(field.TypeConverterOption())
		options := field.Data().TypeConverterOptions
		assert.Equal(t, testCase.expectTrue, options.BooleanTrueValues, testCase.description)
		assert.Equal(t, testCase.expectFalse, options.BooleanFalseValues, testCase.description)
		assert.Equal(t, testCase.expectNull, options.NullValues, testCase.description)
	}
}

func TestTypeConverterOption_NullValuesEquivalence(t *testing.T) {
	classMap := newInvoiceMap(t)
	implicit := classMap.Map("Note")
	explicit := classMap.Map("Number")
	implicit.TypeConverterOption().NullValuesWith(false, "x").TypeConverterOption().NullValues("NULL", "-")
	explicit.TypeConverterOption().NullValuesWith(false, "x").TypeConverterOption().NullValuesWith(true, "NULL", "-")
	assert.Equal(t, explicit.Data().TypeConverterOptions.NullValues, implicit.Data().TypeConverterOptions.NullValues)
	assert.Equal(t, []string{"NULL", "-"}, implicit.Data().TypeConverterOptions.NullValues)
}

func TestTypeConverterOption_LastWriteWins(t *testing.T) {
	classMap := newInvoiceMap(t)
	field := classMap.Map("Amount")
	field.TypeConverterOption().Locale(language.French).TypeConverterOption().Locale(language.German)
	field.TypeConverterOption().Formats("a", "b").TypeConverterOption().Formats()
	options := field.Data().TypeConverterOptions
	assert.Equal(t, language.German, *options.Locale)
	assert.NotNil(t, options.Formats)
	assert.Empty(t, options.Formats)
}

func TestTypeConverterOption_Frozen(t *testing.T) {
	classMap := newInvoiceMap(t)
	field := classMap.Map("Amount")
	field.TypeConverterOption().Locale(language.German)
	NewEncoder(classMap)
	assert.True(t, classMap.IsFrozen())

	var testCases = []struct {
		description string
		mutate      func()
	}{
		{description: "locale", mutate: func() { field.TypeConverterOption().Locale(language.French) }},
		{description: "null values", mutate: func() { field.TypeConverterOption().NullValues("NULL") }},
		{description: "name", mutate: func() { field.Name("x") }},
		{description: "ignore", mutate: func() { field.Ignore(true) }},
	}
	for _, testCase := range testCases {
		assert.PanicsWithValue(t, ErrFrozen, testCase.mutate, testCase.description)
	}
	assert.Equal(t, language.German, *field.Data().TypeConverterOptions.Locale)
}
