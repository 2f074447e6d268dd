package recordmap

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/recordmap/conv"
)

type orderHas struct {
	ID       bool
	Customer bool
	Amount   bool
	Paid     bool
	Shipped  bool
	Note     bool
}

type order struct {
	ID       int        `csv:"name=id"`
	Customer string     `csv:"name=customer|client"`
	Amount   float64    `csv:"name=amount,locale=de-DE,numberStyles=Number"`
	Paid     bool       `csv:"name=paid,true={Ja|J},false={Nein|N}"`
	Shipped  *time.Time `csv:"name=shipped,format={DD.MM.YYYY|YYYY-MM-DD},null={NULL|-}"`
	Note     string     `csv:"name=note,default=none"`
	Internal string     `csv:"-"`
	Has      *orderHas  `setMarker:"true"`
}

const ordersCSV = `id,client,amount,paid,shipped,note
1,Acme,"1.234,50",Ja,15.07.2022,
2,Globex,-7,nein,-,urgent
`

func TestDecoder_Decode(t *testing.T) {
	classMap, err := NewClassMapFor[order]()
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(ordersCSV)).ReadAll()
	require.NoError(t, err)
	decoder, err := NewDecoder(classMap, records[0])
	require.NoError(t, err)
	assert.True(t, classMap.IsFrozen())

	shipped := time.Date(2022, 7, 15, 0, 0, 0, 0, time.UTC)
	var testCases = []struct {
		description string
		record      []string
		expect      order
	}{
		{
			description: "localized number, alternate name, default note",
			record:      records[1],
			expect: order{
				ID: 1, Customer: "Acme", Amount: 1234.5, Paid: true, Shipped: &shipped, Note: "none",
				Has: &orderHas{ID: true, Customer: true, Amount: true, Paid: true, Shipped: true, Note: true},
			},
		},
		{
			description: "null sentinel, case insensitive false value",
			record:      records[2],
			expect: order{
				ID: 2, Customer: "Globex", Amount: -7, Paid: false, Note: "urgent",
				Has: &orderHas{ID: true, Customer: true, Amount: true, Paid: true, Note: true},
			},
		},
	}
	for _, testCase := range testCases {
		actual := order{Internal: "kept"}
		err := decoder.Decode(testCase.record, &actual)
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		testCase.expect.Internal = "kept"
		assert.EqualValues(t, testCase.expect, actual, "%v\n%s", testCase.description, spew.Sdump(actual))
	}
}

func TestDecoder_Errors(t *testing.T) {
	classMap, err := NewClassMapFor[order]()
	require.NoError(t, err)

	_, err = NewDecoder(classMap, []string{"id", "customer", "amount", "shipped"})
	assert.ErrorIs(t, err, ErrMissingColumn)

	decoder, err := NewDecoder(classMap, []string{"id", "customer", "amount", "paid", "shipped"})
	require.NoError(t, err)

	var actual order
	err = decoder.Decode([]string{"1", "Acme", "abc", "J", "-"}, &actual)
	var conversionErr *conv.ConversionError
	if assert.True(t, errors.As(err, &conversionErr)) {
		assert.Equal(t, "amount", conversionErr.Field)
		assert.Equal(t, "abc", conversionErr.Text)
		assert.ErrorIs(t, err, conv.ErrInvalidNumber)
	}

	err = decoder.Decode([]string{"1", "Acme"}, &actual)
	assert.ErrorIs(t, err, ErrMissingColumn)

	err = decoder.Decode([]string{"1", "Acme", "1", "J", "-"}, actual)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	assert.NoError(t, decoder.Decode([]string{"1", "Acme", "1", "J", "-"}, &actual))
	assert.Equal(t, "none", actual.Note)
}

func TestDecoder_Columns(t *testing.T) {
	type person struct {
		First  string `csv:"name=name"`
		Second string `csv:"name=name,nameIndex=1"`
		Age    int    `csv:"index=3"`
		Email  string `csv:"optional"`
	}
	classMap, err := NewClassMapFor[person]()
	require.NoError(t, err)
	decoder, err := NewDecoder(classMap, []string{"name", "name", "x", "age"})
	require.NoError(t, err)
	actual := person{Email: "untouched"}
	require.NoError(t, decoder.Decode([]string{"Ann", "Lee", "?", "42"}, &actual))
	assert.Equal(t, person{First: "Ann", Second: "Lee", Age: 42, Email: "untouched"}, actual)
}

func TestDecoder_Positional(t *testing.T) {
	type person struct {
		Name   string
		Age    int
		Active *bool `csv:"true=on,false=off"`
	}
	classMap, err := NewClassMapFor[person](WithHeader(false))
	require.NoError(t, err)
	decoder, err := NewDecoder(classMap, nil)
	require.NoError(t, err)
	var actual person
	require.NoError(t, decoder.Decode([]string{"Ann", " 42 ", "ON"}, &actual))
	active := true
	assert.Equal(t, person{Name: "Ann", Age: 42, Active: &active}, actual)
}

func TestDecoder_TypeConverter(t *testing.T) {
	type reading struct {
		Celsius float64
	}
	classMap, err := NewClassMapFor[reading](WithOptions(conv.NewOptions().AddNullValues(true, "n/a")))
	require.NoError(t, err)
	classMap.Map("Celsius").TypeConverter(conv.Funcs{
		From: func(text string, opts *conv.Options) (interface{}, error) {
			var fahrenheit float64
			if _, err := fmt.Sscan(strings.TrimSuffix(text, "F"), &fahrenheit); err != nil {
				return nil, err
			}
			return (fahrenheit - 32) * 5 / 9, nil
		},
	})
	decoder, err := NewDecoder(classMap, []string{"Celsius"})
	require.NoError(t, err)

	var actual reading
	require.NoError(t, decoder.Decode([]string{"212F"}, &actual))
	assert.Equal(t, 100.0, actual.Celsius)
	require.NoError(t, decoder.Decode([]string{"N/A"}, &actual))
	assert.Equal(t, 0.0, actual.Celsius)

	err = decoder.Decode([]string{"hot"}, &actual)
	var conversionErr *conv.ConversionError
	if assert.True(t, errors.As(err, &conversionErr)) {
		assert.Equal(t, "Celsius", conversionErr.Field)
	}
}

func TestDecoder_EmptySentinel(t *testing.T) {
	type flag struct {
		Enabled bool `csv:"name=enabled,false={|N}"`
		Strict  bool `csv:"name=strict"`
	}
	classMap, err := NewClassMapFor[flag]()
	require.NoError(t, err)
	decoder, err := NewDecoder(classMap, []string{"enabled", "strict"})
	require.NoError(t, err)

	actual := flag{Enabled: true}
	require.NoError(t, decoder.Decode([]string{"", "y"}, &actual))
	assert.Equal(t, flag{Enabled: false, Strict: true}, actual)

	err = decoder.Decode([]string{"N", ""}, &actual)
	assert.ErrorIs(t, err, conv.ErrInvalidBool)
}
