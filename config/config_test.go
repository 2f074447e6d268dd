package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/recordmap"
	"github.com/viant/recordmap/conv"
	"golang.org/x/text/language"
)

type payment struct {
	Amount float64
	Paid   bool
	Date   string
	Ref    *string
}

const yamlConfig = `global:
  nullValues: ['NULL']
  numberStyles: Number
fields:
  - field: Amount
    names: [amount, total]
    options:
      locale: de-DE
      formats: ['%.2f']
  - field: Paid
    index: 1
    options:
      trueValues: [Y]
      falseValues: [N]
  - field: Ref
    default: none
    optional: true
    options:
      nullValues: ['-']
      appendValues: true
  - field: Date
    ignore: true
`

const jsonConfig = `{
  "global": {"nullValues": ["NULL"], "numberStyles": "Number"},
  "fields": [
    {"field": "Amount", "names": ["amount", "total"], "options": {"locale": "de-DE", "formats": ["%.2f"]}},
    {"field": "Paid", "index": 1, "options": {"trueValues": ["Y"], "falseValues": ["N"]}},
    {"field": "Ref", "default": "none", "optional": true, "options": {"nullValues": ["-"], "appendValues": true}},
    {"field": "Date", "ignore": true}
  ]
}`

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	var testCases = []struct {
		description string
		file        string
		content     string
		hasError    bool
	}{
		{description: "yaml", file: "mapping.yaml", content: yamlConfig},
		{description: "json", file: "mapping.json", content: jsonConfig},
		{description: "unsupported", file: "mapping.toml", content: "x=1", hasError: true},
		{description: "invalid json", file: "invalid.json", content: "{", hasError: true},
	}
	for _, testCase := range testCases {
		path := filepath.Join(tmpDir, testCase.file)
		require.NoError(t, os.WriteFile(path, []byte(testCase.content), 0o600))
		cfg, err := Load(path)
		if testCase.hasError {
			assert.Error(t, err, testCase.description)
			continue
		}
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		index := 1
		none := "none"
		expect := &Config{
			Global: &Options{NullValues: []string{"NULL"}, NumberStyles: "Number"},
			Fields: []*Field{
				{Field: "Amount", Names: []string{"amount", "total"}, Options: &Options{Locale: "de-DE", Formats: []string{"%.2f"}}},
				{Field: "Paid", Index: &index, Options: &Options{TrueValues: []string{"Y"}, FalseValues: []string{"N"}}},
				{Field: "Ref", Default: &none, Optional: true, Options: &Options{NullValues: []string{"-"}, AppendValues: true}},
				{Field: "Date", Ignore: true},
			},
		}
		assert.EqualValues(t, expect, cfg, testCase.description)
	}
	_, err := Load(filepath.Join(tmpDir, "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Apply(t *testing.T) {
	cfg, err := ParseYAML([]byte(yamlConfig))
	require.NoError(t, err)
	classMap, err := recordmap.NewClassMapFor[payment]()
	require.NoError(t, err)
	classMap.Map("Ref").TypeConverterOption().NullValues("n/a")
	require.NoError(t, cfg.Apply(classMap))

	global := classMap.Options()
	assert.Equal(t, []string{"NULL"}, global.NullValues)
	assert.Equal(t, conv.NumberStyleNumber, *global.NumberStyle)

	amount := classMap.Field("Amount").Data()
	assert.Equal(t, []string{"amount", "total"}, amount.Names)
	assert.Equal(t, language.MustParse("de-DE"), *amount.TypeConverterOptions.Locale)
	assert.Equal(t, []string{"%.2f"}, amount.TypeConverterOptions.Formats)

	paid := classMap.Field("Paid").Data()
	assert.Equal(t, 1, paid.Index)
	assert.Equal(t, []string{"Y"}, paid.TypeConverterOptions.BooleanTrueValues)
	assert.Equal(t, []string{"N"}, paid.TypeConverterOptions.BooleanFalseValues)

	ref := classMap.Field("Ref").Data()
	assert.Equal(t, []string{"n/a", "-"}, ref.TypeConverterOptions.NullValues)
	assert.Equal(t, "none", *ref.Default)
	assert.True(t, ref.Optional)
	assert.True(t, classMap.Field("Date").Data().Ignore)

	assert.Equal(t, []string{"amount", "Paid", "Ref"}, classMap.Header())

	recordmap.NewEncoder(classMap)
	assert.ErrorIs(t, cfg.Apply(classMap), recordmap.ErrFrozen)
}

func TestConfig_ApplyErrors(t *testing.T) {
	var testCases = []struct {
		description string
		config      *Config
	}{
		{description: "unknown field", config: &Config{Fields: []*Field{{Field: "Missing"}}}},
		{description: "invalid locale", config: &Config{Global: &Options{Locale: "??"}}},
		{description: "invalid number style", config: &Config{Fields: []*Field{{Field: "Amount", Options: &Options{NumberStyles: "Roman"}}}}},
		{description: "invalid date time style", config: &Config{Fields: []*Field{{Field: "Date", Options: &Options{DateTimeStyles: "Lunar"}}}}},
	}
	for _, testCase := range testCases {
		classMap, err := recordmap.NewClassMapFor[payment]()
		require.NoError(t, err)
		assert.Error(t, testCase.config.Apply(classMap), testCase.description)
	}
}

func TestConfig_ApplyNameIndex(t *testing.T) {
	type duplicated struct {
		First  string `csv:"name=name"`
		Second string `csv:"name=name,nameIndex=1"`
	}
	var testCases = []struct {
		description string
		parse       func([]byte) (*Config, error)
		content     string
		expect      int
	}{
		{description: "yaml reset to zero", parse: ParseYAML, content: "fields:\n  - field: Second\n    nameIndex: 0\n", expect: 0},
		{description: "json reset to zero", parse: ParseJSON, content: `{"fields": [{"field": "Second", "nameIndex": 0}]}`, expect: 0},
		{description: "yaml absent keeps tag", parse: ParseYAML, content: "fields:\n  - field: Second\n    optional: true\n", expect: 1},
		{description: "json set", parse: ParseJSON, content: `{"fields": [{"field": "Second", "nameIndex": 2}]}`, expect: 2},
	}
	for _, testCase := range testCases {
		cfg, err := testCase.parse([]byte(testCase.content))
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		classMap, err := recordmap.NewClassMapFor[duplicated]()
		require.NoError(t, err)
		require.NoError(t, cfg.Apply(classMap), testCase.description)
		assert.Equal(t, testCase.expect, classMap.Field("Second").Data().NameIndex, testCase.description)
	}
}
