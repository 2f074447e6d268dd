// Package recordmap maps struct fields to columns of textual records such as CSV rows.
//
// A ClassMap is built from csv and format struct tags and can be refined with a fluent API:
//
//	classMap, _ := recordmap.NewClassMapFor[Order]()
//	classMap.Map("Amount").Name("amount").
//		TypeConverterOption().Locale(language.German).
//		TypeConverterOption().NullValues("NULL", "N/A")
//
// Mapping is frozen once a Decoder or Encoder is created.
package recordmap
