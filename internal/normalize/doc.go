// Package normalize converts raw scraped number strings into canonical
// float64 values.
//
// Source pages format numbers with Brazilian conventions: "." as thousands
// separator, "," as decimal separator, trailing "%" signs, currency prefixes
// and non-breaking spaces. Parse strips all of that and returns an explicit
// ok flag; a string that does not contain a parseable number is reported as
// absent, never coerced to zero.
package normalize
