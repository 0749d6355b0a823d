// Package utils provides helpers for reading loosely formatted tabular text.
package utils

import (
	"math"
	"strconv"
	"strings"
)

// nullTokens are cell values read as missing.
var nullTokens = map[string]bool{
	"":         true,
	"NA":       true,
	"N/A":      true,
	"n/a":      true,
	"NaN":      true,
	"nan":      true,
	"-NaN":     true,
	"-nan":     true,
	"null":     true,
	"NULL":     true,
	"None":     true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"<NA>":     true,
	"-1.#IND":  true,
	"1.#IND":   true,
	"-1.#QNAN": true,
	"1.#QNAN":  true,
}

// StringHelper provides string utility functions.
type StringHelper struct{}

// NewStringHelper creates a new string helper.
func NewStringHelper() *StringHelper {
	return &StringHelper{}
}

// IsNull reports whether a cell holds a missing value.
func (s *StringHelper) IsNull(str string) bool {
	return nullTokens[strings.TrimSpace(str)]
}

// NormalizeWhitespace replaces multiple whitespace with single space.
func (s *StringHelper) NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// CanonicalColumn lowercases a header and joins its words with underscores.
// "Accident ID" becomes "accident_id".
func (s *StringHelper) CanonicalColumn(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(name), "_"))
}

// CanonicalID trims an identifier and writes integral numbers without a
// fractional part, so "7", " 7 " and "7.0" name the same record.
func (s *StringHelper) CanonicalID(id string) string {
	id = strings.TrimSpace(id)

	f, err := strconv.ParseFloat(id, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) >= 1e15 {
		return id
	}

	return strconv.FormatInt(int64(f), 10)
}
