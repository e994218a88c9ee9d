// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NotRecorded is the placeholder which is printed in reports for the
// display fields which are absent, null, or blank in upstream records.
const NotRecorded = "No registra"

// Record is one JSON object as decoded from the upstream REST API.
// Values may be nil, bool, string, json.Number (or float64 when the
// decoder was not asked to keep numbers), []any, or map[string]any.
//
// Two default policies are exposed by Record accessors because query
// and report consumers treat absent fields differently:
//   - the query path (Str, Bool) passes null through as a nil pointer,
//   - the report path (Display) substitutes the NotRecorded placeholder.
//
// Numeric accessors (Decimal, Int) follow one policy for both paths:
// absent or null values are read as zero.
type Record map[string]any

// ID returns the "id" field as a string or an empty string if the
// record has no usable identifier. Numeric ids are rendered using their
// JSON text, so 7 and "7" identify the same record.
func (r Record) ID() string {
	if s := r.Str("id"); s != nil {
		return strings.TrimSpace(*s)
	}
	return ""
}

// Str returns the key field for the query path. It returns nil if the
// field is absent or null. Strings are returned as is (including empty
// ones) and other scalars are rendered with their JSON text.
// Nested objects and lists are not representable and yield nil.
func (r Record) Str(key string) *string {
	s, ok := scalarText(r[key])
	if !ok {
		return nil
	}
	return &s
}

// Display returns the key field for the report path. Absent, null, or
// blank values are replaced by the NotRecorded placeholder. Booleans
// are printed as "Sí" or "No" and other values are trimmed.
func (r Record) Display(key string) string {
	switch v := r[key].(type) {
	case bool:
		return YesNo(v)
	default:
		s, ok := scalarText(v)
		if !ok {
			return NotRecorded
		}
		if s = strings.TrimSpace(s); s == "" {
			return NotRecorded
		}
		return s
	}
}

// DisplayMoney returns the key field as a dollar amount with two
// fractional digits, e.g., $12.50, treating absent values as zero.
func (r Record) DisplayMoney(key string) (string, error) {
	d, err := r.Decimal(key)
	if err != nil {
		return "", err
	}
	return Money(d), nil
}

// Bool returns the key field as a boolean pointer for the query path.
// Absent or null values (and non-boolean values) yield nil.
func (r Record) Bool(key string) *bool {
	b, ok := r[key].(bool)
	if !ok {
		return nil
	}
	return &b
}

// Truthy reports if the key field holds a true boolean value.
func (r Record) Truthy(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Decimal returns the key field as a decimal number. Absent and null
// values are read as zero. Numbers and numeric strings are converted
// exactly while a malformed numeric string causes a conversion error.
func (r Record) Decimal(key string) (decimal.Decimal, error) {
	switch v := r[key].(type) {
	case nil:
		return decimal.Zero, nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, &ConversionError{Key: key, Value: v, Err: err}
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, &ConversionError{Key: key, Value: v, Err: err}
		}
		return d, nil
	default:
		return decimal.Zero, &ConversionError{
			Key: key, Value: v, Err: fmt.Errorf("unsupported type %T", v),
		}
	}
}

// Int returns the key field as an integer with the same default policy
// as the Decimal method. Fractional values are truncated.
func (r Record) Int(key string) (int64, error) {
	d, err := r.Decimal(key)
	if err != nil {
		return 0, err
	}
	return d.IntPart(), nil
}

// Object returns the key field as a nested Record. Absent, null, or
// non-object values yield an empty (non-nil) Record, so chained field
// accesses such as r.Object("equipment").Object("user") never fail.
func (r Record) Object(key string) Record {
	switch v := r[key].(type) {
	case map[string]any:
		return Record(v)
	case Record:
		return v
	default:
		return Record{}
	}
}

// Objects returns the first non-empty list among the given keys as a
// slice of Records. Upstream versions name the same children list
// differently (e.g., details versus repairOrderDetails), hence, more
// than one key may be probed. Non-object list elements are dropped.
func (r Record) Objects(keys ...string) []Record {
	for _, key := range keys {
		if recs := Records(r[key]); len(recs) > 0 {
			return recs
		}
	}
	return nil
}

// Records converts a decoded JSON list into a slice of Records.
// Non-list values yield nil and non-object elements are skipped.
func Records(v any) []Record {
	var items []any
	switch l := v.(type) {
	case []any:
		items = l
	case []Record:
		return l
	case []map[string]any:
		recs := make([]Record, 0, len(l))
		for _, m := range l {
			recs = append(recs, Record(m))
		}
		return recs
	default:
		return nil
	}
	recs := make([]Record, 0, len(items))
	for _, item := range items {
		switch m := item.(type) {
		case map[string]any:
			recs = append(recs, Record(m))
		case Record:
			recs = append(recs, m)
		}
	}
	return recs
}

// ConversionError indicates that a field which was expected to hold a
// number could not be converted into one.
type ConversionError struct {
	Key   string
	Value any
	Err   error
}

// Error reports the offending key and value.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("field %q: cannot convert %v to number: %v",
		e.Key, e.Value, e.Err)
}

// Unwrap returns the underlying parsing error.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// YesNo prints a boolean the way reports show flags.
func YesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

// Money prints d as a dollar amount with two fractional digits.
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func scalarText(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case bool:
		return strconv.FormatBool(s), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	default:
		return "", false
	}
}
