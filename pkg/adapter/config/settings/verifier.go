// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
	"fmt"
)

// Default sets *p to v if it is nil.
func Default[T any](p **T, v T) {
	if *p == nil {
		*p = &v
	}
}

// Nil2Zero sets each nil pointer to the zero value of its type.
func Nil2Zero[T any](ps ...**T) {
	for _, p := range ps {
		if *p == nil {
			*p = new(T)
		}
	}
}

// RangeError reports that the Name setting has a Value which is not
// in the [Min, Max] range. Nil boundaries are not checked.
type RangeError[T cmp.Ordered] struct {
	Name  string
	Value T
	Min   *T
	Max   *T
}

func (e *RangeError[T]) Error() string {
	switch {
	case e.Min != nil && e.Max != nil:
		return fmt.Sprintf(
			"%s: %v is not in [%v, %v]", e.Name, e.Value, *e.Min, *e.Max,
		)
	case e.Min != nil:
		return fmt.Sprintf("%s: %v is less than %v", e.Name, e.Value, *e.Min)
	default:
		return fmt.Sprintf(
			"%s: %v is greater than %v", e.Name, e.Value, *e.Max,
		)
	}
}

// VerifyRange checks that value is nil or within minb and maxb. A nil
// boundary is open. When minb is greater than maxb, the range itself
// is rejected.
func VerifyRange[T cmp.Ordered](name string, value, minb, maxb *T) error {
	if minb != nil && maxb != nil && *minb > *maxb {
		return fmt.Errorf(
			"%s: minimum %v is greater than maximum %v", name, *minb, *maxb,
		)
	}
	if value == nil {
		return nil
	}
	if (minb != nil && *value < *minb) || (maxb != nil && *value > *maxb) {
		return &RangeError[T]{Name: name, Value: *value, Min: minb, Max: maxb}
	}
	return nil
}
