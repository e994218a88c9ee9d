// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package adminuc

import (
	"errors"
	"fmt"
)

// Option is a functional option for the admin use case.
type Option func(uc *UseCase) error

// WithLowStockThreshold option configures the inclusive stock level
// which is counted as critical by the Dashboard use case.
// This option may be passed to the New() function.
func WithLowStockThreshold(n int64) Option {
	return func(uc *UseCase) error {
		if n < 0 {
			return fmt.Errorf("threshold (%d) is negative", n)
		}
		if uc.lowStockThreshold != nil {
			return errors.New("threshold is already configured")
		}
		uc.lowStockThreshold = &n
		return nil
	}
}
