// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import (
	"fmt"

	"github.com/momeni/repair-gateway/pkg/core/model"
)

// MismatchingSemVerError reports that a configuration file was written
// for a format version which this binary cannot load. The first element
// is the supported version and the second one is the version found in
// the file.
type MismatchingSemVerError [2]model.SemVer

func (msve *MismatchingSemVerError) Error() string {
	return fmt.Sprintf(
		"expected v%d.%d.x (or an older minor), but got v%s",
		msve[0][0], msve[0][1], msve[1].String(),
	)
}
