//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package seed

import "github.com/fogfish/faults"

const (
	errInvalidCatalog = faults.Type("invalid catalog")
	errUndefinedTable = faults.Type("collection is not configured")
	errServiceIO      = faults.Type("service i/o failed")
)
