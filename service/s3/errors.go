//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package s3

import (
	"errors"

	"github.com/fogfish/faults"
)

const (
	errUndefinedBucket = faults.Type("undefined bucket name")
	errServiceIO       = faults.Type("service i/o failed")
	errInvalidEntity   = faults.Type("invalid entity")
	errInvalidKey      = faults.Type("invalid key")
)

func recoverNoSuchKey(err error) bool {
	var e interface{ ErrorCode() string }

	ok := errors.As(err, &e)
	return ok && e.ErrorCode() == "NoSuchKey"
}
