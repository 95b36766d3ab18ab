//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package ddb

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/fogfish/faults"
	"github.com/fogfish/materials"
)

const (
	errUndefinedTable    = faults.Type("undefined table name")
	errServiceIO         = faults.Type("service i/o failed")
	errInvalidKey        = faults.Type("invalid key")
	errInvalidEntity     = faults.Type("invalid entity")
	errInvalidExpression = faults.Type("invalid expression")
)

// recover AWS ConditionalCheckFailedException. The item is absent at
// the exception if request does not ask for old values or the item does
// not exist.
func recoverConditionalCheckFailed(err error, key string, withOldValues bool) (error, bool) {
	var e *types.ConditionalCheckFailedException

	if !errors.As(err, &e) {
		return nil, false
	}

	if withOldValues && len(e.Item) == 0 {
		return materials.NewNotFound(key, err), true
	}

	return materials.NewPreConditionFailed(key, err), true
}
