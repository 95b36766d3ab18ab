//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

//
// The file implements update expressions
//

package ddb

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/fogfish/materials"
)

// update builds SET expression
func (expr *expression) update(seq []materials.Assignment) (*string, error) {
	if len(seq) == 0 {
		return nil, fmt.Errorf("empty update expression")
	}

	terms := make([]string, 0, len(seq))
	for _, a := range seq {
		key := ":__" + a.Attribute + "__"
		if err := expr.value(key, a.Value); err != nil {
			return nil, err
		}
		terms = append(terms, expr.name(a.Attribute)+" = "+key)
	}

	return aws.String("SET " + strings.Join(terms, ", ")), nil
}
