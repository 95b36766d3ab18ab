//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package ddb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/fogfish/materials"
)

// Remove discards the entity from the table
func (db *Storage[T]) Remove(ctx context.Context, key T, cond ...materials.Predicate) error {
	gen, err := db.codec.EncodeKey(key)
	if err != nil {
		return errInvalidKey.New(err)
	}

	req := &dynamodb.DeleteItemInput{
		Key:       gen,
		TableName: db.table,
	}

	expr := newExpression()
	req.ConditionExpression, err = expr.condition(cond)
	if err != nil {
		return errInvalidExpression.New(err)
	}
	req.ExpressionAttributeNames, req.ExpressionAttributeValues = expr.attributes()
	if req.ConditionExpression != nil {
		req.ReturnValuesOnConditionCheckFailure = types.ReturnValuesOnConditionCheckFailureAllOld
	}

	_, err = db.service.DeleteItem(ctx, req)
	if err != nil {
		if e, ok := recoverConditionalCheckFailed(err, string(key.HashKey()), true); ok {
			return e
		}
		return errServiceIO.New(err)
	}

	return nil
}
