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
	"github.com/fogfish/materials"
)

// Put writes entity. The write is rejected with PreConditionFailed
// if any of given predicates does not hold at the stored item.
func (db *Storage[T]) Put(ctx context.Context, entity T, cond ...materials.Predicate) error {
	gen, err := db.codec.Encode(entity)
	if err != nil {
		return errInvalidEntity.New(err)
	}

	req := &dynamodb.PutItemInput{
		Item:      gen,
		TableName: db.table,
	}

	expr := newExpression()
	req.ConditionExpression, err = expr.condition(cond)
	if err != nil {
		return errInvalidExpression.New(err)
	}
	req.ExpressionAttributeNames, req.ExpressionAttributeValues = expr.attributes()

	_, err = db.service.PutItem(ctx, req)
	if err != nil {
		if e, ok := recoverConditionalCheckFailed(err, string(entity.HashKey()), false); ok {
			return e
		}
		return errServiceIO.New(err)
	}

	return nil
}
