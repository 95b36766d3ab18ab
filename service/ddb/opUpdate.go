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

// Patch applies assignments to existing entity and returns its new values.
// It never creates the entity, NotFound is returned instead.
func (db *Storage[T]) Patch(ctx context.Context, key T, set []materials.Assignment, cond ...materials.Predicate) (T, error) {
	gen, err := db.codec.EncodeKey(key)
	if err != nil {
		return db.undefined, errInvalidKey.New(err)
	}

	req := &dynamodb.UpdateItemInput{
		Key:                                 gen,
		TableName:                           db.table,
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	}

	expr := newExpression()
	req.UpdateExpression, err = expr.update(set)
	if err != nil {
		return db.undefined, errInvalidExpression.New(err)
	}

	exists := materials.Predicate{Op: materials.OpExists, Attribute: db.codec.hashKey}
	req.ConditionExpression, err = expr.condition(append([]materials.Predicate{exists}, cond...))
	if err != nil {
		return db.undefined, errInvalidExpression.New(err)
	}
	req.ExpressionAttributeNames, req.ExpressionAttributeValues = expr.attributes()

	val, err := db.service.UpdateItem(ctx, req)
	if err != nil {
		if e, ok := recoverConditionalCheckFailed(err, string(key.HashKey()), true); ok {
			return db.undefined, e
		}
		return db.undefined, errServiceIO.New(err)
	}

	obj, err := db.codec.Decode(val.Attributes)
	if err != nil {
		return db.undefined, errInvalidEntity.New(err)
	}

	return obj, nil
}
