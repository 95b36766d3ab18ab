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
	"maps"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/fogfish/materials"
)

// Scan reads entire table with strongly consistent reads, following
// pagination, and returns entities that satisfy all predicates.
func (db *Storage[T]) Scan(ctx context.Context, filter ...materials.Predicate) ([]T, error) {
	expr := newExpression()
	cond, err := expr.condition(filter)
	if err != nil {
		return nil, errInvalidExpression.New(err)
	}
	names, values := db.projection(expr)

	seq := make([]T, 0)
	var exclusiveStartKey map[string]types.AttributeValue
	for {
		req := &dynamodb.ScanInput{
			TableName:                 db.table,
			FilterExpression:          cond,
			ProjectionExpression:      db.schema.Projection,
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
			ExclusiveStartKey:         exclusiveStartKey,
			ConsistentRead:            aws.Bool(true),
		}

		val, err := db.service.Scan(ctx, req)
		if err != nil {
			return nil, errServiceIO.New(err)
		}

		items, err := db.codec.DecodeSeq(val.Items)
		if err != nil {
			return nil, errInvalidEntity.New(err)
		}
		seq = append(seq, items...)

		if len(val.LastEvaluatedKey) == 0 {
			return seq, nil
		}
		exclusiveStartKey = val.LastEvaluatedKey
	}
}

// Match queries global secondary index by equality of its hash key.
// The first predicate must be an equality over the index hash key,
// the rest are applied as filter.
func (db *Storage[T]) Match(ctx context.Context, index string, filter ...materials.Predicate) ([]T, error) {
	if len(filter) == 0 || filter[0].Op != materials.OpEq {
		return nil, errInvalidExpression.New(nil)
	}

	expr := newExpression()
	key, err := expr.condition(filter[:1])
	if err != nil {
		return nil, errInvalidExpression.New(err)
	}
	cond, err := expr.condition(filter[1:])
	if err != nil {
		return nil, errInvalidExpression.New(err)
	}
	names, values := db.projection(expr)

	seq := make([]T, 0)
	var exclusiveStartKey map[string]types.AttributeValue
	for {
		req := &dynamodb.QueryInput{
			TableName:                 db.table,
			IndexName:                 aws.String(index),
			KeyConditionExpression:    key,
			FilterExpression:          cond,
			ProjectionExpression:      db.schema.Projection,
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
			ExclusiveStartKey:         exclusiveStartKey,
		}

		val, err := db.service.Query(ctx, req)
		if err != nil {
			return nil, errServiceIO.New(err)
		}

		items, err := db.codec.DecodeSeq(val.Items)
		if err != nil {
			return nil, errInvalidEntity.New(err)
		}
		seq = append(seq, items...)

		if len(val.LastEvaluatedKey) == 0 {
			return seq, nil
		}
		exclusiveStartKey = val.LastEvaluatedKey
	}
}

// projection merges attribute names of the schema with expression
func (db *Storage[T]) projection(expr *expression) (map[string]string, map[string]types.AttributeValue) {
	names, values := expr.attributes()

	all := make(map[string]string, len(db.schema.ExpectedAttributeNames)+len(names))
	maps.Copy(all, db.schema.ExpectedAttributeNames)
	maps.Copy(all, names)

	return all, values
}
