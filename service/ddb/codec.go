//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package ddb

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/fogfish/materials"
)

// Codec is utility to encode/decode objects to dynamo representation
type codec[T materials.Thing] struct {
	hashKey   string
	undefined T
}

func newCodec[T materials.Thing](hashKey string) *codec[T] {
	return &codec[T]{hashKey: hashKey}
}

// EncodeKey to dynamo representation
func (codec codec[T]) EncodeKey(key T) (map[string]types.AttributeValue, error) {
	hashkey := key.HashKey()
	if hashkey == "" {
		return nil, fmt.Errorf("invalid key of %T, hashkey cannot be empty", key)
	}

	return map[string]types.AttributeValue{
		codec.hashKey: &types.AttributeValueMemberS{Value: string(hashkey)},
	}, nil
}

// Encode object to dynamo representation
func (codec codec[T]) Encode(entity T) (map[string]types.AttributeValue, error) {
	if entity.HashKey() == "" {
		return nil, fmt.Errorf("invalid entity of %T, hashkey cannot be empty", entity)
	}

	gen, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return nil, err
	}

	if _, has := gen[codec.hashKey]; !has {
		return nil, fmt.Errorf("invalid entity of %T, attribute %s is not defined", entity, codec.hashKey)
	}

	return gen, nil
}

// Decode dynamo representation to object
func (codec codec[T]) Decode(gen map[string]types.AttributeValue) (T, error) {
	if _, has := gen[codec.hashKey]; !has {
		return codec.undefined, fmt.Errorf("invalid DDB schema, attribute %s is not defined", codec.hashKey)
	}

	var entity T
	if err := attributevalue.UnmarshalMap(gen, &entity); err != nil {
		return codec.undefined, err
	}

	return entity, nil
}

// Decode sequence of items
func (codec codec[T]) DecodeSeq(seq []map[string]types.AttributeValue) ([]T, error) {
	items := make([]T, 0, len(seq))
	for _, gen := range seq {
		obj, err := codec.Decode(gen)
		if err != nil {
			return nil, err
		}
		items = append(items, obj)
	}

	return items, nil
}
