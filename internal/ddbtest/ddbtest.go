//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

//
// The file mocks AWS DynamoDB
//

package ddbtest

import (
	"context"
	"errors"
	"reflect"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/fogfish/materials"
	ddbapi "github.com/fogfish/materials/service/ddb"
)

/*
mock factory
*/
func mock[T materials.Thing](mock ddbapi.DynamoDB) *ddbapi.Storage[T] {
	return ddbapi.Must(
		ddbapi.New[T](ddbapi.WithTable("test"), ddbapi.WithService(mock)),
	)
}

/*
GetItem mocks
*/
func GetItem[T materials.Thing](
	expectKey map[string]types.AttributeValue,
	returnVal map[string]types.AttributeValue,
) *ddbapi.Storage[T] {
	return mock[T](&ddbGetItem{expectKey: expectKey, returnVal: returnVal})
}

type ddbGetItem struct {
	ddbapi.DynamoDB
	expectKey map[string]types.AttributeValue
	returnVal map[string]types.AttributeValue
}

func (mock *ddbGetItem) GetItem(ctx context.Context, input *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if !reflect.DeepEqual(mock.expectKey, input.Key) {
		return nil, errors.New("unexpected entity")
	}

	return &dynamodb.GetItemOutput{Item: mock.returnVal}, nil
}

/*
PutItem mock
*/
func PutItem[T materials.Thing](
	expectVal map[string]types.AttributeValue,
) *ddbapi.Storage[T] {
	return mock[T](&ddbPutItem{expectVal: expectVal})
}

type ddbPutItem struct {
	ddbapi.DynamoDB
	expectVal map[string]types.AttributeValue
}

func (mock *ddbPutItem) PutItem(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if !reflect.DeepEqual(mock.expectVal, input.Item) {
		return nil, errors.New("unexpected entity")
	}
	return &dynamodb.PutItemOutput{}, nil
}

/*
DeleteItem mock
*/
func DeleteItem[T materials.Thing](
	expectKey map[string]types.AttributeValue,
) *ddbapi.Storage[T] {
	return mock[T](&ddbDeleteItem{expectKey: expectKey})
}

type ddbDeleteItem struct {
	ddbapi.DynamoDB
	expectKey map[string]types.AttributeValue
}

func (mock *ddbDeleteItem) DeleteItem(ctx context.Context, input *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if !reflect.DeepEqual(mock.expectKey, input.Key) {
		return nil, errors.New("unexpected entity")
	}

	return &dynamodb.DeleteItemOutput{}, nil
}

/*
UpdateItem mock
*/
func UpdateItem[T materials.Thing](
	expectKey map[string]types.AttributeValue,
	expectVal map[string]types.AttributeValue,
	returnVal map[string]types.AttributeValue,
) *ddbapi.Storage[T] {
	return mock[T](&ddbUpdateItem{
		expectKey: expectKey,
		expectVal: expectVal,
		returnVal: returnVal,
	})
}

type ddbUpdateItem struct {
	ddbapi.DynamoDB
	expectKey map[string]types.AttributeValue
	expectVal map[string]types.AttributeValue
	returnVal map[string]types.AttributeValue
}

func (mock *ddbUpdateItem) UpdateItem(ctx context.Context, input *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if !reflect.DeepEqual(mock.expectKey, input.Key) {
		return nil, errors.New("unexpected entity key")
	}

	for k, v := range mock.expectVal {
		if !reflect.DeepEqual(v, input.ExpressionAttributeValues[":__"+k+"__"]) {
			return nil, errors.New("unexpected entity")
		}
	}

	return &dynamodb.UpdateItemOutput{Attributes: mock.returnVal}, nil
}

/*
Scan mock, serves each page in order, only strongly consistent reads
are accepted
*/
func Scan[T materials.Thing](
	expectVal map[string]types.AttributeValue,
	pages ...[]map[string]types.AttributeValue,
) *ddbapi.Storage[T] {
	return mock[T](&ddbScan{expectVal: expectVal, pages: pages})
}

type ddbScan struct {
	ddbapi.DynamoDB
	expectVal map[string]types.AttributeValue
	pages     [][]map[string]types.AttributeValue
}

func (mock *ddbScan) Scan(ctx context.Context, input *dynamodb.ScanInput, opts ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if !aws.ToBool(input.ConsistentRead) {
		return nil, errors.New("eventually consistent scan")
	}

	if err := expectValues(mock.expectVal, input.ExpressionAttributeValues); err != nil {
		return nil, err
	}

	page, last, err := paginate(mock.pages, input.ExclusiveStartKey)
	if err != nil {
		return nil, err
	}

	return &dynamodb.ScanOutput{
		Count:            int32(len(page)),
		ScannedCount:     int32(len(page)),
		Items:            page,
		LastEvaluatedKey: last,
	}, nil
}

/*
Query mock, serves each page in order
*/
func Query[T materials.Thing](
	expectIndex string,
	expectVal map[string]types.AttributeValue,
	pages ...[]map[string]types.AttributeValue,
) *ddbapi.Storage[T] {
	return mock[T](&ddbQuery{expectIndex: expectIndex, expectVal: expectVal, pages: pages})
}

type ddbQuery struct {
	ddbapi.DynamoDB
	expectIndex string
	expectVal   map[string]types.AttributeValue
	pages       [][]map[string]types.AttributeValue
}

func (mock *ddbQuery) Query(ctx context.Context, input *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if input.IndexName == nil || *input.IndexName != mock.expectIndex {
		return nil, errors.New("unexpected index")
	}

	if err := expectValues(mock.expectVal, input.ExpressionAttributeValues); err != nil {
		return nil, err
	}

	page, last, err := paginate(mock.pages, input.ExclusiveStartKey)
	if err != nil {
		return nil, err
	}

	return &dynamodb.QueryOutput{
		Count:            int32(len(page)),
		ScannedCount:     int32(len(page)),
		Items:            page,
		LastEvaluatedKey: last,
	}, nil
}

func expectValues(expect, values map[string]types.AttributeValue) error {
	for k, v := range expect {
		if !reflect.DeepEqual(v, values[k]) {
			return errors.New("unexpected expression value " + k)
		}
	}
	return nil
}

// page cursor is encoded as number of served pages
func paginate(
	pages [][]map[string]types.AttributeValue,
	cursor map[string]types.AttributeValue,
) ([]map[string]types.AttributeValue, map[string]types.AttributeValue, error) {
	at := 0
	if cursor != nil {
		page, ok := cursor["page"].(*types.AttributeValueMemberN)
		if !ok {
			return nil, nil, errors.New("unexpected cursor")
		}
		n, err := strconv.Atoi(page.Value)
		if err != nil {
			return nil, nil, err
		}
		at = n
	}

	if at >= len(pages) {
		return nil, nil, nil
	}

	var last map[string]types.AttributeValue
	if at+1 < len(pages) {
		last = map[string]types.AttributeValue{
			"page": &types.AttributeValueMemberN{Value: strconv.Itoa(at + 1)},
		}
	}

	return pages[at], last, nil
}

/*
Constrains mock, the condition holds if the item is stored and
the value of name attribute is "xxx"
*/
func Constrains[T materials.Thing](
	storedVal map[string]types.AttributeValue,
) *ddbapi.Storage[T] {
	return mock[T](&ddbConstrains{storedVal: storedVal})
}

type ddbConstrains struct {
	ddbapi.DynamoDB
	storedVal map[string]types.AttributeValue
}

func (mock ddbConstrains) assert(values map[string]types.AttributeValue) error {
	value, exists := values[":__c_name__"]
	if !exists {
		return &types.ConditionalCheckFailedException{Item: mock.storedVal}
	}

	switch v := value.(type) {
	case *types.AttributeValueMemberS:
		if v.Value != "xxx" {
			return &types.ConditionalCheckFailedException{Item: mock.storedVal}
		}
	default:
		return &types.ConditionalCheckFailedException{Item: mock.storedVal}
	}

	if mock.storedVal == nil {
		return &types.ConditionalCheckFailedException{}
	}

	return nil
}

func (mock ddbConstrains) PutItem(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if err := mock.assert(input.ExpressionAttributeValues); err != nil {
		return nil, err
	}

	return &dynamodb.PutItemOutput{}, nil
}

func (mock ddbConstrains) DeleteItem(ctx context.Context, input *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if err := mock.assert(input.ExpressionAttributeValues); err != nil {
		return nil, err
	}

	return &dynamodb.DeleteItemOutput{}, nil
}

func (mock ddbConstrains) UpdateItem(ctx context.Context, input *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if err := mock.assert(input.ExpressionAttributeValues); err != nil {
		return nil, err
	}

	return &dynamodb.UpdateItemOutput{Attributes: mock.storedVal}, nil
}
