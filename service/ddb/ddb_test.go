//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package ddb_test

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/fogfish/curie/v2"
	"github.com/fogfish/it"
	"github.com/fogfish/materials"
	"github.com/fogfish/materials/internal/ddbtest"
	"github.com/fogfish/materials/service/ddb"
)

type person struct {
	ID      curie.IRI `dynamodbav:"id"`
	Name    string    `dynamodbav:"name,omitempty"`
	Age     int       `dynamodbav:"age,omitempty"`
	Address string    `dynamodbav:"address,omitempty"`
}

func (p *person) HashKey() curie.IRI { return p.ID }

var (
	name = materials.LensFor[*person, string]("Name")
	age  = materials.LensFor[*person, int]("Age")
)

func entityKey() *person {
	return &person{ID: "dead:beef"}
}

func entityStruct() *person {
	return &person{
		ID:      "dead:beef",
		Name:    "Verner Pleishner",
		Age:     64,
		Address: "Blumenstrasse 14, Berne, 3013",
	}
}

func keyDynamo() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: "dead:beef"},
	}
}

func entityDynamo() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id":      &types.AttributeValueMemberS{Value: "dead:beef"},
		"address": &types.AttributeValueMemberS{Value: "Blumenstrasse 14, Berne, 3013"},
		"name":    &types.AttributeValueMemberS{Value: "Verner Pleishner"},
		"age":     &types.AttributeValueMemberN{Value: "64"},
	}
}

type none struct{ ddb.DynamoDB }

func TestNewRequiresTable(t *testing.T) {
	_, err := ddb.New[*person](ddb.WithService(none{}))
	it.Ok(t).IfNotNil(err)
}

func TestGet(t *testing.T) {
	db := ddbtest.GetItem[*person](keyDynamo(), entityDynamo())

	val, err := db.Get(context.Background(), entityKey())
	it.Ok(t).
		IfNil(err).
		If(val).Should().Equal(entityStruct())
}

func TestGetNotFound(t *testing.T) {
	db := ddbtest.GetItem[*person](keyDynamo(), nil)

	_, err := db.Get(context.Background(), entityKey())
	it.Ok(t).
		IfNotNil(err).
		IfTrue(materials.IsNotFound(err))
}

func TestGetInvalidKey(t *testing.T) {
	db := ddbtest.GetItem[*person](keyDynamo(), entityDynamo())

	_, err := db.Get(context.Background(), &person{})
	it.Ok(t).
		IfNotNil(err).
		IfTrue(!materials.IsNotFound(err))
}

func TestPut(t *testing.T) {
	db := ddbtest.PutItem[*person](entityDynamo())

	err := db.Put(context.Background(), entityStruct())
	it.Ok(t).IfNil(err)
}

func TestRemove(t *testing.T) {
	db := ddbtest.DeleteItem[*person](keyDynamo())

	err := db.Remove(context.Background(), entityKey())
	it.Ok(t).IfNil(err)
}

func TestPatch(t *testing.T) {
	db := ddbtest.UpdateItem[*person](
		keyDynamo(),
		map[string]types.AttributeValue{
			"age": &types.AttributeValueMemberN{Value: "64"},
		},
		entityDynamo(),
	)

	val, err := db.Patch(context.Background(), entityKey(),
		[]materials.Assignment{age.Set(64)},
	)
	it.Ok(t).
		IfNil(err).
		If(val).Should().Equal(entityStruct())
}

func TestPutWithConstrain(t *testing.T) {
	db := ddbtest.Constrains[*person](entityDynamo())

	success := db.Put(context.Background(), entityStruct(), name.Eq("xxx"))
	failure := db.Put(context.Background(), entityStruct(), name.Eq("yyy"))

	it.Ok(t).
		IfNil(success).
		IfTrue(materials.IsPreConditionFailed(failure))
}

func TestRemoveWithConstrain(t *testing.T) {
	db := ddbtest.Constrains[*person](entityDynamo())

	success := db.Remove(context.Background(), entityKey(), name.Eq("xxx"))
	failure := db.Remove(context.Background(), entityKey(), name.Eq("yyy"))

	it.Ok(t).
		IfNil(success).
		IfTrue(materials.IsPreConditionFailed(failure))
}

func TestPatchWithConstrain(t *testing.T) {
	db := ddbtest.Constrains[*person](entityDynamo())

	_, success := db.Patch(context.Background(), entityKey(),
		[]materials.Assignment{age.Set(65)}, name.Eq("xxx"))
	_, failure := db.Patch(context.Background(), entityKey(),
		[]materials.Assignment{age.Set(65)}, name.Eq("yyy"))

	it.Ok(t).
		IfNil(success).
		IfTrue(materials.IsPreConditionFailed(failure)).
		IfTrue(!materials.IsNotFound(failure))
}

func TestPatchNotFound(t *testing.T) {
	db := ddbtest.Constrains[*person](nil)

	_, err := db.Patch(context.Background(), entityKey(),
		[]materials.Assignment{age.Set(65)}, name.Eq("xxx"))

	it.Ok(t).
		IfTrue(materials.IsNotFound(err)).
		IfTrue(!materials.IsPreConditionFailed(err))
}

func TestScan(t *testing.T) {
	db := ddbtest.Scan[*person](
		map[string]types.AttributeValue{
			":__c_name__": &types.AttributeValueMemberS{Value: "Verner Pleishner"},
		},
		[]map[string]types.AttributeValue{entityDynamo(), entityDynamo()},
		[]map[string]types.AttributeValue{entityDynamo()},
	)

	seq, err := db.Scan(context.Background(), name.Eq("Verner Pleishner"))
	it.Ok(t).
		IfNil(err).
		If(len(seq)).Should().Equal(3).
		If(seq[2]).Should().Equal(entityStruct())
}

type scanInput struct {
	ddb.DynamoDB
	input *dynamodb.ScanInput
}

func (mock *scanInput) Scan(ctx context.Context, input *dynamodb.ScanInput, opts ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	mock.input = input
	return &dynamodb.ScanOutput{}, nil
}

func TestScanConsistentRead(t *testing.T) {
	mock := &scanInput{}
	db := ddb.Must(ddb.New[*person](ddb.WithTable("test"), ddb.WithService(mock)))

	_, err := db.Scan(context.Background(), name.Eq("Verner Pleishner"))
	it.Ok(t).
		IfNil(err).
		IfNotNil(mock.input).
		IfTrue(aws.ToBool(mock.input.ConsistentRead))
}

func TestMatch(t *testing.T) {
	db := ddbtest.Query[*person]("NameIndex",
		map[string]types.AttributeValue{
			":__c_name__": &types.AttributeValueMemberS{Value: "Verner Pleishner"},
			":__c_age__":  &types.AttributeValueMemberN{Value: "64"},
		},
		[]map[string]types.AttributeValue{entityDynamo()},
		[]map[string]types.AttributeValue{entityDynamo()},
	)

	seq, err := db.Match(context.Background(), "NameIndex",
		name.Eq("Verner Pleishner"),
		age.Eq(64),
	)
	it.Ok(t).
		IfNil(err).
		If(len(seq)).Should().Equal(2)
}

func TestMatchRequiresKey(t *testing.T) {
	db := ddbtest.Query[*person]("NameIndex", nil)

	_, err := db.Match(context.Background(), "NameIndex", name.Exists())
	it.Ok(t).IfNotNil(err)
}
