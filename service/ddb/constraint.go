//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

//
// The file implements dynamodb specific conditional expressions
//

package ddb

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/fogfish/materials"
)

// expression accumulates names and values of DynamoDB expressions.
// Names are encoded as #__attr__, values of conditions as :__c_attr__
// and values of update as :__attr__ so that both co-exists in request.
type expression struct {
	names  map[string]string
	values map[string]types.AttributeValue
}

func newExpression() *expression {
	return &expression{
		names:  map[string]string{},
		values: map[string]types.AttributeValue{},
	}
}

func (expr *expression) name(attr string) string {
	key := "#__" + attr + "__"
	expr.names[key] = attr
	return key
}

func (expr *expression) value(key string, val any) error {
	gen, err := attributevalue.Marshal(val)
	if err != nil {
		return err
	}
	expr.values[key] = gen
	return nil
}

// condition builds conditional expression, predicates are joined with AND
func (expr *expression) condition(seq []materials.Predicate) (*string, error) {
	if len(seq) == 0 {
		return nil, nil
	}

	terms := make([]string, 0, len(seq))
	for _, p := range seq {
		switch p.Op {
		case materials.OpEq:
			key := ":__c_" + p.Attribute + "__"
			if err := expr.value(key, p.Value); err != nil {
				return nil, err
			}
			terms = append(terms, expr.name(p.Attribute)+" = "+key)
		case materials.OpExists, materials.OpNotExists:
			terms = append(terms, string(p.Op)+"("+expr.name(p.Attribute)+")")
		default:
			return nil, fmt.Errorf("unsupported predicate %s on %s", p.Op, p.Attribute)
		}
	}

	return aws.String(strings.Join(terms, " AND ")), nil
}

// Unfortunately empty maps are not accepted by DynamoDB
func (expr *expression) attributes() (map[string]string, map[string]types.AttributeValue) {
	names, values := expr.names, expr.values
	if len(names) == 0 {
		names = nil
	}
	if len(values) == 0 {
		values = nil
	}
	return names, values
}
