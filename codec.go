//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

//
// The file implements codecs for numeric domain types
//

package materials

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// Cost is non-negative monetary amount with currency precision.
//
// DynamoDB keeps it as number, JSON renders it as floating point.
type Cost struct{ value decimal.Decimal }

// NewCost parses decimal literal, e.g. "425.00"
func NewCost(s string) (Cost, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Cost{}, fmt.Errorf("invalid cost %q: %w", s, err)
	}

	return CostOf(d)
}

// MustCost is NewCost that panics on invalid literal
func MustCost(s string) Cost {
	c, err := NewCost(s)
	if err != nil {
		panic(err)
	}
	return c
}

// CostOf lifts decimal value to Cost, rounding it to cents
func CostOf(d decimal.Decimal) (Cost, error) {
	if d.IsNegative() {
		return Cost{}, fmt.Errorf("invalid cost %s: negative", d.String())
	}

	return Cost{value: d.Round(2)}, nil
}

func (c Cost) Decimal() decimal.Decimal { return c.value }

func (c Cost) String() string { return c.value.StringFixed(2) }

func (c Cost) Float64() float64 {
	f, _ := c.value.Float64()
	return f
}

func (c Cost) Equal(x Cost) bool { return c.value.Equal(x.value) }

func (c Cost) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberN{Value: c.String()}, nil
}

func (c *Cost) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	var lit string

	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		lit = v.Value
	case *types.AttributeValueMemberS:
		lit = v.Value
	case *types.AttributeValueMemberNULL:
		*c = Cost{}
		return nil
	default:
		return &attributevalue.UnmarshalTypeError{
			Value: fmt.Sprintf("%T", av),
			Type:  reflect.TypeOf((*Cost)(nil)),
		}
	}

	val, err := NewCost(lit)
	if err != nil {
		return err
	}

	*c = val
	return nil
}

func (c Cost) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Float64())
}

func (c *Cost) UnmarshalJSON(b []byte) error {
	val, err := NewCost(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}

	*c = val
	return nil
}
