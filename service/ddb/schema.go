//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package ddb

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/fogfish/golem/hseq"
	"github.com/fogfish/materials"
)

//
// Internal data structure to manage type schema
//

// Schema is utility that decodes type into projection expression
type schema[T materials.Thing] struct {
	ExpectedAttributeNames map[string]string
	Projection             *string
}

func newSchema[T materials.Thing]() *schema[T] {
	seq := hseq.FMap(
		hseq.New[T](),
		func(t hseq.Type[T]) string {
			tag := t.StructField.Tag.Get("dynamodbav")
			key := strings.Split(tag, ",")[0]
			if key == "" {
				return t.Name
			}
			return key
		},
	)

	names := make(map[string]string, len(seq))
	attrs := make([]string, 0, len(seq))

	for _, x := range seq {
		if x == "-" {
			continue
		}
		name := "#__" + x + "__"
		names[name] = x
		attrs = append(attrs, name)
	}

	return &schema[T]{
		ExpectedAttributeNames: names,
		Projection:             aws.String(strings.Join(attrs, ", ")),
	}
}
