//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package materials

import (
	"fmt"
	"strings"

	"github.com/fogfish/golem/hseq"
)

// Op is the operator of predicate
type Op string

const (
	OpEq        Op = "="
	OpExists    Op = "attribute_exists"
	OpNotExists Op = "attribute_not_exists"
)

// Predicate is storage neutral condition over a single attribute.
// It is used either as scan filter or as condition of the write.
type Predicate struct {
	Op        Op
	Attribute string
	Value     any
}

// Assignment sets attribute to the value as part of partial update.
type Assignment struct {
	Attribute string
	Value     any
}

// Lens declares type descriptor to express predicates and assignments
// over struct fields.
//
// Golang struct defines and refers the field by `Name` but DynamoDB stores
// it under the attribute declared by `dynamodbav` tag. Lens builds the
// correspondence once, just declare global variables next to type definition
// and use them across the application.
//
//	var productURL = materials.LensFor[*Product, string]("ProductURL")
//
//	productURL.Set("https://example.com")
//	productURL.Eq("https://example.com")
type Lens[T Thing, A any] struct{ key string }

// LensFor builds lens for the field of struct T
func LensFor[T Thing, A any](field string) Lens[T, A] {
	return hseq.FMap1(
		fieldOf[T](field),
		newLens[T, A],
	)
}

// fieldOf filters hseq.New[T] list with the named field
func fieldOf[T any](field string) hseq.Seq[T] {
	seq := make(hseq.Seq[T], 0, 1)
	for _, t := range hseq.New[T]() {
		if t.Name == field {
			seq = append(seq, t)
		}
	}

	if len(seq) == 0 {
		panic(fmt.Errorf("field %s is not defined at %T", field, *new(T)))
	}

	return seq
}

func newLens[T Thing, A any](t hseq.Type[T]) Lens[T, A] {
	tag := t.Tag.Get("dynamodbav")
	if tag == "" {
		panic(fmt.Errorf("field %s of type %T do not have `dynamodbav` tag", t.Name, *new(T)))
	}

	return Lens[T, A]{strings.Split(tag, ",")[0]}
}

// Attribute name at storage
func (lens Lens[T, A]) Attribute() string { return lens.key }

// Eq is equal predicate
//
//	name.Eq(x) ⟼ Field = :value
func (lens Lens[T, A]) Eq(val A) Predicate {
	return Predicate{Op: OpEq, Attribute: lens.key, Value: val}
}

// Exists attribute predicate
//
//	name.Exists() ⟼ attribute_exists(Field)
func (lens Lens[T, A]) Exists() Predicate {
	return Predicate{Op: OpExists, Attribute: lens.key}
}

// NotExists attribute predicate
//
//	name.NotExists() ⟼ attribute_not_exists(Field)
func (lens Lens[T, A]) NotExists() Predicate {
	return Predicate{Op: OpNotExists, Attribute: lens.key}
}

// Set attribute
//
//	name.Set(x) ⟼ SET Field = :value
func (lens Lens[T, A]) Set(val A) Assignment {
	return Assignment{Attribute: lens.key, Value: val}
}
