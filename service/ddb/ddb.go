//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package ddb

import (
	"github.com/fogfish/materials"
	"github.com/fogfish/opts"
)

// Storage is DynamoDB implementation of materials.Collection
type Storage[T materials.Thing] struct {
	service   DynamoDB
	table     *string
	codec     *codec[T]
	schema    *schema[T]
	undefined T
}

var _ materials.Collection[*materials.Product] = (*Storage[*materials.Product])(nil)

// Must constraint for api factory
func Must[T materials.Thing](keyval *Storage[T], err error) *Storage[T] {
	if err != nil {
		panic(err)
	}

	return keyval
}

// New creates instance of DynamoDB api
func New[T materials.Thing](opt ...Option) (*Storage[T], error) {
	conf := optsDefault()
	if err := opts.Apply(&conf, opt); err != nil {
		return nil, err
	}

	if conf.service == nil {
		if err := optsDefaultDDB(&conf); err != nil {
			return nil, errServiceIO.New(err)
		}
	}

	table := conf.table
	if table == "" {
		return nil, errUndefinedTable.New(nil)
	}

	return &Storage[T]{
		service: conf.service,
		table:   &table,
		codec:   newCodec[T](conf.hashKey),
		schema:  newSchema[T](),
	}, nil
}

// Table name
func (db *Storage[T]) Table() string { return *db.table }
