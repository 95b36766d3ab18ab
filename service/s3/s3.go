//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package s3

import (
	"github.com/fogfish/materials"
	"github.com/fogfish/opts"
)

// Storage is JSON object archive at S3 bucket
type Storage[T materials.Thing] struct {
	service   S3
	bucket    *string
	codec     *codec[T]
	undefined T
}

// Must constraint for api factory
func Must[T materials.Thing](keyval *Storage[T], err error) *Storage[T] {
	if err != nil {
		panic(err)
	}

	return keyval
}

// New creates instance of S3 api
func New[T materials.Thing](opt ...Option) (*Storage[T], error) {
	conf := optsDefault()
	if err := opts.Apply(&conf, opt); err != nil {
		return nil, err
	}

	if conf.service == nil {
		if err := optsDefaultS3(&conf); err != nil {
			return nil, errServiceIO.New(err)
		}
	}

	bucket := conf.bucket
	if bucket == "" {
		return nil, errUndefinedBucket.New(nil)
	}

	return &Storage[T]{
		service: conf.service,
		bucket:  &bucket,
		codec:   newCodec[T](conf.prefix),
	}, nil
}
