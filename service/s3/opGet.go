//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package s3

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fogfish/materials"
)

// Get reads archived entity
func (db *Storage[T]) Get(ctx context.Context, key T) (T, error) {
	k, err := db.codec.EncodeKey(key)
	if err != nil {
		return db.undefined, errInvalidKey.New(err)
	}

	req := &s3.GetObjectInput{
		Bucket: db.bucket,
		Key:    aws.String(k),
	}

	val, err := db.service.GetObject(ctx, req)
	if err != nil {
		switch {
		case recoverNoSuchKey(err):
			return db.undefined, materials.NewNotFound(k, err)
		default:
			return db.undefined, errServiceIO.New(err)
		}
	}
	defer val.Body.Close()

	var entity T
	err = json.NewDecoder(val.Body).Decode(&entity)
	if err != nil {
		return db.undefined, errInvalidEntity.New(err)
	}

	return entity, nil
}
