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

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Remove discards archived entity
func (db *Storage[T]) Remove(ctx context.Context, key T) error {
	k, err := db.codec.EncodeKey(key)
	if err != nil {
		return errInvalidKey.New(err)
	}

	req := &s3.DeleteObjectInput{
		Bucket: db.bucket,
		Key:    aws.String(k),
	}

	_, err = db.service.DeleteObject(ctx, req)
	if err != nil {
		return errServiceIO.New(err)
	}

	return nil
}
