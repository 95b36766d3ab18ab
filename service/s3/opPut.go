//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

package s3

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Put archives entity as JSON object
func (db *Storage[T]) Put(ctx context.Context, entity T) error {
	k, err := db.codec.EncodeKey(entity)
	if err != nil {
		return errInvalidKey.New(err)
	}

	gen, err := json.Marshal(entity)
	if err != nil {
		return errInvalidEntity.New(err)
	}

	req := &s3.PutObjectInput{
		Bucket:      db.bucket,
		Key:         aws.String(k),
		Body:        bytes.NewReader(gen),
		ContentType: aws.String("application/json"),
	}

	_, err = db.service.PutObject(ctx, req)
	if err != nil {
		return errServiceIO.New(err)
	}

	return nil
}
