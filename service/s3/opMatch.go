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
)

// Match lists archived entities which key starts with prefix,
// following the continuation of listing.
func (db *Storage[T]) Match(ctx context.Context, prefix string) ([]T, error) {
	seq := make([]T, 0)

	req := &s3.ListObjectsV2Input{
		Bucket:  db.bucket,
		MaxKeys: aws.Int32(1000),
		Prefix:  aws.String(db.codec.EncodePrefix(prefix)),
	}

	for {
		val, err := db.service.ListObjectsV2(ctx, req)
		if err != nil {
			return nil, errServiceIO.New(err)
		}

		for _, obj := range val.Contents {
			head, err := db.get(ctx, obj.Key)
			if err != nil {
				return nil, err
			}
			seq = append(seq, head)
		}

		if val.NextContinuationToken == nil {
			return seq, nil
		}
		req.ContinuationToken = val.NextContinuationToken
	}
}

func (db *Storage[T]) get(ctx context.Context, key *string) (T, error) {
	val, err := db.service.GetObject(ctx,
		&s3.GetObjectInput{Bucket: db.bucket, Key: key},
	)
	if err != nil {
		return db.undefined, errServiceIO.New(err)
	}
	defer val.Body.Close()

	var head T
	if err := json.NewDecoder(val.Body).Decode(&head); err != nil {
		return db.undefined, errInvalidEntity.New(err)
	}

	return head, nil
}
