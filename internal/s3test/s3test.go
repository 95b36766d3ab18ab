//
// Copyright (C) 2025 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/materials
//

//
// The file mocks AWS S3
//

package s3test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Bucket is in-memory S3 bucket, it serves listing in pages of PageSize keys
type Bucket struct {
	sync.Mutex
	PageSize int
	Objects  map[string][]byte
}

func New() *Bucket {
	return &Bucket{PageSize: 1000, Objects: map[string][]byte{}}
}

func (b *Bucket) GetObject(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b.Lock()
	defer b.Unlock()

	val, has := b.Objects[aws.ToString(input.Key)]
	if !has {
		return nil, &types.NoSuchKey{}
	}

	return &s3.GetObjectOutput{
		Body: io.NopCloser(bytes.NewReader(val)),
	}, nil
}

func (b *Bucket) PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	val, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}

	b.Lock()
	defer b.Unlock()

	b.Objects[aws.ToString(input.Key)] = val
	return &s3.PutObjectOutput{}, nil
}

func (b *Bucket) DeleteObject(ctx context.Context, input *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	b.Lock()
	defer b.Unlock()

	delete(b.Objects, aws.ToString(input.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (b *Bucket) ListObjectsV2(ctx context.Context, input *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	b.Lock()
	defer b.Unlock()

	keys := make([]string, 0, len(b.Objects))
	for k := range b.Objects {
		if strings.HasPrefix(k, aws.ToString(input.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	at := 0
	if input.ContinuationToken != nil {
		n, err := strconv.Atoi(*input.ContinuationToken)
		if err != nil {
			return nil, errors.New("unexpected continuation token")
		}
		at = n
	}

	end := min(at+b.PageSize, len(keys))
	seq := make([]types.Object, 0, end-at)
	for _, k := range keys[at:end] {
		seq = append(seq, types.Object{Key: aws.String(k)})
	}

	var next *string
	if end < len(keys) {
		next = aws.String(strconv.Itoa(end))
	}

	return &s3.ListObjectsV2Output{
		Contents:              seq,
		KeyCount:              aws.Int32(int32(len(seq))),
		NextContinuationToken: next,
	}, nil
}
